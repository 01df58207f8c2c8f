package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/calendar"
	"github.com/zapponejosh/panchanga-api/internal/database"
	"github.com/zapponejosh/panchanga-api/internal/logger"
)

// ListLocations handles GET /api/v1/locations
func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.db.ListLocations(r.Context())
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]interface{}{
		"locations": locs,
		"count":     len(locs),
	})
}

// CreateLocation handles POST /api/v1/locations
func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		TimeZone  string  `json:"time_zone"`
		Ayanamsa  string  `json:"ayanamsa,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	loc := &database.Location{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		TimeZone:  req.TimeZone,
		Ayanamsa:  req.Ayanamsa,
	}
	if err := loc.Validate(h.cfg.DefaultAyanamsa); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	if err := h.db.CreateLocation(r.Context(), loc); err != nil {
		WriteDomainError(w, r, err)
		return
	}

	logger.Info(r.Context(), "location created",
		slog.Int64("id", loc.ID),
		slog.String("name", loc.Name),
	)
	WriteCreated(w, loc)
}

// GetLocation handles GET /api/v1/locations/{id}
func (h *Handlers) GetLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.loadLocation(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, loc)
}

// DeleteLocation handles DELETE /api/v1/locations/{id}
// Stored observances go with it.
func (h *Handlers) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	if err := h.db.DeleteLocation(r.Context(), id); err != nil {
		WriteDomainError(w, r, err)
		return
	}

	logger.Info(r.Context(), "location deleted", slog.Int64("id", id))
	WriteSuccess(w, map[string]string{"message": "Location deleted"})
}

// GetLocationPanchanga handles GET /api/v1/locations/{id}/panchanga?date=&time=
func (h *Handlers) GetLocationPanchanga(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.loadLocation(w, r)
	if !ok {
		return
	}
	req, err := h.parseRequest(r, loc)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	h.writePanchanga(w, r, req)
}

// GetLocationObservances handles GET /api/v1/locations/{id}/observances?year=
//
// Windows generated by cmd/observances are served from the store. When
// none are stored for the year they are computed on the fly and nothing
// is written.
func (h *Handlers) GetLocationObservances(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.loadLocation(w, r)
	if !ok {
		return
	}
	zone, err := astro.LoadZone(loc.TimeZone)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	year := h.now().In(zone).Year()
	if s := r.URL.Query().Get("year"); s != "" {
		year, err = strconv.Atoi(s)
		if err != nil || year < 1 || year > 9999 {
			WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", s))
			return
		}
	}

	// Bounds of the calendar year in the location's zone.
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, zone)
	to := time.Date(year+1, time.January, 1, 0, 0, 0, 0, zone)

	stored, err := h.db.ListObservances(r.Context(), loc.ID, from, to)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	view := observancesView{Location: *loc, Year: year, Observances: []windowView{}}
	if len(stored) > 0 {
		view.Source = "stored"
		for _, o := range stored {
			view.Observances = append(view.Observances, newWindowView(string(o.Kind), o.Start, o.End, o.Masa, zone))
		}
		WriteSuccess(w, view)
		return
	}

	a, err := astro.ParseAyanamsa(loc.Ayanamsa)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	wins, err := calendar.KalashtamisBetween(astro.JulianDayOf(from), astro.JulianDayOf(to), a)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	view.Source = "computed"
	for _, win := range wins {
		masa := calendar.MasaFor(win.Start, a)
		view.Observances = append(view.Observances,
			newWindowView(string(database.KindKalashtami), win.StartTime(), win.EndTime(), masa.Name(), zone))
	}
	WriteSuccess(w, view)
}

// loadLocation fetches the location named by the {id} path parameter,
// writing the error response itself when it fails.
func (h *Handlers) loadLocation(w http.ResponseWriter, r *http.Request) (*database.Location, bool) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return nil, false
	}
	loc, err := h.db.GetLocation(r.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Location not found")
			return nil, false
		}
		WriteDomainError(w, r, err)
		return nil, false
	}
	return loc, true
}
