package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/calendar"
	"github.com/zapponejosh/panchanga-api/internal/config"
	"github.com/zapponejosh/panchanga-api/internal/database"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	resolver *calendar.Resolver
	cfg      *config.Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:       db,
		resolver: calendar.NewResolver(nil),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// ============================================================================
// Engine endpoints
// ============================================================================

// GetPanchanga handles GET /api/v1/panchanga?date=&time=&tz=&lat=&lon=&ayanamsa=
func (h *Handlers) GetPanchanga(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r, nil)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	h.writePanchanga(w, r, req)
}

func (h *Handlers) writePanchanga(w http.ResponseWriter, r *http.Request, req calendar.Request) {
	p, err := h.resolver.Resolve(r.Context(), req)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteSuccess(w, newPanchangaView(p))
}

// GetSun handles GET /api/v1/sun?date=&tz=&lat=&lon=
func (h *Handlers) GetSun(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r, nil)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	st, loc, err := h.resolver.SunTimes(req.Moment, req.Location)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteSuccess(w, newSunView(st, loc))
}

// GetMuhurta handles GET /api/v1/muhurta?date=&tz=&lat=&lon=
// Days without sunrise or sunset get a 422.
func (h *Handlers) GetMuhurta(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r, nil)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	m, err := h.resolver.Muhurta(req.Moment, req.Location)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]interface{}{
		"date":      fmt.Sprintf("%04d-%02d-%02d", req.Moment.Year, req.Moment.Month, req.Moment.Day),
		"time_zone": req.Moment.TimeZone,
		"muhurta":   m,
	})
}

type kalashtamiView struct {
	windowView
	InProgress  bool `json:"in_progress"`
	HorizonDays int  `json:"horizon_days"`
}

// GetKalashtami handles GET /api/v1/kalashtami?date=&time=&tz=&lat=&lon=&horizon=
// It returns the next window, or the one in progress at the given moment.
func (h *Handlers) GetKalashtami(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r, nil)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	horizon, err := h.parseHorizon(r.URL.Query())
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	win, err := h.resolver.Kalashtami(r.Context(), req, horizon)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	loc, err := astro.LoadZone(req.Moment.TimeZone)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	at, err := astro.ToJulianDay(req.Moment, astro.TZDatabase{})
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}

	masa := calendar.MasaFor(win.Start, req.Ayanamsa)
	WriteSuccess(w, kalashtamiView{
		windowView:  newWindowView(string(database.KindKalashtami), win.StartTime(), win.EndTime(), masa.Name(), loc),
		InProgress:  win.Contains(at),
		HorizonDays: horizon,
	})
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
