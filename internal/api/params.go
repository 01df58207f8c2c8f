package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/calendar"
	"github.com/zapponejosh/panchanga-api/internal/database"
)

// parseRequest builds an engine request from query parameters:
//
//	date      YYYY-MM-DD, default today in tz
//	time      HH:MM[:SS], default now when date is omitted, else noon
//	tz        IANA zone, default the saved location's or the configured one
//	lat, lon  degrees, required unless saved is given
//	ayanamsa  lahiri, fagan_bradley or raman
//
// A saved location supplies coordinates and default zone and ayanamsa.
func (h *Handlers) parseRequest(r *http.Request, saved *database.Location) (calendar.Request, error) {
	q := r.URL.Query()

	zone := q.Get("tz")
	if zone == "" && saved != nil {
		zone = saved.TimeZone
	}
	if zone == "" {
		zone = h.cfg.DefaultTimeZone
	}

	moment, err := h.parseMoment(q, zone)
	if err != nil {
		return calendar.Request{}, err
	}

	var geo astro.GeoLocation
	if saved != nil {
		geo = saved.Geo()
	} else {
		if geo.Latitude, err = requiredFloat(q, "lat"); err != nil {
			return calendar.Request{}, err
		}
		if geo.Longitude, err = requiredFloat(q, "lon"); err != nil {
			return calendar.Request{}, err
		}
	}

	name := q.Get("ayanamsa")
	if name == "" && saved != nil {
		name = saved.Ayanamsa
	}
	a := h.cfg.Ayanamsa()
	if name != "" {
		if a, err = astro.ParseAyanamsa(name); err != nil {
			return calendar.Request{}, err
		}
	}

	return calendar.Request{Moment: moment, Location: geo, Ayanamsa: a}, nil
}

func (h *Handlers) parseMoment(q url.Values, zone string) (astro.CivilMoment, error) {
	date, tod := q.Get("date"), q.Get("time")
	if date != "" {
		return calendar.MomentFrom(date, tod, zone)
	}

	m, err := astro.CivilFromTime(h.now(), zone)
	if err != nil {
		return astro.CivilMoment{}, err
	}
	if tod != "" {
		if m.Hour, m.Minute, m.Second, err = calendar.ParseTimeOfDay(tod); err != nil {
			return astro.CivilMoment{}, err
		}
	}
	return m, nil
}

// parseHorizon reads the horizon query parameter in days, defaulting to
// the configured search horizon.
func (h *Handlers) parseHorizon(q url.Values) (int, error) {
	s := q.Get("horizon")
	if s == "" {
		return h.cfg.SearchHorizonDays, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > h.cfg.MaxHorizonDays {
		return 0, fmt.Errorf("%w: horizon must be between 1 and %d days", astro.ErrInvalidInput, h.cfg.MaxHorizonDays)
	}
	return n, nil
}

func requiredFloat(q url.Values, key string) (float64, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return 0, fmt.Errorf("%w: %s is required", astro.ErrInvalidInput, key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", astro.ErrInvalidInput, key, s)
	}
	return v, nil
}

func parseID(r *http.Request, key string) (int64, error) {
	s := urlParam(r, key)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", astro.ErrInvalidInput, s)
	}
	return id, nil
}
