package calendar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/logger"
)

// Request names a moment and place to resolve.
type Request struct {
	Moment   astro.CivilMoment `json:"moment"`
	Location astro.GeoLocation `json:"location"`
	Ayanamsa astro.Ayanamsa    `json:"ayanamsa"`
}

// Validate checks every field of the request.
func (r Request) Validate() error {
	if err := r.Moment.Validate(); err != nil {
		return err
	}
	if err := r.Location.Validate(); err != nil {
		return err
	}
	if !r.Ayanamsa.IsValid() {
		return fmt.Errorf("%w: unknown ayanamsa %d", astro.ErrInvalidInput, int(r.Ayanamsa))
	}
	return nil
}

// Panchanga is the full almanac entry for one request. Element fields
// carry indices; use their Name methods for display.
type Panchanga struct {
	Request    Request
	JulianDay  astro.JulianDay
	UTCOffset  float64 // hours east of UTC
	Instant    time.Time
	Longitudes astro.Longitudes

	Tithi     Tithi
	TithiEnd  time.Time // zero if the solver failed
	Vaara     Vaara
	Nakshatra Nakshatra
	Pada      int
	Yoga      Yoga
	Karana    Karana
	Ayana     Ayana
	Ritu      Ritu
	Masa      Masa
	FullMoon  time.Time // zero when Masa came from MasaApprox

	SamvatShaka  int
	SamvatVikram int

	Sun        astro.SunTimes
	Muhurta    *Muhurta    // nil when the Sun does not rise or set
	Choghadiya *Choghadiya // in force at Instant, if any
}

// Resolver resolves requests to panchanga entries.
type Resolver struct {
	zones astro.ZoneResolver
}

// NewResolver creates a resolver. A nil zones uses the IANA database.
func NewResolver(zones astro.ZoneResolver) *Resolver {
	if zones == nil {
		zones = astro.TZDatabase{}
	}
	return &Resolver{zones: zones}
}

// Resolve computes the panchanga for a request.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Panchanga, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	offset, err := r.zones.Offset(req.Moment)
	if err != nil {
		return nil, err
	}
	jd, err := astro.ToJulianDay(req.Moment, r.zones)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc := r.location(req.Moment.TimeZone, offset)
	lon := astro.LongitudesAt(jd, req.Ayanamsa)
	elong := lon.Elongation()
	nak, pada := NakshatraAt(lon.Moon)

	p := &Panchanga{
		Request:      req,
		JulianDay:    jd,
		UTCOffset:    offset,
		Instant:      astro.FromJulianDay(jd).In(loc),
		Longitudes:   lon,
		Tithi:        TithiAt(elong),
		Vaara:        VaaraAt(req.Moment.DateJD()),
		Nakshatra:    nak,
		Pada:         pada,
		Yoga:         YogaAt(lon.Sun, lon.Moon),
		Karana:       KaranaAt(elong),
		Ayana:        AyanaAt(lon.Sun),
		Ritu:         RituAt(lon.Sun),
		SamvatShaka:  SamvatShaka(req.Moment.Year),
		SamvatVikram: SamvatVikram(req.Moment.Year),
	}

	if end, err := FindTithiEnd(jd, req.Ayanamsa); err != nil {
		logger.Warn(ctx, "tithi end not solved", "jd", float64(jd), "error", err)
	} else {
		p.TithiEnd = astro.FromJulianDay(end).In(loc)
	}

	masa, full, err := MasaAt(jd, req.Ayanamsa)
	if err != nil {
		logger.Warn(ctx, "full moon not solved, projecting masa", "jd", float64(jd), "error", err)
		p.Masa = MasaApprox(jd, req.Ayanamsa)
	} else {
		p.Masa = masa
		p.FullMoon = astro.FromJulianDay(full).In(loc)
	}

	today, next := r.sunDays(req.Moment, req.Location, loc)
	p.Sun = today
	if today.Available() {
		p.Muhurta, err = ComputeMuhurta(today, next, p.Vaara, loc)
		if err != nil {
			return nil, err
		}
		if c, ok := p.Muhurta.Current(p.Instant); ok {
			p.Choghadiya = &c
		}
	}
	if p.Choghadiya == nil {
		p.Choghadiya = r.previousNight(req, p, today, loc)
	}

	logger.Debug(ctx, "panchanga resolved",
		"jd", float64(jd),
		"tithi", int(p.Tithi),
		"nakshatra", int(p.Nakshatra),
		"masa", int(p.Masa),
	)
	return p, nil
}

// SunTimes returns sunrise, noon and sunset for the local civil date of m
// together with the wall-clock location used to present them.
func (r *Resolver) SunTimes(m astro.CivilMoment, g astro.GeoLocation) (astro.SunTimes, *time.Location, error) {
	if err := m.Validate(); err != nil {
		return astro.SunTimes{}, nil, err
	}
	if err := g.Validate(); err != nil {
		return astro.SunTimes{}, nil, err
	}
	offset, err := r.zones.Offset(m)
	if err != nil {
		return astro.SunTimes{}, nil, err
	}
	loc := r.location(m.TimeZone, offset)
	today, _ := r.sunDays(m, g, loc)
	return today, loc, nil
}

// Muhurta returns the day divisions for the local civil date of m.
func (r *Resolver) Muhurta(m astro.CivilMoment, g astro.GeoLocation) (*Muhurta, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	offset, err := r.zones.Offset(m)
	if err != nil {
		return nil, err
	}
	loc := r.location(m.TimeZone, offset)
	today, next := r.sunDays(m, g, loc)
	return ComputeMuhurta(today, next, VaaraAt(m.DateJD()), loc)
}

// Kalashtami finds the next Kalashtami window from the request moment.
func (r *Resolver) Kalashtami(ctx context.Context, req Request, horizonDays int) (Window, error) {
	if err := req.Validate(); err != nil {
		return Window{}, err
	}
	jd, err := astro.ToJulianDay(req.Moment, r.zones)
	if err != nil {
		return Window{}, err
	}
	w, err := FindKalashtami(jd, req.Ayanamsa, horizonDays)
	if err != nil {
		return Window{}, err
	}
	logger.Debug(ctx, "kalashtami found", "start", w.StartTime(), "end", w.EndTime())
	return w, nil
}

// location prefers the named zone so DST is honoured when formatting
// times on either side of a transition, and falls back to the fixed
// offset the resolver reported.
func (r *Resolver) location(name string, offset float64) *time.Location {
	if _, fixed := r.zones.(astro.FixedOffset); !fixed {
		if loc, err := astro.LoadZone(name); err == nil {
			return loc
		}
	}
	return time.FixedZone(name, int(offset*3600))
}

// sunDays returns sun times for the local civil date of m and the day
// after. The UT date used for the computation is shifted when solar noon
// for the UT date would fall on a different local date, as happens near
// the date line.
func (r *Resolver) sunDays(m astro.CivilMoment, g astro.GeoLocation, loc *time.Location) (astro.SunTimes, astro.SunTimes) {
	local := time.Date(m.Year, time.Month(m.Month), m.Day, 0, 0, 0, 0, time.UTC)
	today := sunForLocalDate(local, g, loc)
	next := sunForLocalDate(local.AddDate(0, 0, 1), g, loc)
	return today, next
}

// previousNight returns the choghadiya of the night that began at the
// previous date's sunset, for moments between midnight and sunrise.
func (r *Resolver) previousNight(req Request, p *Panchanga, today astro.SunTimes, loc *time.Location) *Choghadiya {
	if today.Available() && !p.Instant.Before(today.Sunrise()) {
		return nil
	}
	m := req.Moment
	prevDate := time.Date(m.Year, time.Month(m.Month), m.Day-1, 0, 0, 0, 0, time.UTC)
	prev := sunForLocalDate(prevDate, req.Location, loc)
	if !prev.Available() {
		return nil
	}
	mu, err := ComputeMuhurta(prev, today, (p.Vaara+6)%7, loc)
	if err != nil {
		return nil
	}
	for _, c := range mu.Night {
		if c.Contains(p.Instant) {
			return &c
		}
	}
	return nil
}

func sunForLocalDate(date time.Time, g astro.GeoLocation, loc *time.Location) astro.SunTimes {
	st := astro.SunriseSunset(date.Year(), int(date.Month()), date.Day(), g)
	noon := st.Noon().In(loc)
	got := time.Date(noon.Year(), noon.Month(), noon.Day(), 0, 0, 0, 0, time.UTC)
	if shift := int(date.Sub(got).Hours() / 24); shift != 0 {
		d := date.AddDate(0, 0, shift)
		st = astro.SunriseSunset(d.Year(), int(d.Month()), d.Day(), g)
	}
	return st
}

// ============================================================================
// Parsing helpers
// ============================================================================

// ErrBadFormat is returned by the parsing helpers.
var ErrBadFormat = errors.New("bad format")

// ParseDateString parses a date string in YYYY-MM-DD format
func ParseDateString(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, want YYYY-MM-DD", ErrBadFormat, dateStr)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}

// ParseTimeOfDay parses HH:MM or HH:MM:SS.
func ParseTimeOfDay(s string) (hour, minute, second int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("%w: time %q, want HH:MM[:SS]", ErrBadFormat, s)
	}
	vals := make([]int, 3)
	limits := []int{23, 59, 59}
	for i, p := range parts {
		v, convErr := strconv.Atoi(p)
		if convErr != nil || v < 0 || v > limits[i] {
			return 0, 0, 0, fmt.Errorf("%w: time %q, want HH:MM[:SS]", ErrBadFormat, s)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

// MomentFrom builds a civil moment from date and time strings. An empty
// timeOfDay means noon.
func MomentFrom(date, timeOfDay, zone string) (astro.CivilMoment, error) {
	d, err := ParseDateString(date)
	if err != nil {
		return astro.CivilMoment{}, err
	}
	m := astro.CivilMoment{
		Year:     d.Year(),
		Month:    int(d.Month()),
		Day:      d.Day(),
		Hour:     12,
		TimeZone: zone,
	}
	if timeOfDay != "" {
		if m.Hour, m.Minute, m.Second, err = ParseTimeOfDay(timeOfDay); err != nil {
			return astro.CivilMoment{}, err
		}
	}
	return m, nil
}
