package astro

import (
	"math"
	"time"
)

// SunriseZenith is the zenith distance of the Sun's centre at apparent
// rise and set: 90 degrees plus refraction and the solar semi-diameter.
const SunriseZenith = 90.833

// GeoLocation is an observer position in degrees, East longitude positive.
type GeoLocation struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks coordinate ranges.
func (g GeoLocation) Validate() error {
	if math.IsNaN(g.Latitude) || g.Latitude < -90 || g.Latitude > 90 {
		return invalidInputError("latitude %v outside [-90, 90]", g.Latitude)
	}
	if math.IsNaN(g.Longitude) || g.Longitude < -180 || g.Longitude > 180 {
		return invalidInputError("longitude %v outside [-180, 180]", g.Longitude)
	}
	return nil
}

// Polar tells why a day has no sunrise or sunset.
type Polar int

const (
	PolarNone Polar = iota
	PolarDay        // Sun stays above the horizon
	PolarNight      // Sun stays below the horizon
)

func (p Polar) String() string {
	switch p {
	case PolarDay:
		return "polar_day"
	case PolarNight:
		return "polar_night"
	default:
		return ""
	}
}

// SunTimes is the result of SunriseSunset. Hours are UT hours measured
// from 00:00 UT of the requested date and are not wrapped, so
// RiseUT <= NoonUT <= SetUT always holds. When Polar is set, RiseUT and
// SetUT are meaningless and must not be used.
type SunTimes struct {
	Year        int
	Month       int
	Day         int
	NoonUT      float64
	RiseUT      float64
	SetUT       float64
	Declination float64
	Polar       Polar
}

// Available reports whether the Sun rises and sets on this date.
func (s SunTimes) Available() bool {
	return s.Polar == PolarNone
}

// DayLength returns the hours from sunrise to sunset.
func (s SunTimes) DayLength() float64 {
	return s.SetUT - s.RiseUT
}

// Noon returns solar transit as an instant.
func (s SunTimes) Noon() time.Time { return s.at(s.NoonUT) }

// Sunrise returns sunrise as an instant. Check Available first.
func (s SunTimes) Sunrise() time.Time { return s.at(s.RiseUT) }

// Sunset returns sunset as an instant. Check Available first.
func (s SunTimes) Sunset() time.Time { return s.at(s.SetUT) }

// LocalHours converts the UT hours to wall-clock hours in [0, 24) for
// the given UTC offset.
func (s SunTimes) LocalHours(offset float64) (rise, noon, set float64) {
	return Mod24(s.RiseUT + offset), Mod24(s.NoonUT + offset), Mod24(s.SetUT + offset)
}

func (s SunTimes) at(utHours float64) time.Time {
	base := time.Date(s.Year, time.Month(s.Month), s.Day, 0, 0, 0, 0, time.UTC)
	sec := int64(math.Round(utHours * 3600))
	return base.Add(time.Duration(sec) * time.Second)
}

// SunriseSunset computes sunrise, solar noon and sunset for a civil date
// at loc. It is a single pass (not iterated to convergence) and is good
// to a minute or two away from the polar circles.
func SunriseSunset(year, month, day int, loc GeoLocation) SunTimes {
	jd0 := GregorianToJD(year, month, day, 0)

	noon := 12 - loc.Longitude/15
	noon -= EquationOfTime(jd0.AddDays(noon/24).Centuries()) / 60

	decl := SunDeclination(jd0.AddDays(noon / 24).Centuries())
	st := SunTimes{
		Year:        year,
		Month:       month,
		Day:         day,
		NoonUT:      noon,
		RiseUT:      noon,
		SetUT:       noon,
		Declination: decl,
	}

	// Not clamped: leaving [-1, 1] is the polar signal.
	cosH := (cosD(SunriseZenith) - sinD(loc.Latitude)*sinD(decl)) /
		(cosD(loc.Latitude) * cosD(decl))
	switch {
	case math.IsNaN(cosH):
		st.Polar = PolarNight
		return st
	case cosH > 1:
		st.Polar = PolarNight
		return st
	case cosH < -1:
		st.Polar = PolarDay
		return st
	}

	h := acosD(cosH) / 15
	st.RiseUT = noon - h
	st.SetUT = noon + h
	return st
}
