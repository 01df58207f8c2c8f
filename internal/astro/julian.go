package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 UT).
const J2000 JulianDay = 2451545.0

// JulianDay counts days since noon UT on 1 January 4713 BC. The
// fractional part is the time of day measured from noon UT.
type JulianDay float64

// Centuries returns Julian centuries since J2000.0.
func (jd JulianDay) Centuries() float64 {
	return float64(jd-J2000) / 36525.0
}

// Time converts jd to a UTC instant. See FromJulianDay.
func (jd JulianDay) Time() time.Time {
	return FromJulianDay(jd)
}

// AddDays returns jd shifted by the given number of days.
func (jd JulianDay) AddDays(days float64) JulianDay {
	return jd + JulianDay(days)
}

// CivilMoment is a wall-clock reading in a named timezone.
type CivilMoment struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Day      int    `json:"day"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Second   int    `json:"second"`
	TimeZone string `json:"time_zone"`
}

// CivilFromTime reads the wall clock of t in the named zone.
func CivilFromTime(t time.Time, zone string) (CivilMoment, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return CivilMoment{}, err
	}
	l := t.In(loc)
	return CivilMoment{
		Year:     l.Year(),
		Month:    int(l.Month()),
		Day:      l.Day(),
		Hour:     l.Hour(),
		Minute:   l.Minute(),
		Second:   l.Second(),
		TimeZone: zone,
	}, nil
}

// Validate checks the calendar fields. The timezone is checked by the
// ZoneResolver.
func (m CivilMoment) Validate() error {
	if m.Month < 1 || m.Month > 12 {
		return invalidInputError("month %d out of range", m.Month)
	}
	if m.Day < 1 || m.Day > daysIn(m.Year, m.Month) {
		return invalidInputError("day %d out of range for %04d-%02d", m.Day, m.Year, m.Month)
	}
	if m.Hour < 0 || m.Hour > 23 {
		return invalidInputError("hour %d out of range", m.Hour)
	}
	if m.Minute < 0 || m.Minute > 59 {
		return invalidInputError("minute %d out of range", m.Minute)
	}
	if m.Second < 0 || m.Second > 59 {
		return invalidInputError("second %d out of range", m.Second)
	}
	return nil
}

// Hours returns the wall-clock time of day as fractional hours.
func (m CivilMoment) Hours() float64 {
	return float64(m.Hour) + float64(m.Minute)/60 + float64(m.Second)/3600
}

// DateJD returns the Julian Day of 00:00 on the moment's civil date,
// ignoring its timezone. Weekday arithmetic on this value follows the
// local calendar.
func (m CivilMoment) DateJD() JulianDay {
	return GregorianToJD(m.Year, m.Month, m.Day, 0)
}

// ToJulianDay converts a civil moment to a Julian Day in UT. The UTC
// offset comes from zr so daylight saving rules are honored.
func ToJulianDay(m CivilMoment, zr ZoneResolver) (JulianDay, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	offset, err := zr.Offset(m)
	if err != nil {
		return 0, err
	}

	year, month, day := m.Year, m.Month, m.Day
	ut := m.Hours() - offset
	for ut < 0 {
		ut += 24
		year, month, day = addDays(year, month, day, -1)
	}
	for ut >= 24 {
		ut -= 24
		year, month, day = addDays(year, month, day, 1)
	}

	return GregorianToJD(year, month, day, ut), nil
}

// GregorianToJD converts a Gregorian calendar date and UT hours to a
// Julian Day (Meeus, Astronomical Algorithms, ch. 7).
func GregorianToJD(year, month, day int, utHours float64) JulianDay {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + b - 1524.5 +
		utHours/24

	return JulianDay(jd)
}

// JulianDayOf returns the Julian Day of an instant.
func JulianDayOf(t time.Time) JulianDay {
	u := t.UTC()
	hours := float64(u.Hour()) +
		float64(u.Minute())/60 +
		float64(u.Second())/3600 +
		float64(u.Nanosecond())/3.6e12
	return GregorianToJD(u.Year(), int(u.Month()), u.Day(), hours)
}

// FromJulianDay converts a Julian Day back to a UTC instant rounded to
// the millisecond.
func FromJulianDay(jd JulianDay) time.Time {
	z := math.Floor(float64(jd) + 0.5)
	f := float64(jd) + 0.5 - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := int(b - d - math.Floor(30.6001*e))
	month := int(e) - 1
	if e >= 14 {
		month = int(e) - 13
	}
	year := int(c) - 4716
	if month <= 2 {
		year++
	}

	ms := math.Round(f * 86400000)
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(ms) * time.Millisecond)
}

func addDays(year, month, day, n int) (int, int, int) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return t.Year(), int(t.Month()), t.Day()
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
