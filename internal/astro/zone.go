package astro

import (
	"time"
	_ "time/tzdata" // embedded zoneinfo so lookups work on minimal images
)

// ZoneResolver resolves the UTC offset, in hours, that applies to a civil
// moment in its timezone.
type ZoneResolver interface {
	Offset(m CivilMoment) (float64, error)
}

// TZDatabase resolves offsets from the IANA timezone database.
type TZDatabase struct{}

var _ ZoneResolver = TZDatabase{}

// Offset returns the offset in effect at m's wall-clock time, including
// daylight saving.
func (TZDatabase) Offset(m CivilMoment) (float64, error) {
	loc, err := LoadZone(m.TimeZone)
	if err != nil {
		return 0, err
	}
	t := time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, m.Second, 0, loc)
	_, seconds := t.Zone()
	return float64(seconds) / 3600, nil
}

// FixedOffset is a resolver that ignores the zone name and always answers
// with the same offset in hours.
type FixedOffset float64

var _ ZoneResolver = FixedOffset(0)

func (f FixedOffset) Offset(CivilMoment) (float64, error) {
	return float64(f), nil
}

// LoadZone loads an IANA timezone. "Local" and the empty name are rejected
// because they depend on the host.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, invalidInputError("timezone %q is not an IANA zone name", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, invalidInputError("unknown timezone %q", name)
	}
	return loc, nil
}
