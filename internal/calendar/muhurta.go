package calendar

import (
	"errors"
	"time"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

// ErrSunUnavailable is returned when a date has no sunrise or sunset, so
// day divisions cannot be formed.
var ErrSunUnavailable = errors.New("sun does not rise or set on this date")

// TimeWindow is a named span of wall-clock time.
type TimeWindow struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls in [Start, End).
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Quality grades a choghadiya.
type Quality string

const (
	Good    Quality = "good"
	Neutral Quality = "neutral"
	Bad     Quality = "bad"
)

type choghadiyaKind struct {
	name    string
	ruler   string
	quality Quality
}

// Kinds in weekday-ruler order, Sunday's ruler first.
var choghadiyaKinds = [7]choghadiyaKind{
	{"Udveg", "Sun", Bad},
	{"Char", "Venus", Neutral},
	{"Labh", "Mercury", Good},
	{"Amrit", "Moon", Good},
	{"Kaal", "Saturn", Bad},
	{"Shubh", "Jupiter", Good},
	{"Rog", "Mars", Bad},
}

// First kind of the day and night sequences, by weekday. Day periods
// advance one kind at a time, night periods five.
var (
	dayChoghadiyaStart   = [7]int{0, 3, 6, 2, 5, 1, 4}
	nightChoghadiyaStart = [7]int{5, 1, 4, 0, 3, 6, 2}
)

// Which eighth of daylight (1 based) each inauspicious period occupies,
// by weekday.
var (
	rahuPart   = [7]int{8, 2, 7, 5, 6, 4, 3}
	yamaPart   = [7]int{5, 4, 3, 2, 1, 7, 6}
	gulikaPart = [7]int{7, 6, 5, 4, 3, 2, 1}
)

// Choghadiya is one eighth of a day or night.
type Choghadiya struct {
	TimeWindow
	Ruler   string  `json:"ruler"`
	Quality Quality `json:"quality"`
	Night   bool    `json:"night"`
}

// Muhurta holds the daily time divisions for one civil date.
type Muhurta struct {
	RahuKaala TimeWindow   `json:"rahu_kaala"`
	Yamaganda TimeWindow   `json:"yamaganda"`
	Gulika    TimeWindow   `json:"gulika"`
	Abhijith  TimeWindow   `json:"abhijith"`
	Day       []Choghadiya `json:"day_choghadiya"`
	Night     []Choghadiya `json:"night_choghadiya,omitempty"`
}

// ComputeMuhurta divides the day of today into its periods. next is the
// following date's sun times; the night choghadiya runs from today's
// sunset to next's sunrise and is omitted when next has no sunrise.
// Times are returned in loc.
func ComputeMuhurta(today, next astro.SunTimes, v Vaara, loc *time.Location) (*Muhurta, error) {
	if !today.Available() {
		return nil, ErrSunUnavailable
	}
	if v < 0 || v > 6 {
		return nil, errors.New("weekday out of range")
	}
	if loc == nil {
		loc = time.UTC
	}

	rise := today.Sunrise().In(loc)
	set := today.Sunset().In(loc)
	part := set.Sub(rise) / 8

	eighth := func(name string, n int) TimeWindow {
		start := rise.Add(time.Duration(n-1) * part)
		return TimeWindow{Name: name, Start: start, End: start.Add(part)}
	}

	// Abhijith is the eighth of fifteen daytime muhurtas, centred on noon.
	noon := today.Noon().In(loc)
	half := set.Sub(rise) / 30

	m := &Muhurta{
		RahuKaala: eighth("Rahu Kaala", rahuPart[v]),
		Yamaganda: eighth("Yamaganda", yamaPart[v]),
		Gulika:    eighth("Gulika", gulikaPart[v]),
		Abhijith:  TimeWindow{Name: "Abhijith", Start: noon.Add(-half), End: noon.Add(half)},
		Day:       choghadiyas(rise, set, dayChoghadiyaStart[v], 1, false),
	}
	if next.Available() {
		m.Night = choghadiyas(set, next.Sunrise().In(loc), nightChoghadiyaStart[v], 5, true)
	}
	return m, nil
}

func choghadiyas(from, to time.Time, first, step int, night bool) []Choghadiya {
	part := to.Sub(from) / 8
	out := make([]Choghadiya, 8)
	k := first
	for i := range out {
		kind := choghadiyaKinds[k]
		start := from.Add(time.Duration(i) * part)
		end := start.Add(part)
		if i == 7 {
			end = to
		}
		out[i] = Choghadiya{
			TimeWindow: TimeWindow{Name: kind.name, Start: start, End: end},
			Ruler:      kind.ruler,
			Quality:    kind.quality,
			Night:      night,
		}
		k = (k + step) % 7
	}
	return out
}

// Current returns the choghadiya in force at t, if any.
func (m *Muhurta) Current(t time.Time) (Choghadiya, bool) {
	if m == nil {
		return Choghadiya{}, false
	}
	for _, set := range [][]Choghadiya{m.Day, m.Night} {
		for _, c := range set {
			if c.Contains(t) {
				return c, true
			}
		}
	}
	return Choghadiya{}, false
}
