package api

import (
	"time"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/calendar"
	"github.com/zapponejosh/panchanga-api/internal/database"
)

// Response bodies. The engine works in indices; names are attached here.

type element struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type tithiView struct {
	Index  int        `json:"index"`
	Number int        `json:"number"`
	Name   string     `json:"name"`
	Paksha string     `json:"paksha"`
	EndsAt *time.Time `json:"ends_at,omitempty"`
}

type nakshatraView struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Pada  int    `json:"pada"`
}

type masaView struct {
	Index    int        `json:"index"`
	Name     string     `json:"name"`
	FullMoon *time.Time `json:"full_moon,omitempty"`
}

type longitudesView struct {
	AyanamsaDegrees float64 `json:"ayanamsa_degrees"`
	SunTropical     float64 `json:"sun_tropical"`
	MoonTropical    float64 `json:"moon_tropical"`
	Sun             float64 `json:"sun"`
	Moon            float64 `json:"moon"`
	Elongation      float64 `json:"elongation"`
}

type samvatView struct {
	Shaka  int `json:"shaka"`
	Vikram int `json:"vikram"`
}

type sunView struct {
	Date           string     `json:"date"`
	Sunrise        *time.Time `json:"sunrise,omitempty"`
	SolarNoon      time.Time  `json:"solar_noon"`
	Sunset         *time.Time `json:"sunset,omitempty"`
	DayLengthHours float64    `json:"day_length_hours,omitempty"`
	Declination    float64    `json:"declination"`
	Polar          string     `json:"polar,omitempty"`
}

type panchangaView struct {
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	TimeZone   string            `json:"time_zone"`
	UTCOffset  float64           `json:"utc_offset_hours"`
	JulianDay  float64           `json:"julian_day"`
	Location   astro.GeoLocation `json:"location"`
	Ayanamsa   astro.Ayanamsa    `json:"ayanamsa"`
	Longitudes longitudesView    `json:"longitudes"`

	Tithi     tithiView     `json:"tithi"`
	Vaara     element       `json:"vaara"`
	Nakshatra nakshatraView `json:"nakshatra"`
	Yoga      element       `json:"yoga"`
	Karana    element       `json:"karana"`
	Ayana     element       `json:"ayana"`
	Ritu      element       `json:"ritu"`
	Masa      masaView      `json:"masa"`
	Samvat    samvatView    `json:"samvat"`

	Sun        sunView              `json:"sun"`
	Muhurta    *calendar.Muhurta    `json:"muhurta,omitempty"`
	Choghadiya *calendar.Choghadiya `json:"current_choghadiya,omitempty"`
}

type windowView struct {
	Kind            string    `json:"kind"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes float64   `json:"duration_minutes"`
	Masa            string    `json:"masa,omitempty"`
}

type observancesView struct {
	Location    database.Location `json:"location"`
	Year        int               `json:"year"`
	Source      string            `json:"source"` // stored or computed
	Observances []windowView      `json:"observances"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func newSunView(st astro.SunTimes, loc *time.Location) sunView {
	noon := st.Noon().In(loc)
	v := sunView{
		Date:        calendar.FormatDate(noon),
		SolarNoon:   noon,
		Declination: st.Declination,
		Polar:       st.Polar.String(),
	}
	if st.Available() {
		v.Sunrise = timePtr(st.Sunrise().In(loc))
		v.Sunset = timePtr(st.Sunset().In(loc))
		v.DayLengthHours = st.DayLength()
	}
	return v
}

func newPanchangaView(p *calendar.Panchanga) panchangaView {
	loc := p.Instant.Location()
	l := p.Longitudes
	return panchangaView{
		Date:      calendar.FormatDate(p.Instant),
		Time:      p.Instant.Format("15:04:05"),
		TimeZone:  p.Request.Moment.TimeZone,
		UTCOffset: p.UTCOffset,
		JulianDay: float64(p.JulianDay),
		Location:  p.Request.Location,
		Ayanamsa:  p.Request.Ayanamsa,
		Longitudes: longitudesView{
			AyanamsaDegrees: l.Ayanamsa,
			SunTropical:     l.SunTropical,
			MoonTropical:    l.MoonTropical,
			Sun:             l.Sun,
			Moon:            l.Moon,
			Elongation:      l.Elongation(),
		},
		Tithi: tithiView{
			Index:  int(p.Tithi),
			Number: p.Tithi.Number(),
			Name:   p.Tithi.Name(),
			Paksha: p.Tithi.Paksha().String(),
			EndsAt: timePtr(p.TithiEnd),
		},
		Vaara:     element{int(p.Vaara), p.Vaara.Name()},
		Nakshatra: nakshatraView{int(p.Nakshatra), p.Nakshatra.Name(), p.Pada},
		Yoga:      element{int(p.Yoga), p.Yoga.Name()},
		Karana:    element{int(p.Karana), p.Karana.Name()},
		Ayana:     element{int(p.Ayana), p.Ayana.Name()},
		Ritu:      element{int(p.Ritu), p.Ritu.Name()},
		Masa:      masaView{int(p.Masa), p.Masa.Name(), timePtr(p.FullMoon)},
		Samvat:    samvatView{p.SamvatShaka, p.SamvatVikram},

		Sun:        newSunView(p.Sun, loc),
		Muhurta:    p.Muhurta,
		Choghadiya: p.Choghadiya,
	}
}

func newWindowView(kind string, start, end time.Time, masa string, loc *time.Location) windowView {
	return windowView{
		Kind:            kind,
		Start:           start.In(loc),
		End:             end.In(loc),
		DurationMinutes: end.Sub(start).Minutes(),
		Masa:            masa,
	}
}
