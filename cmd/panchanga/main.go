// Command panchanga prints the panchanga for one moment and place.
//
//	go run ./cmd/panchanga --lat 23.18 --lon 75.78 --tz Asia/Kolkata --date 2025-10-14 --time 06:30
//	go run ./cmd/panchanga --lat 40.71 --lon -74.01 --tz America/New_York --kalashtami --json
//
// Without --date the current wall clock in --tz is used.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/calendar"
)

type options struct {
	date, timeOfDay, zone, ayanamsa string
	lat, lon                        float64
	kalashtami, asJSON              bool
	horizon                         int
}

func main() {
	var o options
	flag.StringVarP(&o.date, "date", "d", "", "Civil date YYYY-MM-DD (default today)")
	flag.StringVarP(&o.timeOfDay, "time", "t", "", "Wall-clock time HH:MM[:SS] (default now, or noon with --date)")
	flag.StringVar(&o.zone, "tz", "Asia/Kolkata", "IANA timezone")
	flag.Float64Var(&o.lat, "lat", 23.1765, "Latitude in degrees, north positive")
	flag.Float64Var(&o.lon, "lon", 75.7885, "Longitude in degrees, east positive")
	flag.StringVarP(&o.ayanamsa, "ayanamsa", "a", "lahiri", "lahiri, fagan_bradley or raman")
	flag.BoolVarP(&o.kalashtami, "kalashtami", "k", false, "Also find the next Kalashtami window")
	flag.IntVar(&o.horizon, "horizon", calendar.DefaultHorizonDays, "Kalashtami search horizon in days")
	flag.BoolVar(&o.asJSON, "json", false, "Print JSON instead of a table")
	flag.Parse()

	if err := run(context.Background(), o, time.Now(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "panchanga:", err)
		os.Exit(1)
	}
}

// report is the CLI's JSON shape.
type report struct {
	Moment     string               `json:"moment"`
	Ayanamsa   astro.Ayanamsa       `json:"ayanamsa"`
	Tithi      string               `json:"tithi"`
	Paksha     string               `json:"paksha"`
	TithiEnds  *time.Time           `json:"tithi_ends,omitempty"`
	Vaara      string               `json:"vaara"`
	Nakshatra  string               `json:"nakshatra"`
	Pada       int                  `json:"pada"`
	Yoga       string               `json:"yoga"`
	Karana     string               `json:"karana"`
	Masa       string               `json:"masa"`
	Ayana      string               `json:"ayana"`
	Ritu       string               `json:"ritu"`
	Shaka      int                  `json:"shaka"`
	Vikram     int                  `json:"vikram"`
	Sunrise    *time.Time           `json:"sunrise,omitempty"`
	Sunset     *time.Time           `json:"sunset,omitempty"`
	Polar      string               `json:"polar,omitempty"`
	Muhurta    *calendar.Muhurta    `json:"muhurta,omitempty"`
	Choghadiya *calendar.Choghadiya `json:"choghadiya,omitempty"`
	Kalashtami *kalashtami          `json:"kalashtami,omitempty"`
}

type kalashtami struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Masa  string    `json:"masa"`
}

func run(ctx context.Context, o options, now time.Time, out io.Writer) error {
	a, err := astro.ParseAyanamsa(o.ayanamsa)
	if err != nil {
		return err
	}

	var m astro.CivilMoment
	if o.date != "" {
		m, err = calendar.MomentFrom(o.date, o.timeOfDay, o.zone)
	} else {
		m, err = astro.CivilFromTime(now, o.zone)
		if err == nil && o.timeOfDay != "" {
			m.Hour, m.Minute, m.Second, err = calendar.ParseTimeOfDay(o.timeOfDay)
		}
	}
	if err != nil {
		return err
	}

	req := calendar.Request{
		Moment:   m,
		Location: astro.GeoLocation{Latitude: o.lat, Longitude: o.lon},
		Ayanamsa: a,
	}
	r := calendar.NewResolver(nil)
	p, err := r.Resolve(ctx, req)
	if err != nil {
		return err
	}
	loc := p.Instant.Location()

	rep := report{
		Moment:     p.Instant.Format(time.RFC3339),
		Ayanamsa:   a,
		Tithi:      p.Tithi.Name(),
		Paksha:     p.Tithi.Paksha().String(),
		Vaara:      p.Vaara.Name(),
		Nakshatra:  p.Nakshatra.Name(),
		Pada:       p.Pada,
		Yoga:       p.Yoga.Name(),
		Karana:     p.Karana.Name(),
		Masa:       p.Masa.Name(),
		Ayana:      p.Ayana.Name(),
		Ritu:       p.Ritu.Name(),
		Shaka:      p.SamvatShaka,
		Vikram:     p.SamvatVikram,
		Polar:      p.Sun.Polar.String(),
		Muhurta:    p.Muhurta,
		Choghadiya: p.Choghadiya,
	}
	if !p.TithiEnd.IsZero() {
		rep.TithiEnds = &p.TithiEnd
	}
	if p.Sun.Available() {
		rise, set := p.Sun.Sunrise().In(loc), p.Sun.Sunset().In(loc)
		rep.Sunrise, rep.Sunset = &rise, &set
	}

	if o.kalashtami {
		w, err := r.Kalashtami(ctx, req, o.horizon)
		if err != nil {
			return err
		}
		rep.Kalashtami = &kalashtami{
			Start: w.StartTime().In(loc),
			End:   w.EndTime().In(loc),
			Masa:  calendar.MasaFor(w.Start, a).Name(),
		}
	}

	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return printTable(out, rep)
}

func printTable(out io.Writer, r report) error {
	const clock = "15:04"
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(tw, "%s\t%s\n", k, v) }

	row("Moment", r.Moment)
	row("Ayanamsa", r.Ayanamsa.String())
	tithi := r.Paksha + " " + r.Tithi
	if r.TithiEnds != nil {
		tithi += " until " + r.TithiEnds.Format("Jan 2 "+clock)
	}
	row("Tithi", tithi)
	row("Vaara", r.Vaara)
	row("Nakshatra", fmt.Sprintf("%s (pada %d)", r.Nakshatra, r.Pada))
	row("Yoga", r.Yoga)
	row("Karana", r.Karana)
	row("Masa", r.Masa)
	row("Ayana / Ritu", r.Ayana+" / "+r.Ritu)
	row("Samvat", fmt.Sprintf("Shaka %d, Vikram %d", r.Shaka, r.Vikram))

	if r.Sunrise != nil {
		row("Sunrise / Sunset", r.Sunrise.Format(clock)+" / "+r.Sunset.Format(clock))
	} else {
		row("Sun", r.Polar)
	}
	if m := r.Muhurta; m != nil {
		for _, w := range []calendar.TimeWindow{m.RahuKaala, m.Yamaganda, m.Gulika, m.Abhijith} {
			row(w.Name, w.Start.Format(clock)+" - "+w.End.Format(clock))
		}
	}
	if c := r.Choghadiya; c != nil {
		row("Choghadiya", fmt.Sprintf("%s (%s, %s)", c.Name, c.Ruler, c.Quality))
	}
	if k := r.Kalashtami; k != nil {
		row("Kalashtami", k.Start.Format("Jan 2 "+clock)+" - "+k.End.Format("Jan 2 "+clock)+" ("+k.Masa+")")
	}
	return tw.Flush()
}
