// Command observances computes every Kalashtami window of a calendar year
// for the saved places and stores them, so the API can serve them without
// solving on each request.
//
// Usage:
//
//	go run ./cmd/observances --year 2025 --db data/panchanga.db
//	go run ./cmd/observances --year 2025 --location Ujjain --dry-run
//
// Running it twice for the same year is harmless: windows are upserted on
// (location, kind, start).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/calendar"
	"github.com/zapponejosh/panchanga-api/internal/database"
)

func main() {
	year := flag.IntP("year", "y", time.Now().Year(), "Calendar year to generate")
	dbPath := flag.String("db", "data/panchanga.db", "Path to SQLite database")
	only := flag.StringP("location", "l", "", "Only this saved place (by name)")
	dryRun := flag.Bool("dry-run", false, "Print windows without storing them")
	verbose := flag.BoolP("verbose", "v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*year, *dbPath, *only, *dryRun, logger); err != nil {
		logger.Error("generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(year int, dbPath, only string, dryRun bool, logger *slog.Logger) error {
	ctx := context.Background()

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	var places []database.Location
	if only != "" {
		loc, err := db.GetLocationByName(ctx, only)
		if err != nil {
			return fmt.Errorf("location %q: %w", only, err)
		}
		places = append(places, *loc)
	} else if places, err = db.ListLocations(ctx); err != nil {
		return fmt.Errorf("list locations: %w", err)
	}
	if len(places) == 0 {
		return fmt.Errorf("no saved places; run cmd/import first")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "PLACE\tSTART\tEND\tHOURS\tMASA\n")

	total := 0
	for _, place := range places {
		obs, zone, err := generate(place, year)
		if err != nil {
			return fmt.Errorf("%s: %w", place.Name, err)
		}
		for _, o := range obs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\n",
				place.Name,
				o.Start.In(zone).Format("2006-01-02 15:04"),
				o.End.In(zone).Format("2006-01-02 15:04"),
				o.End.Sub(o.Start).Hours(),
				o.Masa,
			)
		}
		total += len(obs)

		if dryRun {
			continue
		}
		err = db.WithTx(ctx, func(tx *database.Tx) error {
			for i := range obs {
				if err := tx.UpsertObservance(ctx, &obs[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("store %s: %w", place.Name, err)
		}
		stored, err := db.CountObservances(ctx, place.ID)
		if err != nil {
			return fmt.Errorf("count %s: %w", place.Name, err)
		}
		logger.Debug("observances stored",
			slog.String("place", place.Name),
			slog.Int("count", len(obs)),
			slog.Int("stored_total", stored),
		)
	}
	tw.Flush()

	logger.Info("generation complete",
		slog.Int("year", year),
		slog.Int("places", len(places)),
		slog.Int("windows", total),
		slog.Bool("dry_run", dryRun),
	)
	return nil
}

// generate solves the Kalashtami windows starting in the place's local
// calendar year, along with the zone that year is counted in.
func generate(place database.Location, year int) ([]database.Observance, *time.Location, error) {
	zone, err := astro.LoadZone(place.TimeZone)
	if err != nil {
		return nil, nil, err
	}
	a, err := astro.ParseAyanamsa(place.Ayanamsa)
	if err != nil {
		return nil, nil, err
	}

	from := astro.JulianDayOf(time.Date(year, time.January, 1, 0, 0, 0, 0, zone))
	to := astro.JulianDayOf(time.Date(year+1, time.January, 1, 0, 0, 0, 0, zone))
	wins, err := calendar.KalashtamisBetween(from, to, a)
	if err != nil {
		return nil, nil, err
	}

	obs := make([]database.Observance, 0, len(wins))
	for _, w := range wins {
		obs = append(obs, database.Observance{
			LocationID: place.ID,
			Kind:       database.KindKalashtami,
			Start:      w.StartTime(),
			End:        w.EndTime(),
			Masa:       calendar.MasaFor(w.Start, a).Name(),
		})
	}
	return obs, zone, nil
}
