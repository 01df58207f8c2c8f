// Command import loads a YAML file of named places into the SQLite
// database.
//
// Usage:
//
//	go run ./cmd/import --places data/locations.yaml --db data/panchanga.db
//
// This tool:
// 1. Parses and validates the places file
// 2. Creates/opens the SQLite database
// 3. Runs migrations to ensure schema is current
// 4. Upserts every place in a single transaction
//
// The import is idempotent: a place whose name already exists is updated
// in place.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/database"
)

// PlacesFile is the YAML document read by the importer.
type PlacesFile struct {
	Defaults struct {
		TimeZone string `yaml:"time_zone"`
		Ayanamsa string `yaml:"ayanamsa"`
	} `yaml:"defaults"`
	Places []database.Location `yaml:"places"`
}

func main() {
	// Parse command line flags
	placesPath := flag.StringP("places", "p", "data/locations.yaml", "Path to YAML places file")
	dbPath := flag.String("db", "data/panchanga.db", "Path to SQLite database")
	verbose := flag.BoolP("verbose", "v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Run import
	if err := run(*placesPath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(placesPath, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and validate places
	// =========================================================================
	logger.Info("reading places file", slog.String("path", placesPath))

	f, err := os.Open(placesPath)
	if err != nil {
		return fmt.Errorf("open places file: %w", err)
	}
	defer f.Close()

	places, err := parsePlaces(f)
	if err != nil {
		return err
	}
	logger.Info("parsed places", slog.Int("count", len(places)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Upsert in a transaction
	// =========================================================================
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		for i := range places {
			if err := tx.UpsertLocation(ctx, &places[i]); err != nil {
				return fmt.Errorf("upsert %q: %w", places[i].Name, err)
			}
			logger.Debug("place saved",
				slog.Int64("id", places[i].ID),
				slog.String("name", places[i].Name),
			)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import places: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	all, err := db.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("list locations: %w", err)
	}
	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("imported", len(places)),
		slog.Int("total_locations", len(all)),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Places imported:   %d\n", len(places))
	fmt.Printf("Places in store:   %d\n", len(all))
	fmt.Printf("Time elapsed:      %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// parsePlaces decodes and validates a places document. Defaults fill in
// missing zones and ayanamsas. Every invalid place is reported.
func parsePlaces(r io.Reader) ([]database.Location, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file PlacesFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(file.Places) == 0 {
		return nil, errors.New("places file lists no places")
	}

	if file.Defaults.Ayanamsa == "" {
		file.Defaults.Ayanamsa = astro.Lahiri.String()
	}

	var errs []error
	seen := make(map[string]bool, len(file.Places))
	for i := range file.Places {
		p := &file.Places[i]
		if p.TimeZone == "" {
			p.TimeZone = file.Defaults.TimeZone
		}
		if err := p.Validate(file.Defaults.Ayanamsa); err != nil {
			errs = append(errs, fmt.Errorf("place %d (%s): %w", i+1, p.Name, err))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("place %d: duplicate name %q", i+1, p.Name))
		}
		seen[p.Name] = true
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return file.Places, nil
}
