package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses SQLite TEXT timestamps, returning the zero time
// when the value matches no known layout.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// =============================================================================
// Location Queries
// =============================================================================

const locationColumns = `id, name, latitude, longitude, timezone, ayanamsa, created_at, updated_at`

func scanLocation(row rowScanner) (*Location, error) {
	var loc Location
	var created, updated string
	err := row.Scan(
		&loc.ID,
		&loc.Name,
		&loc.Latitude,
		&loc.Longitude,
		&loc.TimeZone,
		&loc.Ayanamsa,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}
	loc.CreatedAt = parseTimestamp(created)
	loc.UpdatedAt = parseTimestamp(updated)
	return &loc, nil
}

func createLocation(ctx context.Context, q querier, loc *Location) error {
	result, err := q.ExecContext(ctx,
		`INSERT INTO locations (name, latitude, longitude, timezone, ayanamsa) VALUES (?, ?, ?, ?, ?)`,
		loc.Name, loc.Latitude, loc.Longitude, loc.TimeZone, loc.Ayanamsa,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get location id: %w", err)
	}
	loc.ID = id
	now := time.Now().UTC().Truncate(time.Second)
	loc.CreatedAt, loc.UpdatedAt = now, now
	return nil
}

func upsertLocation(ctx context.Context, q querier, loc *Location) error {
	row := q.QueryRowContext(ctx, `
		INSERT INTO locations (name, latitude, longitude, timezone, ayanamsa)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			timezone = excluded.timezone,
			ayanamsa = excluded.ayanamsa,
			updated_at = datetime('now')
		RETURNING `+locationColumns,
		loc.Name, loc.Latitude, loc.Longitude, loc.TimeZone, loc.Ayanamsa,
	)
	saved, err := scanLocation(row)
	if err != nil {
		return fmt.Errorf("upsert location: %w", err)
	}
	*loc = *saved
	return nil
}

func getLocation(ctx context.Context, q querier, where string, arg any) (*Location, error) {
	row := q.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE `+where+` = ?`, arg)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query location: %w", err)
	}
	return loc, nil
}

// CreateLocation inserts a location and sets its ID. Returns ErrDuplicate
// when the name is taken.
func (db *DB) CreateLocation(ctx context.Context, loc *Location) error {
	return createLocation(ctx, db, loc)
}

// CreateLocation inserts a location within the transaction.
func (tx *Tx) CreateLocation(ctx context.Context, loc *Location) error {
	return createLocation(ctx, tx, loc)
}

// UpsertLocation inserts a location or updates the one with the same
// name, and reloads loc from the stored row.
func (db *DB) UpsertLocation(ctx context.Context, loc *Location) error {
	return upsertLocation(ctx, db, loc)
}

// UpsertLocation is the transactional form of DB.UpsertLocation.
func (tx *Tx) UpsertLocation(ctx context.Context, loc *Location) error {
	return upsertLocation(ctx, tx, loc)
}

// GetLocation returns the location with the given ID or ErrNotFound.
func (db *DB) GetLocation(ctx context.Context, id int64) (*Location, error) {
	return getLocation(ctx, db, "id", id)
}

// GetLocationByName returns the location with the given name or
// ErrNotFound.
func (db *DB) GetLocationByName(ctx context.Context, name string) (*Location, error) {
	return getLocation(ctx, db, "name", name)
}

// ListLocations returns every location ordered by name.
func (db *DB) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, *loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locations, nil
}

// DeleteLocation removes a location and, through the foreign key, its
// observances. Returns ErrNotFound if the ID doesn't exist.
func (db *DB) DeleteLocation(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// Observance Queries
// =============================================================================

func upsertObservance(ctx context.Context, q querier, obs *Observance) error {
	if err := obs.Validate(); err != nil {
		return err
	}

	row := q.QueryRowContext(ctx, `
		INSERT INTO observances (location_id, kind, start_utc, end_utc, masa)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(location_id, kind, start_utc) DO UPDATE SET
			end_utc = excluded.end_utc,
			masa = excluded.masa
		RETURNING id, created_at`,
		obs.LocationID, string(obs.Kind), formatUTC(obs.Start), formatUTC(obs.End), obs.Masa,
	)

	var created string
	if err := row.Scan(&obs.ID, &created); err != nil {
		return fmt.Errorf("upsert observance: %w", err)
	}
	obs.CreatedAt = parseTimestamp(created)
	obs.Start = obs.Start.UTC().Truncate(time.Second)
	obs.End = obs.End.UTC().Truncate(time.Second)
	return nil
}

// UpsertObservance inserts an observance or, when one with the same
// location, kind and start already exists, updates its end and masa.
//
// Used by the observances command to precompute a year at a time.
func (db *DB) UpsertObservance(ctx context.Context, obs *Observance) error {
	return upsertObservance(ctx, db, obs)
}

// UpsertObservance is the transactional form of DB.UpsertObservance.
func (tx *Tx) UpsertObservance(ctx context.Context, obs *Observance) error {
	return upsertObservance(ctx, tx, obs)
}

// ListObservances returns the observances of a location whose start falls
// in [from, to), oldest first.
func (db *DB) ListObservances(ctx context.Context, locationID int64, from, to time.Time) ([]Observance, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, location_id, kind, start_utc, end_utc, masa, created_at
		FROM observances
		WHERE location_id = ? AND start_utc >= ? AND start_utc < ?
		ORDER BY start_utc ASC`,
		locationID, formatUTC(from), formatUTC(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query observances: %w", err)
	}
	defer rows.Close()

	observances := []Observance{}
	for rows.Next() {
		var obs Observance
		var kind, start, end, created string
		if err := rows.Scan(&obs.ID, &obs.LocationID, &kind, &start, &end, &obs.Masa, &created); err != nil {
			return nil, fmt.Errorf("scan observance: %w", err)
		}
		obs.Kind = ObservanceKind(kind)
		obs.Start = parseTimestamp(start)
		obs.End = parseTimestamp(end)
		obs.CreatedAt = parseTimestamp(created)
		observances = append(observances, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observances: %w", err)
	}
	return observances, nil
}

// CountObservances returns how many observances are stored for a
// location.
func (db *DB) CountObservances(ctx context.Context, locationID int64) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM observances WHERE location_id = ?`, locationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count observances: %w", err)
	}
	return n, nil
}
