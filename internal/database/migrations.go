package database

// migrationsSQL holds every migration keyed by version. Versions are
// applied in order and never edited once released.
var migrationsSQL = map[int]string{
	1: migrationV1Locations,
	2: migrationV2Observances,
}

// migrationV1Locations stores named observer places. Each place carries
// its own timezone and ayanamsa so saved lookups need no query
// parameters.
const migrationV1Locations = `
CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    latitude REAL NOT NULL CHECK (latitude BETWEEN -90 AND 90),
    longitude REAL NOT NULL CHECK (longitude BETWEEN -180 AND 180),
    timezone TEXT NOT NULL,
    ayanamsa TEXT NOT NULL DEFAULT 'lahiri',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2Observances caches solved windows per place. Times are UTC
// RFC 3339 text truncated to the second, so a recomputed window maps to
// the same row.
const migrationV2Observances = `
CREATE TABLE IF NOT EXISTS observances (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    location_id INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
    kind TEXT NOT NULL CHECK (kind IN ('kalashtami')),
    start_utc TEXT NOT NULL,
    end_utc TEXT NOT NULL,
    masa TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE (location_id, kind, start_utc)
);

CREATE INDEX IF NOT EXISTS idx_observances_location_start
    ON observances (location_id, start_utc);
`
