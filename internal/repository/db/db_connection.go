package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// pragmas are applied on every open. WAL lets /events read while the
// journal goroutine writes.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
}

// migrations[i] upgrades the schema from user_version i to i+1.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS climate_events (
			id          TEXT PRIMARY KEY,
			occurred_at TIMESTAMP NOT NULL,
			type        TEXT NOT NULL CHECK (type IN ('START', 'STOP', 'CONFLICT', 'TELEMETRY')),
			system      TEXT CHECK (system IN ('cooling', 'heating', 'ventilation')),
			message     TEXT NOT NULL,
			meta        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_climate_events_occurred_at ON climate_events (occurred_at)`,
		`CREATE INDEX IF NOT EXISTS idx_climate_events_system ON climate_events (system, occurred_at)`,
	},
}

// SchemaVersion is the user_version of a fully migrated journal.
var SchemaVersion = len(migrations)

// InitDB opens or creates the journal database and migrates it.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}
	// one writer: the journal goroutine
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func setup(db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return migrate(db)
}

// migrate applies every migration above the stored user_version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("journal schema version %d is newer than supported %d", version, len(migrations))
	}

	for v := version; v < len(migrations); v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: begin: %w", v+1, err)
		}
		for _, stmt := range migrations[v] {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d: %w", v+1, err)
			}
		}
		// PRAGMA does not take bind parameters
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: set version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", v+1, err)
		}
	}
	return nil
}
