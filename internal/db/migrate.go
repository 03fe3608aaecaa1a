package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form; a duplicate
			// column means the column was already created.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS daily_sleep (
		day                          TEXT PRIMARY KEY,
		score                        INTEGER CHECK(score IS NULL OR (score BETWEEN 0 AND 100)),
		total_sleep_duration_minutes INTEGER,
		efficiency                   REAL,
		updated_at                   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS daily_activity (
		day            TEXT PRIMARY KEY,
		score          INTEGER CHECK(score IS NULL OR (score BETWEEN 0 AND 100)),
		steps          INTEGER,
		calories_total INTEGER,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS daily_readiness (
		day        TEXT PRIMARY KEY,
		score      INTEGER CHECK(score IS NULL OR (score BETWEEN 0 AND 100)),
		updated_at TEXT NOT NULL
	)`,

	// Databases created before sleep efficiency was ingested lack the column.
	`ALTER TABLE daily_sleep ADD COLUMN efficiency REAL`,

	`CREATE TABLE IF NOT EXISTS sync_runs (
		id           TEXT PRIMARY KEY,
		started_at   TEXT NOT NULL,
		finished_at  TEXT NOT NULL,
		start_date   TEXT,
		end_date     TEXT,
		rows_written INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL CHECK(status IN ('succeeded','failed')),
		error        TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sync_runs_started ON sync_runs(started_at)`,
}
