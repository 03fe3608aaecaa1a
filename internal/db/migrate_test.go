package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func columnNames(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`PRAGMA table_info(` + table + `)`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"daily_sleep", "daily_activity", "daily_readiness", "sync_runs"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_MetricColumns(t *testing.T) {
	db := openTestDB(t)

	assert.ElementsMatch(t,
		[]string{"day", "score", "total_sleep_duration_minutes", "efficiency", "updated_at"},
		columnNames(t, db, "daily_sleep"))
	assert.ElementsMatch(t,
		[]string{"day", "score", "steps", "calories_total", "updated_at"},
		columnNames(t, db, "daily_activity"))
	assert.ElementsMatch(t,
		[]string{"day", "score", "updated_at"},
		columnNames(t, db, "daily_readiness"))
}

func TestMigrate_DayIsUniquePerTable(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO daily_readiness (day, score, updated_at) VALUES ('2024-01-01', 80, '2024-01-02T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO daily_readiness (day, score, updated_at) VALUES ('2024-01-01', 81, '2024-01-02T00:00:00Z')`)
	assert.Error(t, err, "day should be the primary key")
}

func TestMigrate_ScoreRangeCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO daily_sleep (day, score, updated_at) VALUES ('2024-01-01', 101, '2024-01-02T00:00:00Z')`)
	assert.Error(t, err, "score above 100 should violate CHECK")

	_, err = db.Exec(`INSERT INTO daily_sleep (day, score, updated_at) VALUES ('2024-01-01', NULL, '2024-01-02T00:00:00Z')`)
	assert.NoError(t, err, "absent score is allowed")
}

func TestMigrate_SyncRunStatusCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sync_runs (id, started_at, finished_at, status) VALUES ('r1', 'a', 'b', 'pending')`)
	assert.Error(t, err)
	_, err = db.Exec(`INSERT INTO sync_runs (id, started_at, finished_at, status) VALUES ('r1', 'a', 'b', 'succeeded')`)
	assert.NoError(t, err)
}

func TestMigrate_AddsEfficiencyToLegacySleepTable(t *testing.T) {
	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	_, err = raw.Exec(`CREATE TABLE daily_sleep (
		day TEXT PRIMARY KEY,
		score INTEGER,
		total_sleep_duration_minutes INTEGER,
		updated_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO daily_sleep (day, score, updated_at) VALUES ('2024-01-01', 70, 'x')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(raw))
	assert.Contains(t, columnNames(t, raw, "daily_sleep"), "efficiency")

	var score int
	require.NoError(t, raw.QueryRow(`SELECT score FROM daily_sleep WHERE day = '2024-01-01'`).Scan(&score))
	assert.Equal(t, 70, score, "existing rows survive the upgrade")
}

func TestOpenDB_FileCreatesDirectoryAndUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vitals.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpenDB_MemoryIsSharedAcrossCalls(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO daily_readiness (day, score, updated_at) VALUES ('2024-02-01', 60, 'x')`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM daily_readiness`).Scan(&n))
	assert.Equal(t, 1, n)
}
