package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/vitals/internal/db"
	"github.com/alexanderramin/vitals/internal/domain"
)

// SQLiteSyncRunRepo implements SyncRunRepo using a SQLite database.
type SQLiteSyncRunRepo struct {
	db db.DBTX
}

func NewSQLiteSyncRunRepo(conn db.DBTX) *SQLiteSyncRunRepo {
	return &SQLiteSyncRunRepo{db: conn}
}

func (r *SQLiteSyncRunRepo) Create(ctx context.Context, run *domain.SyncRun) error {
	query := `INSERT INTO sync_runs (id, started_at, finished_at, start_date, end_date, rows_written, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		formatUTC(run.StartedAt),
		formatUTC(run.FinishedAt),
		nullableTimeToString(run.Window.Start, domain.DayLayout),
		nullableTimeToString(run.Window.End, domain.DayLayout),
		run.RowsWritten,
		string(run.Status),
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting sync run: %w", err)
	}
	return nil
}

func (r *SQLiteSyncRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	query := `SELECT id, started_at, finished_at, start_date, end_date, rows_written, status, error
		FROM sync_runs ORDER BY started_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sync runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.SyncRun
	for rows.Next() {
		var run domain.SyncRun
		var startedAtStr, finishedAtStr, status string
		var startDate, endDate sql.NullString
		if err := rows.Scan(&run.ID, &startedAtStr, &finishedAtStr, &startDate, &endDate,
			&run.RowsWritten, &status, &run.Error); err != nil {
			return nil, fmt.Errorf("scanning sync run row: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339, startedAtStr); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAtStr); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
		run.Window = domain.DateRange{
			Start: parseNullableTime(startDate, domain.DayLayout),
			End:   parseNullableTime(endDate, domain.DayLayout),
		}
		run.Status = domain.SyncStatus(status)
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync runs: %w", err)
	}
	return runs, nil
}
