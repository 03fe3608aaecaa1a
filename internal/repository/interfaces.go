package repository

import (
	"context"

	"github.com/alexanderramin/vitals/internal/domain"
)

// MetricStore is the read side of the metric tables. Every column passed in
// must come from domain.LookupColumn; anything else is refused with
// ErrUnknownColumn before SQL is built.
type MetricStore interface {
	// FilterRange returns the rows of table inside r, ascending by day.
	FilterRange(ctx context.Context, table domain.Table, r domain.DateRange) ([]domain.MetricRow, error)
	// Aggregate applies op to the non-null values of col inside r.
	// A nil result means there were no such values.
	Aggregate(ctx context.Context, col domain.Column, op domain.Operation, r domain.DateRange) (*float64, error)
	// Extremum returns the row with the largest (Descending) or smallest
	// (Ascending) non-null value of col inside r. Ties go to the earliest day.
	// A nil row means there were no such values.
	Extremum(ctx context.Context, col domain.Column, dir domain.Direction, r domain.DateRange) (*domain.MetricRow, error)
}

// MetricWriter is the ingestion side of the metric tables.
type MetricWriter interface {
	// Upsert inserts row or overwrites the existing row for the same day.
	Upsert(ctx context.Context, row domain.MetricRow) error
}

type SyncRunRepo interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]*domain.SyncRun, error)
}
