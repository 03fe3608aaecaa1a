package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/vitals/internal/db"
	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/alexanderramin/vitals/internal/repository"
	"github.com/google/uuid"
)

// MetricSource fetches daily rows for an inclusive day window.
type MetricSource interface {
	FetchWindow(ctx context.Context, start, end time.Time) ([]domain.MetricRow, error)
}

// SyncService pulls a window of days from a MetricSource into the store.
type SyncService interface {
	// Sync fetches the last days days (today included) and upserts them in a
	// single transaction. A sync_runs row is recorded whether or not it worked.
	Sync(ctx context.Context, days int) (*domain.SyncRun, error)
	RecentRuns(ctx context.Context, limit int) ([]*domain.SyncRun, error)
}

type syncService struct {
	source   MetricSource
	uow      db.UnitOfWork
	runs     repository.SyncRunRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewSyncService(
	source MetricSource,
	uow db.UnitOfWork,
	runs repository.SyncRunRepo,
	now func() time.Time,
	observers ...UseCaseObserver,
) SyncService {
	if now == nil {
		now = time.Now
	}
	return &syncService{
		source:   source,
		uow:      uow,
		runs:     runs,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *syncService) Sync(ctx context.Context, days int) (run *domain.SyncRun, err error) {
	startedAt := time.Now().UTC()
	requestID := uuid.NewString()
	defer func() {
		fields := map[string]any{"days": days}
		if run != nil {
			fields["rows_written"] = run.RowsWritten
			fields["status"] = string(run.Status)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "sync",
			RequestID: requestID,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if days < 1 {
		return nil, ErrInvalidWindow
	}

	today := domain.TruncateDay(s.now())
	window := domain.Between(today.AddDate(0, 0, -(days - 1)), today)
	run = &domain.SyncRun{
		ID:        requestID,
		StartedAt: s.now().UTC(),
		Window:    window,
	}

	written, syncErr := s.pull(ctx, *window.Start, *window.End)
	run.FinishedAt = s.now().UTC()
	if syncErr != nil {
		run.Status = domain.SyncFailed
		run.Error = syncErr.Error()
	} else {
		run.Status = domain.SyncSucceeded
		run.RowsWritten = written
	}

	if recErr := s.runs.Create(ctx, run); recErr != nil {
		return run, errors.Join(syncErr, fmt.Errorf("recording sync run: %w", recErr))
	}
	if syncErr != nil {
		return run, syncErr
	}
	return run, nil
}

func (s *syncService) pull(ctx context.Context, start, end time.Time) (int, error) {
	rows, err := s.source.FetchWindow(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("fetching metrics: %w", err)
	}

	if err := upsertRows(ctx, s.uow, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// upsertRows writes rows in one transaction; any failure leaves the store
// untouched.
func upsertRows(ctx context.Context, uow db.UnitOfWork, rows []domain.MetricRow) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txStore repository.MetricWriter = repository.NewSQLiteMetricStore(tx)
		for _, row := range rows {
			if err := txStore.Upsert(ctx, row); err != nil {
				return fmt.Errorf("writing %s %s: %w", row.Table, row.Day.Format(domain.DayLayout), err)
			}
		}
		return nil
	})
}

func (s *syncService) RecentRuns(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.runs.ListRecent(ctx, limit)
}
