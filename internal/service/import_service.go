package service

import (
	"context"
	"time"

	"github.com/alexanderramin/vitals/internal/db"
	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/alexanderramin/vitals/internal/importer"
	"github.com/google/uuid"
)

// ImportResult summarizes a backfill.
type ImportResult struct {
	RowsWritten int
	Window      domain.DateRange
	DryRun      bool
}

// ImportService backfills metric rows from a JSON file.
type ImportService interface {
	// Import validates the whole file before writing anything, then upserts
	// every row in one transaction. With dryRun nothing is written.
	Import(ctx context.Context, path string, dryRun bool) (*ImportResult, error)
}

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) Import(ctx context.Context, path string, dryRun bool) (res *ImportResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"dry_run": dryRun}
		if res != nil {
			fields["rows"] = res.RowsWritten
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			RequestID: uuid.NewString(),
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	rows, err := importer.Load(path)
	if err != nil {
		return nil, err
	}

	res = &ImportResult{RowsWritten: len(rows), Window: spanOf(rows), DryRun: dryRun}
	if dryRun {
		return res, nil
	}
	if err := upsertRows(ctx, s.uow, rows); err != nil {
		return nil, err
	}
	return res, nil
}

// spanOf returns the smallest window containing every row's day.
func spanOf(rows []domain.MetricRow) domain.DateRange {
	if len(rows) == 0 {
		return domain.AllTime()
	}
	lo, hi := rows[0].Day, rows[0].Day
	for _, r := range rows[1:] {
		if r.Day.Before(lo) {
			lo = r.Day
		}
		if r.Day.After(hi) {
			hi = r.Day
		}
	}
	return domain.Between(lo, hi)
}
