package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/alexanderramin/vitals/internal/repository"
)

// DaysService lists stored rows so coverage gaps are visible.
type DaysService interface {
	// List returns the rows of table for the last days days, today included.
	List(ctx context.Context, table domain.Table, days int) ([]domain.MetricRow, error)
}

type daysService struct {
	store repository.MetricStore
	now   func() time.Time
}

func NewDaysService(store repository.MetricStore, now func() time.Time) DaysService {
	if now == nil {
		now = time.Now
	}
	return &daysService{store: store, now: now}
}

func (s *daysService) List(ctx context.Context, table domain.Table, days int) ([]domain.MetricRow, error) {
	if days < 1 {
		return nil, ErrInvalidWindow
	}
	today := domain.TruncateDay(s.now())
	rows, err := s.store.FilterRange(ctx, table, domain.Between(today.AddDate(0, 0, -(days-1)), today))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	return rows, nil
}
