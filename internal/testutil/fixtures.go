package testutil

import (
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
)

// Day parses a YYYY-MM-DD literal and panics on malformed input.
func Day(s string) time.Time {
	d, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// RowOption customizes a fixture row.
type RowOption func(*domain.MetricRow)

func WithScore(score int) RowOption {
	return func(r *domain.MetricRow) {
		r.Score = &score
	}
}

func WithSteps(steps int) RowOption {
	return func(r *domain.MetricRow) {
		r.Steps = &steps
	}
}

func WithCalories(kcal int) RowOption {
	return func(r *domain.MetricRow) {
		r.CaloriesTotal = &kcal
	}
}

func WithDuration(minutes int) RowOption {
	return func(r *domain.MetricRow) {
		r.TotalSleepDurationMinutes = &minutes
	}
}

func WithEfficiency(e float64) RowOption {
	return func(r *domain.MetricRow) {
		r.Efficiency = &e
	}
}

// NewSleepRow builds a daily_sleep row for day.
func NewSleepRow(day string, opts ...RowOption) domain.MetricRow {
	return newRow(domain.TableSleep, day, opts)
}

// NewActivityRow builds a daily_activity row for day.
func NewActivityRow(day string, opts ...RowOption) domain.MetricRow {
	return newRow(domain.TableActivity, day, opts)
}

// NewReadinessRow builds a daily_readiness row for day.
func NewReadinessRow(day string, opts ...RowOption) domain.MetricRow {
	return newRow(domain.TableReadiness, day, opts)
}

func newRow(table domain.Table, day string, opts []RowOption) domain.MetricRow {
	r := domain.MetricRow{Table: table, Day: Day(day)}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
