package oura

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
)

type dailySleepDoc struct {
	Day   string `json:"day"`
	Score *int   `json:"score"`
}

// sleepPeriodDoc is one sleep period from the "sleep" collection. A day may
// have several (naps, split nights).
type sleepPeriodDoc struct {
	Day                string   `json:"day"`
	Type               string   `json:"type"`
	TotalSleepDuration *int     `json:"total_sleep_duration"`
	Efficiency         *float64 `json:"efficiency"`
}

type dailyActivityDoc struct {
	Day           string `json:"day"`
	Score         *int   `json:"score"`
	Steps         *int   `json:"steps"`
	TotalCalories *int   `json:"total_calories"`
}

type dailyReadinessDoc struct {
	Day   string `json:"day"`
	Score *int   `json:"score"`
}

// DailySleep returns daily_sleep rows with duration and efficiency merged in
// from the longest sleep period of each day.
func (c *Client) DailySleep(ctx context.Context, start, end time.Time) ([]domain.MetricRow, error) {
	scores, err := fetchAll[dailySleepDoc](ctx, c, "daily_sleep", start, end)
	if err != nil {
		return nil, err
	}
	periods, err := fetchAll[sleepPeriodDoc](ctx, c, "sleep", start, end)
	if err != nil {
		return nil, err
	}

	longest := make(map[string]sleepPeriodDoc)
	for _, p := range periods {
		if p.TotalSleepDuration == nil {
			continue
		}
		cur, ok := longest[p.Day]
		if !ok || *p.TotalSleepDuration > *cur.TotalSleepDuration {
			longest[p.Day] = p
		}
	}

	byDay := make(map[string]*domain.MetricRow)
	rowFor := func(day string) (*domain.MetricRow, error) {
		if r, ok := byDay[day]; ok {
			return r, nil
		}
		d, err := domain.ParseDay(day)
		if err != nil {
			return nil, fmt.Errorf("oura sleep day %q: %w", day, err)
		}
		r := &domain.MetricRow{Table: domain.TableSleep, Day: d}
		byDay[day] = r
		return r, nil
	}

	for _, s := range scores {
		r, err := rowFor(s.Day)
		if err != nil {
			return nil, err
		}
		r.Score = s.Score
	}
	for day, p := range longest {
		r, err := rowFor(day)
		if err != nil {
			return nil, err
		}
		minutes := *p.TotalSleepDuration / 60
		r.TotalSleepDurationMinutes = &minutes
		if p.Efficiency != nil {
			e := normalizeEfficiency(*p.Efficiency)
			r.Efficiency = &e
		}
	}
	return sortedRows(byDay), nil
}

// DailyActivity returns daily_activity rows.
func (c *Client) DailyActivity(ctx context.Context, start, end time.Time) ([]domain.MetricRow, error) {
	docs, err := fetchAll[dailyActivityDoc](ctx, c, "daily_activity", start, end)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.MetricRow, 0, len(docs))
	for _, d := range docs {
		day, err := domain.ParseDay(d.Day)
		if err != nil {
			return nil, fmt.Errorf("oura activity day %q: %w", d.Day, err)
		}
		rows = append(rows, domain.MetricRow{
			Table: domain.TableActivity, Day: day,
			Score: d.Score, Steps: d.Steps, CaloriesTotal: d.TotalCalories,
		})
	}
	return rows, nil
}

// DailyReadiness returns daily_readiness rows.
func (c *Client) DailyReadiness(ctx context.Context, start, end time.Time) ([]domain.MetricRow, error) {
	docs, err := fetchAll[dailyReadinessDoc](ctx, c, "daily_readiness", start, end)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.MetricRow, 0, len(docs))
	for _, d := range docs {
		day, err := domain.ParseDay(d.Day)
		if err != nil {
			return nil, fmt.Errorf("oura readiness day %q: %w", d.Day, err)
		}
		rows = append(rows, domain.MetricRow{Table: domain.TableReadiness, Day: day, Score: d.Score})
	}
	return rows, nil
}

// FetchWindow returns every sleep, activity and readiness row in [start, end].
func (c *Client) FetchWindow(ctx context.Context, start, end time.Time) ([]domain.MetricRow, error) {
	var all []domain.MetricRow
	for _, fetch := range []func(context.Context, time.Time, time.Time) ([]domain.MetricRow, error){
		c.DailySleep, c.DailyActivity, c.DailyReadiness,
	} {
		rows, err := fetch(ctx, start, end)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}

// normalizeEfficiency maps Oura's percentage onto a 0-1 fraction. Values
// already at or below 1 are taken as fractions.
func normalizeEfficiency(v float64) float64 {
	if v > 1 {
		v = v / 100
	}
	return math.Round(v*1000) / 1000
}

func sortedRows(byDay map[string]*domain.MetricRow) []domain.MetricRow {
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	rows := make([]domain.MetricRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, *byDay[d])
	}
	return rows
}
