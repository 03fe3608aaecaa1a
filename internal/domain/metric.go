package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DayLayout is the ISO calendar-date layout used for every day key.
const DayLayout = "2006-01-02"

// ParseDay parses an ISO calendar date (YYYY-MM-DD) as UTC midnight.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// TruncateDay drops the clock part of t, keeping its calendar date.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MetricRow is one day of one metric table. Fields that do not belong to the
// row's table stay nil.
type MetricRow struct {
	Table                     Table
	Day                       time.Time
	Score                     *int
	TotalSleepDurationMinutes *int
	Efficiency                *float64
	Steps                     *int
	CaloriesTotal             *int
}

// Value returns the numeric value of f, or false when absent.
func (r MetricRow) Value(f Field) (float64, bool) {
	switch f {
	case FieldEfficiency:
		if r.Efficiency == nil {
			return 0, false
		}
		return *r.Efficiency, true
	default:
		p := r.intField(f)
		if p == nil || *p == nil {
			return 0, false
		}
		return float64(**p), true
	}
}

// FormatValue renders the raw stored value of f ("91", "0.87"), or "n/a".
func (r MetricRow) FormatValue(f Field) string {
	if f == FieldEfficiency {
		if r.Efficiency == nil {
			return "n/a"
		}
		return strconv.FormatFloat(*r.Efficiency, 'f', -1, 64)
	}
	p := r.intField(f)
	if p == nil || *p == nil {
		return "n/a"
	}
	return strconv.Itoa(**p)
}

// SetField stores v into f. Integer columns are truncated toward zero.
func (r *MetricRow) SetField(f Field, v float64) error {
	if f == FieldEfficiency {
		r.Efficiency = &v
		return nil
	}
	p := r.intField(f)
	if p == nil {
		return fmt.Errorf("unknown field %q", f)
	}
	n := int(v)
	*p = &n
	return nil
}

func (r *MetricRow) intField(f Field) **int {
	switch f {
	case FieldScore:
		return &r.Score
	case FieldTotalSleepDuration:
		return &r.TotalSleepDurationMinutes
	case FieldSteps:
		return &r.Steps
	case FieldCaloriesTotal:
		return &r.CaloriesTotal
	default:
		return nil
	}
}

// DateRange is an inclusive day window. A nil bound is unbounded on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// AllTime is the unbounded range.
func AllTime() DateRange { return DateRange{} }

// SingleDay returns the window covering exactly day.
func SingleDay(day time.Time) DateRange {
	d := TruncateDay(day)
	end := d
	return DateRange{Start: &d, End: &end}
}

// Between returns the inclusive window [start, end].
func Between(start, end time.Time) DateRange {
	s, e := TruncateDay(start), TruncateDay(end)
	return DateRange{Start: &s, End: &e}
}

// IsUnbounded reports whether neither side is set.
func (r DateRange) IsUnbounded() bool {
	return r.Start == nil && r.End == nil
}

// StartString returns the start bound as YYYY-MM-DD, or nil.
func (r DateRange) StartString() *string { return formatDayPtr(r.Start) }

// EndString returns the end bound as YYYY-MM-DD, or nil.
func (r DateRange) EndString() *string { return formatDayPtr(r.End) }

func formatDayPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DayLayout)
	return &s
}
