package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/spf13/pflag"
)

// dateFlag is an optional YYYY-MM-DD flag value.
type dateFlag struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*dateFlag)(nil)

func (d *dateFlag) String() string {
	if !d.set {
		return ""
	}
	return d.t.Format(domain.DayLayout)
}

func (d *dateFlag) Set(s string) error {
	t, err := domain.ParseDay(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	d.t, d.set = t, true
	return nil
}

func (d *dateFlag) Type() string { return "date" }

// windowFlag is a day count written as N, Nd, Nw or Nm. Weeks are 7 days
// and months 30, the same units questions use.
type windowFlag int

var _ pflag.Value = (*windowFlag)(nil)

var windowUnits = map[byte]int{'d': 1, 'w': 7, 'm': 30}

func (w *windowFlag) String() string { return strconv.Itoa(int(*w)) + "d" }

func (w *windowFlag) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	mult := 1
	if s != "" {
		if m, ok := windowUnits[s[len(s)-1]]; ok {
			mult = m
			s = s[:len(s)-1]
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("use a positive count like 14d, 2w or 1m")
	}
	*w = windowFlag(n * mult)
	return nil
}

func (w *windowFlag) Type() string { return "window" }

// tableFlag accepts a metric table name or its short alias.
type tableFlag domain.Table

var _ pflag.Value = (*tableFlag)(nil)

func (t *tableFlag) String() string { return domain.Table(*t).Metric() }

func (t *tableFlag) Set(s string) error {
	table, ok := domain.LookupTable(s)
	if !ok {
		return fmt.Errorf("use sleep, activity or readiness")
	}
	*t = tableFlag(table)
	return nil
}

func (t *tableFlag) Type() string { return "table" }
