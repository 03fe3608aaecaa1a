package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
)

// rangeClause renders the WHERE fragment for r and its bound arguments.
// Days are stored as YYYY-MM-DD text, so lexical comparison is calendar order.
func rangeClause(r domain.DateRange) (string, []any) {
	var conds []string
	var args []any
	if r.Start != nil {
		conds = append(conds, "day >= ?")
		args = append(args, r.Start.Format(domain.DayLayout))
	}
	if r.End != nil {
		conds = append(conds, "day <= ?")
		args = append(args, r.End.Format(domain.DayLayout))
	}
	return strings.Join(conds, " AND "), args
}

// whereAll joins non-empty conditions into a WHERE clause.
func whereAll(conds ...string) string {
	var parts []string
	for _, c := range conds {
		if c != "" {
			parts = append(parts, c)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

// checkColumn re-resolves col against the whitelist so a hand-built Column
// value can never reach SQL.
func checkColumn(col domain.Column) (domain.Column, error) {
	c, ok := domain.LookupColumn(col.Table, string(col.Field))
	if !ok {
		return domain.Column{}, fmt.Errorf("%s: %w", col.Qualified(), ErrUnknownColumn)
	}
	return c, nil
}

// selectList returns "day, <col>, ..." for every whitelisted column of table.
func selectList(table domain.Table) string {
	names := []string{"day"}
	for _, c := range domain.Columns(table) {
		names = append(names, string(c.Field))
	}
	return strings.Join(names, ", ")
}

// columnArg converts a row value to a value suitable for SQLite storage.
// Returns nil (SQL NULL) when the row has no value for the column.
func columnArg(row domain.MetricRow, c domain.Column) any {
	v, ok := row.Value(c.Field)
	if !ok {
		return nil
	}
	if c.Kind == domain.KindInteger {
		return int64(v)
	}
	return v
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// parseNullableTime parses a sql.NullString into a *time.Time using layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
