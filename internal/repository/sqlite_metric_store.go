package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/db"
	"github.com/alexanderramin/vitals/internal/domain"
)

var aggregateFuncs = map[domain.Operation]string{
	domain.OpAvg: "AVG",
	domain.OpSum: "SUM",
	domain.OpMax: "MAX",
	domain.OpMin: "MIN",
}

// SQLiteMetricStore implements MetricStore and MetricWriter over the three
// day-keyed metric tables.
type SQLiteMetricStore struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLiteMetricStore creates a store. Pass a *sql.Tx to scope it to a
// transaction.
func NewSQLiteMetricStore(conn db.DBTX) *SQLiteMetricStore {
	return &SQLiteMetricStore{db: conn, now: time.Now}
}

func (s *SQLiteMetricStore) FilterRange(ctx context.Context, table domain.Table, r domain.DateRange) ([]domain.MetricRow, error) {
	if len(domain.Columns(table)) == 0 {
		return nil, fmt.Errorf("%s: %w", table, ErrUnknownColumn)
	}
	cond, args := rangeClause(r)
	query := `SELECT ` + selectList(table) + ` FROM ` + string(table) + whereAll(cond) + ` ORDER BY day`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filtering %s: %w", table, err)
	}
	defer rows.Close()

	var out []domain.MetricRow
	for rows.Next() {
		row, err := scanMetricRow(rows, table)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return out, nil
}

func (s *SQLiteMetricStore) Aggregate(ctx context.Context, col domain.Column, op domain.Operation, r domain.DateRange) (*float64, error) {
	c, err := checkColumn(col)
	if err != nil {
		return nil, err
	}
	fn, ok := aggregateFuncs[op]
	if !ok {
		return nil, fmt.Errorf("%q: %w", op, ErrUnsupportedOperation)
	}

	cond, args := rangeClause(r)
	query := `SELECT ` + fn + `(` + string(c.Field) + `) FROM ` + string(c.Table) + whereAll(cond)

	var v sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&v); err != nil {
		return nil, fmt.Errorf("aggregating %s of %s: %w", op, c.Qualified(), err)
	}
	if !v.Valid {
		return nil, nil
	}
	return &v.Float64, nil
}

func (s *SQLiteMetricStore) Extremum(ctx context.Context, col domain.Column, dir domain.Direction, r domain.DateRange) (*domain.MetricRow, error) {
	c, err := checkColumn(col)
	if err != nil {
		return nil, err
	}
	order := "DESC"
	if dir == domain.Ascending {
		order = "ASC"
	}

	cond, args := rangeClause(r)
	query := `SELECT ` + selectList(c.Table) + ` FROM ` + string(c.Table) +
		whereAll(string(c.Field)+` IS NOT NULL`, cond) +
		` ORDER BY ` + string(c.Field) + ` ` + order + `, day ASC LIMIT 1`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding extremum of %s: %w", c.Qualified(), err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("finding extremum of %s: %w", c.Qualified(), err)
		}
		return nil, nil
	}
	row, err := scanMetricRow(rows, c.Table)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *SQLiteMetricStore) Upsert(ctx context.Context, row domain.MetricRow) error {
	cols := domain.Columns(row.Table)
	if len(cols) == 0 {
		return fmt.Errorf("%s: %w", row.Table, ErrUnknownColumn)
	}

	names := []string{"day"}
	placeholders := []string{"?"}
	updates := make([]string, 0, len(cols)+1)
	args := []any{row.Day.Format(domain.DayLayout)}
	for _, c := range cols {
		names = append(names, string(c.Field))
		placeholders = append(placeholders, "?")
		updates = append(updates, string(c.Field)+" = excluded."+string(c.Field))
		args = append(args, columnArg(row, c))
	}
	names = append(names, "updated_at")
	placeholders = append(placeholders, "?")
	updates = append(updates, "updated_at = excluded.updated_at")
	args = append(args, formatUTC(s.now()))

	query := `INSERT INTO ` + string(row.Table) + ` (` + strings.Join(names, ", ") + `)
		VALUES (` + strings.Join(placeholders, ", ") + `)
		ON CONFLICT(day) DO UPDATE SET ` + strings.Join(updates, ", ")

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting %s %s: %w", row.Table, row.Day.Format(domain.DayLayout), err)
	}
	return nil
}

// scanMetricRow scans one row produced by selectList(table).
func scanMetricRow(rows *sql.Rows, table domain.Table) (domain.MetricRow, error) {
	cols := domain.Columns(table)
	var dayStr string
	ints := make([]sql.NullInt64, len(cols))
	reals := make([]sql.NullFloat64, len(cols))
	dest := []any{&dayStr}
	for i, c := range cols {
		if c.Kind == domain.KindReal {
			dest = append(dest, &reals[i])
		} else {
			dest = append(dest, &ints[i])
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return domain.MetricRow{}, fmt.Errorf("scanning %s row: %w", table, err)
	}

	day, err := domain.ParseDay(dayStr)
	if err != nil {
		return domain.MetricRow{}, fmt.Errorf("parsing %s day %q: %w", table, dayStr, err)
	}
	row := domain.MetricRow{Table: table, Day: day}
	for i, c := range cols {
		var v float64
		switch {
		case c.Kind == domain.KindReal && reals[i].Valid:
			v = reals[i].Float64
		case c.Kind == domain.KindInteger && ints[i].Valid:
			v = float64(ints[i].Int64)
		default:
			continue
		}
		if err := row.SetField(c.Field, v); err != nil {
			return domain.MetricRow{}, fmt.Errorf("populating %s: %w", c.Qualified(), err)
		}
	}
	return row, nil
}
