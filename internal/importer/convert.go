package importer

import (
	"fmt"

	"github.com/alexanderramin/vitals/internal/domain"
)

// Convert turns a validated ImportSchema into metric rows ready to upsert.
// Call ValidateImportSchema first; Convert only fails on unparseable input.
func Convert(schema *ImportSchema) ([]domain.MetricRow, error) {
	rows := make([]domain.MetricRow, 0, len(schema.Rows))
	for i, r := range schema.Rows {
		table, ok := domain.LookupTable(r.Table)
		if !ok {
			return nil, fmt.Errorf("rows[%d]: unknown table %q", i, r.Table)
		}
		day, err := domain.ParseDay(r.Day)
		if err != nil {
			return nil, fmt.Errorf("rows[%d]: parsing day: %w", i, err)
		}

		row := domain.MetricRow{Table: table, Day: day}
		for _, f := range r.values() {
			if !f.set {
				continue
			}
			if err := row.SetField(f.field, f.value); err != nil {
				return nil, fmt.Errorf("rows[%d]: %w", i, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Load reads, validates and converts a backfill file in one step. Validation
// problems are joined into a single error.
func Load(path string) ([]domain.MetricRow, error) {
	schema, err := LoadImportSchema(path)
	if err != nil {
		return nil, err
	}
	if errs := ValidateImportSchema(schema); len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}
	return Convert(schema)
}

// ValidationError carries every problem found in a backfill file.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("import file has %d problem(s):", len(e.Errs))
	for _, err := range e.Errs {
		msg += "\n  - " + err.Error()
	}
	return msg
}
