package importer

import (
	"fmt"

	"github.com/alexanderramin/vitals/internal/domain"
)

// ValidateImportSchema checks every row and returns all problems found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error
	if len(schema.Rows) == 0 {
		return []error{fmt.Errorf("rows: at least one row is required")}
	}

	seen := make(map[string]int)
	for i, r := range schema.Rows {
		prefix := fmt.Sprintf("rows[%d]", i)
		table, rowErrs := validateRow(prefix, &r)
		errs = append(errs, rowErrs...)
		if table == "" || r.Day == "" {
			continue
		}
		key := string(table) + "/" + r.Day
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate %s row for %s (first at rows[%d])", prefix, table.Metric(), r.Day, first))
			continue
		}
		seen[key] = i
	}
	return errs
}

func validateRow(prefix string, r *RowImport) (domain.Table, []error) {
	var errs []error

	table, ok := domain.LookupTable(r.Table)
	if !ok {
		errs = append(errs, fmt.Errorf("%s.table: unknown table %q", prefix, r.Table))
	}
	if r.Day == "" {
		errs = append(errs, fmt.Errorf("%s.day is required", prefix))
	} else if _, err := domain.ParseDay(r.Day); err != nil {
		errs = append(errs, fmt.Errorf("%s.day: invalid date format %q (expected YYYY-MM-DD)", prefix, r.Day))
	}
	if !ok {
		return "", errs
	}

	present := 0
	for _, f := range r.values() {
		if !f.set {
			continue
		}
		present++
		if _, ok := domain.LookupColumn(table, string(f.field)); !ok {
			errs = append(errs, fmt.Errorf("%s.%s: not a field of %s", prefix, f.field, table))
			continue
		}
		if err := checkRange(f.field, f.value); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", prefix, f.field, err))
		}
	}
	if present == 0 {
		errs = append(errs, fmt.Errorf("%s: no metric values", prefix))
	}
	return table, errs
}

func checkRange(f domain.Field, v float64) error {
	switch f {
	case domain.FieldScore:
		if v < 0 || v > 100 {
			return fmt.Errorf("score %v out of range 0-100", v)
		}
	case domain.FieldEfficiency:
		if v < 0 || v > 1 {
			return fmt.Errorf("efficiency %v out of range 0-1", v)
		}
	default:
		if v < 0 {
			return fmt.Errorf("must not be negative, got %v", v)
		}
	}
	return nil
}

type fieldValue struct {
	field domain.Field
	value float64
	set   bool
}

func (r *RowImport) values() []fieldValue {
	intValue := func(f domain.Field, p *int) fieldValue {
		if p == nil {
			return fieldValue{field: f}
		}
		return fieldValue{field: f, value: float64(*p), set: true}
	}
	eff := fieldValue{field: domain.FieldEfficiency}
	if r.Efficiency != nil {
		eff.value, eff.set = *r.Efficiency, true
	}
	return []fieldValue{
		intValue(domain.FieldScore, r.Score),
		intValue(domain.FieldTotalSleepDuration, r.TotalSleepDurationMinutes),
		eff,
		intValue(domain.FieldSteps, r.Steps),
		intValue(domain.FieldCaloriesTotal, r.CaloriesTotal),
	}
}
