package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure of a metrics backfill file.
type ImportSchema struct {
	Source string      `json:"source,omitempty"`
	Rows   []RowImport `json:"rows"`
}

// RowImport is one day of one metric table. Fields left out stay NULL.
type RowImport struct {
	Table                     string   `json:"table"`
	Day                       string   `json:"day"`
	Score                     *int     `json:"score,omitempty"`
	TotalSleepDurationMinutes *int     `json:"total_sleep_duration_minutes,omitempty"`
	Efficiency                *float64 `json:"efficiency,omitempty"`
	Steps                     *int     `json:"steps,omitempty"`
	CaloriesTotal             *int     `json:"calories_total,omitempty"`
}

// LoadImportSchema reads and parses a backfill file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses backfill JSON. Unknown keys are an error.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
