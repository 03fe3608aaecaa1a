package query

import (
	"encoding/json"

	"github.com/alexanderramin/vitals/internal/domain"
)

// Candidate is an untrusted command as produced by the classifier or a
// model. Nothing in it is executed until Validate accepts it.
type Candidate struct {
	Operation string  `json:"operation"`
	Table     string  `json:"table"`
	Field     string  `json:"field"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// JSON renders the candidate compactly for intent tags and logs.
func (c Candidate) JSON() string {
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Command is a whitelisted aggregate ready for execution. Build one only
// through Validate.
type Command struct {
	Operation domain.Operation
	Column    domain.Column
	Range     domain.DateRange
}

// Candidate converts the command back to its wire form.
func (c Command) Candidate() Candidate {
	return Candidate{
		Operation: string(c.Operation),
		Table:     string(c.Column.Table),
		Field:     string(c.Column.Field),
		StartDate: c.Range.StartString(),
		EndDate:   c.Range.EndString(),
	}
}
