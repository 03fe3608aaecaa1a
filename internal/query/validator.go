package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
)

// RejectReason classifies why a candidate was refused.
type RejectReason string

const (
	ReasonUnknownOperation RejectReason = "unknown_operation"
	ReasonUnknownTable     RejectReason = "unknown_table"
	ReasonUnknownField     RejectReason = "unknown_field"
	ReasonInvalidRange     RejectReason = "invalid_range"
	ReasonInvalidDate      RejectReason = "invalid_date"
)

// Rejection explains a refused candidate.
type Rejection struct {
	Reason  RejectReason
	Message string
}

// UnknownSchemaReference reports whether the candidate named a table or
// field outside the whitelist.
func (r Rejection) UnknownSchemaReference() bool {
	return r.Reason == ReasonUnknownTable || r.Reason == ReasonUnknownField
}

// Validation is exactly one of Command or Rejection.
type Validation struct {
	Command   *Command
	Rejection *Rejection
}

func (v Validation) Valid() bool { return v.Command != nil }

func reject(reason RejectReason, format string, args ...any) Validation {
	return Validation{Rejection: &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}}
}

// Validate checks a candidate against the whitelist and the date grammar.
// Checks run in order (operation, table, field, dates) and the first failure
// decides the reason. Names are matched case-insensitively after trimming;
// tables also accept their short aliases. Blank dates count as absent.
func Validate(c Candidate) Validation {
	op := domain.Operation(strings.ToLower(strings.TrimSpace(c.Operation)))
	if !domain.IsValidOperation(op) {
		return reject(ReasonUnknownOperation, "unsupported operation %q (use avg, sum, max or min)", c.Operation)
	}

	table, ok := domain.LookupTable(c.Table)
	if !ok {
		return reject(ReasonUnknownTable, "unknown table %q", c.Table)
	}

	col, ok := domain.LookupColumn(table, c.Field)
	if !ok {
		return reject(ReasonUnknownField, "unknown field %q for %s", c.Field, table)
	}

	start, ok := parseBound(c.StartDate)
	if !ok {
		return reject(ReasonInvalidDate, "start_date %q is not a YYYY-MM-DD date", *c.StartDate)
	}
	end, ok := parseBound(c.EndDate)
	if !ok {
		return reject(ReasonInvalidDate, "end_date %q is not a YYYY-MM-DD date", *c.EndDate)
	}
	r := domain.DateRange{Start: start, End: end}
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return reject(ReasonInvalidRange, "start_date %s is after end_date %s", *r.StartString(), *r.EndString())
	}

	return Validation{Command: &Command{Operation: op, Column: col, Range: r}}
}

// parseBound parses an optional date. ok is false only for a present,
// non-blank value that is not a calendar date.
func parseBound(s *string) (*time.Time, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, true
	}
	d, err := domain.ParseDay(strings.TrimSpace(*s))
	if err != nil {
		return nil, false
	}
	return &d, true
}
