package repository

import "errors"

var (
	// ErrUnknownColumn is returned when a table or column outside the
	// whitelist reaches the store.
	ErrUnknownColumn = errors.New("column not in whitelist")

	// ErrUnsupportedOperation is returned for aggregates other than
	// avg, sum, max and min.
	ErrUnsupportedOperation = errors.New("unsupported aggregate")
)
