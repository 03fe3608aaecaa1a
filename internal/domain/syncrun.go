package domain

import "time"

type SyncStatus string

const (
	SyncSucceeded SyncStatus = "succeeded"
	SyncFailed    SyncStatus = "failed"
)

// SyncRun records one ingestion pass over a day window.
type SyncRun struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Window      DateRange
	RowsWritten int
	Status      SyncStatus
	Error       string
}
