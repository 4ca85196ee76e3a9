// Package pipeline drives the sync traversal: every (report definition,
// granularity) cell in the catalog is attempted exactly once, failures are
// contained at the cell boundary, and the ordered outcome list is the run's
// ground truth for both the summary and the publish step.
package pipeline

import "time"

// CellState is the terminal state of one sync cell. There is no retry
// transition: a cell goes from pending straight to one of these.
type CellState string

// Terminal cell states.
const (
	StateSucceeded   CellState = "SUCCEEDED"
	StateNoInstances CellState = "NO_INSTANCES"
	StateNoSegments  CellState = "NO_SEGMENTS"
	StateNoData      CellState = "NO_DATA"
	StateFailed      CellState = "FAILED"
)

// Source tags where an outcome's data came from.
type Source string

// Outcome sources.
const (
	SourceAppStore Source = "appstore"
	SourceFirebase Source = "firebase"
)

// dateUnknown is the date-range sentinel for files without detectable dates.
const dateUnknown = "-"

// Outcome records the result of one sync cell. LocalPath is owned by the
// outcome until the publisher consumes it; cells that yield no data write
// no file and leave it empty.
type Outcome struct {
	Filename    string
	LocalPath   string
	SizeBytes   int64
	CompletedAt time.Time
	Oldest      string
	Newest      string
	Source      Source
	State       CellState
	Reason      string
}

// Succeeded reports whether the cell materialized a file.
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}
