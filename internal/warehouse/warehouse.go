// Package warehouse pulls aggregated product analytics out of the events
// warehouse the Firebase export lands in, and bridges the results into the
// same tab-delimited files the App Store reports use. Which query runs for
// which report is a static table; nothing is resolved at runtime.
package warehouse

import (
	"context"
	"errors"
)

// Result is one query's output with a stable column order.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the query produced no rows.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// Querier runs a SQL query against the analytics warehouse.
type Querier interface {
	Query(ctx context.Context, query string) (Result, error)
	Close(ctx context.Context) error
}

// ErrNoData indicates a report query returned no rows; the caller records
// it as an empty cell, never as a failure.
var ErrNoData = errors.New("no data available")

// Source runs the static report table against a warehouse.
type Source struct {
	querier Querier
	days    int
}

// NewSource builds a Source with the configured lookback window in days.
func NewSource(querier Querier, days int) *Source {
	return &Source{querier: querier, days: days}
}

// Run executes one report's query. Reports declaring TakesDays get the
// source's configured window; the rest run their query as declared.
func (s *Source) Run(ctx context.Context, report Report) (Result, error) {
	days := 0
	if report.TakesDays {
		days = s.days
	}

	return s.querier.Query(ctx, report.Query(days))
}
