package appstore

import (
	"errors"
	"fmt"
)

// RemoteError is any non-success response from the analytics API. Callers
// get no status-specific handling: a 404 and a 429 are equally fatal for the
// cell that triggered them.
type RemoteError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Body)
}

// Sentinel errors for resource traversal.
var (
	// ErrNoSegments indicates an instance has no downloadable segments.
	// An empty result is a valid terminal state, not a remote failure.
	ErrNoSegments = errors.New("no segments available")

	// ErrMissingRequestID indicates a create-request response without a
	// data.id field.
	ErrMissingRequestID = errors.New("report request response did not contain an ID")
)
