package retention

import "fmt"

// FetchError represents a failure to read the position snapshot. It is
// fatal for the run: a short or empty snapshot misread as "no data" would
// produce mass false deletions, so nothing is deleted after a fetch error.
type FetchError struct {
	Cause error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("position fetch failed, aborting run before any deletion: %v", e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewFetchError creates a new FetchError.
func NewFetchError(cause error) *FetchError {
	return &FetchError{Cause: cause}
}

// ExecuteError represents a failed deletion batch. Earlier batches have
// already been applied; the failure is surfaced so the caller can alert and
// retry on the next scheduled run.
type ExecuteError struct {
	Batch   int // zero-based index of the failed batch
	Batches int // total number of batches in the delete set
	Cause   error
}

// Error implements the error interface.
func (e *ExecuteError) Error() string {
	return fmt.Sprintf("delete batch %d/%d failed: %v", e.Batch+1, e.Batches, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExecuteError) Unwrap() error {
	return e.Cause
}

// NewExecuteError creates a new ExecuteError.
func NewExecuteError(batch, batches int, cause error) *ExecuteError {
	return &ExecuteError{Batch: batch, Batches: batches, Cause: cause}
}
