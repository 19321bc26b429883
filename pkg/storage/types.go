package storage

import (
	"context"
	"fmt"
	"time"

	"balticwatch/pkg/tracking"
)

// Store is the position store contract the analysis pipeline needs. All
// methods are safe for concurrent use.
type Store interface {
	// InsertPositions persists a batch of position records.
	InsertPositions(ctx context.Context, positions []*tracking.PositionRecord) error

	// QuerySince returns all records with a timestamp at or after since,
	// ordered by MMSI then timestamp.
	QuerySince(ctx context.Context, since time.Time) ([]*tracking.PositionRecord, error)

	// Latest returns the most recent record per vessel, ordered by MMSI.
	Latest(ctx context.Context) ([]*tracking.PositionRecord, error)

	// DeleteVessels removes records belonging to the given vessels and
	// returns the number of rows removed. A non-nil since restricts the
	// deletion to records at or after it; older history is never touched.
	// A nil since removes the vessels' entire history.
	DeleteVessels(ctx context.Context, mmsis []int64, since *time.Time) (int64, error)

	// CountPositions returns the total number of stored records.
	CountPositions(ctx context.Context) (int64, error)

	// Close releases backend resources.
	Close() error
}

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // "sqlite", "memory"
	Operation string // "insert", "query", "delete", ...
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}
