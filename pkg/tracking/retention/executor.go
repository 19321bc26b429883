package retention

import (
	"context"
	"log/slog"
	"time"
)

// DefaultDeleteBatchSize bounds the identifier list per delete call to
// respect store request limits.
const DefaultDeleteBatchSize = 100

// Deleter is the slice of the position store the executor needs.
// storage.Store satisfies it.
type Deleter interface {
	DeleteVessels(ctx context.Context, mmsis []int64, since *time.Time) (int64, error)
}

// BatchExecutor performs the deletions ordered by the decision engine in
// bounded-size batches. Each identifier appears in exactly one batch.
type BatchExecutor struct {
	store     Deleter
	batchSize int
	logger    *slog.Logger
}

// NewBatchExecutor creates an executor over the given store. A non-positive
// batch size falls back to DefaultDeleteBatchSize.
func NewBatchExecutor(store Deleter, batchSize int) *BatchExecutor {
	if batchSize <= 0 {
		batchSize = DefaultDeleteBatchSize
	}
	return &BatchExecutor{
		store:     store,
		batchSize: batchSize,
		logger:    slog.Default().With("component", "retention.executor"),
	}
}

// Execute deletes the given vessels' records, chunked into ceil(n/batch)
// calls. since bounds every call identically; the executor never widens the
// scope the policy decided. On a batch failure the error is returned with
// the rows already deleted by earlier batches; the next scheduled run
// retries the remainder.
func (x *BatchExecutor) Execute(ctx context.Context, mmsis []int64, since *time.Time) (int64, error) {
	if len(mmsis) == 0 {
		return 0, nil
	}

	batches := (len(mmsis) + x.batchSize - 1) / x.batchSize
	var totalDeleted int64

	for i := 0; i < batches; i++ {
		start := i * x.batchSize
		end := start + x.batchSize
		if end > len(mmsis) {
			end = len(mmsis)
		}
		batch := mmsis[start:end]

		deleted, err := x.store.DeleteVessels(ctx, batch, since)
		if err != nil {
			return totalDeleted, NewExecuteError(i, batches, err)
		}
		totalDeleted += deleted

		x.logger.Debug("delete batch applied",
			"batch", i+1,
			"batches", batches,
			"vessel_count", len(batch),
			"rows_deleted", deleted,
		)
	}

	return totalDeleted, nil
}
