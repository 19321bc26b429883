package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"balticwatch/pkg/storage"
	"balticwatch/pkg/telemetry/metrics"
	"balticwatch/pkg/tracking"
)

// RunResult summarizes one retention analysis run.
type RunResult struct {
	// RunID uniquely identifies the run in logs and traces.
	RunID string `json:"run_id"`

	// Positions is the number of position records fetched for the window.
	Positions int `json:"positions"`

	// Vessels is the number of distinct vessels examined.
	Vessels int `json:"vessels"`

	// Kept and Deleted count verdicts by disposition.
	Kept    int `json:"kept"`
	Deleted int `json:"deleted"`

	// RowsDeleted is the number of position rows the executor removed.
	RowsDeleted int64 `json:"rows_deleted"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`

	// DryRun reports whether deletions were skipped.
	DryRun bool `json:"dry_run"`

	// Verdicts holds the per-vessel decisions, sorted by identifier.
	Verdicts []Verdict `json:"verdicts,omitempty"`
}

// Runner drives a full retention cycle: fetch positions for the policy
// window, aggregate per-vessel evidence, decide, then execute deletions.
type Runner struct {
	store      storage.Store
	aggregator *tracking.Aggregator
	engine     *Engine
	executor   *BatchExecutor
	policy     Policy
	metrics    *metrics.Collector
	dryRun     bool
	logger     *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDryRun computes and logs verdicts without deleting anything.
func WithDryRun(dryRun bool) RunnerOption {
	return func(r *Runner) { r.dryRun = dryRun }
}

// WithMetrics attaches a metrics collector. A nil collector is allowed.
func WithMetrics(m *metrics.Collector) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithClock overrides the runner's time source.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner wires a runner from a position store, a classifier, and a policy.
func NewRunner(store storage.Store, classifier tracking.Classifier, policy Policy, batchSize int, opts ...RunnerOption) (*Runner, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	aggregator, err := tracking.NewAggregator(classifier)
	if err != nil {
		return nil, err
	}
	engine, err := NewEngine(policy)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		store:      store,
		aggregator: aggregator,
		engine:     engine,
		executor:   NewBatchExecutor(store, batchSize),
		policy:     policy,
		logger:     slog.Default().With("component", "retention.runner"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes one retention cycle. A fetch failure aborts the run before
// any deletion is attempted. An executor failure returns the partial result
// alongside the error.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.NewString()
	now := r.now().UTC()
	start := time.Now()

	ctx, span := otel.Tracer("balticwatch/retention").Start(ctx, "retention.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", runID),
		attribute.String("policy.variant", r.policy.Variant.String()),
	)

	logger := r.logger.With("run_id", runID, "variant", r.policy.Variant.String())
	logger.Info("retention run started",
		"window", r.policy.Window.String(),
		"dry_run", r.dryRun,
	)

	positions, err := r.store.QuerySince(ctx, now.Add(-r.policy.Window))
	if err != nil {
		err = NewFetchError(err)
		logger.Error("position fetch failed, no deletions attempted", "error", err)
		r.metrics.RecordRetentionRun(r.policy.Variant.String(), 0, 0, 0, time.Since(start), err)
		return nil, err
	}

	evidence := r.aggregator.Aggregate(positions, now, r.policy.Window, r.policy.aggregationRecentWindow())
	verdicts := r.engine.Decide(evidence)

	result := &RunResult{
		RunID:     runID,
		Positions: len(positions),
		Vessels:   len(verdicts),
		DryRun:    r.dryRun,
		Verdicts:  verdicts,
	}
	for _, v := range verdicts {
		if v.Disposition == Keep {
			result.Kept++
		} else {
			result.Deleted++
		}
	}

	var runErr error
	if !r.dryRun {
		deleteSet := DeleteSet(verdicts)
		result.RowsDeleted, runErr = r.executor.Execute(ctx, deleteSet, r.policy.DeleteSince(now))
	}

	result.Duration = time.Since(start)
	r.metrics.RecordRetentionRun(r.policy.Variant.String(), result.Kept, result.Deleted, result.RowsDeleted, result.Duration, runErr)

	span.SetAttributes(
		attribute.Int("vessels.examined", result.Vessels),
		attribute.Int("vessels.kept", result.Kept),
		attribute.Int("vessels.deleted", result.Deleted),
		attribute.Int64("rows.deleted", result.RowsDeleted),
	)

	if runErr != nil {
		logger.Error("retention run failed",
			"positions", result.Positions,
			"vessels", result.Vessels,
			"rows_deleted", result.RowsDeleted,
			"error", runErr,
		)
		return result, runErr
	}

	logger.Info("retention run completed",
		"positions", result.Positions,
		"vessels", result.Vessels,
		"kept", result.Kept,
		"deleted", result.Deleted,
		"rows_deleted", result.RowsDeleted,
		"duration", result.Duration.String(),
	)
	return result, nil
}
