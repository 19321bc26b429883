package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"balticwatch/pkg/config"
	"balticwatch/pkg/storage"
	"balticwatch/pkg/telemetry/metrics"
)

// Classifier attributes a coordinate to a jurisdiction at ingest time so the
// retention pipeline can skip the geometric work later.
type Classifier interface {
	Classify(lon, lat float64) (string, bool)
}

// Snapshotter refreshes a derived view after a successful cycle.
// snapshot.Exporter satisfies it.
type Snapshotter interface {
	Export(ctx context.Context) error
}

// Result summarizes one collection cycle.
type Result struct {
	RunID    string
	Fetched  int
	Stored   int
	Vessels  int
	Duration time.Duration
}

// Collector runs collection cycles against the AIS feed.
type Collector struct {
	client      *Client
	store       storage.Store
	summary     *SummaryStore
	classifier  Classifier
	snapshotter Snapshotter
	bbox        orb.Bound
	batchSize   int
	metrics     *metrics.Collector
	logger      *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithClassifier attributes positions to jurisdictions at ingest time.
func WithClassifier(c Classifier) Option {
	return func(col *Collector) { col.classifier = c }
}

// WithSummaryStore records an audit row per cycle.
func WithSummaryStore(s *SummaryStore) Option {
	return func(col *Collector) { col.summary = s }
}

// WithMetrics attaches a metrics collector. A nil collector is allowed.
func WithMetrics(m *metrics.Collector) Option {
	return func(col *Collector) { col.metrics = m }
}

// WithSnapshotter refreshes the snapshot after every successful cycle.
func WithSnapshotter(s Snapshotter) Option {
	return func(col *Collector) { col.snapshotter = s }
}

// New creates a collector writing to store.
func New(cfg config.CollectorConfig, store storage.Store, opts ...Option) *Collector {
	col := &Collector{
		client: NewClient(cfg.BaseURL, cfg.Timeout),
		store:  store,
		bbox: orb.Bound{
			Min: orb.Point{cfg.BoundingBox.MinLon, cfg.BoundingBox.MinLat},
			Max: orb.Point{cfg.BoundingBox.MaxLon, cfg.BoundingBox.MaxLat},
		},
		batchSize: cfg.InsertBatchSize,
		logger:    slog.Default().With("component", "collector"),
	}
	if col.batchSize <= 0 {
		col.batchSize = config.DefaultInsertBatchSize
	}
	for _, opt := range opts {
		opt(col)
	}
	return col
}

// Collect runs one collection cycle: fetch, filter to the bounding box,
// enrich with metadata and jurisdiction, store in batches, and record a
// summary row. A metadata fetch failure degrades to positions without names
// rather than failing the cycle.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := c.logger.With("run_id", runID)

	positions, err := c.client.FetchLocations(ctx)
	if err != nil {
		c.finish(ctx, runID, start, 0, 0, 0, err)
		return nil, err
	}

	meta, err := c.client.FetchVesselMetadata(ctx)
	if err != nil {
		logger.Warn("metadata fetch failed, storing positions without vessel names", "error", err)
		meta = nil
	}

	kept := positions[:0]
	vessels := make(map[int64]struct{})
	for _, pos := range positions {
		if !c.bbox.Contains(orb.Point{pos.Lon, pos.Lat}) {
			continue
		}
		if m, ok := meta[pos.MMSI]; ok {
			pos.Name = m.Name
			pos.ShipType = m.ShipType
			pos.Destination = m.Destination
			pos.Draught = m.Draught
		}
		if c.classifier != nil {
			code, named := c.classifier.Classify(pos.Lon, pos.Lat)
			pos.Jurisdiction = &code
			c.metrics.RecordClassification(named)
		}
		kept = append(kept, pos)
		vessels[pos.MMSI] = struct{}{}
	}

	stored := 0
	for startIdx := 0; startIdx < len(kept); startIdx += c.batchSize {
		end := startIdx + c.batchSize
		if end > len(kept) {
			end = len(kept)
		}
		if err := c.store.InsertPositions(ctx, kept[startIdx:end]); err != nil {
			c.finish(ctx, runID, start, len(positions), stored, len(vessels), err)
			return nil, err
		}
		stored += end - startIdx
	}

	c.finish(ctx, runID, start, len(positions), stored, len(vessels), nil)

	if c.snapshotter != nil {
		if err := c.snapshotter.Export(ctx); err != nil {
			logger.Warn("snapshot refresh failed", "error", err)
		}
	}

	result := &Result{
		RunID:    runID,
		Fetched:  len(positions),
		Stored:   stored,
		Vessels:  len(vessels),
		Duration: time.Since(start),
	}
	logger.Info("collection cycle completed",
		"fetched", result.Fetched,
		"stored", result.Stored,
		"vessels", result.Vessels,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// finish records metrics and the audit row for a cycle, successful or not.
func (c *Collector) finish(ctx context.Context, runID string, start time.Time, fetched, stored, vessels int, runErr error) {
	duration := time.Since(start)
	c.metrics.RecordCollection(stored, duration, runErr)

	if c.summary == nil {
		return
	}
	row := SummaryRow{
		RunID:       runID,
		CollectedAt: start.UTC(),
		Fetched:     fetched,
		Stored:      stored,
		Vessels:     vessels,
		Duration:    duration,
		Status:      "success",
	}
	if runErr != nil {
		row.Status = "error"
		row.Error = runErr.Error()
	}
	if err := c.summary.RecordRun(ctx, row); err != nil {
		c.logger.Warn("failed to record collection summary", "run_id", runID, "error", err)
	}
}

// Close releases the collector's HTTP resources.
func (c *Collector) Close() {
	c.client.Close()
}
