package config

import "time"

// Config is the root configuration structure for balticwatch. It contains
// all configuration sections for position storage, boundary data, the AIS
// collector, the retention policy, snapshot export, and telemetry.
type Config struct {
	// Storage contains configuration for the vessel position store.
	Storage StorageConfig `yaml:"storage"`

	// Boundaries contains configuration for the territorial boundary set
	// and the point-in-territory classifier.
	Boundaries BoundariesConfig `yaml:"boundaries"`

	// Collector contains configuration for the upstream AIS feed.
	Collector CollectorConfig `yaml:"collector"`

	// Retention contains configuration for the retention decision engine
	// and the deletion executor.
	Retention RetentionConfig `yaml:"retention"`

	// Snapshot contains configuration for latest-position JSON export.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Telemetry contains logging, metrics, and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// StorageConfig contains configuration for the SQLite position store.
type StorageConfig struct {
	// Path is the database file path.
	// Default: "data/positions.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// BoundariesConfig contains configuration for the territorial boundary set.
type BoundariesConfig struct {
	// Path is the GeoJSON file holding the boundary feature collection.
	// Default: "data/baltic_maritime_boundaries.geojson"
	Path string `yaml:"path"`

	// LineProximityDeg is the planar distance threshold, in degrees, under
	// which a point counts as inside a line boundary's waters. The default
	// approximates 12 nautical miles at Baltic latitudes. Tune it when the
	// boundary set covers a different latitude band.
	// Default: 0.2
	LineProximityDeg float64 `yaml:"line_proximity_deg"`

	// Watch enables reloading the boundary file on change (daemon mode).
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period after a file change before the
	// boundary set is reloaded.
	// Default: 500ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// CollectorConfig contains configuration for the Digitraffic AIS collector.
type CollectorConfig struct {
	// BaseURL is the root of the Digitraffic AIS API.
	// Default: "https://meri.digitraffic.fi"
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request HTTP timeout.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// BoundingBox restricts collected positions to a region.
	BoundingBox BoundingBoxConfig `yaml:"bounding_box"`

	// InsertBatchSize is the number of position rows per insert batch.
	// Default: 1000
	InsertBatchSize int `yaml:"insert_batch_size"`

	// SummaryPath is the database file for collection summary rows.
	// Default: "data/collection_summary.db"
	SummaryPath string `yaml:"summary_path"`

	// Schedule is a cron expression for scheduled collection in daemon
	// mode. Empty disables scheduled collection.
	// Default: "*/5 * * * *"
	Schedule string `yaml:"schedule"`
}

// BoundingBoxConfig is a lon/lat rectangle. Defaults cover the Baltic Sea.
type BoundingBoxConfig struct {
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
}

// RetentionConfig contains configuration for the retention decision engine.
type RetentionConfig struct {
	// Variant selects the retention policy: "crossing" keeps vessels that
	// visited two or more named jurisdictions inside the window; "flagged"
	// adds the flagged-nationality override and a shorter recent window.
	// Default: "crossing"
	Variant string `yaml:"variant"`

	// Window is the lookback window for evidence gathering.
	// Default: 24h (crossing), 96h (flagged)
	Window time.Duration `yaml:"window"`

	// RecentWindow is the shorter sub-window used by the flagged variant
	// for non-flagged vessels. Ignored by the crossing variant.
	// Default: 48h
	RecentWindow time.Duration `yaml:"recent_window"`

	// FlaggedPrefix is the MMSI leading-digit nationality prefix that
	// forces retention under the flagged variant.
	// Default: "273"
	FlaggedPrefix string `yaml:"flagged_prefix"`

	// FlaggedJurisdiction is the jurisdiction code whose presence in a
	// vessel's visited set forces retention under the flagged variant.
	// Default: "RU"
	FlaggedJurisdiction string `yaml:"flagged_jurisdiction"`

	// DeleteBatchSize is the number of vessel identifiers per delete call.
	// Default: 100
	DeleteBatchSize int `yaml:"delete_batch_size"`

	// Schedule is a cron expression for scheduled cleanup in daemon mode.
	// Empty disables scheduled cleanup.
	// Default: "30 * * * *"
	Schedule string `yaml:"schedule"`

	// DryRun computes verdicts without executing deletions.
	// Default: false
	DryRun bool `yaml:"dry_run"`
}

// SnapshotConfig contains configuration for latest.json export.
type SnapshotConfig struct {
	// Path is the output file for the latest-position snapshot.
	// Default: "data/ais/latest.json"
	Path string `yaml:"path"`

	// Pretty enables indented JSON output.
	// Default: true
	Pretty bool `yaml:"pretty"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json", "text", "console".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served (daemon mode).
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the /metrics endpoint.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the Prometheus metric namespace.
	// Default: "balticwatch"
	Namespace string `yaml:"namespace"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the reported service name.
	// Default: "balticwatch"
	ServiceName string `yaml:"service_name"`

	// SampleRatio is the trace sampling ratio in [0, 1].
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Insecure disables transport security for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`
}
