package config

import "time"

// Default values for the retention windows. The crossing variant analyzes a
// single 24 hour window; the flagged variant analyzes 96 hours with a 48
// hour sub-window for non-flagged vessels.
const (
	DefaultCrossingWindow = 24 * time.Hour
	DefaultFlaggedWindow  = 96 * time.Hour
	DefaultRecentWindow   = 48 * time.Hour
)

// DefaultInsertBatchSize is the number of position rows per insert batch.
const DefaultInsertBatchSize = 1000

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for any unset fields in cfg.
func ApplyDefaults(cfg *Config) {
	// Storage defaults
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "data/positions.db"
	}
	if cfg.Storage.MaxOpenConns == 0 {
		cfg.Storage.MaxOpenConns = 10
	}
	if cfg.Storage.MaxIdleConns == 0 {
		cfg.Storage.MaxIdleConns = 5
	}
	if cfg.Storage.BusyTimeout == 0 {
		cfg.Storage.BusyTimeout = 5 * time.Second
		cfg.Storage.WALMode = true
	}

	// Boundaries defaults
	if cfg.Boundaries.Path == "" {
		cfg.Boundaries.Path = "data/baltic_maritime_boundaries.geojson"
	}
	if cfg.Boundaries.LineProximityDeg == 0 {
		cfg.Boundaries.LineProximityDeg = 0.2
	}
	if cfg.Boundaries.DebounceInterval == 0 {
		cfg.Boundaries.DebounceInterval = 500 * time.Millisecond
	}

	// Collector defaults
	if cfg.Collector.BaseURL == "" {
		cfg.Collector.BaseURL = "https://meri.digitraffic.fi"
	}
	if cfg.Collector.Timeout == 0 {
		cfg.Collector.Timeout = 30 * time.Second
	}
	if cfg.Collector.BoundingBox == (BoundingBoxConfig{}) {
		cfg.Collector.BoundingBox = BoundingBoxConfig{
			MinLon: 17.0,
			MaxLon: 30.3,
			MinLat: 58.5,
			MaxLat: 66.0,
		}
	}
	if cfg.Collector.InsertBatchSize == 0 {
		cfg.Collector.InsertBatchSize = DefaultInsertBatchSize
	}
	if cfg.Collector.SummaryPath == "" {
		cfg.Collector.SummaryPath = "data/collection_summary.db"
	}
	if cfg.Collector.Schedule == "" {
		cfg.Collector.Schedule = "*/5 * * * *"
	}

	// Retention defaults. The window default depends on the variant.
	if cfg.Retention.Variant == "" {
		cfg.Retention.Variant = "crossing"
	}
	if cfg.Retention.Window == 0 {
		if cfg.Retention.Variant == "flagged" {
			cfg.Retention.Window = DefaultFlaggedWindow
		} else {
			cfg.Retention.Window = DefaultCrossingWindow
		}
	}
	if cfg.Retention.RecentWindow == 0 {
		cfg.Retention.RecentWindow = DefaultRecentWindow
	}
	if cfg.Retention.FlaggedPrefix == "" {
		cfg.Retention.FlaggedPrefix = "273"
	}
	if cfg.Retention.FlaggedJurisdiction == "" {
		cfg.Retention.FlaggedJurisdiction = "RU"
	}
	if cfg.Retention.DeleteBatchSize == 0 {
		cfg.Retention.DeleteBatchSize = 100
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = "30 * * * *"
	}

	// Snapshot defaults
	if cfg.Snapshot.Path == "" {
		cfg.Snapshot.Path = "data/ais/latest.json"
		cfg.Snapshot.Pretty = true
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = "127.0.0.1:9090"
		cfg.Telemetry.Metrics.Enabled = true
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = "balticwatch"
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = "localhost:4317"
		cfg.Telemetry.Tracing.Insecure = true
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = "balticwatch"
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = 1.0
	}
}
