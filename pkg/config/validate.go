package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration field %q: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid or inconsistent values.
// It returns the first validation error encountered.
func Validate(cfg *Config) error {
	if cfg.Storage.Path == "" {
		return &ValidationError{Field: "storage.path", Message: "must not be empty"}
	}
	if cfg.Storage.MaxOpenConns < 1 {
		return &ValidationError{Field: "storage.max_open_conns", Message: "must be at least 1"}
	}
	if cfg.Storage.MaxIdleConns < 0 {
		return &ValidationError{Field: "storage.max_idle_conns", Message: "must not be negative"}
	}

	if cfg.Boundaries.Path == "" {
		return &ValidationError{Field: "boundaries.path", Message: "must not be empty"}
	}
	if cfg.Boundaries.LineProximityDeg <= 0 {
		return &ValidationError{Field: "boundaries.line_proximity_deg", Message: "must be positive"}
	}

	bb := cfg.Collector.BoundingBox
	if bb.MinLon >= bb.MaxLon {
		return &ValidationError{Field: "collector.bounding_box", Message: "min_lon must be less than max_lon"}
	}
	if bb.MinLat >= bb.MaxLat {
		return &ValidationError{Field: "collector.bounding_box", Message: "min_lat must be less than max_lat"}
	}
	if cfg.Collector.InsertBatchSize < 1 {
		return &ValidationError{Field: "collector.insert_batch_size", Message: "must be at least 1"}
	}

	switch cfg.Retention.Variant {
	case "crossing", "flagged":
	default:
		return &ValidationError{
			Field:   "retention.variant",
			Message: fmt.Sprintf("must be \"crossing\" or \"flagged\", got %q", cfg.Retention.Variant),
		}
	}
	if cfg.Retention.Window <= 0 {
		return &ValidationError{Field: "retention.window", Message: "must be positive"}
	}
	if cfg.Retention.Variant == "flagged" {
		if cfg.Retention.RecentWindow <= 0 {
			return &ValidationError{Field: "retention.recent_window", Message: "must be positive"}
		}
		if cfg.Retention.RecentWindow > cfg.Retention.Window {
			return &ValidationError{Field: "retention.recent_window", Message: "must not exceed retention.window"}
		}
		if cfg.Retention.FlaggedPrefix == "" {
			return &ValidationError{Field: "retention.flagged_prefix", Message: "must not be empty"}
		}
		for _, r := range cfg.Retention.FlaggedPrefix {
			if r < '0' || r > '9' {
				return &ValidationError{Field: "retention.flagged_prefix", Message: "must contain only digits"}
			}
		}
	}
	if cfg.Retention.DeleteBatchSize < 1 {
		return &ValidationError{Field: "retention.delete_batch_size", Message: "must be at least 1"}
	}

	level := strings.ToLower(cfg.Telemetry.Logging.Level)
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Telemetry.Logging.Level),
		}
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text", "console":
	default:
		return &ValidationError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of json, text, console; got %q", cfg.Telemetry.Logging.Format),
		}
	}

	if cfg.Telemetry.Tracing.SampleRatio < 0 || cfg.Telemetry.Tracing.SampleRatio > 1 {
		return &ValidationError{Field: "telemetry.tracing.sample_ratio", Message: "must be in [0, 1]"}
	}

	return nil
}
