package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path,
// applies defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention BALTICWATCH_SECTION_FIELD (e.g., BALTICWATCH_STORAGE_PATH) and
// always take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("BALTICWATCH_STORAGE_PATH"); val != "" {
		cfg.Storage.Path = val
	}
	if val := os.Getenv("BALTICWATCH_BOUNDARIES_PATH"); val != "" {
		cfg.Boundaries.Path = val
	}
	if val := os.Getenv("BALTICWATCH_BOUNDARIES_LINE_PROXIMITY_DEG"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Boundaries.LineProximityDeg = f
		}
	}
	if val := os.Getenv("BALTICWATCH_COLLECTOR_BASE_URL"); val != "" {
		cfg.Collector.BaseURL = val
	}
	if val := os.Getenv("BALTICWATCH_COLLECTOR_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Collector.Timeout = d
		}
	}
	if val := os.Getenv("BALTICWATCH_RETENTION_VARIANT"); val != "" {
		cfg.Retention.Variant = val
	}
	if val := os.Getenv("BALTICWATCH_RETENTION_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retention.Window = d
		}
	}
	if val := os.Getenv("BALTICWATCH_RETENTION_RECENT_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retention.RecentWindow = d
		}
	}
	if val := os.Getenv("BALTICWATCH_RETENTION_DRY_RUN"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Retention.DryRun = b
		}
	}
	if val := os.Getenv("BALTICWATCH_SNAPSHOT_PATH"); val != "" {
		cfg.Snapshot.Path = val
	}
	if val := os.Getenv("BALTICWATCH_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("BALTICWATCH_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("BALTICWATCH_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("BALTICWATCH_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
}
