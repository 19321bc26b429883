package main

import (
	"fmt"

	"balticwatch/pkg/cli"
	"balticwatch/pkg/config"
	"balticwatch/pkg/storage"
	"balticwatch/pkg/telemetry/logging"
	"balticwatch/pkg/territory"
)

// loadConfig loads and validates configuration, then installs the default
// logger. --verbose forces debug logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	if err := config.Validate(cfg); err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return cfg, nil
}

// openStore opens the SQLite position store per the configuration.
func openStore(cfg *config.Config) (storage.Store, error) {
	return storage.NewSQLiteStore(&storage.SQLiteConfig{
		Path:         cfg.Storage.Path,
		MaxOpenConns: cfg.Storage.MaxOpenConns,
		MaxIdleConns: cfg.Storage.MaxIdleConns,
		WALMode:      cfg.Storage.WALMode,
		BusyTimeout:  cfg.Storage.BusyTimeout,
	})
}

// loadClassifier loads the boundary set and builds the classifier over it.
func loadClassifier(cfg *config.Config) (*territory.Store, *territory.Classifier, error) {
	store, err := territory.LoadFromFile(cfg.Boundaries.Path)
	if err != nil {
		return nil, nil, err
	}
	classifier, err := territory.NewClassifier(store, cfg.Boundaries.LineProximityDeg)
	if err != nil {
		return nil, nil, err
	}
	return store, classifier, nil
}
