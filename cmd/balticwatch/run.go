package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"balticwatch/pkg/cli"
	"balticwatch/pkg/collector"
	"balticwatch/pkg/snapshot"
	"balticwatch/pkg/telemetry/metrics"
	"balticwatch/pkg/telemetry/tracing"
	"balticwatch/pkg/territory"
	"balticwatch/pkg/tracking/retention"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the balticwatch daemon",
	Long: `Run collection and cleanup on their configured cron schedules, serve
Prometheus metrics, and reload the boundary file on change when watching
is enabled.

Examples:
  # Run with default config
  balticwatch run

  # Run with a custom config file
  balticwatch run --config /etc/balticwatch/config.yaml`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	store, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer store.Close()

	boundaries, classifier, err := loadClassifier(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	collectorMetrics := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	collectorMetrics.SetBoundaryFeatures(boundaries.Len())

	// Boundary file watching
	if cfg.Boundaries.Watch {
		watcher, err := territory.NewWatcher(boundaries, cfg.Boundaries.DebounceInterval)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer watcher.Stop()
	}

	// Collection pipeline
	summary, err := collector.NewSummaryStore(cfg.Collector.SummaryPath)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer summary.Close()

	exporter := snapshot.NewExporter(store, cfg.Snapshot.Path, cfg.Snapshot.Pretty)
	col := collector.New(cfg.Collector, store,
		collector.WithClassifier(classifier),
		collector.WithSummaryStore(summary),
		collector.WithSnapshotter(exporter),
		collector.WithMetrics(collectorMetrics))
	defer col.Close()

	if cfg.Collector.Schedule != "" {
		collectScheduler := collector.NewScheduler(col, cfg.Collector.Schedule)
		if err := collectScheduler.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer collectScheduler.Stop()
	}

	// Retention pipeline
	policy, err := retentionPolicy(cfg)
	if err != nil {
		return cli.NewConfigError("retention", err.Error())
	}
	runner, err := retention.NewRunner(store, classifier, policy, cfg.Retention.DeleteBatchSize,
		retention.WithDryRun(cfg.Retention.DryRun),
		retention.WithMetrics(collectorMetrics))
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if cfg.Retention.Schedule != "" {
		cleanupScheduler := retention.NewScheduler(runner, cfg.Retention.Schedule)
		if err := cleanupScheduler.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer cleanupScheduler.Stop()
	}

	// Metrics endpoint
	var metricsServer *http.Server
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collectorMetrics.Handler())
		metricsServer = &http.Server{
			Addr:    cfg.Telemetry.Metrics.ListenAddress,
			Handler: mux,
		}
		go func() {
			slog.Info("metrics endpoint listening", "address", cfg.Telemetry.Metrics.ListenAddress)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	fmt.Printf("balticwatch %s running (policy %s, boundaries %d features)\n",
		Version, policy.Variant, boundaries.Len())

	<-ctx.Done()
	slog.Info("shutdown signal received")

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown failed", "error", err)
		}
	}
	return nil
}
