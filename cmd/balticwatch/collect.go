package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"balticwatch/pkg/cli"
	"balticwatch/pkg/collector"
	"balticwatch/pkg/snapshot"
)

var collectFlags struct {
	noSnapshot bool
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one AIS collection cycle",
	Long: `Fetch the current AIS position snapshot, filter it to the configured
bounding box, attribute each position to a jurisdiction, and store the
result. Also refreshes the latest-position snapshot unless disabled.

Examples:
  # Collect with default config
  balticwatch collect

  # Collect without refreshing the snapshot file
  balticwatch collect --no-snapshot`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
	collectCmd.Flags().BoolVar(&collectFlags.noSnapshot, "no-snapshot", false, "skip the latest-position snapshot export")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("collect", err)
	}
	defer store.Close()

	_, classifier, err := loadClassifier(cfg)
	if err != nil {
		return cli.NewCommandError("collect", err)
	}

	summary, err := collector.NewSummaryStore(cfg.Collector.SummaryPath)
	if err != nil {
		return cli.NewCommandError("collect", err)
	}
	defer summary.Close()

	col := collector.New(cfg.Collector, store,
		collector.WithClassifier(classifier),
		collector.WithSummaryStore(summary))
	defer col.Close()

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()

	result, err := col.Collect(ctx)
	if err != nil {
		return cli.NewCommandError("collect", err)
	}
	fmt.Printf("Collected %d positions from %d vessels (%d fetched) in %s\n",
		result.Stored, result.Vessels, result.Fetched, result.Duration.Round(time.Millisecond))

	if !collectFlags.noSnapshot {
		exporter := snapshot.NewExporter(store, cfg.Snapshot.Path, cfg.Snapshot.Pretty)
		if err := exporter.Export(ctx); err != nil {
			return cli.NewCommandError("collect", err)
		}
		fmt.Printf("Snapshot written to %s\n", cfg.Snapshot.Path)
	}
	return nil
}
