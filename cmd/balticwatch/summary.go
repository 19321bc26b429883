package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"balticwatch/pkg/cli"
	"balticwatch/pkg/collector"
)

var summaryFlags struct {
	limit int
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show recent collection cycles",
	Long:  `List the most recent collection cycles from the audit trail, newest first.`,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVarP(&summaryFlags.limit, "limit", "n", 20, "number of cycles to show")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	summary, err := collector.NewSummaryStore(cfg.Collector.SummaryPath)
	if err != nil {
		return cli.NewCommandError("summary", err)
	}
	defer summary.Close()

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()

	runs, err := summary.RecentRuns(ctx, summaryFlags.limit)
	if err != nil {
		return cli.NewCommandError("summary", err)
	}
	if len(runs) == 0 {
		fmt.Println("No collection cycles recorded")
		return nil
	}

	fmt.Printf("%-20s  %-8s  %8s  %8s  %8s  %10s\n",
		"COLLECTED", "STATUS", "FETCHED", "STORED", "VESSELS", "DURATION")
	for _, run := range runs {
		fmt.Printf("%-20s  %-8s  %8d  %8d  %8d  %10s\n",
			run.CollectedAt.Format(time.RFC3339),
			run.Status,
			run.Fetched,
			run.Stored,
			run.Vessels,
			run.Duration.Round(time.Millisecond),
		)
		if run.Error != "" {
			fmt.Printf("    error: %s\n", run.Error)
		}
	}
	return nil
}
