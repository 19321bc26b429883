package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"balticwatch/pkg/cli"
	"balticwatch/pkg/config"
	"balticwatch/pkg/tracking/retention"
)

var cleanupFlags struct {
	dryRun       bool
	showVerdicts bool
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Apply the retention policy once",
	Long: `Analyze the stored position history and delete vessels that do not meet
the configured retention policy.

A fetch failure aborts the run before any deletion. Use --dry-run to
preview verdicts without deleting.

Examples:
  # Apply the configured policy
  balticwatch cleanup

  # Preview verdicts without deleting
  balticwatch cleanup --dry-run --verdicts`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().BoolVar(&cleanupFlags.dryRun, "dry-run", false, "compute verdicts without deleting")
	cleanupCmd.Flags().BoolVar(&cleanupFlags.showVerdicts, "verdicts", false, "print the per-vessel verdicts")
}

// retentionPolicy builds the policy from configuration.
func retentionPolicy(cfg *config.Config) (retention.Policy, error) {
	variant, err := retention.ParseVariant(cfg.Retention.Variant)
	if err != nil {
		return retention.Policy{}, err
	}
	policy := retention.Policy{
		Variant:             variant,
		Window:              cfg.Retention.Window,
		RecentWindow:        cfg.Retention.RecentWindow,
		FlaggedPrefix:       cfg.Retention.FlaggedPrefix,
		FlaggedJurisdiction: cfg.Retention.FlaggedJurisdiction,
	}
	return policy, policy.Validate()
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	policy, err := retentionPolicy(cfg)
	if err != nil {
		return cli.NewConfigError("retention", err.Error())
	}

	store, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("cleanup", err)
	}
	defer store.Close()

	_, classifier, err := loadClassifier(cfg)
	if err != nil {
		return cli.NewCommandError("cleanup", err)
	}

	runner, err := retention.NewRunner(store, classifier, policy, cfg.Retention.DeleteBatchSize,
		retention.WithDryRun(cleanupFlags.dryRun || cfg.Retention.DryRun))
	if err != nil {
		return cli.NewCommandError("cleanup", err)
	}

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()

	result, err := runner.Run(ctx)
	if err != nil {
		return cli.NewCommandError("cleanup", err)
	}

	mode := ""
	if result.DryRun {
		mode = " (dry run)"
	}
	fmt.Printf("Examined %d vessels across %d positions%s\n", result.Vessels, result.Positions, mode)
	fmt.Printf("Kept %d, deleted %d (%d rows removed) in %s\n",
		result.Kept, result.Deleted, result.RowsDeleted, result.Duration.Round(time.Millisecond))

	if cleanupFlags.showVerdicts {
		for _, v := range result.Verdicts {
			fmt.Printf("  %-10d %-6s %s\n", v.MMSI, v.Disposition, v.Reason)
		}
	}
	return nil
}
