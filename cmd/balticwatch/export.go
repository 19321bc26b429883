package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"balticwatch/pkg/cli"
	"balticwatch/pkg/snapshot"
)

var exportFlags struct {
	output string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the latest-position snapshot",
	Long: `Write a JSON document with each vessel's most recent known position.

Examples:
  # Export to the configured path
  balticwatch export

  # Export to a specific file
  balticwatch export --output /tmp/latest.json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "override the output path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("export", err)
	}
	defer store.Close()

	path := cfg.Snapshot.Path
	if exportFlags.output != "" {
		path = exportFlags.output
	}

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()

	exporter := snapshot.NewExporter(store, path, cfg.Snapshot.Pretty)
	if err := exporter.Export(ctx); err != nil {
		return cli.NewCommandError("export", err)
	}
	fmt.Printf("Snapshot written to %s\n", path)
	return nil
}
