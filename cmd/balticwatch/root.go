package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "balticwatch",
	Short: "Baltic Sea AIS collection and retention",
	Long: `Balticwatch ingests AIS vessel positions from the Digitraffic open data
feed, attributes each position to a territorial jurisdiction, and applies a
retention policy that keeps vessels whose movements cross maritime
boundaries while purging the rest.

It provides:
  - Scheduled AIS position collection with per-cycle audit rows
  - GeoJSON boundary loading with point-in-territory classification
  - Two retention policy variants (boundary crossing, flagged nationality)
  - Batched, scope-bounded deletion with dry-run preview
  - Latest-position JSON snapshots for map frontends`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
