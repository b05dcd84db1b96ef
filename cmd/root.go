package cmd

import (
	"os"

	"repack-catalog/logger"

	"github.com/spf13/cobra"
)

var (
	flagDatabase string
	flagVerbose  bool
)

// rootCmd is the base command; every subcommand registers itself in init.
var rootCmd = &cobra.Command{
	Use:   "repack-catalog",
	Short: "Crawl game repack sites and maintain a local catalog",
	Long: `repack-catalog crawls game repack listing sites, normalizes and
deduplicates what it finds, and keeps the results in a local SQLite catalog
that the browsing UI and this CLI share.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetVerbose()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDatabase, "database", "d", "",
		"path to the database file (auto-detected if not set)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"verbose output")
}
