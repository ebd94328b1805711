package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/docfilter/pkg/cli"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "docfilter",
	Short: "Docfilter - query document collections with Mongo-style filters",
	Long: `Docfilter compiles Mongo-style filter specifications into condition trees
and evaluates them against documents.

Filters are JSON or YAML mappings of field paths to values or operator
mappings ($eq, $ne, $gt, $gte, $lt, $lte), combined with $and, $or and $not.
Documents are read from a directory of JSON/YAML files or a SQLite table.

Configuration is read from --config (YAML) and DOCFILTER_* environment
variables; command flags override both.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
}
