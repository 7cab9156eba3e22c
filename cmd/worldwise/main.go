// Package main is the entry point for the worldwise CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jacksmith/worldwise/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var (
	flagConfig  string
	flagBaseURL string
	flagLocale  string
	flagTimeout time.Duration
	flagVerbose bool
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "worldwise",
	Short: "worldwise - keep track of the cities you have visited",
	Long: `worldwise is a terminal client for a cities API. It lists the cities you
have visited, shows one in detail, and adds or deletes cities.

The API lives at base_url (see .worldwise.yaml). Run 'worldwise serve' to
start a local one backed by .worldwise/cities.yaml.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	// Replaced by our own completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetVersionTemplate("worldwise version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default ./.worldwise.yaml)")
	pf.StringVar(&flagBaseURL, "base-url", "", "cities API base URL")
	pf.StringVar(&flagLocale, "locale", "", "locale for dates and numbers (en, pt-BR)")
	pf.DurationVar(&flagTimeout, "timeout", 0, "timeout for each API call")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}
