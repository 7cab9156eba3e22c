package main

import (
	"github.com/jacksmith/worldwise/internal/ops"
	"github.com/jacksmith/worldwise/internal/ui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse cities interactively",
	Long: `Open an interactive list of visited cities.

Keys:
  ↑/↓, k/j   move
  enter      open the highlighted city
  d, x       delete the highlighted city
  r          refresh
  q          quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	store := ops.New(newRemote(), logger.Named("store"))
	return ui.Run(ctx, store, locale)
}
