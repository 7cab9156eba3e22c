package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/worldwise/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visited cities",
	Long: `List all visited cities in the order they were added.

Each row shows the city's emoji, name and visit date, followed by [×]
(or […] while a delete is in flight). With --selected, that city is
fetched and marked as the active row.

Examples:
  worldwise list
  worldwise list --selected 3`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listSelected string

func init() {
	listCmd.Flags().StringVar(&listSelected, "selected", "", "ID of the city to mark as active")
	cobra.CheckErr(listCmd.RegisterFlagCompletionFunc("selected", completeCityIDs))
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	store := openStore(ctx)
	store.GetCityString(ctx, listSelected)

	st := store.State()
	if err := stateError(st); err != nil {
		return err
	}

	if len(st.Cities) == 0 {
		fmt.Println("No cities yet. Add your first city with 'worldwise add'.")
		return nil
	}

	cli.RenderCityList(os.Stdout, cli.RowsFromState(st, locale, store))
	return nil
}
