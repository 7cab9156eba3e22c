package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/worldwise/internal/cli"
	"github.com/jacksmith/worldwise/internal/model"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a visited city",
	Long: `Delete a city through the API and print the remaining list.

Deleting never changes which city is selected unless the deleted city was
the selected one.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCityIDs,
	RunE:              runDelete,
}

var deleteQuiet bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteQuiet, "quiet", "q", false, "do not print the remaining cities")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := model.ParseCityID(args[0])
	if err != nil {
		return &cli.ValidationError{Field: "city ID", Message: fmt.Sprintf("%q is not a positive number", args[0])}
	}

	ctx := commandContext(cmd)
	store := openStore(ctx)
	st := store.State()
	if err := stateError(st); err != nil {
		return err
	}

	city, ok := st.FindCity(id)
	if !ok {
		return &cli.NotFoundError{Type: "city", ID: id.String()}
	}

	row := cli.NewCityRow(city, st.CurrentCity.ID, st.IsPendingDelete(id), locale, store)
	row.Delete(ctx)

	st = store.State()
	if err := stateError(st); err != nil {
		return err
	}

	fmt.Printf("%s deleted.\n", id)
	if !deleteQuiet && len(st.Cities) > 0 {
		fmt.Println()
		cli.RenderCityList(os.Stdout, cli.RowsFromState(st, locale, store))
	}
	return nil
}
