package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/worldwise/internal/cli"
	"github.com/jacksmith/worldwise/internal/model"
	"github.com/jacksmith/worldwise/internal/ops"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show city details",
	Long: `Fetch one city from the API and show all of its fields.

The link line is the city's navigation target: its ID followed by its
coordinates as query parameters.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCityIDs,
	RunE:              runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := model.ParseCityID(args[0])
	if err != nil {
		return &cli.ValidationError{Field: "city ID", Message: fmt.Sprintf("%q is not a positive number", args[0])}
	}

	ctx := commandContext(cmd)
	store := ops.New(newRemote(), logger.Named("store"))
	store.GetCity(ctx, id)

	st := store.State()
	if err := stateError(st); err != nil {
		return err
	}

	printCityDetail(os.Stdout, st.CurrentCity)
	return nil
}

func printCityDetail(w io.Writer, c model.City) {
	fmt.Fprintf(w, "%s: %s\n", c.ID, strings.TrimSpace(c.Emoji+" "+c.CityName))
	if c.Country != "" {
		fmt.Fprintf(w, "Country:   %s\n", c.Country)
	} else {
		fmt.Fprintf(w, "Country:   -\n")
	}
	fmt.Fprintf(w, "Visited:   %s\n", cli.FormatDate(c.Date, locale))
	fmt.Fprintf(w, "Position:  %s\n", cli.FormatPosition(c.Position, locale))
	fmt.Fprintf(w, "Link:      %s\n", c.Link())

	if c.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Notes:")
		for _, line := range strings.Split(strings.TrimRight(c.Notes, "\n"), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
