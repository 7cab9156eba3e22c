package main

import (
	"fmt"
	"time"

	"github.com/jacksmith/worldwise/internal/cli"
	"github.com/jacksmith/worldwise/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a visited city",
	Long: `Add a visited city through the API.

The visit date defaults to today. With -i, a YAML template is opened in
$EDITOR instead and the name argument is optional.

Examples:
  worldwise add Lisbon --emoji 🇵🇹 --country Portugal --lat 38.7223 --lng -9.1393
  worldwise add Berlin --date 2027-02-12 --lat 52.52 --lng 13.405 --notes "Cold."
  worldwise add -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addEmoji       string
	addCountry     string
	addDate        string
	addLat         float64
	addLng         float64
	addNotes       string
	addInteractive bool
)

func init() {
	addCmd.Flags().StringVar(&addEmoji, "emoji", "", "emoji shown next to the city")
	addCmd.Flags().StringVar(&addCountry, "country", "", "country name")
	addCmd.Flags().StringVar(&addDate, "date", "", "visit date (YYYY-MM-DD or RFC 3339, default today)")
	addCmd.Flags().Float64Var(&addLat, "lat", 0, "latitude in degrees")
	addCmd.Flags().Float64Var(&addLng, "lng", 0, "longitude in degrees")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes about the visit")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "edit the new city in $EDITOR")

	rootCmd.AddCommand(addCmd)
}

// newCityFromFlags builds the city described by the add flags.
func newCityFromFlags(args []string) (model.City, error) {
	city := model.City{
		Emoji:    addEmoji,
		Country:  addCountry,
		Position: model.Position{Lat: addLat, Lng: addLng},
		Notes:    addNotes,
	}
	if len(args) > 0 {
		city.CityName = args[0]
	}

	if addDate != "" {
		d, err := model.ParseVisitDate(addDate)
		if err != nil {
			return model.City{}, &cli.ValidationError{Field: "date", Message: err.Error()}
		}
		city.Date = d
	} else {
		now := time.Now()
		city.Date = model.NewVisitDate(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	}
	return city, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	city, err := newCityFromFlags(args)
	if err != nil {
		return err
	}

	if addInteractive {
		city, err = cli.EditNewCity(city)
		if err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return &cli.ValidationError{Message: "city name is required (or use -i)"}
		}
		if err := model.ValidateNewCity(city); err != nil {
			return &cli.ValidationError{Message: err.Error()}
		}
	}

	ctx := commandContext(cmd)
	store := openStore(ctx)
	if err := stateError(store.State()); err != nil {
		return err
	}

	store.CreateCity(ctx, city)
	st := store.State()
	if err := stateError(st); err != nil {
		return err
	}

	fmt.Printf("%s %s\n", st.CurrentCity.ID, st.CurrentCity.CityName)
	return nil
}
