package main

import (
	"fmt"
	"time"

	"github.com/jacksmith/worldwise/internal/model"
	"github.com/jacksmith/worldwise/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a local cities database",
	Long: `Create a .worldwise/ directory holding an empty city database for
'worldwise serve'. With --seed, three sample cities are added.

Fails if .worldwise/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initSeed bool

func init() {
	initCmd.Flags().BoolVar(&initSeed, "seed", false, "add sample cities")
	rootCmd.AddCommand(initCmd)
}

func sampleCities() []model.City {
	date := func(y int, m time.Month, d int) model.VisitDate {
		return model.NewVisitDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}
	return []model.City{
		{
			CityName: "Lisbon",
			Emoji:    "🇵🇹",
			Country:  "Portugal",
			Date:     date(2027, time.October, 31),
			Position: model.Position{Lat: 38.727881642324164, Lng: -9.140900099907554},
			Notes:    "My favorite city so far!",
		},
		{
			CityName: "Madrid",
			Emoji:    "🇪🇸",
			Country:  "Spain",
			Date:     date(2027, time.July, 15),
			Position: model.Position{Lat: 40.46635901755316, Lng: -3.7133789062500004},
		},
		{
			CityName: "Berlin",
			Emoji:    "🇩🇪",
			Country:  "Germany",
			Date:     date(2027, time.February, 12),
			Position: model.Position{Lat: 52.53586782505711, Lng: 13.376933665713324},
			Notes:    "Amazing 😃",
		},
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	var seed []model.City
	if initSeed {
		seed = sampleCities()
	}

	s, err := storage.Init(".", seed)
	if err != nil {
		return err
	}

	fmt.Printf("Initialized worldwise in .worldwise/\n")
	if len(seed) > 0 {
		fmt.Printf("Added %d sample cities to %s\n", len(seed), s.DataPath())
	}
	return nil
}
