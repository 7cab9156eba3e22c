package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/jacksmith/worldwise/internal/cli"
	"github.com/jacksmith/worldwise/internal/model"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create cities from a YAML file",
	Long: `Create every city in a YAML file, in file order.

The file uses the same format as 'worldwise export'. IDs in the file are
ignored; the API assigns new ones. All cities are validated before any is
created, and the import stops at the first failed create.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cf, err := model.LoadCityFile(args[0])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cli.NotFoundError{Type: "file", ID: args[0]}
		}
		return err
	}

	for i, c := range cf.Cities {
		if err := model.ValidateNewCity(c); err != nil {
			return &cli.ValidationError{Field: fmt.Sprintf("city #%d", i+1), Message: err.Error()}
		}
	}

	ctx := commandContext(cmd)
	store := openStore(ctx)
	if err := stateError(store.State()); err != nil {
		return err
	}

	for i, c := range cf.Cities {
		c.ID = model.NoCity
		store.CreateCity(ctx, c)
		st := store.State()
		if err := stateError(st); err != nil {
			return fmt.Errorf("imported %d of %d cities: %w", i, len(cf.Cities), err)
		}
		fmt.Printf("%s %s\n", st.CurrentCity.ID, st.CurrentCity.CityName)
	}

	fmt.Printf("Imported %d cities.\n", len(cf.Cities))
	return nil
}
