package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/worldwise/internal/model"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all cities as YAML",
	Long: `Write every city known to the API as a YAML document.

Writes to stdout unless a file is given. The output can be loaded into
another API with 'worldwise import'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	store := openStore(ctx)
	st := store.State()
	if err := stateError(st); err != nil {
		return err
	}

	cf := &model.CityFile{Cities: st.Cities}
	if len(args) == 1 {
		if err := model.SaveCityFile(args[0], cf); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d cities to %s\n", len(st.Cities), args[0])
		return nil
	}

	data, err := model.MarshalCityFile(cf)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
