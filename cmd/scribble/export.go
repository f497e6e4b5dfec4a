package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/scribble/pkg/core"
	"github.com/aretw0/scribble/pkg/storage"
)

var (
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print all notes as JSON or YAML",
	Long: `Export writes the whole collection to stdout.
The JSON format is exactly what the storage slot holds and can be read back with import.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		notes := app.Service.List()
		out := cmd.OutOrStdout()

		switch exportFormat {
		case "json":
			data, err := storage.Encode(notes)
			if err != nil {
				fatal("Error encoding JSON", err)
			}
			fmt.Fprintln(out, string(data))
		case "yaml", "yml":
			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			if notes == nil {
				notes = []core.Note{}
			}
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding YAML", err)
			}
			encoder.Close()
		default:
			fatal("Error exporting notes", fmt.Errorf("unknown format %q (use json or yaml)", exportFormat))
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml)")
}
