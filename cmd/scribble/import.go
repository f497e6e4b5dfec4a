package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/scribble"
	"github.com/aretw0/scribble/internal/shell"
	"github.com/aretw0/scribble/pkg/core"
	"github.com/aretw0/scribble/pkg/storage"
)

var (
	importYes bool
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace all notes with the contents of a file",
	Long: `Import reads a JSON array (as written by export) or its YAML equivalent
and replaces the whole collection. Entries are repaired the same way as
stored data: invalid entries are dropped and missing fields are filled.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Error reading file", err)
		}
		if ext := strings.ToLower(filepath.Ext(args[0])); ext == ".yaml" || ext == ".yml" {
			if data, err = yamlToJSON(data); err != nil {
				fatal("Error parsing YAML", err)
			}
		}

		notes, stats, err := storage.Decode(data, core.SystemClock().UnixMilli(), core.FallbackID)
		if err != nil {
			fatal("Error parsing notes", err)
		}

		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		out := cmd.OutOrStdout()
		if existing := len(app.Service.List()); existing > 0 && !importYes {
			prompt := fmt.Sprintf("Replace %d existing notes? This cannot be undone.", existing)
			ok, err := shell.Confirm(bufio.NewReader(cmd.InOrStdin()), out, prompt)
			if err != nil {
				fatal("Error importing notes", err)
			}
			if !ok {
				fmt.Fprintln(out, "Cancelled.")
				return
			}
		}

		if err := replaceNotes(ctx, app, notes); err != nil {
			fatal("Error importing notes", err)
		}
		fmt.Fprintf(out, "Imported %d notes (skipped %d, repaired %d, duplicates %d).\n",
			len(notes), stats.Skipped, stats.Repaired, stats.Duplicates)
	},
}

// replaceNotes swaps the collection and reports a failed save, which the
// store otherwise only logs.
func replaceNotes(ctx context.Context, app *scribble.App, notes []core.Note) error {
	if err := app.Service.Replace(ctx, notes); err != nil {
		return err
	}
	if err := app.Store.LastSaveError(); err != nil {
		return fmt.Errorf("notes were not saved: %w", err)
	}
	return nil
}

// yamlToJSON re-encodes a YAML document as JSON so that it goes through
// the same validation as stored data.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip confirmation prompt")
}
