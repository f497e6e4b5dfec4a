package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribble/internal/shell"
	"github.com/aretw0/scribble/pkg/core"
)

var (
	listJSON  bool
	listQuery string
	listGlob  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recently updated first",
	Long: `List notes, most recently updated first.
--query keeps notes whose title or content contains the text (case-insensitive).
--glob keeps notes whose title matches a glob pattern such as "meeting*".`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		notes, err := app.Service.Search(ctx, listQuery)
		if err != nil {
			fatal("Error listing notes", err)
		}
		if listGlob != "" {
			if notes, err = core.FilterTitleGlob(notes, listGlob); err != nil {
				fatal("Error filtering notes", err)
			}
		}

		out := cmd.OutOrStdout()
		if listJSON {
			if notes == nil {
				notes = []core.Note{}
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		st := app.Service.Snapshot()
		emptyMsg := st.EmptyMessage()
		if listGlob != "" {
			emptyMsg = core.MsgNoMatch
		}
		if err := shell.WriteList(out, notes, st.SelectedID, emptyMsg); err != nil {
			fatal("Error writing list", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Search title and content")
	listCmd.Flags().StringVarP(&listGlob, "glob", "g", "", "Filter titles by glob pattern")
}
