package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribble/internal/shell"
)

var (
	resetYes bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every note",
	Long:  `Reset removes the stored collection from the storage slot. There is no undo.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		out := cmd.OutOrStdout()
		if !resetYes {
			prompt := fmt.Sprintf("Delete all %d notes? This cannot be undone.", len(app.Service.List()))
			ok, err := shell.Confirm(bufio.NewReader(cmd.InOrStdin()), out, prompt)
			if err != nil {
				fatal("Error resetting notes", err)
			}
			if !ok {
				fmt.Fprintln(out, "Cancelled.")
				return
			}
		}

		if err := app.Store.Clear(ctx); err != nil {
			fatal("Error resetting notes", err)
		}
		fmt.Fprintln(out, "All notes deleted.")
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip confirmation prompt")
}
