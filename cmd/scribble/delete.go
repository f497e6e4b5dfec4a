package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribble/internal/shell"
	"github.com/aretw0/scribble/pkg/core"
)

var (
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long: `Delete permanently removes a note. There is no undo.
Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		note, err := app.Service.Get(args[0])
		if err != nil {
			fatal("Error deleting note", err)
		}

		out := cmd.OutOrStdout()
		if !deleteYes {
			ok, err := shell.Confirm(bufio.NewReader(cmd.InOrStdin()), out, shell.DeletePrompt(note))
			if err != nil {
				fatal("Error deleting note", err)
			}
			if !ok {
				fmt.Fprintln(out, "Cancelled.")
				return
			}
		}

		if _, err := app.Service.Delete(ctx, note.ID); err != nil {
			fatal("Error deleting note", err)
		}
		fmt.Fprintln(out, core.MsgDeleted)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation prompt")
}
