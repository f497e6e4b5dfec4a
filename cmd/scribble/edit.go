package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribble/pkg/core"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the title or content of a note",
	Long:  `Edit replaces the title and/or content of a note. The note moves to the top of the list.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var patch core.Patch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}
		if patch.IsEmpty() {
			fatal("Error editing note", errors.New("nothing to change: pass --title or --content"))
		}

		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		note, err := app.Service.Update(ctx, args[0], patch)
		if err != nil {
			fatal("Error editing note", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note '%s' saved.\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content")
}
