package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribble/pkg/core"
)

var (
	newTitle   string
	newContent string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long:  `Create a new note, optionally with a title and content, and print its id.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		note, err := app.Service.Create(ctx)
		if err != nil {
			fatal("Error creating note", err)
		}

		var patch core.Patch
		if cmd.Flags().Changed("title") {
			patch.Title = &newTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &newContent
		}
		if !patch.IsEmpty() {
			if note, err = app.Service.Update(ctx, note.ID, patch); err != nil {
				fatal("Error updating note", err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, core.MsgCreated)
		fmt.Fprintln(out, note.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Note title")
	newCmd.Flags().StringVar(&newContent, "content", "", "Note content")
}
