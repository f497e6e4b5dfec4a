package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribble/internal/shell"
	"github.com/aretw0/scribble/pkg/core"
)

var (
	shellFollow bool
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Edit notes interactively",
	Long: `Shell opens a line editor over the notes. Type "help" for the commands;
":n" creates a note and ":d" deletes the selected one.
With --follow, changes written by other processes are reloaded (fs adapter only).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		app := openApp(ctx)
		defer app.Close()

		if shellFollow {
			go func() {
				err := app.Follow(ctx, func(e core.Event, st core.State) {
					slog.Debug("notes changed on disk", "event", e.String(), "count", len(st.Notes))
				})
				if err != nil {
					slog.Warn("not following changes", "error", err)
				}
			}()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, `Scribble shell. Type "help" for commands.`)
		sh := shell.New(app.Service, cmd.InOrStdin(), out, slog.Default())
		if err := sh.Run(ctx); err != nil {
			fatal("Error running shell", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().BoolVar(&shellFollow, "follow", false, "Reload when the notes change on disk")
}
