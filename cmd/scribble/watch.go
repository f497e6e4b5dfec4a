package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	sclifecycle "github.com/aretw0/scribble/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload and report whenever the notes change on disk",
	Long: `Watch follows the storage slot (fs adapter only) and prints a line each time
the collection is rewritten by another process. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := openApp(ctx)
		defer app.Close()

		events, err := app.Watch(ctx)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		src := sclifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			fatal("Error starting watcher", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (%d notes). Press Ctrl+C to stop.\n", app.Store.Key(), len(app.Service.List()))
		for e := range src.Events() {
			st := app.Service.Reload(ctx)
			fmt.Fprintf(out, "%s: %d notes\n", e.String(), len(st.Notes))
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
