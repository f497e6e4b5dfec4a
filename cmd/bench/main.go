package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/scribble"
	"github.com/aretw0/scribble/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "scribble_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	targets := []struct {
		adapter string
		uri     string
	}{
		{scribble.AdapterMemory, ""},
		{scribble.AdapterFS, filepath.Join(benchDir, "fs")},
		{scribble.AdapterSQLite, filepath.Join(benchDir, "notes.db")},
	}

	fmt.Printf("Benchmarking %d notes in %s\n", *count, benchDir)
	fmt.Printf("--------------------------------------------------\n")
	for _, target := range targets {
		if err := bench(ctx, logger, target.adapter, target.uri, *count); err != nil {
			fmt.Printf("%-8s failed: %v\n", target.adapter, err)
		}
	}
	fmt.Printf("--------------------------------------------------\n")
}

// bench fills a collection through the service, so every note costs one full
// save, then measures how long a fresh open takes to load it back.
func bench(ctx context.Context, logger *slog.Logger, adapter, uri string, count int) error {
	app, err := scribble.New(ctx, uri,
		scribble.WithAdapter(adapter),
		scribble.WithLogger(logger),
		scribble.WithDevSafety(false),
	)
	if err != nil {
		return err
	}
	defer app.Close()

	startGen := time.Now()
	for i := 0; i < count; i++ {
		n, err := app.Service.Create(ctx)
		if err != nil {
			return err
		}
		patch := core.Patch{}
		title := fmt.Sprintf("Note %d", i)
		content := fmt.Sprintf("# Benchmark Note %d\nThis is a test note.", i)
		patch.Title, patch.Content = &title, &content
		if _, err := app.Service.Update(ctx, n.ID, patch); err != nil {
			return err
		}
	}
	genDuration := time.Since(startGen)

	startLoad := time.Now()
	notes := app.Store.Load(ctx)
	loadDuration := time.Since(startLoad)

	startSave := time.Now()
	app.Store.Save(ctx, notes)
	saveDuration := time.Since(startSave)

	fmt.Printf("%-8s generate: %-12v load: %-12v save: %-12v (items: %d)\n",
		adapter, genDuration, loadDuration, saveDuration, len(notes))
	return nil
}
