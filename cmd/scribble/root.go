package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribble"
)

// DefaultRedisAddr is used by the redis adapter when no address is configured.
const DefaultRedisAddr = "localhost:6379"

var (
	verbose    bool
	configPath string
	adapter    string
	dataPath   string
	slotKey    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribble",
	Short: "A local note store kept in a single storage slot",
	Long: `Scribble keeps short text notes in one key-value storage slot.
The whole collection is stored as a JSON array, most recently updated first,
in a directory, a SQLite database or a Redis server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: scribble.yaml or scribble.toml in the root)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter (fs, sqlite, redis, memory)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Data directory (fs) or database file (sqlite)")
	rootCmd.PersistentFlags().StringVar(&slotKey, "key", "", "Storage key holding the notes")
}

// resolveConfig merges the config file with the command line flags.
// Without --config, the file is looked up in the root found from the
// working directory; data defaults to the root's .scribble directory.
func resolveConfig() (scribble.Config, error) {
	var cfg scribble.Config

	wd, err := os.Getwd()
	if err != nil {
		return cfg, fmt.Errorf("failed to get working directory: %w", err)
	}
	base := wd
	if root, err := scribble.FindRoot(wd); err == nil {
		base = root
	}

	file := configPath
	if file == "" {
		file = scribble.FindConfigFile(base)
	}
	if file != "" {
		if cfg, err = scribble.LoadConfig(file); err != nil {
			return cfg, err
		}
	}

	if adapter != "" {
		cfg.Adapter = adapter
	}
	if dataPath != "" {
		cfg.Data = dataPath
	}
	if slotKey != "" {
		cfg.Key = slotKey
	}

	if cfg.Adapter == "" {
		cfg.Adapter = scribble.AdapterFS
	}
	switch cfg.Adapter {
	case scribble.AdapterFS:
		if cfg.Data == "" {
			cfg.Data = filepath.Join(base, scribble.SystemDir)
		}
	case scribble.AdapterSQLite:
		if cfg.Data == "" {
			cfg.Data = filepath.Join(base, scribble.SystemDir, "notes.db")
		}
	case scribble.AdapterRedis:
		if cfg.Redis.Addr == "" {
			cfg.Redis.Addr = DefaultRedisAddr
		}
	}
	return cfg, nil
}

// openApp opens the configured storage and loads the notes.
func openApp(ctx context.Context, extra ...scribble.Option) *scribble.App {
	cfg, err := resolveConfig()
	if err != nil {
		fatal("Error loading config", err)
	}

	opts := append(cfg.Options(), scribble.WithLogger(slog.Default()))
	opts = append(opts, extra...)

	app, err := scribble.New(ctx, cfg.URI(), opts...)
	if err != nil {
		fatal("Error initializing scribble", err)
	}
	return app
}
