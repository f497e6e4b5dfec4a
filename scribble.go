package scribble

import (
	"context"
	"log/slog"

	"github.com/aretw0/scribble/internal/platform"
	"github.com/aretw0/scribble/pkg/core"
)

// --- Types ---

// App is a loaded note service together with its storage.
type App = platform.App

// Config is the on-disk configuration (scribble.yaml or scribble.toml).
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring scribble.
type Option = platform.Option

// Adapter names.
const (
	AdapterFS     = platform.AdapterFS
	AdapterMemory = platform.AdapterMemory
	AdapterSQLite = platform.AdapterSQLite
	AdapterRedis  = platform.AdapterRedis
)

// WithLogger sets the logger for the service and its storage.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSlot allows injecting a custom storage slot.
func WithSlot(slot core.Slot) Option {
	return platform.WithSlot(slot)
}

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithKey overrides the slot key holding the collection.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithClock overrides the time source for new and patched notes.
func WithClock(c core.Clock) Option {
	return platform.WithClock(c)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithReadOnly disables every write to the storage slot.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temporary sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithRedis sets the connection parameters for the redis adapter.
func WithRedis(password string, db int, prefix string) Option {
	return platform.WithRedis(password, db, prefix)
}

// WithWatcherErrorHandler registers a callback for slot watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the storage at uri and returns an App with its notes loaded.
func New(ctx context.Context, uri string, opts ...Option) (*App, error) {
	return platform.New(ctx, uri, opts...)
}

// Init opens and initializes the storage slot without loading notes.
func Init(ctx context.Context, uri string, opts ...Option) (core.Slot, error) {
	return platform.Init(ctx, uri, opts...)
}

// LoadConfig reads a YAML or TOML config file.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// --- Safety & Utils ---

// ResolveDataDir determines the actual data directory based on safety rules.
func ResolveDataDir(userPath string, forceTemp bool) string {
	return platform.ResolveDataDir(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot recursively looks upwards for a scribble root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// FindConfigFile returns the config file present in dir, or "".
func FindConfigFile(dir string) string {
	return platform.FindConfigFile(dir)
}

// SystemDir is the hidden directory holding the fs adapter's data.
const SystemDir = platform.SystemDir
