package platform

import (
	"log/slog"

	"github.com/aretw0/scribble/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
	AdapterSQLite = "sqlite"
	AdapterRedis  = "redis"
)

// options holds the internal configuration for the scribble service.
type options struct {
	slot    core.Slot
	logger  *slog.Logger
	adapter string
	key     string
	clock   core.Clock
	config  map[string]interface{}
}

// Option defines a functional option for configuring scribble.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		slot:    nil,
		logger:  nil,
		adapter: AdapterFS,
		config:  make(map[string]interface{}),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSlot allows injecting a custom storage slot (e.g. mock).
// If provided, the configured adapter is skipped.
func WithSlot(slot core.Slot) Option {
	return func(o *options) {
		o.slot = slot
	}
}

// WithAdapter selects the storage adapter by name ("fs", "memory", "sqlite", "redis").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithKey overrides the slot key holding the collection.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithClock overrides the time source for new and patched notes.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithMustExist requires the data directory to exist already (fs adapter).
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithForceTemp forces the data directory into the temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Saves are skipped (and logged at debug level).
// 2. The data directory is not created.
// 3. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), the fs adapter is re-rooted into a temporary directory
// to prevent accidental data loss.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithRedis sets the connection parameters for the redis adapter.
func WithRedis(password string, db int, prefix string) Option {
	return func(o *options) {
		o.config["redis_password"] = password
		o.config["redis_db"] = db
		o.config["redis_prefix"] = prefix
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring in the
// slot watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
