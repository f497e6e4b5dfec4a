package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/scribble/pkg/adapters/fs"
	redisslot "github.com/aretw0/scribble/pkg/adapters/redis"
	"github.com/aretw0/scribble/pkg/adapters/sqlite"
	"github.com/aretw0/scribble/pkg/core"
	"github.com/aretw0/scribble/pkg/storage"
)

// App bundles a loaded Service with the resources it owns.
type App struct {
	Service *core.Service
	Store   *storage.Store
	Slot    core.Slot
	logger  *slog.Logger
}

// New opens the storage slot described by uri and options, and returns an
// App whose Service has already loaded the collection.
//
// The uri is adapter-specific: the data directory for "fs", the database
// file for "sqlite", the server address for "redis". It is ignored for
// "memory".
func New(ctx context.Context, uri string, opts ...Option) (*App, error) {
	o := applyOptions(opts)

	slot, err := initSlot(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	storeOpts := []storage.Option{
		storage.WithKey(o.key),
		storage.WithLogger(o.logger),
		storage.WithClock(o.clock),
	}
	store := storage.New(slot, storeOpts...)

	var repoOpts []core.RepositoryOption
	if o.clock != nil {
		repoOpts = append(repoOpts, core.WithClock(o.clock))
	}
	service := core.NewService(store, core.NewRepository(repoOpts...), o.logger)
	service.Load(ctx)

	return &App{
		Service: service,
		Store:   store,
		Slot:    slot,
		logger:  o.logger,
	}, nil
}

// Init opens and initializes the storage slot without loading notes.
func Init(ctx context.Context, uri string, opts ...Option) (core.Slot, error) {
	return initSlot(ctx, uri, applyOptions(opts))
}

// Close releases the slot's connections, if it holds any.
func (a *App) Close() error {
	if c, ok := a.Slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Watch reports external changes to the collection's slot.
func (a *App) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := a.Slot.(core.Watchable)
	if !ok {
		return nil, errors.New("storage slot does not support watching")
	}
	return w.Watch(ctx, a.Store.Key())
}

// Follow reloads the service on every external change until ctx is done
// or the watcher stops. onReload may be nil.
func (a *App) Follow(ctx context.Context, onReload func(core.Event, core.State)) error {
	events, err := a.Watch(ctx)
	if err != nil {
		return err
	}
	for e := range events {
		st := a.Service.Reload(ctx)
		if a.logger != nil {
			a.logger.Debug("collection reloaded", "event", e.String(), "count", len(st.Notes))
		}
		if onReload != nil {
			onReload(e, st)
		}
	}
	return nil
}

func initSlot(ctx context.Context, uri string, o *options) (core.Slot, error) {
	if o.slot != nil {
		return o.slot, nil
	}

	readOnly, _ := o.config["read_only"].(bool)

	switch o.adapter {
	case AdapterFS:
		return initFS(ctx, uri, o)
	case AdapterMemory:
		return fs.NewMemorySlot(), nil
	case AdapterSQLite:
		return sqlite.Open(sqlite.Config{Path: uri, ReadOnly: readOnly, Logger: o.logger})
	case AdapterRedis:
		password, _ := o.config["redis_password"].(string)
		db, _ := o.config["redis_db"].(int)
		prefix, _ := o.config["redis_prefix"].(string)
		return redisslot.New(ctx, redisslot.Config{
			Addr:     uri,
			Password: password,
			DB:       db,
			Prefix:   prefix,
			ReadOnly: readOnly,
			Logger:   o.logger,
		})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(ctx context.Context, path string, o *options) (core.Slot, error) {
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Bypass Safety if:
	// 1. ReadOnly is active (inherently safe)
	// 2. User explicitly disabled DevSafety
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveDataDir(path, useTemp)

	if o.logger != nil && useTemp && resolvedPath != path {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	}

	slot := fs.NewSlot(fs.Config{
		Dir:          resolvedPath,
		MustExist:    mustExist,
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
	if err := slot.Initialize(ctx); err != nil {
		return nil, err
	}
	return slot, nil
}
