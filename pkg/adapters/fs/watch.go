package fs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/aretw0/scribble/pkg/core"
)

// DebounceDelay is the quiet period before a burst of file events is reported.
const DebounceDelay = 50 * time.Millisecond

// ErrWatchUnsupported is returned when the slot is not backed by the OS filesystem.
var ErrWatchUnsupported = errors.New("watching requires the OS filesystem")

// Watch reports changes to key's file, including writes made by other
// processes. The returned channel is closed when ctx is cancelled.
//
// The directory is watched rather than the file, because atomic writers
// (including this one) replace the file instead of modifying it.
func (s *Slot) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return nil, ErrWatchUnsupported
	}
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	out := make(chan core.Event)
	w := &slotWatcher{
		slot:      s,
		key:       key,
		target:    filepath.Base(path),
		watcher:   watcher,
		debouncer: newDebouncer(DebounceDelay),
		out:       out,
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.reportError(fmt.Errorf("watcher panic: %w", err))
	}))
	return out, nil
}

type slotWatcher struct {
	slot      *Slot
	key       string
	target    string
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	out       chan core.Event
}

// run is the main event loop for the watcher.
func (w *slotWatcher) run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		_ = w.watcher.Close()
		// Wait for in-flight timers before closing the channel they send on.
		w.debouncer.stopAndWait(5 * time.Second)
		w.slot.setWatcherActive(false)
		close(w.out)
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(runCtx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.slot.reportError(err)
		}
	}
}

func (w *slotWatcher) handle(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if name != w.target || strings.HasPrefix(name, TempFilePrefix) {
		return
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return
	}

	if w.slot.config.Logger != nil {
		w.slot.config.Logger.Debug("slot event", "key", w.key, "type", eType)
	}

	w.debouncer.add(core.Event{
		Type:      eType,
		Key:       w.key,
		Timestamp: time.Now().UnixMilli(),
	}, func(e core.Event) {
		select {
		case w.out <- e:
		case <-ctx.Done():
		}
	})
}

func (s *Slot) reportError(err error) {
	if s.config.Logger != nil {
		s.config.Logger.Error("fsnotify error", "error", err)
	}
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

var _ core.Watchable = (*Slot)(nil)
