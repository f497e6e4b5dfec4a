package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aretw0/scribble/pkg/core"
)

// DefaultKey is the slot key holding the serialized collection.
const DefaultKey = "scribble__notes_v1"

// Store implements core.Persister on top of a core.Slot.
type Store struct {
	slot       core.Slot
	key        string
	logger     *slog.Logger
	clock      core.Clock
	fallbackID core.IDGenerator

	mu       sync.Mutex
	loads    int
	saves    int
	failures int
	lastErr  string
	saveErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used to report ignored failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the time used for missing timestamps.
func WithClock(c core.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithFallbackID overrides the generator used for notes stored without an id.
func WithFallbackID(g core.IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.fallbackID = g
		}
	}
}

// New creates a Store reading and writing slot.
func New(slot core.Slot, opts ...Option) *Store {
	s := &Store{
		slot:       slot,
		key:        DefaultKey,
		clock:      core.SystemClock,
		fallbackID: core.FallbackID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot key used by the store.
func (s *Store) Key() string {
	return s.key
}

// Slot returns the underlying storage slot.
func (s *Store) Slot() core.Slot {
	return s.slot
}

// Load reads the collection. It returns an empty collection when the slot
// is empty, unreadable or holds anything other than a JSON array.
func (s *Store) Load(ctx context.Context) []core.Note {
	s.count(&s.loads)

	data, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, core.ErrSlotNotFound) {
			s.debug("storage slot empty", "key", s.key)
		} else {
			s.fail("failed to read storage slot", err)
		}
		return []core.Note{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Note{}
	}

	notes, stats, err := Decode(data, s.clock().UnixMilli(), s.fallbackID)
	if err != nil {
		s.fail("ignoring unreadable collection", err)
		return []core.Note{}
	}
	if stats.Skipped > 0 || stats.Repaired > 0 || stats.Duplicates > 0 {
		s.warn("repaired stored collection",
			"key", s.key,
			"skipped", stats.Skipped,
			"repaired", stats.Repaired,
			"duplicates", stats.Duplicates,
		)
	}
	return notes
}

// Save writes the full collection. Failures are logged and otherwise ignored.
func (s *Store) Save(ctx context.Context, notes []core.Note) {
	s.count(&s.saves)

	data, err := Encode(notes)
	if err == nil {
		err = s.slot.Set(ctx, s.key, data)
	}

	s.mu.Lock()
	s.saveErr = err
	s.mu.Unlock()

	if err != nil {
		s.fail("failed to write storage slot", err)
		return
	}
	s.debug("collection saved", "key", s.key, "count", len(notes))
}

// LastSaveError returns the error swallowed by the most recent Save, or nil
// if it succeeded. Callers that must report persistence, such as an import,
// check it after saving.
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// Clear removes the collection from the slot.
func (s *Store) Clear(ctx context.Context) error {
	return s.slot.Delete(ctx, s.key)
}

func (s *Store) count(c *int) {
	s.mu.Lock()
	*c++
	s.mu.Unlock()
}

func (s *Store) fail(msg string, err error) {
	s.mu.Lock()
	s.failures++
	s.lastErr = err.Error()
	s.mu.Unlock()

	if errors.Is(err, core.ErrReadOnly) {
		s.debug(msg, "key", s.key, "error", err)
		return
	}
	s.warn(msg, "key", s.key, "error", err)
}

func (s *Store) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

var _ core.Persister = (*Store)(nil)
