package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/aretw0/scribble/pkg/core"
)

// FileExt is appended to slot keys to build file names.
const FileExt = ".json"

// Slot implements core.Slot with one file per key inside a directory.
type Slot struct {
	fs     afero.Fs
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem slot.
type Config struct {
	Dir       string
	Fs        afero.Fs // Defaults to the OS filesystem.
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime watcher failures, which are otherwise only logged.
	ErrorHandler func(error)
}

// NewSlot creates a new filesystem-backed slot.
func NewSlot(config Config) *Slot {
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}
	if config.Dir == "" {
		config.Dir = "."
	}
	return &Slot{
		fs:     config.Fs,
		config: config,
	}
}

// NewMemorySlot creates a slot kept in memory, useful for tests and dry runs.
func NewMemorySlot() *Slot {
	return NewSlot(Config{Dir: "/", Fs: afero.NewMemMapFs()})
}

// Dir returns the directory holding the slot files.
func (s *Slot) Dir() string {
	return s.config.Dir
}

// Initialize ensures the slot directory exists.
func (s *Slot) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := s.fs.Stat(s.config.Dir)
		if os.IsNotExist(err) {
			if s.config.ReadOnly {
				return nil
			}
			return fmt.Errorf("data directory does not exist: %s", s.config.Dir)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.config.Dir)
		}
		return nil
	}

	if err := s.fs.MkdirAll(s.config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Path returns the file backing key.
func (s *Slot) Path(key string) (string, error) {
	if key == "" ||
		strings.ContainsAny(key, `/\`) ||
		strings.HasPrefix(key, ".") ||
		strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidKey, key)
	}
	return filepath.Join(s.config.Dir, key+FileExt), nil
}

// Get reads the value stored under key.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", core.ErrSlotNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Set replaces the value stored under key atomically.
func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := writeFileAtomic(s.fs, path, value, 0644); err != nil {
		return err
	}

	if s.config.Logger != nil {
		s.config.Logger.Debug("slot written", "path", path, "bytes", len(value))
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Slot) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

var _ core.Slot = (*Slot)(nil)
