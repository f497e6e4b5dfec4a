package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/scribble/pkg/core"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - slots table
const currentSchemaVersion = 1

// Slot implements core.Slot with a key/value table in a SQLite database.
type Slot struct {
	db       *sql.DB
	path     string
	readOnly bool
	logger   *slog.Logger
}

// Config holds the configuration for the SQLite slot.
type Config struct {
	Path     string // Database file, or ":memory:".
	ReadOnly bool
	Logger   *slog.Logger
}

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open creates or opens the database at config.Path and applies the schema.
// Missing parent directories are created.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - 5-second busy timeout for lock contention
//
// In read-only mode nothing is created or migrated: a missing database
// behaves as an empty one and the connection is opened with query_only.
//
// This function is idempotent - safe to call multiple times.
func Open(config Config) (*Slot, error) {
	if config.Path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	slot := &Slot{
		path:     config.Path,
		readOnly: config.ReadOnly,
		logger:   config.Logger,
	}

	if config.Path != MemoryPath {
		if config.ReadOnly {
			if _, err := os.Stat(config.Path); errors.Is(err, os.ErrNotExist) {
				return slot, nil
			}
		} else if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if config.ReadOnly {
		if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragmas: %w", err)
		}
		slot.db = db
		return slot, nil
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	slot.db = db
	return slot, nil
}

// Close closes the database connection.
func (s *Slot) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, currentSchemaVersion)
	}
	return nil
}

// Get reads the value stored under key.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, core.ErrInvalidKey
	}
	if s.db == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrSlotNotFound, key)
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrSlotNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// Set replaces the value stored under key.
func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if key == "" {
		return core.ErrInvalidKey
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if s.logger != nil {
		s.logger.Debug("slot written", "db", s.path, "key", key, "bytes", len(value))
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Slot) Delete(ctx context.Context, key string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// SlotState exposes internal state for observability.
type SlotState struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"read_only"`
	Keys     int    `json:"keys"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	st := SlotState{Path: s.path, ReadOnly: s.readOnly}
	if s.db == nil {
		return st
	}
	_ = s.db.QueryRow("SELECT COUNT(*) FROM slots").Scan(&st.Keys)
	return st
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "sqlite"
}

var _ core.Slot = (*Slot)(nil)
