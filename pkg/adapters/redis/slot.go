package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/aretw0/scribble/pkg/core"
)

// DefaultPrefix namespaces slot keys inside a shared Redis database.
const DefaultPrefix = "scribble::"

// Slot implements core.Slot on top of Redis strings.
type Slot struct {
	client   *redis.Client
	prefix   string
	readOnly bool
	logger   *slog.Logger
}

// Config holds the configuration for the Redis slot.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	ReadOnly bool
	Logger   *slog.Logger
}

// New connects to the server described by config.
func New(ctx context.Context, config Config) (*Slot, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr, err)
	}
	return NewWithClient(client, config), nil
}

// NewWithClient wraps an existing client. Connection fields of config are ignored.
func NewWithClient(client *redis.Client, config Config) *Slot {
	prefix := config.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Slot{
		client:   client,
		prefix:   prefix,
		readOnly: config.ReadOnly,
		logger:   config.Logger,
	}
}

// Close closes the underlying client.
func (s *Slot) Close() error {
	return s.client.Close()
}

func (s *Slot) redisKey(key string) string {
	return s.prefix + key
}

// Get reads the value stored under key.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, core.ErrInvalidKey
	}

	value, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", core.ErrSlotNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// Set replaces the value stored under key. Values never expire.
func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if key == "" {
		return core.ErrInvalidKey
	}

	if err := s.client.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if s.logger != nil {
		s.logger.Debug("slot written", "key", s.redisKey(key), "bytes", len(value))
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Slot) Delete(ctx context.Context, key string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// SlotState exposes internal state for observability.
type SlotState struct {
	Addr     string `json:"addr"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
	ReadOnly bool   `json:"read_only"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	opts := s.client.Options()
	return SlotState{
		Addr:     opts.Addr,
		DB:       opts.DB,
		Prefix:   s.prefix,
		ReadOnly: s.readOnly,
	}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "redis"
}

var _ core.Slot = (*Slot)(nil)
