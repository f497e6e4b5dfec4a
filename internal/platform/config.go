package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration (scribble.yaml or scribble.toml).
// Zero values mean "not set" so that flags and defaults can fill them.
type Config struct {
	Adapter   string      `yaml:"adapter" toml:"adapter"`
	Data      string      `yaml:"data" toml:"data"`
	Key       string      `yaml:"key" toml:"key"`
	ReadOnly  *bool       `yaml:"read_only" toml:"read_only"`
	DevSafety *bool       `yaml:"dev_safety" toml:"dev_safety"`
	Redis     RedisConfig `yaml:"redis" toml:"redis"`
}

// RedisConfig configures the redis adapter.
type RedisConfig struct {
	Addr     string `yaml:"addr" toml:"addr"`
	Password string `yaml:"password" toml:"password"`
	DB       int    `yaml:"db" toml:"db"`
	Prefix   string `yaml:"prefix" toml:"prefix"`
}

// LoadConfig reads a YAML or TOML config file, chosen by extension.
// A relative data path is resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}

	if cfg.Data != "" && !filepath.IsAbs(cfg.Data) {
		cfg.Data = filepath.Join(filepath.Dir(path), cfg.Data)
	}
	return cfg, nil
}

// URI returns the adapter-specific location: the redis address for the
// redis adapter and the data path otherwise.
func (c Config) URI() string {
	if c.Adapter == AdapterRedis {
		return c.Redis.Addr
	}
	return c.Data
}

// Options converts the set fields into functional options.
func (c Config) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Key != "" {
		opts = append(opts, WithKey(c.Key))
	}
	if c.ReadOnly != nil {
		opts = append(opts, WithReadOnly(*c.ReadOnly))
	}
	if c.DevSafety != nil {
		opts = append(opts, WithDevSafety(*c.DevSafety))
	}
	if c.Adapter == AdapterRedis {
		opts = append(opts, WithRedis(c.Redis.Password, c.Redis.DB, c.Redis.Prefix))
	}
	return opts
}
