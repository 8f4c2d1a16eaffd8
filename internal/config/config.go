// Package config loads the TOML configuration shared by the CLI and
// the API server.
//
// Precedence is file, then environment, then defaults: values present
// in the file win over the environment, and the assist API key is
// never written to disk in managed deployments, so it usually arrives
// via the environment.
package config

import (
	"context"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/nirmanlabs/nirman/pkg/assist"
	"github.com/nirmanlabs/nirman/pkg/cache"
	"github.com/nirmanlabs/nirman/pkg/errors"
	"github.com/nirmanlabs/nirman/pkg/layout"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Defaults.
const (
	DefaultListenAddr = ":8080"
	DefaultRedisAddr  = "localhost:6379"
	DefaultCacheDir   = ".nirman-cache"
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig  `toml:"server"`
	Cache  CacheConfig   `toml:"cache"`
	Layout LayoutConfig  `toml:"layout"`
	Assist assist.Config `toml:"assist"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// LayoutConfig carries the layout engine settings.
type LayoutConfig struct {
	Strategy    string  `toml:"strategy"`
	AspectRatio float64 `toml:"aspect_ratio"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{ListenAddr: DefaultListenAddr},
		Cache:  CacheConfig{Backend: CacheFile, Dir: DefaultCacheDir, RedisAddr: DefaultRedisAddr},
		Layout: LayoutConfig{Strategy: layout.DefaultStrategy, AspectRatio: layout.DefaultAspectRatio},
		Assist: assist.ConfigFromEnv(),
	}
}

// Load reads a TOML config file, fills gaps with defaults and the
// environment, and validates the result. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = d.Server.ListenAddr
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = d.Cache.Backend
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = d.Cache.Dir
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = d.Cache.RedisAddr
	}
	if c.Layout.Strategy == "" {
		c.Layout.Strategy = d.Layout.Strategy
	}
	if c.Layout.AspectRatio == 0 {
		c.Layout.AspectRatio = d.Layout.AspectRatio
	}
	if c.Assist.APIKey == "" {
		c.Assist.APIKey = d.Assist.APIKey
	}
	if c.Assist.BaseURL == "" {
		c.Assist.BaseURL = d.Assist.BaseURL
	}
}

// Validate checks enum fields. Bounds on the spec itself are enforced
// by the pipeline, not here.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q", c.Cache.Backend)
	}
	if !layout.ValidStrategies[c.Layout.Strategy] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid layout strategy: %q", c.Layout.Strategy)
	}
	return nil
}

// OpenCache builds the configured cache backend.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return cache.NewRedisCache(ctx, c.Cache.RedisAddr)
	default:
		return cache.NewFileCache(c.Cache.Dir)
	}
}

// AssistClient builds the assist client, or nil when no API key is
// configured.
func (c Config) AssistClient(logger *log.Logger) (*assist.Client, error) {
	if !c.Assist.Enabled() {
		return nil, nil
	}
	return assist.New(c.Assist, logger)
}
