package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/lumen/internal/cache"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds every tunable of the engine and its CLI.
type Config struct {
	DB       DBConfig       `koanf:"db"`
	Trust    TrustConfig    `koanf:"trust"`
	Redis    RedisConfig    `koanf:"redis"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Log      LogConfig      `koanf:"log"`
	Cache    CacheConfig    `koanf:"cache"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type TrustConfig struct {
	CounterBackend string `koanf:"counter_backend"`
}

type RedisConfig struct {
	URL string `koanf:"url"`
}

type AnalysisConfig struct {
	DefaultDays int `koanf:"default_days"`
	MaxSamples  int `koanf:"max_samples"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type CacheConfig struct {
	Namespaces map[string]NamespaceConfig `koanf:"namespaces"`
}

type NamespaceConfig struct {
	MaxSize    int `koanf:"max_size"`
	TTLSeconds int `koanf:"ttl_seconds"`
}

// DBPath expands a leading ~ in the configured database path.
func (c *Config) DBPath() (string, error) {
	p := c.DB.Path
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p, nil
}

// CacheNamespaces converts the namespace table for cache.NewRegistry.
func (c *Config) CacheNamespaces() map[cache.Name]cache.NamespaceConfig {
	out := make(map[cache.Name]cache.NamespaceConfig, len(c.Cache.Namespaces))
	for name, ns := range c.Cache.Namespaces {
		out[cache.Name(name)] = cache.NamespaceConfig{
			MaxSize: ns.MaxSize,
			TTL:     time.Duration(ns.TTLSeconds) * time.Second,
		}
	}
	return out
}

func (c *Config) Validate() error {
	var errs []error
	if c.DB.Path == "" {
		errs = append(errs, fmt.Errorf("db.path is required"))
	}
	switch c.Trust.CounterBackend {
	case BackendSQLite:
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, fmt.Errorf("redis.url is required when trust.counter_backend is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("trust.counter_backend: unknown backend %q", c.Trust.CounterBackend))
	}
	if c.Analysis.DefaultDays <= 0 {
		errs = append(errs, fmt.Errorf("analysis.default_days must be positive"))
	}
	if c.Analysis.MaxSamples <= 0 {
		errs = append(errs, fmt.Errorf("analysis.max_samples must be positive"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	for name, ns := range c.Cache.Namespaces {
		if ns.MaxSize <= 0 {
			errs = append(errs, fmt.Errorf("cache.namespaces.%s.max_size must be positive", name))
		}
		if ns.TTLSeconds <= 0 {
			errs = append(errs, fmt.Errorf("cache.namespaces.%s.ttl_seconds must be positive", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
