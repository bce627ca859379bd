package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/lumen/internal/cache"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Trust.CounterBackend)
	assert.Equal(t, 30, cfg.Analysis.DefaultDays)
	assert.Equal(t, 2000, cfg.Analysis.MaxSamples)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, cache.DefaultNamespaces(), cfg.CacheNamespaces())

	p, err := cfg.DBPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, "lumen.db", filepath.Base(p))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
db:
  path: /tmp/lumen-test.db
analysis:
  default_days: 60
cache:
  namespaces:
    dashboard:
      ttl_seconds: 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lumen-test.db", cfg.DB.Path)
	assert.Equal(t, 60, cfg.Analysis.DefaultDays)
	ns := cfg.CacheNamespaces()
	assert.Equal(t, 30*time.Second, ns[cache.Dashboard].TTL)
	assert.Equal(t, 100, ns[cache.Dashboard].MaxSize, "unset fields keep their defaults")
	assert.Equal(t, 1800*time.Second, ns[cache.Cycles].TTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("LUMEN_LOG__LEVEL", "warn")
	t.Setenv("LUMEN_CACHE__NAMESPACES__CYCLES__MAX_SIZE", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 7, cfg.CacheNamespaces()[cache.Cycles].MaxSize)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, "analysis:\n  max_samples: 50\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Analysis.MaxSamples)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"zero size":         "cache:\n  namespaces:\n    cycles:\n      max_size: 0\n",
		"negative ttl":      "cache:\n  namespaces:\n    cycles:\n      ttl_seconds: -1\n",
		"unknown backend":   "trust:\n  counter_backend: etcd\n",
		"redis without url": "trust:\n  counter_backend: redis\n",
		"bad log level":     "log:\n  level: loud\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_RedisBackend(t *testing.T) {
	path := writeConfig(t, "trust:\n  counter_backend: redis\nredis:\n  url: redis://localhost:6379/0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Trust.CounterBackend)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "db.path", envKey("LUMEN_DB__PATH"))
	assert.Equal(t, "trust.counter_backend", envKey("LUMEN_TRUST__COUNTER_BACKEND"))
}
