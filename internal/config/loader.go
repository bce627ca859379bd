package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/alexanderramin/lumen/internal/cache"
)

const (
	EnvPrefix     = "LUMEN_"
	EnvConfigPath = "LUMEN_CONFIG"

	maxConfigFileSize = 1 << 20
)

const baseDefaults = `
db:
  path: ~/.lumen/lumen.db
trust:
  counter_backend: sqlite
redis:
  url: ""
analysis:
  default_days: 30
  max_samples: 2000
log:
  level: info
  format: text
`

// defaultsYAML renders the built-in settings, including the namespace
// table from cache.DefaultNamespaces.
func defaultsYAML() []byte {
	var b strings.Builder
	b.WriteString(baseDefaults)
	b.WriteString("cache:\n  namespaces:\n")

	defaults := cache.DefaultNamespaces()
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, string(name))
	}
	sort.Strings(names)
	for _, name := range names {
		ns := defaults[cache.Name(name)]
		fmt.Fprintf(&b, "    %s:\n      max_size: %d\n      ttl_seconds: %d\n", name, ns.MaxSize, int(ns.TTL.Seconds()))
	}
	return []byte(b.String())
}

// Load builds the configuration from built-in defaults, then the YAML file
// at path (or $LUMEN_CONFIG when path is empty), then LUMEN_* environment
// variables. A double underscore in a variable name separates key levels:
//
//	LUMEN_DB__PATH                              -> db.path
//	LUMEN_CACHE__NAMESPACES__CYCLES__MAX_SIZE   -> cache.namespaces.cycles.max_size
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML()), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps LUMEN_SECTION__FIELD_NAME to section.field_name.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: config path %s is a directory", ErrInvalidConfig, path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("%w: config file %s exceeds %d bytes", ErrInvalidConfig, path, maxConfigFileSize)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return content, nil
}
