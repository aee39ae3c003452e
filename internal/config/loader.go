package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SOLVEMAP_CONFIG is set
//  3. env (prefix SOLVEMAP_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SOLVEMAP_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SOLVEMAP_ADDR, SOLVEMAP_STORE, ...
	// Map env keys like SOLVEMAP_SQLITE_PATH -> sqlite_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SOLVEMAP_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "solvemap_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if c.Store == StoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
	}
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("%w: fetch_timeout_seconds must not be negative", ErrInvalidConfig)
	}
	if c.AutoSyncIntervalMinutes <= 0 {
		return fmt.Errorf("%w: autosync_interval_minutes must be positive", ErrInvalidConfig)
	}
	if (c.AutoSyncJudge == "") != (c.AutoSyncHandle == "") {
		return fmt.Errorf("%w: autosync_judge and autosync_handle must be set together", ErrInvalidConfig)
	}
	return nil
}
