// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers an optional YAML file and environment variables on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Store kinds selectable via the "store" key.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// Store selects the record store backend: memory or sqlite.
	Store string `koanf:"store"`

	// SQLitePath locates the sqlite database file when Store is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// FetchTimeoutSeconds bounds judge API calls; 0 means no timeout.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"`

	// SeedPath optionally points at a JSON file of records imported on
	// startup when the store is empty.
	SeedPath string `koanf:"seed_path"`

	// AutoSyncJudge and AutoSyncHandle enable the background re-import
	// job when both are set.
	AutoSyncJudge  string `koanf:"autosync_judge"`
	AutoSyncHandle string `koanf:"autosync_handle"`

	// AutoSyncIntervalMinutes spaces background re-imports.
	AutoSyncIntervalMinutes int `koanf:"autosync_interval_minutes"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":8090",
		Store:                   StoreMemory,
		SQLitePath:              "./solvemap.sqlite3",
		FetchTimeoutSeconds:     0,
		AutoSyncIntervalMinutes: 60,
	}
}
