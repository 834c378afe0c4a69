package config

import (
	"os"
	"path/filepath"
	"time"
)

// Key pattern presets selectable from the command line.
const (
	DefaultKeyPattern   = `(rows_inserted|db_seek|db_next)$`
	ReadWriteKeyPattern = `(rows_inserted|db_seek)$`
	ReadKeyPattern      = `(db_seek)$`
	WriteKeyPattern     = `(rows_inserted)$`
	TxnKeyPattern       = `(transaction)`
)

// DefaultHostPattern covers three local tablet servers.
const DefaultHostPattern = "127.0.0.{1..3}"

// Store backends.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Config is the complete ybmetrics configuration after defaults, file,
// environment and flags have been merged.
type Config struct {
	// Hosts are brace patterns, expanded once at startup.
	Hosts []string `yaml:"hosts" mapstructure:"hosts"`

	// Interval between polls, in seconds.
	Interval int `yaml:"interval" mapstructure:"interval"`

	// Keys is the metric-name regular expression applied after simplification.
	Keys string `yaml:"keys" mapstructure:"keys"`

	// Top limits single-metric tables to the N highest rows (0 = unlimited).
	Top int `yaml:"top" mapstructure:"top"`

	// Vertical selects the tall (one metric per row) layout.
	Vertical bool `yaml:"vertical" mapstructure:"vertical"`

	// FullTabletID disables tablet id truncation.
	FullTabletID bool `yaml:"full_tabletid" mapstructure:"full_tabletid"`

	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Filter FilterConfig `yaml:"filter" mapstructure:"filter"`
}

// StoreConfig selects where retained snapshots survive restarts.
type StoreConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// FetchConfig controls the per-host metrics request.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	DefaultPort int           `yaml:"default_port" mapstructure:"default_port"`
}

// FilterConfig names the entries dropped at normalization.
type FilterConfig struct {
	SystemNamespace string `yaml:"system_namespace" mapstructure:"system_namespace"`
	TestTable       string `yaml:"test_table" mapstructure:"test_table"`
}

// DefaultStorePath is metrics.db in the system temp directory.
func DefaultStorePath() string {
	return filepath.Join(os.TempDir(), "metrics.db")
}

// DefaultConfig returns a config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		Hosts:    []string{DefaultHostPattern},
		Interval: 5,
		Keys:     DefaultKeyPattern,
		Store: StoreConfig{
			Backend: BackendBolt,
			Path:    DefaultStorePath(),
		},
		Fetch: FetchConfig{
			Timeout:     10 * time.Second,
			DefaultPort: 9000,
		},
		Filter: FilterConfig{
			SystemNamespace: "system",
			TestTable:       "write_read_test",
		},
	}
}

// IntervalDuration returns the poll interval as a duration.
func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}
