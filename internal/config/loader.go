package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".ybmetrics.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/ybmetrics"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is prepended to environment overrides (YBMETRICS_INTERVAL, ...).
	EnvPrefix = "YBMETRICS"
)

// Load reads config from the given path, or from the first config file found
// by Find when path is empty. A missing config file is not an error: defaults
// and environment variables still apply.
func Load(path string) (*Config, error) {
	found, err := Find(path)
	if err != nil {
		return nil, err
	}

	v := newViper()
	if found != "" {
		v.SetConfigFile(found)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML: "+found)
		}
	}

	return parseConfig(v, found)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .ybmetrics.yaml in current directory
// 3. ~/.config/ybmetrics/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// newViper builds a viper instance carrying every default, so environment
// variables resolve even for keys absent from the config file.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("hosts", def.Hosts)
	v.SetDefault("interval", def.Interval)
	v.SetDefault("keys", def.Keys)
	v.SetDefault("top", def.Top)
	v.SetDefault("vertical", def.Vertical)
	v.SetDefault("full_tabletid", def.FullTabletID)
	v.SetDefault("store.backend", def.Store.Backend)
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("fetch.timeout", def.Fetch.Timeout.String())
	v.SetDefault("fetch.default_port", def.Fetch.DefaultPort)
	v.SetDefault("filter.system_namespace", def.Filter.SystemNamespace)
	v.SetDefault("filter.test_table", def.Filter.TestTable)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// parseConfig converts viper config to our Config struct.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		source := "environment"
		if path != "" {
			source = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}

	cfg.Store.Path = ExpandTilde(cfg.Store.Path)

	return cfg, nil
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
