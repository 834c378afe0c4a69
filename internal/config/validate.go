package config

import (
	"fmt"
	"regexp"

	"github.com/premkumr/ybmetrics/internal/errors"
)

// Validate checks the merged config and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Interval < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval must be at least 1 second, got %d", cfg.Interval),
			"Pass a positive value to --interval")
	}

	if cfg.Top < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("--top must not be negative, got %d", cfg.Top),
			"Use --top 0 (or omit it) to show every row")
	}

	if _, err := regexp.Compile(cfg.Keys); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid key pattern %q", cfg.Keys),
			"The --keys value must be a valid regular expression")
	}

	if len(cfg.Hosts) == 0 {
		return errors.New(errors.ErrConfig,
			"No hosts configured",
			"Pass --host (e.g. --host '127.0.0.{1..3}:9000')")
	}

	if _, ok := CountHosts(cfg.Hosts); !ok {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Host patterns expand to more than %d hosts", MaxHosts),
			"Check --host for a mistyped range like {1..999999}")
	}

	switch cfg.Store.Backend {
	case BackendBolt, BackendSQLite:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown store backend %q", cfg.Store.Backend),
			fmt.Sprintf("Supported backends: %s, %s", BackendBolt, BackendSQLite))
	}

	if cfg.Store.Path == "" {
		return errors.New(errors.ErrConfig,
			"Store path is empty",
			"Set store.path in the config file or pass --store-path")
	}

	if cfg.Fetch.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"Fetch timeout must be positive",
			"Set fetch.timeout to a duration like 5s")
	}

	if cfg.Fetch.DefaultPort < 0 || cfg.Fetch.DefaultPort > 65535 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid default port %d", cfg.Fetch.DefaultPort),
			"Use a port between 1 and 65535")
	}

	return nil
}
