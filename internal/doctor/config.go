package doctor

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/premkumr/ybmetrics/internal/util"
)

// ConfigFileCheck reports which config file, if any, is in effect.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return failFromError(c.Name(), err)
	}

	if path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No config file, using defaults and environment",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", path),
	}
}

func (c *ConfigFileCheck) Fix() error { return nil }

// ConfigValidCheck validates the merged config (file, environment and flags).
// LoadErr carries a failure from loading, in which case Config is nil.
type ConfigValidCheck struct {
	Config  *config.Config
	LoadErr error
}

func (c *ConfigValidCheck) Name() string     { return "config_valid" }
func (c *ConfigValidCheck) Category() string { return CategoryConfig }

func (c *ConfigValidCheck) Run(context.Context) CheckResult {
	if c.LoadErr != nil {
		return failFromError(c.Name(), c.LoadErr)
	}
	if c.Config == nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: "No config loaded"}
	}
	if err := config.Validate(c.Config); err != nil {
		return failFromError(c.Name(), err)
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config valid (interval %ds, keys %s)", c.Config.Interval, c.Config.Keys),
	}
}

func (c *ConfigValidCheck) Fix() error { return nil }

// ConfigHostsCheck expands the host patterns and reports the result.
type ConfigHostsCheck struct {
	Config *config.Config
}

func (c *ConfigHostsCheck) Name() string     { return "config_hosts" }
func (c *ConfigHostsCheck) Category() string { return CategoryConfig }

func (c *ConfigHostsCheck) Run(context.Context) CheckResult {
	if c.Config == nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: "Cannot check hosts: no config loaded"}
	}

	hosts := config.ExpandHosts(c.Config.Hosts, c.Config.Fetch.DefaultPort)
	if len(hosts) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No hosts configured",
			Suggestion: "Pass --host (e.g. --host '127.0.0.{1..3}:9000')",
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%s from %s",
			util.CountNoun(len(hosts), "host", "hosts"), util.JoinOrNone(c.Config.Hosts)),
	}
}

func (c *ConfigHostsCheck) Fix() error { return nil }

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string, cfg *config.Config, loadErr error) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigValidCheck{Config: cfg, LoadErr: loadErr},
		&ConfigHostsCheck{Config: cfg},
	}
}

// failFromError turns err into a failed result, splitting a structured
// error into its message and suggestion.
func failFromError(name string, err error) CheckResult {
	result := CheckResult{Name: name, Status: StatusFail, Message: err.Error()}

	var ybErr *errors.Error
	if stderrors.As(err, &ybErr) {
		result.Message = ybErr.Message
		if ybErr.Cause != nil {
			result.Message += ": " + ybErr.Cause.Error()
		}
		result.Suggestion = ybErr.Suggestion
	}
	return result
}
