package cli

import (
	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DisplayFlags are the monitor options. They are registered on both the
// root command and `monitor` so either invocation style works.
type DisplayFlags struct {
	Interval     int
	Top          int
	Vertical     bool
	NoVertical   bool
	FullTabletID bool
	Keys         string
	RWKeys       bool
	Read         bool
	Write        bool
	Txn          bool
}

var displayOpts DisplayFlags

// Host and store flags, persistent on the root command.
var (
	hostFlags        []string
	storePathFlag    string
	storeBackendFlag string
)

// addDisplayFlags registers the monitor flags on fs.
func addDisplayFlags(fs *pflag.FlagSet, f *DisplayFlags) {
	fs.IntVarP(&f.Interval, "interval", "i", 5, "seconds to wait between polls")
	fs.IntVar(&f.Top, "top", 0, "show only the top N tablets when a single metric is displayed")
	fs.BoolVarP(&f.Vertical, "vertical", "v", false, "one row per tablet and metric")
	fs.BoolVar(&f.NoVertical, "no-vertical", false, "one row per tablet, one column per metric (default)")
	fs.BoolVar(&f.FullTabletID, "full-tabletid", false, "print full tablet ids")
	fs.StringVarP(&f.Keys, "keys", "k", config.DefaultKeyPattern, "metric name pattern (regex)")
	fs.BoolVar(&f.RWKeys, "rwkeys", false, "only rocksdb read/write keys")
	fs.BoolVar(&f.Read, "read", false, "only the rocksdb read key")
	fs.BoolVar(&f.Write, "write", false, "only the rocksdb write key")
	fs.BoolVar(&f.Txn, "txn", false, "only transaction keys")
}

// addHostFlags registers --host and the store flags on fs.
// --host is a string array: patterns like {1,3} contain commas.
func addHostFlags(fs *pflag.FlagSet) {
	fs.StringArrayVar(&hostFlags, "host", nil, "tserver host pattern, host[:port] (repeatable, default "+config.DefaultHostPattern+")")
	fs.StringVar(&storePathFlag, "store-path", "", "snapshot store file (default "+config.DefaultStorePath()+")")
	fs.StringVar(&storeBackendFlag, "store-backend", "", "snapshot store backend: bolt or sqlite")
}

// PresetKeys returns the key pattern selected by a preset flag, or "" when
// none is set. --rwkeys wins over --read, then --write, then --txn.
func PresetKeys(f *DisplayFlags) string {
	switch {
	case f.RWKeys:
		return config.ReadWriteKeyPattern
	case f.Read:
		return config.ReadKeyPattern
	case f.Write:
		return config.WriteKeyPattern
	case f.Txn:
		return config.TxnKeyPattern
	}
	return ""
}

// applyHostFlags overrides cfg with host and store flags set on fs.
func applyHostFlags(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("host") && len(hostFlags) > 0 {
		cfg.Hosts = append([]string(nil), hostFlags...)
	}
	if fs.Changed("store-path") {
		cfg.Store.Path = config.ExpandTilde(storePathFlag)
	}
	if fs.Changed("store-backend") {
		cfg.Store.Backend = storeBackendFlag
	}
}

// applyDisplayFlags overrides cfg with monitor flags set on fs. A preset
// flag replaces any --keys value.
func applyDisplayFlags(fs *pflag.FlagSet, f *DisplayFlags, cfg *config.Config) {
	if fs.Changed("interval") {
		cfg.Interval = f.Interval
	}
	if fs.Changed("top") {
		cfg.Top = f.Top
	}
	if fs.Changed("vertical") {
		cfg.Vertical = f.Vertical
	}
	if fs.Changed("no-vertical") && f.NoVertical {
		cfg.Vertical = false
	}
	if fs.Changed("full-tabletid") {
		cfg.FullTabletID = f.FullTabletID
	}
	if fs.Changed("keys") {
		cfg.Keys = f.Keys
	}
	if keys := PresetKeys(f); keys != "" {
		cfg.Keys = keys
	}
}

// loadConfig loads the config file and environment, applies the command's
// flags, and validates the result. display may be nil for commands without
// monitor flags.
func loadConfig(cmd *cobra.Command, display *DisplayFlags) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	applyHostFlags(fs, cfg)
	if display != nil {
		applyDisplayFlags(fs, display, cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
