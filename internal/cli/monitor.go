package cli

import (
	"context"

	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/premkumr/ybmetrics/internal/logger"
	"github.com/premkumr/ybmetrics/internal/monitor"
	"github.com/spf13/cobra"
)

// monitorCommand loads config and runs the monitor loop until interrupted.
func monitorCommand(cmd *cobra.Command, display *DisplayFlags) error {
	cfg, err := loadConfig(cmd, display)
	if err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr())
	defer logger.Sync(log)

	out := cmd.OutOrStdout()
	return runMonitor(commandContext(cmd), cfg, monitor.NewTerminalDisplay(out, isTerminal(out)), log)
}

// runMonitor polls until ctx is cancelled, showing tables through d.
func runMonitor(ctx context.Context, cfg *config.Config, d monitor.Display, log logger.Logger) error {
	filter, err := monitor.NewRegexFilter(cfg.Keys)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid key pattern "+cfg.Keys,
			"The --keys value must be a valid regular expression")
	}

	s, err := OpenSession(cfg, "ybmetrics monitor", log)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Debug("polling %v", s.Hosts)

	loop := &monitor.Loop{
		Collector: newCollector(cfg, s.History, log),
		History:   s.History,
		Hosts:     s.Hosts,
		Options: monitor.RenderOptions{
			Filter: filter,
			FullID: cfg.FullTabletID,
			Top:    cfg.Top,
		},
		Vertical: cfg.Vertical,
		Interval: cfg.IntervalDuration(),
		Display:  d,
		Log:      log,
	}
	return loop.Run(ctx)
}
