package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/premkumr/ybmetrics/internal/logger"
	"github.com/premkumr/ybmetrics/internal/monitor"
	"github.com/premkumr/ybmetrics/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for `tablets`.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// TabletRow is one leader tablet in machine-readable output.
type TabletRow struct {
	Table     string `json:"table" yaml:"table"`
	Namespace string `json:"namespace" yaml:"namespace"`
	Tablet    string `json:"tablet" yaml:"tablet"`
	Host      string `json:"host" yaml:"host"`
	Leader    bool   `json:"leader" yaml:"leader"`
}

// tabletsCommand lists the leader tablets currently reported by every host.
func tabletsCommand(cmd *cobra.Command, format string) error {
	cfg, err := loadConfig(cmd, nil)
	if err == nil {
		log := newLogger(cmd.ErrOrStderr())
		defer logger.Sync(log)
		err = runTablets(commandContext(cmd), cfg, format, cmd.OutOrStdout(), log)
	}

	if err != nil && format == formatJSON {
		if _, ok := errors.GetExitCode(err); !ok {
			WriteJSONFromError(cmd.OutOrStdout(), err) //nolint:errcheck // best effort
			return errors.NewExitError(1)
		}
	}
	return err
}

// runTablets collects one pass without touching the snapshot store, so it
// can run next to a live monitor.
func runTablets(ctx context.Context, cfg *config.Config, format string, out io.Writer, log logger.Logger) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output format %q", format),
			fmt.Sprintf("Use one of: %s, %s, %s", formatTable, formatJSON, formatYAML))
	}

	hosts := config.ExpandHosts(cfg.Hosts, cfg.Fetch.DefaultPort)
	collector := newCollector(cfg, nil, log)

	entities, err := collector.CollectAll(ctx, hosts)
	if err != nil {
		return err
	}
	if down := collector.Unreachable(); len(down) > 0 {
		log.Warn("unable to fetch from %v", down)
	}

	switch format {
	case formatJSON:
		return WriteJSONSuccess(out, TabletRows(entities))
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(TabletRows(entities)); err != nil {
			return errors.WrapWithCode(err, errors.ErrRender, "Failed to encode tablets as YAML", "")
		}
		return enc.Close()
	default:
		return ui.PrintTable(out, monitor.RenderTablets(entities).Data())
	}
}

// TabletRows flattens entities sorted by table, then tablet id.
func TabletRows(entities map[string]monitor.Entity) []TabletRow {
	rows := make([]TabletRow, 0, len(entities))
	for id, e := range entities {
		rows = append(rows, TabletRow{
			Table:     e.Table,
			Namespace: e.Namespace,
			Tablet:    id,
			Host:      e.Host,
			Leader:    e.IsLeader(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Table != rows[j].Table {
			return rows[i].Table < rows[j].Table
		}
		return rows[i].Tablet < rows[j].Tablet
	})
	return rows
}
