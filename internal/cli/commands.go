package cli

import (
	"fmt"

	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	monitorOpts   DisplayFlags
	tabletsFormat string
	cleanYes      bool
	doctorJSON    bool
	doctorFix     bool
)

// monitorCmd runs the poll/diff/print loop
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print per-tablet metric deltas every interval",
	Long: `Poll every tablet server, diff against the previous snapshot, and print
how much each leader tablet's counters grew. Tables are printed only when
something changed.

The default layout has one row per tablet and one column per metric, with a
total row. -v switches to one row per tablet and metric. When the key pattern
leaves a single metric, rows are sorted highest first and --top applies.

Examples:
  ybmetrics monitor
  ybmetrics monitor --host '10.0.0.{1..3}:9000' -i 2
  ybmetrics monitor --read --top 10
  ybmetrics monitor -v -k 'rows_'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd, &monitorOpts)
	},
}

// tabletsCmd lists leader tablets
var tabletsCmd = &cobra.Command{
	Use:   "tablets",
	Short: "List leader tablets on every host",
	Long: `Fetch metrics once from every host and list the tablets whose peer is
currently raft leader. The snapshot store is not touched, so this is safe to
run next to a live monitor.

Examples:
  ybmetrics tablets
  ybmetrics tablets --format json
  ybmetrics tablets --host node1 --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tabletsCommand(cmd, tabletsFormat)
	},
}

// cleanCmd drops retained snapshots
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clear retained snapshots",
	Long: `Remove the snapshots kept between runs, so the next monitor run prints
full counter values instead of deltas against a stale snapshot.

Examples:
  ybmetrics clean
  ybmetrics clean --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cleanCommand(cmd, cleanYes)
	},
}

// doctorCmd diagnoses config, store and host problems
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, snapshot store and tablet server reachability",
	Long: `Run diagnostic checks and report anything that would stop monitor from
working: an invalid config, an unwritable store directory, a lock held by
another process, or tablet servers that cannot be reached.

Exits non-zero when any check fails.

Examples:
  ybmetrics doctor
  ybmetrics doctor --host '10.0.0.{1..3}:9000'
  ybmetrics doctor --fix
  ybmetrics doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd, doctorJSON, doctorFix)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ybmetrics.

Examples:
  # Bash
  ybmetrics completion bash > /etc/bash_completion.d/ybmetrics

  # Zsh
  ybmetrics completion zsh > "${fpath[1]}/_ybmetrics"

  # Fish
  ybmetrics completion fish > ~/.config/fish/completions/ybmetrics.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	addDisplayFlags(monitorCmd.Flags(), &monitorOpts)

	tabletsCmd.Flags().StringVar(&tabletsFormat, "format", formatTable,
		fmt.Sprintf("output format: %s, %s or %s", formatTable, formatJSON, formatYAML))

	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the confirmation prompt")

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(tabletsCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}
