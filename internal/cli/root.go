package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/premkumr/ybmetrics/internal/logger"
	"github.com/premkumr/ybmetrics/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Execution modes accepted by --mode.
const (
	ModeMonitor = "monitor"
	ModeTablets = "tablets"
	ModeClean   = "clean"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
	mode    string
)

var rootCmd = &cobra.Command{
	Use:   "ybmetrics",
	Short: "Watch per-tablet metric rates across tablet servers",
	Long: `ybmetrics polls the /metrics endpoint of every tablet server, keeps the
last two snapshots, and prints how much each leader tablet's counters grew
between polls.

Without a subcommand it runs the monitor. --mode is kept for scripts written
against the older flag-only interface.

Examples:
  ybmetrics
  ybmetrics --host '10.0.0.{1..3}' -i 2 --write
  ybmetrics tablets --format json
  ybmetrics clean --yes`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || !isTerminal(cmd.OutOrStdout()) {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch mode {
		case ModeMonitor, "":
			return monitorCommand(cmd, &displayOpts)
		case ModeTablets:
			return tabletsCommand(cmd, formatTable)
		case ModeClean:
			// flag-only invocations never prompted
			return cleanCommand(cmd, true)
		default:
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown mode %q", mode),
				fmt.Sprintf("Use one of: %s, %s, %s", ModeMonitor, ModeTablets, ModeClean))
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./.ybmetrics.yaml or ~/.config/ybmetrics/config.yaml)")
	pf.BoolVar(&verbose, "verbose", false, "enable debug logging")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	addHostFlags(pf)

	rootCmd.Flags().StringVarP(&mode, "mode", "m", ModeMonitor, "execution mode: monitor, tablets or clean")
	addDisplayFlags(rootCmd.Flags(), &displayOpts)
}

// Execute runs the root command and exits the process. SIGINT and SIGTERM
// cancel the command context; a cancelled run exits 0.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	code := exitCode(ctx, err, os.Stderr)
	stop()
	os.Exit(code)
}

// exitCode reports err on w and maps it to a process exit code.
func exitCode(ctx context.Context, err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	if ctx.Err() != nil {
		return 0
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	if isUnknownCommandError(err) {
		msg := err.Error()
		if name := extractUnknownCommand(err); name != "" {
			msg = fmt.Sprintf("Unknown command '%s'", name)
		}
		err = errors.New(errors.ErrConfig, msg, "Run 'ybmetrics --help' to see available commands")
	}

	out := err.Error()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Fprint(w, out)
	return 1
}

// isUnknownCommandError checks cobra's wording for bad commands and flags.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the command name out of
// `unknown command "foo" for "ybmetrics"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// newLogger builds the command logger. Debug output is enabled by --verbose
// or by setting YBMETRICS_DEBUG.
func newLogger(w io.Writer) logger.Logger {
	debug := verbose || os.Getenv(logger.DebugEnv) != ""
	return logger.NewZapLogger(w, "", debug)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
