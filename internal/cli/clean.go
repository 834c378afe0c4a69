package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/premkumr/ybmetrics/internal/logger"
	"github.com/premkumr/ybmetrics/internal/ui"
	"github.com/premkumr/ybmetrics/internal/util"
	"github.com/spf13/cobra"
)

// confirmFunc asks the user a yes/no question.
type confirmFunc func(title, description string) (bool, error)

// huhConfirm prompts on the terminal.
func huhConfirm(title, description string) (bool, error) {
	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}

// confirm is swapped out in tests.
var confirm confirmFunc = huhConfirm

// cleanCommand drops the retained snapshots so the next monitor run
// starts from full values.
func cleanCommand(cmd *cobra.Command, yes bool) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr())
	defer logger.Sync(log)

	return runClean(cfg, yes, confirm, cmd.OutOrStdout(), log)
}

func runClean(cfg *config.Config, yes bool, ask confirmFunc, out io.Writer, log logger.Logger) error {
	if !yes {
		ok, err := ask(
			"Clear retained snapshots?",
			fmt.Sprintf("The next monitor run will show full counter values. Store: %s", cfg.Store.Path))
		if err != nil || !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	s, err := OpenSession(cfg, "ybmetrics clean", log)
	if err != nil {
		return err
	}
	defer s.Close()

	n := s.History.Len()
	if err := s.History.Reset(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Cleared %s from %s\n", ui.SymbolSuccess, util.CountNoun(n, "snapshot", "snapshots"), cfg.Store.Path)
	return nil
}
