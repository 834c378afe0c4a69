package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/premkumr/ybmetrics/internal/doctor"
	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/premkumr/ybmetrics/internal/monitor"
	"github.com/premkumr/ybmetrics/internal/ui"
	"github.com/spf13/cobra"
)

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand(cmd *cobra.Command, asJSON, fix bool) error {
	// Validation is one of the checks, so a bad config must not stop the run.
	cfg, loadErr := config.Load(cfgFile)
	if loadErr == nil {
		applyHostFlags(cmd.Flags(), cfg)
	}

	checks := collectChecks(cfgFile, cfg, loadErr)
	results := runChecks(commandContext(cmd), checks, fix)

	out := cmd.OutOrStdout()
	var err error
	if asJSON {
		err = outputDoctorJSON(out, checks, results)
	} else {
		outputDoctorText(out, checks, results, fix)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.NewExitError(1)
	}
	return nil
}

// collectChecks gathers the config checks, plus store and host checks once a
// config is available.
func collectChecks(cfgPath string, cfg *config.Config, loadErr error) []doctor.Check {
	checks := doctor.NewConfigChecks(cfgPath, cfg, loadErr)
	if cfg == nil {
		return checks
	}

	checks = append(checks, doctor.NewStoreChecks(cfg.Store.Path)...)

	hosts := config.ExpandHosts(cfg.Hosts, cfg.Fetch.DefaultPort)
	filter := monitor.Filter{
		SystemNamespace: cfg.Filter.SystemNamespace,
		TestTable:       cfg.Filter.TestTable,
	}
	checks = append(checks, doctor.NewHostsChecks(hosts, monitor.NewHTTPFetcher(cfg.Fetch.Timeout), filter)...)
	return checks
}

// runChecks runs local checks in order and host checks concurrently.
// Results keep the order of checks.
func runChecks(ctx context.Context, checks []doctor.Check, fix bool) []doctor.CheckResult {
	results := make([]doctor.CheckResult, len(checks))

	var remote []doctor.Check
	var remoteIdx []int
	for i, c := range checks {
		if c.Category() == doctor.CategoryHosts {
			remote = append(remote, c)
			remoteIdx = append(remoteIdx, i)
			continue
		}
		results[i] = c.Run(ctx)
	}
	for j, r := range doctor.RunAllParallel(ctx, remote) {
		results[remoteIdx[j]] = r
	}

	if fix {
		results = doctor.ApplyFixes(ctx, checks, results)
	}
	return results
}

// outputDoctorJSON writes results grouped by category.
func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := doctor.GroupByCategory(checks)

	output := DoctorOutput{Categories: make([]CategoryOutput, 0, len(grouped))}
	for _, cat := range doctor.Categories {
		indices, ok := grouped[cat]
		if !ok {
			continue
		}
		co := CategoryOutput{Name: cat, Results: make([]doctor.CheckResult, 0, len(indices))}
		for _, idx := range indices {
			co.Results = append(co.Results, results[idx])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText writes a human-readable report.
func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult, fixed bool) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("ybmetrics Diagnostic Report"))
	fmt.Fprintln(w)

	grouped := doctor.GroupByCategory(checks)
	for _, category := range doctor.Categories {
		indices, ok := grouped[category]
		if !ok {
			continue
		}

		fmt.Fprintln(w, headerStyle.Render(category))
		for _, idx := range indices {
			result := results[idx]

			symbol, style := ui.SymbolSuccess, successStyle
			switch result.Status {
			case doctor.StatusWarn:
				symbol, style = ui.SymbolWarning, warnStyle
			case doctor.StatusFail:
				symbol, style = ui.SymbolFail, errorStyle
			}

			fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)
			if result.Suggestion != "" && result.Status != doctor.StatusPass {
				for _, line := range strings.Split(result.Suggestion, "\n") {
					fmt.Fprintf(w, "    %s\n", mutedStyle.Render(line))
				}
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))
		if doctor.FixableCount(results) > 0 && !fixed {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Run with %s to attempt automatic fixes where possible.\n",
				mutedStyle.Render("--fix"))
		}
	}
	fmt.Fprintln(w)
}
