// Package ui provides terminal output components for ybmetrics.
//
// Everything here writes plain text to an io.Writer; there is no
// interactive screen. Styling goes through Lip Gloss so that --no-color and
// non-terminal output degrade to ASCII.
//
// # Components Overview
//
//	PrintTable  - presto-style table (header rule, "|" column separators)
//	Countdown   - shrinking bar drawn on one line between polls
//	RenderBar   - the bar primitive used by Countdown
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Hosts back online
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Unreachable hosts, countdown ending
//	ColorInfo      (cyan)   - Total rows
//	ColorMuted     (gray)   - Borders, countdown bar
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
//
// # Tables
//
//	ui.PrintTable(os.Stdout, ui.TableData{
//		Headers: []string{"table", "tablet", "leader"},
//		Align:   []lipgloss.Position{lipgloss.Left, lipgloss.Left, lipgloss.Center},
//		Rows:    rows,
//	})
//
// # Countdown
//
//	cd := ui.NewCountdown(os.Stdout)
//	if err := cd.Run(ctx, 5*time.Second); err != nil {
//		// ctx was cancelled
//	}
package ui
