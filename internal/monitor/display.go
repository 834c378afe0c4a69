package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/premkumr/ybmetrics/internal/ui"
)

// TerminalDisplay prints tables to a writer and waits with a countdown bar.
type TerminalDisplay struct {
	out       io.Writer
	countdown *ui.Countdown
}

// NewTerminalDisplay writes tables to out. The countdown bar is drawn only
// when animate is set, typically when out is a terminal.
func NewTerminalDisplay(out io.Writer, animate bool) *TerminalDisplay {
	var bar io.Writer
	if animate {
		bar = out
	}
	return &TerminalDisplay{out: out, countdown: ui.NewCountdown(bar)}
}

func (d *TerminalDisplay) Show(header string, t *Table) error {
	if _, err := fmt.Fprintln(d.out, header); err != nil {
		return err
	}
	if err := ui.PrintTable(d.out, t.Data()); err != nil {
		return err
	}
	_, err := fmt.Fprint(d.out, "\n\n")
	return err
}

func (d *TerminalDisplay) Wait(ctx context.Context, interval time.Duration) error {
	return d.countdown.Run(ctx, interval)
}

// Data converts t for the ui table printer.
func (t *Table) Data() ui.TableData {
	align := make([]lipgloss.Position, len(t.Align))
	for i, a := range t.Align {
		align[i] = a.Position()
	}
	return ui.TableData{
		Headers: t.Headers,
		Align:   align,
		Rows:    t.Rows,
		Footer:  t.Total,
	}
}

// Position maps a to its lipgloss equivalent.
func (a Alignment) Position() lipgloss.Position {
	switch a {
	case AlignRight:
		return lipgloss.Right
	case AlignCenter:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}
