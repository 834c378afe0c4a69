package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/premkumr/ybmetrics/internal/logger"
)

// Display receives rendered tables and paces the loop between polls.
type Display interface {
	Show(header string, t *Table) error
	// Wait blocks for d, returning early with ctx.Err() on cancellation.
	Wait(ctx context.Context, d time.Duration) error
}

// Loop is the poll, diff, render, display cycle.
type Loop struct {
	Collector *Collector
	History   *History
	Hosts     []string
	Options   RenderOptions
	Vertical  bool
	Interval  time.Duration
	Display   Display
	Log       logger.Logger

	printCount int
}

// Run cycles until ctx is cancelled, which is not an error.
// Store failures end the loop.
func (l *Loop) Run(ctx context.Context) error {
	if l.Log == nil {
		l.Log = logger.Noop()
	}
	l.Log.Debug("monitoring %d hosts every %s", len(l.Hosts), l.Interval)

	for {
		if _, err := l.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := l.Display.Wait(ctx, l.Interval); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Cycle runs one pass and reports whether anything was shown. Nothing is
// shown when the snapshot is unchanged or the delta has no rows.
func (l *Loop) Cycle(ctx context.Context) (bool, error) {
	snap, err := l.Collector.Collect(ctx, l.Hosts)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}

	var previous map[string]Entity
	if p := l.History.Previous(); p != nil {
		previous = p.Entities
	}

	delta := Diff(snap.Entities, previous)
	if len(delta) == 0 {
		return false, nil
	}

	var t *Table
	if l.Vertical {
		t = RenderTall(delta, l.Options)
	} else {
		t = RenderWide(delta, l.Options)
	}
	if t == nil {
		return false, nil
	}

	l.printCount++
	return true, l.Display.Show(Header(l.printCount, l.Collector.Unreachable()), t)
}

// PrintCount is the number of tables shown so far.
func (l *Loop) PrintCount() int {
	return l.printCount
}

// Header is the line printed above each table: a running counter followed
// by the hosts that could not be reached.
func Header(n int, unreachable []string) string {
	h := fmt.Sprintf(">>> %d", n)
	if len(unreachable) > 0 {
		h += fmt.Sprintf(" : [unable to fetch from %v", unreachable)
	}
	return h
}
