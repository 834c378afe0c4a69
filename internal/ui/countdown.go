package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Countdown blocks for an interval while drawing a shrinking bar on a
// single terminal line, one step per tick.
type Countdown struct {
	out  io.Writer
	tick time.Duration
}

// NewCountdown creates a countdown drawing to out. A nil out waits
// silently, which suits non-terminal output.
func NewCountdown(out io.Writer) *Countdown {
	return &Countdown{out: out, tick: time.Second}
}

// SetTick changes the step length. Mostly useful in tests.
func (c *Countdown) SetTick(d time.Duration) {
	if d > 0 {
		c.tick = d
	}
}

// Run waits for d and returns nil, or returns ctx.Err() as soon as ctx is
// cancelled. The bar is erased before returning.
func (c *Countdown) Run(ctx context.Context, d time.Duration) error {
	steps := int(d / c.tick)
	if steps < 1 {
		steps = 1
	}
	cfg := CountdownBarConfig(steps)

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	defer c.clear(cfg.Width)

	for n := steps; n > 0; n-- {
		c.draw(RenderBar(float64(n)/float64(steps)*100, cfg))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (c *Countdown) draw(bar string) {
	if c.out == nil {
		return
	}
	fmt.Fprintf(c.out, "\r%s", bar)
}

func (c *Countdown) clear(width int) {
	if c.out == nil {
		return
	}
	fmt.Fprintf(c.out, "\r%s\r", strings.Repeat(" ", width))
}
