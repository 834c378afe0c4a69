package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Countdown bar characters. The bar shrinks as time runs out.
const (
	BarFilled = '-'
	BarEmpty  = ' '
)

// MaxBarWidth caps the countdown bar for long intervals.
const MaxBarWidth = 60

// ProgressColorFunc returns a color for a remaining percentage.
type ProgressColorFunc func(percent float64) lipgloss.Color

// ProgressColorRemaining goes from muted to warning as the wait ends.
func ProgressColorRemaining(percent float64) lipgloss.Color {
	if percent <= 20 {
		return ColorWarning
	}
	return ColorMuted
}

// BarConfig configures progress bar rendering.
type BarConfig struct {
	Width     int               // Width of the bar in characters
	Brackets  bool              // Whether to wrap bar in [ ]
	ColorFunc ProgressColorFunc // Function to determine bar color
}

// CountdownBarConfig returns a bar config sized for an interval of the
// given number of seconds.
func CountdownBarConfig(seconds int) BarConfig {
	return BarConfig{
		Width:     min(max(seconds, 1), MaxBarWidth),
		ColorFunc: ProgressColorRemaining,
	}
}

// ClampPercent clamps a percentage to the 0-100 range.
func ClampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// BuildBarString builds the raw bar string (without styling) from filled/empty counts.
// If brackets is true, wraps in [ ].
func BuildBarString(filledCount, emptyCount int, brackets bool) string {
	var sb strings.Builder
	sb.Grow(filledCount + emptyCount + 2)

	if brackets {
		sb.WriteRune('[')
	}
	for i := 0; i < filledCount; i++ {
		sb.WriteRune(BarFilled)
	}
	for i := 0; i < emptyCount; i++ {
		sb.WriteRune(BarEmpty)
	}
	if brackets {
		sb.WriteRune(']')
	}

	return sb.String()
}

// CalculateBarCounts returns the number of filled and empty characters for a bar.
// Percent should be 0-100, width is the total bar width.
func CalculateBarCounts(percent float64, width int) (filled, empty int) {
	filled = int((percent / 100.0) * float64(width))
	empty = width - filled
	return
}

// RenderBar renders a progress bar with the given configuration.
// Percent should be 0-100.
func RenderBar(percent float64, config BarConfig) string {
	if config.Width <= 0 {
		return ""
	}

	percent = ClampPercent(percent)
	filled, empty := CalculateBarCounts(percent, config.Width)
	bar := BuildBarString(filled, empty, config.Brackets)

	if config.ColorFunc != nil {
		bar = lipgloss.NewStyle().Foreground(config.ColorFunc(percent)).Render(bar)
	}

	return bar
}
