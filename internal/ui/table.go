package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableData is a fully formatted table: every cell is already a string.
// Footer, when set, is appended as a final emphasized row.
type TableData struct {
	Headers []string
	Align   []lipgloss.Position
	Rows    [][]string
	Footer  []string
}

// PrestoBorder draws only column separators and a rule under the header.
var PrestoBorder = lipgloss.Border{
	Top:          "-",
	Bottom:       "-",
	Left:         "|",
	Right:        "|",
	Middle:       "+",
	MiddleLeft:   "+",
	MiddleRight:  "+",
	MiddleTop:    "+",
	MiddleBottom: "+",
	TopLeft:      "+",
	TopRight:     "+",
	BottomLeft:   "+",
	BottomRight:  "+",
}

// TableStyle provides consistent styling for tables across the CLI.
type TableStyle struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Footer lipgloss.Style
	Border lipgloss.Style
}

// DefaultTableStyle returns the default table styling.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInfo).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// RenderTable renders d as a presto-style table.
func RenderTable(d TableData) string {
	if len(d.Headers) == 0 {
		return ""
	}

	style := DefaultTableStyle()
	footerRow := -1
	rows := d.Rows
	if len(d.Footer) > 0 {
		footerRow = len(rows)
		rows = append(rows[:len(rows):len(rows)], d.Footer)
	}

	t := table.New().
		Border(PrestoBorder).
		BorderStyle(style.Border).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(true).
		Headers(d.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch row {
			case table.HeaderRow:
				s = style.Header
			case footerRow:
				s = style.Footer
			default:
				s = style.Cell
			}
			return s.Align(alignAt(d.Align, col))
		})

	return t.String()
}

// PrintTable writes the rendered table followed by a newline.
func PrintTable(w io.Writer, d TableData) error {
	out := RenderTable(d)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func alignAt(align []lipgloss.Position, col int) lipgloss.Position {
	if col >= 0 && col < len(align) {
		return align[col]
	}
	return lipgloss.Left
}
