package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	// Disable colors if stdout is not a terminal
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Bold returns s emphasized if colors are enabled.
func Bold(s string) string { return paint(colorBold, s) }

// DefaultMaxNameWidth is the default maximum visible width for city name columns.
const DefaultMaxNameWidth = 40

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis.
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	// Expand colWidths if needed
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}

	// Update column widths based on visible width (excluding ANSI codes)
	for i, col := range cols {
		width := visibleWidth(col)
		// Cap the tracked width if a max is set for this column
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		if width > t.colWidths[i] {
			t.colWidths[i] = width
		}
	}

	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		var parts []string
		for i, col := range row {
			// Truncate if a max width is set for this column
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i < len(t.colWidths)-1 {
				// Pad all columns except the last
				padding := t.colWidths[i] - visibleWidth(col)
				parts = append(parts, col+strings.Repeat(" ", padding))
			} else {
				// Last column doesn't need padding
				parts = append(parts, col)
			}
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

// ellipsis marks a truncated cell.
const ellipsis = "…"

// Truncate returns s cut to at most maxWidth terminal cells, ending in an
// ellipsis when anything was dropped. Escape codes are kept intact and a
// colored cell is always closed with a reset. Below two cells there is no
// room for the ellipsis and s is cut hard.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	tail := ellipsis
	if maxWidth < 2 {
		tail = ""
	}
	out := ansi.Truncate(s, maxWidth, tail)
	if strings.Contains(s, "\033[") && !strings.HasSuffix(out, colorReset) {
		out += colorReset
	}
	return out
}

// visibleWidth returns the number of terminal cells s occupies, ignoring
// escape codes. Flag emoji and other wide graphemes count as two.
func visibleWidth(s string) int {
	return ansi.StringWidth(s)
}
