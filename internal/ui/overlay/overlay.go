// Package overlay draws a panel over already rendered screen lines.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Anchor is where the panel is placed.
type Anchor int

const (
	// Center places the panel in the middle of the screen.
	Center Anchor = iota
	// Bottom places the panel against the last line, centered horizontally.
	Bottom
)

// Place writes panel over lines, which are width cells wide. Styling on
// both sides of the panel is kept. Panel lines that do not fit are clipped.
// lines is modified in place and returned.
func Place(lines []string, panel string, width int, anchor Anchor) []string {
	fg := strings.Split(panel, "\n")
	if len(fg) > len(lines) {
		fg = fg[:len(lines)]
	}
	fgWidth := 0
	for _, l := range fg {
		fgWidth = max(fgWidth, ansi.StringWidth(l))
	}
	fgWidth = min(fgWidth, width)

	x := max((width-fgWidth)/2, 0)
	y := 0
	switch anchor {
	case Bottom:
		y = len(lines) - len(fg)
	default:
		y = (len(lines) - len(fg)) / 2
	}
	y = max(y, 0)

	for i, l := range fg {
		lines[y+i] = splice(lines[y+i], ansi.Truncate(l, width-x, ""), x)
	}
	return lines
}

// splice replaces the cells of bg starting at x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	right := ""
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}
