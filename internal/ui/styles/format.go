package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return truncate.String(s, uint(maxWidth))
	}
	return truncate.StringWithTail(s, uint(maxWidth), "...")
}

// TruncateLeft keeps the end of s, which is the informative part of a path.
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	keep := maxWidth - 3
	if keep < 1 {
		return TruncateString(s, maxWidth)
	}
	for i := range runes {
		if lipgloss.Width(string(runes[i:])) <= keep {
			return "..." + string(runes[i:])
		}
	}
	return "..."
}
