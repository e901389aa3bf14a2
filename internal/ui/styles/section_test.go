package styles

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func plainTheme(t *testing.T) *Theme {
	t.Helper()
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	th, err := NewTheme(ThemeConfig{}, WithRenderer(r))
	require.NoError(t, err)
	return th
}

func TestRenderSection(t *testing.T) {
	th := plainTheme(t)

	tests := []struct {
		name           string
		content        []string
		title          string
		hint           string
		width          int
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:         "title and hint",
			content:      []string{"ctrl+s  save"},
			title:        "Help",
			hint:         "ctrl+g to close",
			width:        40,
			wantContains: []string{"╭─ Help", "(ctrl+g to close)", "│ctrl+s  save", "╰"},
		},
		{
			name:           "empty title renders plain border",
			content:        []string{"Content"},
			width:          20,
			wantContains:   []string{"╭", "╮", "Content", "╯"},
			wantNotContain: []string{"╭─ "},
		},
		{
			name:         "minimum width",
			content:      []string{"A"},
			width:        3,
			wantContains: []string{"╭─╮", "│A│", "╰─╯"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := th.RenderSection(tt.content, tt.title, tt.hint, tt.width)
			for _, want := range tt.wantContains {
				require.Contains(t, result, want)
			}
			for _, notWant := range tt.wantNotContain {
				require.NotContains(t, result, notWant)
			}
		})
	}
}

func TestRenderSection_PadsToWidth(t *testing.T) {
	th := plainTheme(t)
	result := th.RenderSection([]string{"Short", "A bit longer"}, "T", "", 20)

	for _, line := range strings.Split(result, "\n") {
		require.Equal(t, 20, lipgloss.Width(line), "line %q", line)
	}
}

func TestRenderSection_WrapsLongLines(t *testing.T) {
	th := plainTheme(t)
	result := th.RenderSection([]string{"alpha beta gamma delta"}, "", "", 14)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "│alpha beta  │", lines[1])
	require.Equal(t, "│gamma delta │", lines[2])
}
