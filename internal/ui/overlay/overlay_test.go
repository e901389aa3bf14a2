package overlay

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func screen(n int, line string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = line
	}
	return out
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		panel  string
		width  int
		anchor Anchor
		want   []string
	}{
		{
			name:   "center",
			lines:  screen(3, "AAAAA"),
			panel:  "X",
			width:  5,
			anchor: Center,
			want:   []string{"AAAAA", "AAXAA", "AAAAA"},
		},
		{
			name:   "bottom",
			lines:  screen(4, "AAAAAA"),
			panel:  "XX\nYY",
			width:  6,
			anchor: Bottom,
			want:   []string{"AAAAAA", "AAAAAA", "AAXXAA", "AAYYAA"},
		},
		{
			name:   "short background lines are padded",
			lines:  []string{"~", "~", "~"},
			panel:  "XX",
			width:  6,
			anchor: Center,
			want:   []string{"~", "~ XX", "~"},
		},
		{
			name:   "panel wider than screen is clipped",
			lines:  screen(2, "AAA"),
			panel:  "XXXXX",
			width:  3,
			anchor: Bottom,
			want:   []string{"AAA", "XXX"},
		},
		{
			name:   "panel taller than screen is clipped",
			lines:  screen(2, "AAA"),
			panel:  "1\n2\n3",
			width:  3,
			anchor: Center,
			want:   []string{"A1A", "A2A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.lines, tt.panel, tt.width, tt.anchor)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPlace_KeepsBackgroundStyling(t *testing.T) {
	bg := "\x1b[31mRRRRR\x1b[0m"

	got := Place([]string{bg}, "X", 5, Center)

	require.Equal(t, "RRXRR", ansi.Strip(got[0]))
	require.Contains(t, got[0], "\x1b[31m")
}
