package rows

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraphemeBoundaries(t *testing.T) {
	s := New()
	// "a", "e" + combining acute, family emoji joined by ZWJ, "z"
	s.Load([]string{"ae\u0301\U0001F468\u200D\U0001F469z"})
	n := s.RuneCount(0)
	require.Equal(t, 7, n)

	tests := []struct {
		name     string
		ci       int
		wantNext int
		wantPrev int
	}{
		{"start", 0, 1, 0},
		{"before combined e", 1, 3, 0},
		{"inside combined e", 2, 3, 1},
		{"before emoji", 3, 6, 1},
		{"inside emoji", 4, 6, 3},
		{"before z", 6, 7, 3},
		{"end", 7, 7, 6},
		{"past end", 20, 7, 6},
		{"negative", -2, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantNext, s.NextGraphemeBoundary(0, tt.ci))
			require.Equal(t, tt.wantPrev, s.PrevGraphemeBoundary(0, tt.ci))
		})
	}
}

func TestGraphemeBoundaries_EmptyAndMissingRows(t *testing.T) {
	s := New()
	s.Load([]string{""})
	require.Equal(t, 0, s.NextGraphemeBoundary(0, 0))
	require.Equal(t, 0, s.PrevGraphemeBoundary(0, 0))
	require.Equal(t, 0, s.NextGraphemeBoundary(3, 0))
	require.Equal(t, 0, s.PrevGraphemeBoundary(-1, 2))
}
