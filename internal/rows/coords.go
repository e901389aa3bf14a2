package rows

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// DefaultTabStop is the tab width used when none is configured.
const DefaultTabStop = 8

// Three positional spaces exist for a row, all measured from its start:
//
//   - character index (ci): count of runes in the row's content
//   - render index (ri):    count of render units; a tab expands to the next tab stop
//   - screen column (sc):   sum of display widths of the render units
//
// The functions below convert between them. They are pure and only read
// content, so they never observe half-derived row state.

// tabWidth is the number of render units a tab at render offset ri expands to.
func tabWidth(ri, tabStop int) int {
	return tabStop - ri%tabStop
}

// narrow treats East Asian ambiguous characters as one cell regardless of
// the locale, so screen columns do not depend on the environment.
var narrow = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// RuneWidth returns the screen width of a single non-tab rune.
// Control characters are drawn as one substitute cell.
func RuneWidth(r rune) int {
	if unicode.IsControl(r) {
		return 1
	}
	return narrow.RuneWidth(r)
}

// CharToRender converts a character index into a render index.
func CharToRender(content []rune, ci, tabStop int) int {
	ci = min(ci, len(content))
	ri := 0
	for _, r := range content[:max(ci, 0)] {
		if r == '\t' {
			ri += tabWidth(ri, tabStop)
		} else {
			ri++
		}
	}
	return ri
}

// CharToScreen converts a character index into a screen column.
// Tab expansion follows the render index, each expanded unit is one column wide.
func CharToScreen(content []rune, ci, tabStop int) int {
	ci = min(ci, len(content))
	ri, sc := 0, 0
	for _, r := range content[:max(ci, 0)] {
		if r == '\t' {
			n := tabWidth(ri, tabStop)
			ri += n
			sc += n
			continue
		}
		ri++
		sc += RuneWidth(r)
	}
	return sc
}

// ScreenToChar converts a screen column back to a character index.
// It returns the index just past the character whose cumulative width first
// reaches col, or len(content) when the row is narrower than col.
func ScreenToChar(content []rune, col, tabStop int) int {
	if col <= 0 || len(content) == 0 {
		return 0
	}
	ri, sc := 0, 0
	for i, r := range content {
		if r == '\t' {
			n := tabWidth(ri, tabStop)
			ri += n
			sc += n
		} else {
			ri++
			sc += RuneWidth(r)
		}
		if sc >= col {
			return i + 1
		}
	}
	return len(content)
}

// RenderToChar converts a render index to the character index whose render
// units contain it. Offsets past the end clamp to len(content).
func RenderToChar(content []rune, ri, tabStop int) int {
	if ri <= 0 {
		return 0
	}
	cur := 0
	for i, r := range content {
		if r == '\t' {
			cur += tabWidth(cur, tabStop)
		} else {
			cur++
		}
		if cur > ri {
			return i
		}
	}
	return len(content)
}

// Render expands content into render units.
func Render(content []rune, tabStop int) []rune {
	tabs := 0
	for _, r := range content {
		if r == '\t' {
			tabs++
		}
	}
	if tabs == 0 {
		return append([]rune(nil), content...)
	}
	out := make([]rune, 0, len(content)+tabs*(tabStop-1))
	for _, r := range content {
		if r != '\t' {
			out = append(out, r)
			continue
		}
		for n := tabWidth(len(out), tabStop); n > 0; n-- {
			out = append(out, ' ')
		}
	}
	return out
}
