package rows

import "github.com/rivo/uniseg"

// Character indices count runes, but a user-perceived character may span
// several of them (a base letter plus combining marks, a ZWJ emoji). The
// cursor moves across whole clusters so it never rests inside one.

// NextGraphemeBoundary returns the character index of the first cluster
// boundary after ci in row at.
func (s *Store) NextGraphemeBoundary(at, ci int) int {
	if !s.inRange(at) {
		return 0
	}
	return nextBoundary(s.rows[at].content, ci)
}

// PrevGraphemeBoundary returns the character index of the last cluster
// boundary before ci in row at.
func (s *Store) PrevGraphemeBoundary(at, ci int) int {
	if !s.inRange(at) {
		return 0
	}
	return prevBoundary(s.rows[at].content, ci)
}

func nextBoundary(content []rune, ci int) int {
	if ci >= len(content) {
		return len(content)
	}
	ci = max(ci, 0)
	pos := 0
	rest := string(content)
	state := -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		pos += len([]rune(cluster))
		if pos > ci {
			return pos
		}
		rest, state = next, newState
	}
	return len(content)
}

func prevBoundary(content []rune, ci int) int {
	if ci <= 0 {
		return 0
	}
	ci = min(ci, len(content))
	pos, prev := 0, 0
	rest := string(content)
	state := -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		if pos >= ci {
			break
		}
		prev = pos
		pos += len([]rune(cluster))
		rest, state = next, newState
	}
	return prev
}
