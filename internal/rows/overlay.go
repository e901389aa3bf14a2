package rows

import (
	"slices"

	"github.com/zjrosen/quill/internal/syntax"
)

// Saved is the classification of a row captured before a temporary overlay.
type Saved struct {
	id  uint64
	rev uint64
	hl  []syntax.Highlight
}

// Valid reports whether s holds a capture.
func (s Saved) Valid() bool { return s.id != 0 }

// ApplyTemporaryHighlight marks render units [start, end] of row at as
// syntax.Match without re-running the scan. The returned value restores the
// previous classification through RestoreHighlight.
func (s *Store) ApplyTemporaryHighlight(at, start, end int) Saved {
	if !s.inRange(at) {
		return Saved{}
	}
	row := s.rows[at]
	start = max(0, start)
	end = min(end, len(row.hl)-1)
	saved := Saved{id: row.id, hl: slices.Clone(row.hl)}
	for i := start; i <= end; i++ {
		row.hl[i] = syntax.Match
	}
	row.rev++
	saved.rev = row.rev
	return saved
}

// RestoreHighlight reverts an overlay made by ApplyTemporaryHighlight.
// It does nothing when row at is not the row that was captured, or when the
// row has been re-derived since, because its classification is fresh.
func (s *Store) RestoreHighlight(at int, saved Saved) {
	if !saved.Valid() || !s.inRange(at) {
		return
	}
	row := s.rows[at]
	if row.id != saved.id || row.rev != saved.rev || len(row.hl) != len(saved.hl) {
		return
	}
	copy(row.hl, saved.hl)
	row.rev++
}
