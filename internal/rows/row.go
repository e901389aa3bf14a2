// Package rows holds the text of a file as an ordered list of rows.
//
// Each Row keeps its raw content plus data derived from it: the tab-expanded
// render units, one syntax.Highlight per render unit and the lexical state the
// row leaves for its successor. Store is the only writer. Every mutation
// re-derives the touched row and then walks forward while the trailing state
// keeps changing, so readers never see derived data that is stale relative to
// any row above it.
//
// Store is not safe for concurrent use. Hosts that need concurrency must
// serialise all calls themselves.
package rows

import "github.com/zjrosen/quill/internal/syntax"

// Row is one line of the file.
type Row struct {
	id      uint64
	rev     uint64
	content []rune
	render  []rune
	hl      []syntax.Highlight
	// leading is the state this row was derived with; trailing is what it
	// leaves for the next row.
	leading  syntax.State
	trailing syntax.State
}

// derive recomputes render, hl and trailing from content.
func (r *Row) derive(tabStop int, rules *syntax.RuleSet, in syntax.State) {
	r.render = Render(r.content, tabStop)
	r.hl, r.trailing = syntax.Scan(r.render, rules, in)
	r.leading = in
	r.rev++
}

// ID is unique within the Store that created the row.
func (r *Row) ID() uint64 { return r.id }

// Revision increases every time the derived data is recomputed.
func (r *Row) Revision() uint64 { return r.rev }

// Trailing returns the lexical state left for the next row.
func (r *Row) Trailing() syntax.State { return r.trailing }
