// Package search finds query matches in a rows.Store and marks the current
// one with a temporary syntax.Match overlay.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/rows"
)

// ErrInvalidQuery is returned when a query is not a valid regular expression.
var ErrInvalidQuery = errors.New("invalid search query")

// Compile parses query as a regular expression. A query with no upper-case
// letters matches case-insensitively.
func Compile(query string) (*regexp.Regexp, error) {
	expr := query
	if !hasUpper(query) {
		expr = "(?i)" + query
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return re, nil
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Match is the position of a match in character space.
type Match struct {
	Row int
	// Start and End are character indices; End is exclusive.
	Start int
	End   int
}

// Finder walks matches of one query through a store, one row at a time.
type Finder struct {
	store *rows.Store
	re    *regexp.Regexp
	query string
	cur   Match
	found bool

	overlayRow int
	saved      rows.Saved
}

// NewFinder creates a finder over store.
func NewFinder(store *rows.Store) *Finder {
	return &Finder{store: store}
}

// Query returns the last query passed to Find.
func (f *Finder) Query() string { return f.query }

// Current returns the match the finder is positioned on.
func (f *Finder) Current() (Match, bool) { return f.cur, f.found }

// Find compiles query and positions on its first match at or after row from,
// wrapping to the top. An empty query clears the overlay and matches nothing.
// On an invalid query the store is left untouched.
func (f *Finder) Find(query string, from int) (Match, bool, error) {
	if query == "" {
		f.clear()
		f.query, f.re = "", nil
		return Match{}, false, nil
	}
	re, err := Compile(query)
	if err != nil {
		return Match{}, false, err
	}
	f.clear()
	f.query, f.re = query, re
	return f.step(from-1, 1)
}

// Next moves to the next row containing a match, wrapping at the end.
func (f *Finder) Next() (Match, bool) {
	m, ok, _ := f.step(f.cur.Row, 1)
	return m, ok
}

// Prev moves to the previous row containing a match, wrapping at the start.
func (f *Finder) Prev() (Match, bool) {
	m, ok, _ := f.step(f.cur.Row, -1)
	return m, ok
}

// Close removes the overlay. The finder may be reused with Find.
func (f *Finder) Close() {
	f.clear()
	f.re = nil
}

func (f *Finder) step(from, dir int) (Match, bool, error) {
	f.restore()
	n := f.store.Len()
	if f.re == nil || n == 0 {
		f.found = false
		return Match{}, false, nil
	}

	at := from
	for range n {
		at += dir
		if at < 0 {
			at = n - 1
		} else if at >= n {
			at = 0
		}
		content := f.store.Content(at)
		loc := f.re.FindStringIndex(content)
		if loc == nil {
			continue
		}
		m := Match{
			Row:   at,
			Start: utf8.RuneCountInString(content[:loc[0]]),
			End:   utf8.RuneCountInString(content[:loc[1]]),
		}
		f.cur, f.found = m, true
		f.mark(m)
		log.Debug(log.CatSearch, "match", "query", f.query, "row", m.Row, "start", m.Start)
		return m, true, nil
	}

	f.found = false
	log.Debug(log.CatSearch, "no match", "query", f.query)
	return Match{}, false, nil
}

// mark overlays the render units covering m.
func (f *Finder) mark(m Match) {
	if m.End <= m.Start {
		return
	}
	start := f.store.CharToRender(m.Row, m.Start)
	end := f.store.CharToRender(m.Row, m.End) - 1
	f.overlayRow = m.Row
	f.saved = f.store.ApplyTemporaryHighlight(m.Row, start, end)
}

func (f *Finder) restore() {
	if f.saved.Valid() {
		f.store.RestoreHighlight(f.overlayRow, f.saved)
		f.saved = rows.Saved{}
	}
}

func (f *Finder) clear() {
	f.restore()
	f.cur, f.found = Match{}, false
}

// Highlighted reports whether row at currently carries the match overlay.
func (f *Finder) Highlighted(at int) bool {
	return f.saved.Valid() && f.overlayRow == at
}

// Describe formats a match for the message bar.
func Describe(query string, m Match, ok bool) string {
	if !ok {
		return fmt.Sprintf("Search: %s (no match)", query)
	}
	return fmt.Sprintf("Search: %s (line %d, col %d)", query, m.Row+1, m.Start+1)
}
