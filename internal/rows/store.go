package rows

import (
	"slices"
	"strings"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/syntax"
)

// Span is an inclusive range of row indices.
type Span struct {
	First, Last int
}

// Empty reports whether the span covers no rows.
func (s Span) Empty() bool { return s.Last < s.First }

var emptySpan = Span{First: 0, Last: -1}

// Store is the ordered list of rows of one file.
type Store struct {
	rows     []*Row
	tabStop  int
	table    *syntax.Table
	rules    *syntax.RuleSet
	modified bool
	nextID   uint64
	last     Span
}

// Option configures a Store.
type Option func(*Store)

// WithTabStop sets the tab width. Values below 1 fall back to DefaultTabStop.
func WithTabStop(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.tabStop = n
		}
	}
}

// WithTable sets the filetype table used by DetectFiletype.
func WithTable(t *syntax.Table) Option {
	return func(s *Store) {
		s.table = t
	}
}

// New creates an empty store. Without WithTable the built-in table is used.
func New(opts ...Option) *Store {
	s := &Store{tabStop: DefaultTabStop, last: emptySpan}
	for _, opt := range opts {
		opt(s)
	}
	if s.table == nil {
		// The built-in table is static and always valid.
		s.table, _ = syntax.DefaultTable()
	}
	return s
}

// TabStop returns the configured tab width.
func (s *Store) TabStop() int { return s.tabStop }

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.rows) }

// Modified reports whether the rows changed since the last Load or MarkSaved.
func (s *Store) Modified() bool { return s.modified }

// MarkSaved clears the modified flag.
func (s *Store) MarkSaved() { s.modified = false }

// LastUpdate returns the rows re-derived by the most recent mutation.
func (s *Store) LastUpdate() Span { return s.last }

// Filetype returns the name of the active rule set, or "" when none.
func (s *Store) Filetype() string {
	if s.rules == nil {
		return ""
	}
	return s.rules.Name
}

// Rules returns the active rule set, or nil.
func (s *Store) Rules() *syntax.RuleSet { return s.rules }

func (s *Store) inRange(at int) bool {
	return at >= 0 && at < len(s.rows)
}

func (s *Store) incoming(at int) syntax.State {
	if at == 0 {
		return syntax.Initial
	}
	return s.rows[at-1].trailing
}

func (s *Store) newRow(text string) *Row {
	s.nextID++
	return &Row{id: s.nextID, content: []rune(text)}
}

// update re-derives row at and propagates forward.
func (s *Store) update(at int) {
	s.rows[at].derive(s.tabStop, s.rules, s.incoming(at))
	last := s.settle(at + 1)
	s.last = Span{First: at, Last: max(at, last)}
}

// settle walks forward from row at, re-deriving each row whose leading state
// no longer matches its predecessor's trailing state. It stops at the first
// row that is already consistent and returns the index of the last row it
// re-derived, or at-1 when none needed it.
func (s *Store) settle(at int) int {
	i := at
	for ; i < len(s.rows); i++ {
		in := s.incoming(i)
		if s.rows[i].leading == in {
			break
		}
		s.rows[i].derive(s.tabStop, s.rules, in)
	}
	if n := i - at; n > 1 {
		log.Debug(log.CatRows, "propagated lexical state", "from", at, "rows", n)
	}
	return i - 1
}

// Load replaces every row with lines and clears the modified flag.
func (s *Store) Load(lines []string) {
	s.rows = make([]*Row, 0, len(lines))
	for _, line := range lines {
		row := s.newRow(line)
		row.derive(s.tabStop, s.rules, s.incoming(len(s.rows)))
		s.rows = append(s.rows, row)
	}
	s.modified = false
	s.last = Span{First: 0, Last: len(s.rows) - 1}
}

// InsertRow inserts a row at index at, clamped to [0, Len()].
func (s *Store) InsertRow(at int, text string) {
	at = max(0, min(at, len(s.rows)))
	s.rows = slices.Insert(s.rows, at, s.newRow(text))
	s.update(at)
	s.modified = true
}

// DeleteRow removes row at. Out of range indices are ignored.
func (s *Store) DeleteRow(at int) {
	if !s.inRange(at) {
		return
	}
	s.rows = slices.Delete(s.rows, at, at+1)
	s.modified = true
	last := s.settle(at)
	s.last = Span{First: at, Last: last}
}

// SetRowContent replaces the content of row at.
func (s *Store) SetRowContent(at int, text string) {
	if !s.inRange(at) {
		return
	}
	s.rows[at].content = []rune(text)
	s.update(at)
	s.modified = true
}

// AppendToRow appends text to the end of row at.
func (s *Store) AppendToRow(at int, text string) {
	if !s.inRange(at) {
		return
	}
	s.rows[at].content = append(s.rows[at].content, []rune(text)...)
	s.update(at)
	s.modified = true
}

// InsertRune inserts r into row at before character index ci.
// ci is clamped to the row.
func (s *Store) InsertRune(at, ci int, r rune) {
	if !s.inRange(at) {
		return
	}
	row := s.rows[at]
	ci = max(0, min(ci, len(row.content)))
	row.content = slices.Insert(row.content, ci, r)
	s.update(at)
	s.modified = true
}

// DeleteRune removes the character at index ci of row at.
func (s *Store) DeleteRune(at, ci int) {
	if !s.inRange(at) {
		return
	}
	row := s.rows[at]
	if ci < 0 || ci >= len(row.content) {
		return
	}
	row.content = slices.Delete(row.content, ci, ci+1)
	s.update(at)
	s.modified = true
}

// SplitRow breaks row at before character index ci. The text from ci onward
// becomes a new row below. Splitting at Len() appends an empty row.
func (s *Store) SplitRow(at, ci int) {
	if at == len(s.rows) {
		s.InsertRow(at, "")
		return
	}
	if !s.inRange(at) {
		return
	}
	content := s.rows[at].content
	ci = max(0, min(ci, len(content)))
	if ci == 0 {
		s.InsertRow(at, "")
		return
	}
	head, tail := string(content[:ci]), string(content[ci:])
	s.InsertRow(at+1, tail)
	s.SetRowContent(at, head)
	s.last.Last = max(s.last.Last, at+1)
}

// JoinWithPrevious appends row at to row at-1 and removes it.
func (s *Store) JoinWithPrevious(at int) {
	if at <= 0 || !s.inRange(at) {
		return
	}
	tail := string(s.rows[at].content)
	// Remove first so the append below propagates over the final layout.
	s.rows = slices.Delete(s.rows, at, at+1)
	s.AppendToRow(at-1, tail)
}

// DetectFiletype selects the rule set for filename and re-derives every row.
func (s *Store) DetectFiletype(filename string) {
	s.rules = s.table.Match(filename)
	for i, row := range s.rows {
		row.derive(s.tabStop, s.rules, s.incoming(i))
	}
	s.last = Span{First: 0, Last: len(s.rows) - 1}
	log.Debug(log.CatSyntax, "filetype selected", "file", filename, "filetype", s.Filetype(), "rows", len(s.rows))
}

// Row returns row at for read-only inspection, or nil when out of range.
func (s *Store) Row(at int) *Row {
	if !s.inRange(at) {
		return nil
	}
	return s.rows[at]
}

// Content returns the raw text of row at.
func (s *Store) Content(at int) string {
	if !s.inRange(at) {
		return ""
	}
	return string(s.rows[at].content)
}

// RuneCount returns the number of characters in row at.
func (s *Store) RuneCount(at int) int {
	if !s.inRange(at) {
		return 0
	}
	return len(s.rows[at].content)
}

// RenderLen returns the number of render units of row at.
func (s *Store) RenderLen(at int) int {
	if !s.inRange(at) {
		return 0
	}
	return len(s.rows[at].render)
}

// RenderSlice returns up to count render units of row at starting at
// start, together with their highlights. Both slices are copies.
func (s *Store) RenderSlice(at, start, count int) (string, []syntax.Highlight) {
	if !s.inRange(at) || count <= 0 {
		return "", nil
	}
	row := s.rows[at]
	start = max(0, min(start, len(row.render)))
	count = min(count, len(row.render)-start)
	end := start + count
	return string(row.render[start:end]), slices.Clone(row.hl[start:end])
}

// Lines returns the raw content of every row.
func (s *Store) Lines() []string {
	out := make([]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = string(row.content)
	}
	return out
}

// String joins all rows, terminating each with a newline.
func (s *Store) String() string {
	var sb strings.Builder
	for _, row := range s.rows {
		sb.WriteString(string(row.content))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CharToRender converts a character index of row at into a render index.
func (s *Store) CharToRender(at, ci int) int {
	if !s.inRange(at) {
		return 0
	}
	return CharToRender(s.rows[at].content, ci, s.tabStop)
}

// CharToScreen converts a character index of row at into a screen column.
func (s *Store) CharToScreen(at, ci int) int {
	if !s.inRange(at) {
		return 0
	}
	return CharToScreen(s.rows[at].content, ci, s.tabStop)
}

// ScreenToChar converts a screen column of row at into a character index.
func (s *Store) ScreenToChar(at, col int) int {
	if !s.inRange(at) {
		return 0
	}
	return ScreenToChar(s.rows[at].content, col, s.tabStop)
}

// RenderToChar converts a render index of row at into a character index.
func (s *Store) RenderToChar(at, ri int) int {
	if !s.inRange(at) {
		return 0
	}
	return RenderToChar(s.rows[at].content, ri, s.tabStop)
}
