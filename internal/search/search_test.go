package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/rows"
	"github.com/zjrosen/quill/internal/syntax"
)

func newStore(t *testing.T, lines ...string) *rows.Store {
	t.Helper()
	s := rows.New()
	s.Load(lines)
	s.DetectFiletype("main.c")
	return s
}

// marks renders which render units of row at carry the Match tag.
func marks(s *rows.Store, at int) string {
	_, hl := s.RenderSlice(at, 0, s.RenderLen(at))
	var sb strings.Builder
	for _, h := range hl {
		if h == syntax.Match {
			sb.WriteByte('*')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func TestCompile(t *testing.T) {
	re, err := Compile("foo")
	require.NoError(t, err)
	require.True(t, re.MatchString("a FOO b"), "lower-case query ignores case")

	re, err = Compile("Foo")
	require.NoError(t, err)
	require.False(t, re.MatchString("foo"))

	_, err = Compile("a(")
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestFinder_FindAppliesOverlay(t *testing.T) {
	s := newStore(t, "int a;", "\tfoo = 1;", "foo();")
	f := NewFinder(s)

	m, ok, err := f.Find("foo", 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Match{Row: 1, Start: 1, End: 4}, m)
	require.Equal(t, "........***.....", marks(s, 1), "overlay covers render units after the tab")
	require.True(t, f.Highlighted(1))

	f.Close()
	require.Equal(t, strings.Repeat(".", 16), marks(s, 1))
	require.False(t, f.Highlighted(1))
}

func TestFinder_NextPrevWrap(t *testing.T) {
	s := newStore(t, "x", "foo", "y", "foo")
	f := NewFinder(s)

	m, ok, err := f.Find("foo", 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, m.Row)

	m, ok = f.Next()
	require.True(t, ok)
	require.Equal(t, 1, m.Row, "wraps to the top")
	require.Equal(t, "...", marks(s, 3), "previous overlay restored")
	require.Equal(t, "***", marks(s, 1))

	m, ok = f.Prev()
	require.True(t, ok)
	require.Equal(t, 3, m.Row, "wraps to the bottom")
	require.Equal(t, "...", marks(s, 1))
}

func TestFinder_SingleMatchStaysPut(t *testing.T) {
	s := newStore(t, "a", "needle", "b")
	f := NewFinder(s)

	_, ok, err := f.Find("needle", 0)
	require.NoError(t, err)
	require.True(t, ok)

	m, ok := f.Next()
	require.True(t, ok)
	require.Equal(t, 1, m.Row)
	require.Equal(t, "******", marks(s, 1))
}

func TestFinder_InvalidQueryLeavesStoreUntouched(t *testing.T) {
	s := newStore(t, "int foo;")
	f := NewFinder(s)
	_, _, err := f.Find("foo", 0)
	require.NoError(t, err)
	before := s.Row(0).Revision()

	_, ok, err := f.Find("foo(", 0)
	require.ErrorIs(t, err, ErrInvalidQuery)
	require.False(t, ok)
	require.Equal(t, before, s.Row(0).Revision())
	require.Equal(t, "....***.", marks(s, 0), "overlay of the last valid query stays")
}

func TestFinder_NoMatchAndEmptyQuery(t *testing.T) {
	s := newStore(t, "int a;")
	f := NewFinder(s)

	_, ok, err := f.Find("zzz", 0)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok = f.Current()
	require.False(t, ok)

	_, _, err = f.Find("int", 0)
	require.NoError(t, err)
	_, ok, err = f.Find("", 0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "......", marks(s, 0))

	_, ok = f.Next()
	require.False(t, ok)
}

func TestFinder_WideCharactersMapToCharIndices(t *testing.T) {
	s := newStore(t, "日本 go")
	f := NewFinder(s)

	m, ok, err := f.Find("go", 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Match{Row: 0, Start: 3, End: 5}, m)
	require.Equal(t, "...**", marks(s, 0))
}

func TestFinder_EmptyStore(t *testing.T) {
	f := NewFinder(rows.New())
	_, ok, err := f.Find("x", 0)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "Search: foo (line 2, col 4)", Describe("foo", Match{Row: 1, Start: 3}, true))
	require.Equal(t, "Search: foo (no match)", Describe("foo", Match{}, false))
}
