package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/quill/internal/cachemanager"
	"github.com/zjrosen/quill/internal/rows"
	"github.com/zjrosen/quill/internal/syntax"
	"github.com/zjrosen/quill/internal/ui/overlay"
	"github.com/zjrosen/quill/internal/ui/styles"
)

const (
	welcome   = "quill editor"
	helpWidth = 80
)

// segment is the part of a row that fits the window, one entry per
// screen cell group.
type segment struct {
	text []rune
	hl   []syntax.Highlight
	// col is the screen column of each entry relative to the window.
	col []int
}

// visible cuts row at to the screen columns [off, off+width). Wide
// characters split by either edge are replaced by spaces.
func (m Model) visible(at, off, width int) segment {
	text, hl := m.store.RenderSlice(at, 0, m.store.RenderLen(at))
	var seg segment
	sc := 0
	i := 0
	for _, r := range text {
		h := hl[i]
		i++
		w := rows.RuneWidth(r)
		start, end := sc, sc+w
		sc = end
		if end <= off {
			continue
		}
		if start >= off+width {
			break
		}
		if start < off || end > off+width {
			for c := max(start, off); c < min(end, off+width); c++ {
				seg.add(' ', syntax.Normal, c-off)
			}
			continue
		}
		seg.add(r, h, start-off)
	}
	return seg
}

func (s *segment) add(r rune, h syntax.Highlight, col int) {
	s.text = append(s.text, r)
	s.hl = append(s.hl, h)
	s.col = append(s.col, col)
}

func (s segment) render(t *styles.Theme, from, to int) string {
	if from >= to {
		return ""
	}
	return t.RenderRow(string(s.text[from:to]), s.hl[from:to])
}

// renderLine draws one screen row of text, through the line cache for rows
// without the cursor.
func (m Model) renderLine(at int) string {
	if at == m.cy && m.prompt == nil {
		return m.renderCursorLine(at)
	}
	row := m.store.Row(at)
	key := cachemanager.LineKey{
		RowID:  row.ID(),
		Rev:    row.Revision(),
		ColOff: m.colOff,
		Width:  m.width,
	}
	return m.lines.Get(context.Background(), key, func() string {
		seg := m.visible(at, m.colOff, m.width)
		return seg.render(m.theme, 0, len(seg.text))
	})
}

func (m Model) renderCursorLine(at int) string {
	seg := m.visible(at, m.colOff, m.width)
	col := m.rx - m.colOff
	idx := len(seg.text)
	for i, c := range seg.col {
		if c >= col {
			idx = i
			break
		}
	}
	var b strings.Builder
	b.WriteString(seg.render(m.theme, 0, idx))
	if idx == len(seg.text) {
		b.WriteString(m.theme.Cursor.Render(" "))
		return b.String()
	}
	under := seg.text[idx]
	if styles.IsControl(under) {
		under = styles.ControlGlyph(under)
	}
	b.WriteString(m.theme.Cursor.Render(string(under)))
	b.WriteString(seg.render(m.theme, idx+1, len(seg.text)))
	return b.String()
}

func (m Model) renderRows() []string {
	n := m.textRows()
	out := make([]string, 0, n)
	for y := range n {
		at := y + m.rowOff
		switch {
		case at < m.store.Len():
			out = append(out, m.renderLine(at))
		case m.store.Len() == 0 && y == n/3:
			out = append(out, m.welcomeLine())
		case at == m.cy && m.prompt == nil:
			out = append(out, m.theme.Muted.Render("~")+m.theme.Cursor.Render(" "))
		default:
			out = append(out, m.theme.Muted.Render("~"))
		}
	}
	if m.showHelp {
		out = m.overlayHelp(out)
	}
	return out
}

func (m Model) welcomeLine() string {
	text := ansi.Truncate(welcome, max(m.width-1, 0), "")
	pad := (m.width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return m.theme.Muted.Render("~") + text
	}
	return m.theme.Muted.Render("~") + strings.Repeat(" ", pad-1) + text
}

// overlayHelp draws the key help panel over the bottom of the text rows.
func (m Model) overlayHelp(out []string) []string {
	width := min(m.width, helpWidth)
	m.help.Width = width - 4
	body := strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n")
	panel := m.theme.RenderSection(body, "Keys", "ctrl+g to close", width)
	return overlay.Place(out, panel, m.width, overlay.Bottom)
}

func (m Model) statusBar() string {
	name := m.doc.Name()
	if name == "" {
		name = "[No Name]"
	}
	left := fmt.Sprintf("%s - %d lines", styles.TruncateString(name, 20), m.store.Len())
	modified := ""
	if m.store.Modified() {
		modified = " (modified)"
	}
	ft := m.store.Filetype()
	if ft == "" {
		ft = "no ft"
	}
	right := fmt.Sprintf("%s | %d/%d", ft, m.cy+1, m.store.Len())

	used := lipgloss.Width(left) + lipgloss.Width(modified)
	gap := m.width - used - lipgloss.Width(right)
	if gap < 1 {
		plain := ansi.Truncate(left+modified, m.width, "")
		return m.theme.Status.Render(plain + strings.Repeat(" ", max(m.width-lipgloss.Width(plain), 0)))
	}
	return m.theme.Status.Render(left) +
		m.theme.StatusModified.Render(modified) +
		m.theme.Status.Render(strings.Repeat(" ", gap)+right)
}

func (m Model) messageBar() string {
	if m.prompt != nil {
		return ansi.Truncate(m.prompt.View(), m.width, "")
	}
	if m.status == "" {
		return ""
	}
	text := ansi.Truncate(m.status, m.width, "")
	if m.statusErr {
		return m.theme.MessageError.Render(text)
	}
	return m.theme.Message.Render(text)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.height <= 0 || m.width <= 0 {
		return ""
	}
	lines := m.renderRows()
	if m.showStatus {
		lines = append(lines, m.statusBar())
	}
	lines = append(lines, m.messageBar())
	return strings.Join(lines, "\n")
}
