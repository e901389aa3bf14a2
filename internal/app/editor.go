package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/document"
	"github.com/zjrosen/quill/internal/log"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	m.quitLeft = m.quitTimes

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Save):
		cmd = m.save()
	case key.Matches(msg, m.keys.Find):
		cmd = m.openSearch()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus

	case key.Matches(msg, m.keys.Up):
		m.moveVertical(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveVertical(1)
	case key.Matches(msg, m.keys.Left):
		m.moveLeft()
	case key.Matches(msg, m.keys.Right):
		m.moveRight()
	case key.Matches(msg, m.keys.Home):
		m.cx = 0
		m.syncGoal()
	case key.Matches(msg, m.keys.End):
		m.cx = m.store.RuneCount(m.cy)
		m.syncGoal()
	case key.Matches(msg, m.keys.PageUp):
		m.cy = m.rowOff
		m.moveVertical(-m.textRows())
	case key.Matches(msg, m.keys.PageDown):
		m.cy = min(m.rowOff+m.textRows()-1, m.store.Len())
		m.moveVertical(m.textRows())

	case key.Matches(msg, m.keys.Newline):
		m.insertNewline()
	case key.Matches(msg, m.keys.Backspace):
		m.deleteBackward()
	case key.Matches(msg, m.keys.Delete):
		m.deleteForward()

	default:
		m.insertKey(msg)
	}
	m.scroll()
	return m, cmd
}

// quit exits, asking for QuitTimes more presses while there are unsaved edits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.store.Modified() && m.quitLeft > 0 {
		cmd := m.setStatus(true, "WARNING!!! File has unsaved changes. Press %s %d more times to quit.",
			m.keys.Quit.Help().Key, m.quitLeft)
		m.quitLeft--
		return m, cmd
	}
	m.savePosition()
	log.Info(log.CatUI, "quit", "file", m.doc.Path(), "modified", m.store.Modified())
	return m, tea.Quit
}

func (m *Model) save() tea.Cmd {
	if m.doc.Path() == "" {
		return m.openSaveAs()
	}
	n, err := m.doc.Save(context.Background())
	return m.reportSave(n, err)
}

func (m *Model) reportSave(n int, err error) tea.Cmd {
	if err != nil {
		if errors.Is(err, document.ErrNoFilename) {
			return m.setStatus(true, "Save aborted")
		}
		return m.setStatus(true, "Can't save! I/O error: %v", err)
	}
	return m.setStatus(false, "%d bytes written to disk", n)
}

func (m *Model) insertKey(msg tea.KeyMsg) {
	if msg.Alt {
		return
	}
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r == '\n' || r == '\r' {
				m.insertNewline()
				continue
			}
			m.insertRune(r)
		}
	case tea.KeySpace:
		m.insertRune(' ')
	case tea.KeyTab:
		m.insertRune('\t')
	}
}

func (m *Model) insertRune(r rune) {
	if m.cy == m.store.Len() {
		m.store.InsertRow(m.cy, "")
	}
	m.store.InsertRune(m.cy, m.cx, r)
	m.cx++
	m.syncGoal()
}

func (m *Model) insertNewline() {
	m.store.SplitRow(m.cy, m.cx)
	m.cy++
	m.cx = 0
	m.syncGoal()
}

// deleteBackward removes the cluster before the cursor, joining with the
// previous row at column 0.
func (m *Model) deleteBackward() {
	if m.cy == m.store.Len() {
		if m.cy == 0 {
			return
		}
		m.cy--
		m.cx = m.store.RuneCount(m.cy)
		m.syncGoal()
		return
	}
	switch {
	case m.cx > 0:
		from := m.store.PrevGraphemeBoundary(m.cy, m.cx)
		for i := m.cx; i > from; i-- {
			m.store.DeleteRune(m.cy, from)
		}
		m.cx = from
	case m.cy > 0:
		prevLen := m.store.RuneCount(m.cy - 1)
		m.store.JoinWithPrevious(m.cy)
		m.cy--
		m.cx = prevLen
	}
	m.syncGoal()
}

// deleteForward removes the cluster under the cursor, joining the next row
// at end of line.
func (m *Model) deleteForward() {
	if m.cy >= m.store.Len() {
		return
	}
	n := m.store.RuneCount(m.cy)
	switch {
	case m.cx < n:
		to := m.store.NextGraphemeBoundary(m.cy, m.cx)
		for i := m.cx; i < to; i++ {
			m.store.DeleteRune(m.cy, m.cx)
		}
	case m.cy+1 < m.store.Len():
		m.store.JoinWithPrevious(m.cy + 1)
	}
	m.syncGoal()
}

func (m *Model) moveLeft() {
	switch {
	case m.cx > 0:
		m.cx = m.store.PrevGraphemeBoundary(m.cy, m.cx)
	case m.cy > 0:
		m.cy--
		m.cx = m.store.RuneCount(m.cy)
	}
	m.syncGoal()
}

func (m *Model) moveRight() {
	if m.cy >= m.store.Len() {
		return
	}
	if m.cx < m.store.RuneCount(m.cy) {
		m.cx = m.store.NextGraphemeBoundary(m.cy, m.cx)
	} else {
		m.cy++
		m.cx = 0
	}
	m.syncGoal()
}

// moveVertical moves by n rows, keeping the goal screen column.
func (m *Model) moveVertical(n int) {
	m.cy = max(0, min(m.cy+n, m.store.Len()))
	m.cx = m.snap(m.cy, m.store.ScreenToChar(m.cy, m.goal))
}

// snap moves ci forward to the end of the cluster it falls inside.
func (m *Model) snap(at, ci int) int {
	if ci <= 0 {
		return 0
	}
	start := m.store.PrevGraphemeBoundary(at, ci)
	if end := m.store.NextGraphemeBoundary(at, start); end > ci {
		return end
	}
	return ci
}

func (m *Model) syncGoal() {
	m.goal = m.store.CharToScreen(m.cy, m.cx)
}

func (m *Model) clampCursor() {
	m.cy = max(0, min(m.cy, m.store.Len()))
	m.cx = m.snap(m.cy, max(0, min(m.cx, m.store.RuneCount(m.cy))))
}

// textRows is the number of screen rows showing the buffer.
func (m Model) textRows() int {
	n := m.height - 1
	if m.showStatus {
		n--
	}
	return max(n, 1)
}

// scroll keeps the cursor inside the window.
func (m *Model) scroll() {
	m.rx = 0
	if m.cy < m.store.Len() {
		m.rx = m.store.CharToScreen(m.cy, m.cx)
	}
	rows := m.textRows()
	if m.cy < m.rowOff {
		m.rowOff = m.cy
	}
	if m.cy >= m.rowOff+rows {
		m.rowOff = m.cy - rows + 1
	}
	if m.width <= 0 {
		return
	}
	if m.rx < m.colOff {
		m.colOff = m.rx
	}
	if m.rx >= m.colOff+m.width {
		m.colOff = m.rx - m.width + 1
	}
}
