package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/search"
)

type promptKind int

const (
	promptSaveAs promptKind = iota
	promptSearch
)

// prompt is the one-line input shown in the message bar.
type prompt struct {
	kind   promptKind
	input  textinput.Model
	keys   keys.PromptKeyMap
	search keys.SearchKeyMap
	hint   string

	// Cursor and offsets to restore when a search is cancelled.
	savedCX, savedCY         int
	savedRowOff, savedColOff int
	invalid                  bool
}

func newPrompt(kind promptKind, label, hint string) *prompt {
	ti := textinput.New()
	ti.Prompt = label
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &prompt{
		kind:   kind,
		input:  ti,
		keys:   keys.DefaultPromptKeyMap(),
		search: keys.DefaultSearchKeyMap(),
		hint:   hint,
	}
}

func (p *prompt) View() string {
	if p.invalid {
		return p.input.View() + " (invalid pattern)"
	}
	return p.input.View() + " " + p.hint
}

func (m *Model) openSaveAs() tea.Cmd {
	m.prompt = newPrompt(promptSaveAs, "Save as: ", "(ESC to cancel)")
	m.status = ""
	return nil
}

func (m *Model) openSearch() tea.Cmd {
	p := newPrompt(promptSearch, "Search: ", "(ESC/Arrows/Enter)")
	p.savedCX, p.savedCY = m.cx, m.cy
	p.savedRowOff, p.savedColOff = m.rowOff, m.colOff
	m.prompt = p
	m.status = ""
	return nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.prompt
	switch {
	case key.Matches(msg, p.keys.Cancel):
		return m.closePrompt(false)
	case key.Matches(msg, p.keys.Accept):
		return m.closePrompt(true)
	}

	if p.kind == promptSearch {
		switch {
		case key.Matches(msg, p.search.Next):
			if match, ok := m.finder.Next(); ok {
				m.jumpTo(match)
			}
			return m, nil
		case key.Matches(msg, p.search.Prev):
			if match, ok := m.finder.Prev(); ok {
				m.jumpTo(match)
			}
			return m, nil
		}
	}

	if key.Matches(msg, p.keys.Backspace) && p.input.Value() == "" {
		return m, nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.kind == promptSearch && p.input.Value() != before {
		m.incrementalSearch()
	}
	return m, cmd
}

// incrementalSearch re-runs the query from the row the search started on.
func (m *Model) incrementalSearch() {
	p := m.prompt
	match, ok, err := m.finder.Find(p.input.Value(), p.savedCY)
	p.invalid = errors.Is(err, search.ErrInvalidQuery)
	if ok {
		m.jumpTo(match)
		return
	}
	m.cx, m.cy = p.savedCX, p.savedCY
	m.rowOff, m.colOff = p.savedRowOff, p.savedColOff
	m.syncGoal()
}

// jumpTo puts the cursor on match and scrolls its row to the top.
func (m *Model) jumpTo(match search.Match) {
	m.cy, m.cx = match.Row, match.Start
	m.syncGoal()
	m.rowOff = match.Row
	m.scroll()
}

func (m Model) closePrompt(accept bool) (tea.Model, tea.Cmd) {
	p := m.prompt
	m.prompt = nil
	value := p.input.Value()

	switch p.kind {
	case promptSaveAs:
		if !accept || value == "" {
			return m, m.setStatus(true, "Save aborted")
		}
		n, err := m.doc.SaveAs(context.Background(), value)
		return m, m.reportSave(n, err)

	case promptSearch:
		match, ok := m.finder.Current()
		m.finder.Close()
		if !accept || !ok {
			m.cx, m.cy = p.savedCX, p.savedCY
			m.rowOff, m.colOff = p.savedRowOff, p.savedColOff
			m.syncGoal()
			m.scroll()
		}
		if accept && value != "" {
			log.Debug(log.CatSearch, "search accepted", "query", value, "found", ok)
			return m, m.setStatus(!ok, "%s", search.Describe(value, match, ok))
		}
	}
	return m, nil
}
