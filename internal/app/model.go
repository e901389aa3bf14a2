// Package app contains the editor model.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/cachemanager"
	"github.com/zjrosen/quill/internal/document"
	"github.com/zjrosen/quill/internal/flags"
	"github.com/zjrosen/quill/internal/infrastructure/sqlite"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/rows"
	"github.com/zjrosen/quill/internal/search"
	"github.com/zjrosen/quill/internal/ui/styles"
)

// PositionStore remembers the cursor per file.
type PositionStore interface {
	Get(ctx context.Context, path string) (sqlite.Position, bool, error)
	Save(ctx context.Context, p sqlite.Position) error
}

// Config wires the editor to its collaborators. Only Document and Theme are
// required.
type Config struct {
	Document  *document.Document
	Theme     *styles.Theme
	Keys      keys.KeyMap
	Lines     *cachemanager.LineCache
	Positions PositionStore
	Flags     *flags.Registry

	// Changes signals that the file was modified on disk.
	Changes <-chan struct{}

	ShowStatusBar  bool
	MessageTimeout time.Duration
	// QuitTimes is how many extra quit presses a modified buffer needs.
	QuitTimes int
}

// Model is the editor state.
type Model struct {
	doc       *document.Document
	store     *rows.Store
	theme     *styles.Theme
	keys      keys.KeyMap
	help      help.Model
	lines     *cachemanager.LineCache
	positions PositionStore
	flags     *flags.Registry
	changes   <-chan struct{}

	// Cursor: cy is a row index in [0, Len()], cx a character index.
	// rx is the cursor's screen column, goal the column vertical moves aim for.
	cx, cy int
	rx     int
	goal   int

	rowOff, colOff int
	width, height  int

	showStatus bool
	showHelp   bool

	status     string
	statusErr  bool
	statusSeq  int
	msgTimeout time.Duration

	quitTimes int
	quitLeft  int

	prompt *prompt
	finder *search.Finder
}

// New creates the editor model.
func New(cfg Config) Model {
	km := cfg.Keys
	if len(km.Quit.Keys()) == 0 {
		km = keys.DefaultKeyMap()
	}
	m := Model{
		doc:        cfg.Document,
		store:      cfg.Document.Store(),
		theme:      cfg.Theme,
		keys:       km,
		help:       help.New(),
		lines:      cfg.Lines,
		positions:  cfg.Positions,
		flags:      cfg.Flags,
		changes:    cfg.Changes,
		showStatus: cfg.ShowStatusBar,
		msgTimeout: cfg.MessageTimeout,
		quitTimes:  cfg.QuitTimes,
		quitLeft:   cfg.QuitTimes,
		finder:     search.NewFinder(cfg.Document.Store()),
	}
	m.help.ShowAll = true
	m.status = "HELP: " + m.help.ShortHelpView(km.ShortHelp())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.expireStatus()}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	if m.positions != nil && m.flags.Enabled(flags.FlagRememberPosition) && m.doc.Path() != "" {
		cmds = append(cmds, loadPosition(m.positions, m.doc.Path()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.prompt != nil {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case fileChangedMsg:
		cmd := m.handleFileChanged()
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case positionMsg:
		m.restorePosition(msg.pos)
		return m, nil
	}
	return m, nil
}

// Document returns the document being edited.
func (m Model) Document() *document.Document { return m.doc }

// Cursor returns the cursor row and character index.
func (m Model) Cursor() (row, col int) { return m.cy, m.cx }

// StatusMessage returns the message bar text.
func (m Model) StatusMessage() string { return m.status }

// setStatus shows msg in the message bar and schedules its expiry.
func (m *Model) setStatus(isErr bool, format string, args ...any) tea.Cmd {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = isErr
	m.statusSeq++
	return m.expireStatus()
}

func (m Model) expireStatus() tea.Cmd {
	if m.msgTimeout <= 0 || m.status == "" {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(m.msgTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (m *Model) handleFileChanged() tea.Cmd {
	if !m.flags.Enabled(flags.FlagWatchReload) {
		return nil
	}
	if m.store.Modified() {
		log.Warn(log.CatUI, "file changed on disk with unsaved edits", "file", m.doc.Path())
		return m.setStatus(true, "%s changed on disk; saving will overwrite it", m.doc.Name())
	}
	edited, err := m.doc.Reload(context.Background())
	if err != nil {
		return m.setStatus(true, "Reload failed: %v", err)
	}
	if edited == 0 {
		return nil
	}
	m.clampCursor()
	m.scroll()
	return m.setStatus(false, "Reloaded %s (%d lines changed)", m.doc.Name(), edited)
}

func (m *Model) restorePosition(p sqlite.Position) {
	m.cy = max(0, min(p.Row, m.store.Len()))
	m.cx = p.Col
	m.clampCursor()
	m.rowOff = max(0, min(p.RowOffset, m.cy))
	m.goal = m.store.CharToScreen(m.cy, m.cx)
	m.scroll()
	log.Debug(log.CatUI, "restored position", "row", m.cy, "col", m.cx)
}

func (m Model) savePosition() {
	if m.positions == nil || !m.flags.Enabled(flags.FlagRememberPosition) || m.doc.Path() == "" {
		return
	}
	err := m.positions.Save(context.Background(), sqlite.Position{
		Path:      m.doc.Path(),
		Row:       m.cy,
		Col:       m.cx,
		RowOffset: m.rowOff,
	})
	if err != nil {
		log.ErrorErr(log.CatDB, "saving position", err, "file", m.doc.Path())
	}
}
