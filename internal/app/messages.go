package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/infrastructure/sqlite"
	"github.com/zjrosen/quill/internal/log"
)

// statusExpiredMsg clears the message bar if no newer message replaced it.
type statusExpiredMsg struct{ seq int }

// fileChangedMsg is sent when the watcher reports a change to the open file.
type fileChangedMsg struct{}

// positionMsg carries the remembered cursor for the open file.
type positionMsg struct{ pos sqlite.Position }

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func loadPosition(store PositionStore, path string) tea.Cmd {
	return func() tea.Msg {
		p, ok, err := store.Get(context.Background(), path)
		if err != nil {
			log.ErrorErr(log.CatDB, "loading position", err, "file", path)
			return nil
		}
		if !ok {
			return nil
		}
		return positionMsg{pos: p}
	}
}
