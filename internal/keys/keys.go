// Package keys contains keybinding definitions.
package keys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for editing.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Editing
	Newline   key.Binding
	Backspace key.Binding
	Delete    key.Binding

	// Actions
	Save key.Binding
	Find key.Binding

	// General
	Help         key.Binding
	ToggleStatus key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),

		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "split line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete left"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete right"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Find: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "find"),
		),

		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle help"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle status bar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Find, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End, k.PageUp, k.PageDown}, // Navigation
		{k.Newline, k.Backspace, k.Delete},                                 // Editing
		{k.Save, k.Find, k.Help, k.ToggleStatus, k.Quit},                   // General
	}
}

// actions maps config names to bindings so users can rebind them.
func (k *KeyMap) actions() map[string]*key.Binding {
	return map[string]*key.Binding{
		"up":            &k.Up,
		"down":          &k.Down,
		"left":          &k.Left,
		"right":         &k.Right,
		"home":          &k.Home,
		"end":           &k.End,
		"page_up":       &k.PageUp,
		"page_down":     &k.PageDown,
		"newline":       &k.Newline,
		"backspace":     &k.Backspace,
		"delete":        &k.Delete,
		"save":          &k.Save,
		"find":          &k.Find,
		"help":          &k.Help,
		"toggle_status": &k.ToggleStatus,
		"quit":          &k.Quit,
	}
}

// Actions lists the names accepted by ApplyOverrides, sorted.
func Actions() []string {
	km := DefaultKeyMap()
	names := make([]string, 0, len(km.actions()))
	for name := range km.actions() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyOverrides rebinds actions. Each value is a comma separated key list,
// e.g. {"save": "ctrl+s,ctrl+x"}. The help text shows the first key.
func (k *KeyMap) ApplyOverrides(overrides map[string]string) error {
	actions := k.actions()
	for name, value := range overrides {
		b, ok := actions[name]
		if !ok {
			return fmt.Errorf("unknown key action %q", name)
		}
		var list []string
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		if len(list) == 0 {
			return fmt.Errorf("key action %q: no keys given", name)
		}
		b.SetKeys(list...)
		b.SetHelp(list[0], b.Help().Desc)
	}
	return nil
}

// SearchKeyMap defines the keybindings while the find prompt is open.
type SearchKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Accept key.Binding
	Cancel key.Binding
}

// DefaultSearchKeyMap returns the keybindings for the find prompt.
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		Next: key.NewBinding(
			key.WithKeys("down", "right", "ctrl+n"),
			key.WithHelp("↓/→", "next match"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "left", "ctrl+p"),
			key.WithHelp("↑/←", "previous match"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "stop at match"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// PromptKeyMap defines the keybindings for single line prompts.
type PromptKeyMap struct {
	Accept    key.Binding
	Cancel    key.Binding
	Backspace key.Binding
}

// DefaultPromptKeyMap returns the keybindings for prompts.
func DefaultPromptKeyMap() PromptKeyMap {
	return PromptKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h", "delete"),
			key.WithHelp("backspace", "delete"),
		),
	}
}
