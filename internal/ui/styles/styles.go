// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/syntax"
)

// Theme holds the resolved colors and the styles built from them.
type Theme struct {
	colors    map[ColorToken]string
	renderer  *lipgloss.Renderer
	highlight map[syntax.Highlight]lipgloss.Style

	Status         lipgloss.Style
	StatusModified lipgloss.Style
	Message        lipgloss.Style
	MessageError   lipgloss.Style
	Control        lipgloss.Style
	Cursor         lipgloss.Style
	HelpBorder     lipgloss.Style
	HelpTitle      lipgloss.Style
	Muted          lipgloss.Style
}

func (t *Theme) color(token ColorToken) lipgloss.Color {
	return lipgloss.Color(t.colors[token])
}

func (t *Theme) build() {
	r := t.renderer
	t.highlight = make(map[syntax.Highlight]lipgloss.Style, len(syntax.Highlights()))
	for _, h := range syntax.Highlights() {
		s := r.NewStyle().Foreground(t.color(HighlightToken(h)))
		if h == syntax.Match {
			s = s.Bold(true).Underline(true)
		}
		t.highlight[h] = s
	}

	t.Status = r.NewStyle().
		Foreground(t.color(TokenStatusFg)).
		Background(t.color(TokenStatusBg))
	t.StatusModified = t.Status.
		Foreground(t.color(TokenStatusModified)).
		Bold(true)
	t.Message = r.NewStyle().Foreground(t.color(TokenMessageFg))
	t.MessageError = r.NewStyle().Foreground(t.color(TokenMessageError)).Bold(true)
	t.Control = r.NewStyle().
		Foreground(t.color(TokenControlFg)).
		Background(t.color(TokenControlBg)).
		Reverse(true)
	t.Cursor = r.NewStyle().Reverse(true)
	t.HelpBorder = r.NewStyle().Foreground(t.color(TokenHelpBorder))
	t.HelpTitle = r.NewStyle().Foreground(t.color(TokenHelpTitle)).Bold(true)
	t.Muted = r.NewStyle().Foreground(t.color(TokenTextMuted))
}

// Color returns the resolved hex value of token.
func (t *Theme) Color(token ColorToken) string { return t.colors[token] }

// Renderer returns the renderer the styles were built on.
func (t *Theme) Renderer() *lipgloss.Renderer { return t.renderer }

// Highlight returns the style for h; unknown tags get the normal style.
func (t *Theme) Highlight(h syntax.Highlight) lipgloss.Style {
	if s, ok := t.highlight[h]; ok {
		return s
	}
	return t.highlight[syntax.Normal]
}

// ControlGlyph is the one-column stand-in shown for a control character:
// '@'+c for C0 codes, '?' otherwise.
func ControlGlyph(r rune) rune {
	if r >= 0 && r <= 26 {
		return '@' + r
	}
	return '?'
}

// IsControl reports whether r is drawn with ControlGlyph.
func IsControl(r rune) bool {
	return unicode.IsControl(r)
}

// RenderRow styles render text with its per-unit highlights. Runs of equal
// highlight are rendered together; control characters are drawn reversed.
// hl must be as long as text in runes; missing entries count as Normal.
func (t *Theme) RenderRow(text string, hl []syntax.Highlight) string {
	var b strings.Builder
	var run []rune
	cur := syntax.Normal
	flush := func() {
		if len(run) > 0 {
			b.WriteString(t.Highlight(cur).Render(string(run)))
			run = run[:0]
		}
	}

	i := 0
	for _, r := range text {
		h := syntax.Normal
		if i < len(hl) {
			h = hl[i]
		}
		i++

		if IsControl(r) {
			flush()
			b.WriteString(t.Control.Render(string(ControlGlyph(r))))
			continue
		}
		if h != cur {
			flush()
			cur = h
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}
