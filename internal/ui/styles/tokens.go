// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/zjrosen/quill/internal/syntax"

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Syntax highlighting, one per highlight tag
	TokenSyntaxNormal           ColorToken = "syntax.normal"
	TokenSyntaxNumber           ColorToken = "syntax.number"
	TokenSyntaxString           ColorToken = "syntax.string"
	TokenSyntaxComment          ColorToken = "syntax.comment"
	TokenSyntaxMultilineComment ColorToken = "syntax.mlcomment"
	TokenSyntaxKeyword1         ColorToken = "syntax.keyword1"
	TokenSyntaxKeyword2         ColorToken = "syntax.keyword2"
	TokenSyntaxMatch            ColorToken = "syntax.match"

	// Status bar
	TokenStatusFg       ColorToken = "status.fg"
	TokenStatusBg       ColorToken = "status.bg"
	TokenStatusModified ColorToken = "status.modified"

	// Message bar
	TokenMessageFg    ColorToken = "message.fg"
	TokenMessageError ColorToken = "message.error"

	// Control characters (rendered as @A, ?)
	TokenControlFg ColorToken = "control.fg"
	TokenControlBg ColorToken = "control.bg"

	// Help panel
	TokenHelpBorder ColorToken = "help.border"
	TokenHelpTitle  ColorToken = "help.title"
	TokenTextMuted  ColorToken = "text.muted"
)

// AllTokens returns every themeable token.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenSyntaxNormal, TokenSyntaxNumber, TokenSyntaxString, TokenSyntaxComment,
		TokenSyntaxMultilineComment, TokenSyntaxKeyword1, TokenSyntaxKeyword2, TokenSyntaxMatch,
		TokenStatusFg, TokenStatusBg, TokenStatusModified,
		TokenMessageFg, TokenMessageError,
		TokenControlFg, TokenControlBg,
		TokenHelpBorder, TokenHelpTitle, TokenTextMuted,
	}
}

// HighlightToken returns the token that colors h.
func HighlightToken(h syntax.Highlight) ColorToken {
	return ColorToken("syntax." + h.String())
}
