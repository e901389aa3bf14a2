// Package syntax classifies the render units of a row into lexical categories.
//
// The package has three parts:
//
//  1. Highlight: the closed set of tags a render unit can carry.
//  2. RuleSet / Table: per-language configuration (keywords, comment markers,
//     number and string recognition) and filename-based selection.
//  3. Scan: the per-row engine. It is a pure function of the row's render
//     text, the active rule set and the lexical State left by the previous row.
//
// Rows never share state directly. The only thing that crosses a row boundary
// is the State value returned by Scan, which the caller feeds into the scan of
// the next row.
package syntax

// Highlight is the lexical category of a single render unit.
type Highlight uint8

const (
	Normal Highlight = iota
	Number
	String
	Comment
	MultilineComment
	Keyword1
	Keyword2
	// Match is never produced by Scan. It is a transient overlay written by
	// the search prompt and reverted before the next scan-visible read.
	Match
)

func (h Highlight) String() string {
	switch h {
	case Normal:
		return "normal"
	case Number:
		return "number"
	case String:
		return "string"
	case Comment:
		return "comment"
	case MultilineComment:
		return "mlcomment"
	case Keyword1:
		return "keyword1"
	case Keyword2:
		return "keyword2"
	case Match:
		return "match"
	default:
		return "unknown"
	}
}

// Highlights lists every tag in declaration order.
func Highlights() []Highlight {
	return []Highlight{Normal, Number, String, Comment, MultilineComment, Keyword1, Keyword2, Match}
}

// ParseHighlight returns the tag whose String() is name.
func ParseHighlight(name string) (Highlight, bool) {
	for _, h := range Highlights() {
		if h.String() == name {
			return h, true
		}
	}
	return Normal, false
}

// State is the lexical state a row leaves for the next one.
type State struct {
	// InComment is true while a multi-line comment is open at end of row.
	InComment bool
	// Quote is the open string delimiter, or 0. Scan always clears it at
	// end of row, so unterminated strings never leak into the next row.
	Quote rune
}

// Initial is the state consumed by the first row of a file.
var Initial = State{}
