package syntax

import (
	"strings"
	"unicode"
)

// separators bound keyword and number matches in addition to whitespace.
const separators = "&,.()+-/*=~%<>[];"

// IsSeparator reports whether r ends a word for keyword and number matching.
func IsSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
}

// Scan classifies each render unit of one row.
//
// in is the state left by the previous row (Initial for the first row).
// The returned slice always has len(render) entries. With a nil rule set
// every unit is Normal and the outgoing state is Initial.
func Scan(render []rune, rules *RuleSet, in State) ([]Highlight, State) {
	hl := make([]Highlight, len(render))
	if rules == nil {
		return hl, Initial
	}
	if !rules.compiled {
		c := rules.compile()
		rules = &c
	}

	var (
		prevSep   = true
		inComment = in.InComment
		quote     = in.Quote
		numbers   = rules.Flags&HighlightNumbers != 0
		strs      = rules.Flags&HighlightStrings != 0
		block     = len(rules.start) > 0 && len(rules.finish) > 0
	)

	i := 0
	for i < len(render) {
		c := render[i]
		prevHL := Normal
		if i > 0 {
			prevHL = hl[i-1]
		}

		if len(rules.line) > 0 && quote == 0 && !inComment && hasPrefixAt(render, i, rules.line) {
			// A line comment runs to the end of the row.
			fill(hl[i:], Comment)
			break
		}

		if block && quote == 0 {
			if inComment {
				if hasPrefixAt(render, i, rules.finish) {
					n := len(rules.finish)
					fill(hl[i:i+n], MultilineComment)
					i += n
					inComment = false
					prevSep = true
					continue
				}
				hl[i] = MultilineComment
				i++
				continue
			}
			if hasPrefixAt(render, i, rules.start) {
				n := len(rules.start)
				fill(hl[i:i+n], MultilineComment)
				i += n
				inComment = true
				continue
			}
		}

		if strs {
			if quote != 0 {
				hl[i] = String
				if c == '\\' && i+1 < len(render) {
					hl[i+1] = String
					i += 2
					continue
				}
				if c == quote {
					quote = 0
					prevSep = true
				}
				i++
				continue
			}
			if c == '"' || c == '\'' {
				quote = c
				hl[i] = String
				i++
				continue
			}
		}

		if numbers && ((isDigit(c) && (prevSep || prevHL == Number)) || (c == '.' && prevHL == Number)) {
			hl[i] = Number
			prevSep = false
			i++
			continue
		}

		if prevSep {
			if n, tag, ok := matchKeyword(render, i, rules); ok {
				fill(hl[i:i+n], tag)
				i += n
				prevSep = false
				continue
			}
		}

		hl[i] = Normal
		prevSep = IsSeparator(c)
		i++
	}

	// An open quote never crosses the end of a row.
	return hl, State{InComment: inComment}
}

func matchKeyword(render []rune, at int, rules *RuleSet) (int, Highlight, bool) {
	lists := [...]struct {
		words [][]rune
		tag   Highlight
	}{
		{rules.kw1, Keyword1},
		{rules.kw2, Keyword2},
	}
	for _, list := range lists {
		for _, kw := range list.words {
			if !hasPrefixAt(render, at, kw) {
				continue
			}
			end := at + len(kw)
			if end == len(render) || IsSeparator(render[end]) {
				return len(kw), list.tag, true
			}
		}
	}
	return 0, Normal, false
}

func hasPrefixAt(s []rune, at int, prefix []rune) bool {
	if len(prefix) == 0 || at+len(prefix) > len(s) {
		return false
	}
	for j, r := range prefix {
		if s[at+j] != r {
			return false
		}
	}
	return true
}

func fill(hl []Highlight, h Highlight) {
	for i := range hl {
		hl[i] = h
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
