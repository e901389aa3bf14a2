package syntax

import (
	"fmt"
	"strings"
)

// Flags enables optional recognisers in a RuleSet.
type Flags uint8

const (
	HighlightNumbers Flags = 1 << iota
	HighlightStrings
)

// RuleSet describes how one language is highlighted.
// A RuleSet is immutable once it is part of a Table.
type RuleSet struct {
	Name string
	// Patterns select the rule set from a filename. A pattern starting with
	// "." must match as a suffix, anything else matches as a substring.
	Patterns []string
	// Keywords1 and Keywords2 are tried in order; the first listed match
	// wins, so authors list longer words before their prefixes.
	Keywords1 []string
	Keywords2 []string

	LineComment string
	BlockStart  string
	BlockEnd    string
	Flags       Flags

	// Rune forms of the above, built by compile.
	kw1, kw2            [][]rune
	line, start, finish []rune
	compiled            bool
}

// HasBlockComments reports whether both multi-line comment markers are set.
func (r *RuleSet) HasBlockComments() bool {
	return r.BlockStart != "" && r.BlockEnd != ""
}

// Validate checks the rule set is usable.
func (r *RuleSet) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("filetype: name is required")
	}
	if len(r.Patterns) == 0 {
		return fmt.Errorf("filetype %q: at least one pattern is required", r.Name)
	}
	for _, p := range r.Patterns {
		if p == "" {
			return fmt.Errorf("filetype %q: empty pattern", r.Name)
		}
	}
	if (r.BlockStart == "") != (r.BlockEnd == "") {
		return fmt.Errorf("filetype %q: block comment needs both start and end markers", r.Name)
	}
	return nil
}

func (r *RuleSet) matches(filename string) bool {
	for _, p := range r.Patterns {
		if strings.HasPrefix(p, ".") {
			if strings.HasSuffix(filename, p) {
				return true
			}
		} else if strings.Contains(filename, p) {
			return true
		}
	}
	return false
}

func (r RuleSet) compile() RuleSet {
	r.Patterns = append([]string(nil), r.Patterns...)
	r.Keywords1 = append([]string(nil), r.Keywords1...)
	r.Keywords2 = append([]string(nil), r.Keywords2...)
	r.kw1 = toRunes(r.Keywords1)
	r.kw2 = toRunes(r.Keywords2)
	r.line = []rune(r.LineComment)
	if r.HasBlockComments() {
		r.start = []rune(r.BlockStart)
		r.finish = []rune(r.BlockEnd)
	}
	r.compiled = true
	return r
}

func toRunes(words []string) [][]rune {
	out := make([][]rune, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, []rune(w))
	}
	return out
}

// Table is an ordered list of rule sets matched by filename.
type Table struct {
	sets []RuleSet
}

// NewTable builds a table; sets are matched in the order given.
func NewTable(sets ...RuleSet) (*Table, error) {
	t := &Table{sets: make([]RuleSet, 0, len(sets))}
	for i := range sets {
		if err := sets[i].Validate(); err != nil {
			return nil, err
		}
		t.sets = append(t.sets, sets[i].compile())
	}
	return t, nil
}

// DefaultTable returns the built-in rule sets preceded by extra.
func DefaultTable(extra ...RuleSet) (*Table, error) {
	return NewTable(append(append([]RuleSet(nil), extra...), Builtin()...)...)
}

// Match returns the first rule set with a pattern matching filename,
// or nil when none does.
func (t *Table) Match(filename string) *RuleSet {
	if t == nil || filename == "" {
		return nil
	}
	for i := range t.sets {
		if t.sets[i].matches(filename) {
			return &t.sets[i]
		}
	}
	return nil
}

// Names lists rule set names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.sets))
	for i := range t.sets {
		names[i] = t.sets[i].Name
	}
	return names
}

// Builtin returns the built-in language table.
func Builtin() []RuleSet {
	return []RuleSet{
		{
			Name:     "c",
			Patterns: []string{".c", ".h", ".cpp", ".hpp", ".cc"},
			Keywords1: []string{
				"switch", "if", "while", "for", "break", "continue", "return",
				"else", "struct", "union", "typedef", "static", "enum", "class",
				"case", "default", "goto", "sizeof", "const",
			},
			Keywords2: []string{
				"unsigned", "signed", "double", "float", "short", "long",
				"char", "void", "int",
			},
			LineComment: "//",
			BlockStart:  "/*",
			BlockEnd:    "*/",
			Flags:       HighlightNumbers | HighlightStrings,
		},
		{
			Name:     "go",
			Patterns: []string{".go"},
			Keywords1: []string{
				"break", "case", "chan", "const", "continue", "default", "defer",
				"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
				"interface", "map", "package", "range", "return", "select",
				"struct", "switch", "type", "var",
			},
			Keywords2: []string{
				"string", "bool", "byte", "rune", "error", "int64", "int32",
				"int16", "int8", "int", "uint64", "uint32", "uint16", "uint8",
				"uint", "float64", "float32", "any", "nil", "true", "false",
			},
			LineComment: "//",
			BlockStart:  "/*",
			BlockEnd:    "*/",
			Flags:       HighlightNumbers | HighlightStrings,
		},
		{
			Name:     "rust",
			Patterns: []string{".rs"},
			Keywords1: []string{
				"as", "break", "const", "continue", "crate", "else", "enum",
				"extern", "fn", "for", "if", "impl", "in", "let", "loop", "match",
				"mod", "move", "mut", "pub", "ref", "return", "self", "Self",
				"static", "struct", "trait", "type", "unsafe", "use", "where",
				"while",
			},
			Keywords2: []string{
				"usize", "isize", "u64", "u32", "u16", "u8", "i64", "i32", "i16",
				"i8", "f64", "f32", "bool", "char", "str", "String", "Vec",
				"Option", "Result", "true", "false",
			},
			LineComment: "//",
			BlockStart:  "/*",
			BlockEnd:    "*/",
			Flags:       HighlightNumbers | HighlightStrings,
		},
		{
			Name:     "python",
			Patterns: []string{".py"},
			Keywords1: []string{
				"and", "as", "assert", "break", "class", "continue", "def", "del",
				"elif", "else", "except", "finally", "for", "from", "global",
				"if", "import", "in", "is", "lambda", "nonlocal", "not", "or",
				"pass", "raise", "return", "try", "while", "with", "yield",
			},
			Keywords2: []string{
				"None", "True", "False", "int", "float", "str", "bytes", "list",
				"dict", "set", "tuple", "self",
			},
			LineComment: "#",
			Flags:       HighlightNumbers | HighlightStrings,
		},
		{
			Name:     "javascript",
			Patterns: []string{".js", ".mjs", ".ts"},
			Keywords1: []string{
				"async", "await", "break", "case", "catch", "class", "const",
				"continue", "default", "delete", "do", "else", "export",
				"extends", "finally", "for", "function", "if", "import", "instanceof",
				"in", "let", "new", "return", "switch", "this", "throw", "try",
				"typeof", "var", "while", "yield",
			},
			Keywords2: []string{
				"undefined", "null", "true", "false", "number", "string",
				"boolean", "any", "void",
			},
			LineComment: "//",
			BlockStart:  "/*",
			BlockEnd:    "*/",
			Flags:       HighlightNumbers | HighlightStrings,
		},
		{
			Name:     "shell",
			Patterns: []string{".sh", ".bash"},
			Keywords1: []string{
				"if", "then", "else", "elif", "fi", "case", "esac", "for",
				"while", "until", "do", "done", "in", "function", "return",
			},
			Keywords2: []string{
				"echo", "export", "local", "readonly", "set", "unset", "shift",
			},
			LineComment: "#",
			Flags:       HighlightNumbers | HighlightStrings,
		},
		{
			Name:        "makefile",
			Patterns:    []string{"Makefile", "makefile", ".mk"},
			Keywords1:   []string{"ifeq", "ifneq", "ifdef", "ifndef", "else", "endif", "include", "define", "endef"},
			Keywords2:   []string{".PHONY"},
			LineComment: "#",
			Flags:       HighlightStrings,
		},
	}
}
