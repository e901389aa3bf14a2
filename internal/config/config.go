// Package config provides configuration types and defaults for quill.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/quill/internal/flags"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/rows"
	"github.com/zjrosen/quill/internal/syntax"
	"github.com/zjrosen/quill/internal/tracing"
)

// Config holds all configuration options for quill.
type Config struct {
	TabStop   int               `mapstructure:"tab_stop"`
	Debug     bool              `mapstructure:"debug"`
	LogFile   string            `mapstructure:"log_file"`
	UI        UIConfig          `mapstructure:"ui"`
	Theme     ThemeConfig       `mapstructure:"theme"`
	Filetypes []FiletypeConfig  `mapstructure:"filetypes"`
	Keys      map[string]string `mapstructure:"keys"`
	Watch     WatchConfig       `mapstructure:"watch"`
	Positions PositionsConfig   `mapstructure:"positions"`
	Cache     CacheConfig       `mapstructure:"cache"`
	Tracing   tracing.Config    `mapstructure:"tracing"`
	Flags     map[string]bool   `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar  bool          `mapstructure:"show_status_bar"`
	MessageTimeout time.Duration `mapstructure:"message_timeout"`
	QuitTimes      int           `mapstructure:"quit_times"` // presses needed to quit a modified buffer
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dracula", "nord", "high-contrast", "catppuccin-mocha"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens, e.g. "syntax.keyword1".
	// Nested maps are accepted and flattened with dots.
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// FiletypeConfig is a user supplied highlighting rule set.
type FiletypeConfig struct {
	Name              string   `mapstructure:"name"`
	Patterns          []string `mapstructure:"patterns"`
	Keywords1         []string `mapstructure:"keywords1"`
	Keywords2         []string `mapstructure:"keywords2"`
	LineComment       string   `mapstructure:"line_comment"`
	BlockCommentStart string   `mapstructure:"block_comment_start"`
	BlockCommentEnd   string   `mapstructure:"block_comment_end"`
	Numbers           *bool    `mapstructure:"numbers"` // nil means true
	Strings           *bool    `mapstructure:"strings"` // nil means true
}

// RuleSet converts the entry into a syntax rule set.
func (f FiletypeConfig) RuleSet() syntax.RuleSet {
	var fl syntax.Flags
	if f.Numbers == nil || *f.Numbers {
		fl |= syntax.HighlightNumbers
	}
	if f.Strings == nil || *f.Strings {
		fl |= syntax.HighlightStrings
	}
	return syntax.RuleSet{
		Name:        f.Name,
		Patterns:    f.Patterns,
		Keywords1:   f.Keywords1,
		Keywords2:   f.Keywords2,
		LineComment: f.LineComment,
		BlockStart:  f.BlockCommentStart,
		BlockEnd:    f.BlockCommentEnd,
		Flags:       fl,
	}
}

// WatchConfig controls reloading when the open file changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// PositionsConfig controls the remembered cursor position store.
type PositionsConfig struct {
	// Path is the SQLite database file. Default: ~/.config/quill/positions.db
	Path string `mapstructure:"path"`
	// Keep is the number of most recently edited files remembered.
	Keep int `mapstructure:"keep"`
}

// CacheConfig controls the styled line cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// DefaultConfigDir returns ~/.config/quill, or "" if the home directory is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill")
}

// DefaultPositionsPath returns the default location of the positions database.
func DefaultPositionsPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "positions.db")
}

// DefaultTracesFilePath returns the default JSONL trace file location.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		TabStop: rows.DefaultTabStop,
		UI: UIConfig{
			ShowStatusBar:  true,
			MessageTimeout: 5 * time.Second,
			QuitTimes:      3,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 300 * time.Millisecond,
		},
		Positions: PositionsConfig{
			Path: "", // Derived from config dir at runtime
			Keep: 500,
		},
		Cache: CacheConfig{
			TTL: 2 * time.Minute,
		},
		Tracing: tracing.DefaultConfig(),
		Flags:   flags.Defaults(),
	}
}

// Validate checks the whole configuration. Theme colors are checked when
// the theme is built.
func (c Config) Validate() error {
	if c.TabStop < 1 {
		return fmt.Errorf("tab_stop must be at least 1, got %d", c.TabStop)
	}
	if c.UI.MessageTimeout < 0 {
		return fmt.Errorf("ui.message_timeout must not be negative, got %s", c.UI.MessageTimeout)
	}
	if c.UI.QuitTimes < 0 {
		return fmt.Errorf("ui.quit_times must not be negative, got %d", c.UI.QuitTimes)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if c.Positions.Keep < 0 {
		return fmt.Errorf("positions.keep must not be negative, got %d", c.Positions.Keep)
	}
	if err := ValidateFiletypes(c.Filetypes); err != nil {
		return err
	}
	if len(c.Keys) > 0 {
		km := keys.DefaultKeyMap()
		if err := km.ApplyOverrides(c.Keys); err != nil {
			return fmt.Errorf("keys: %w", err)
		}
	}
	return ValidateTracing(c.Tracing)
}

// ValidateFiletypes checks each user filetype entry.
func ValidateFiletypes(fts []FiletypeConfig) error {
	seen := make(map[string]int, len(fts))
	for i, ft := range fts {
		rs := ft.RuleSet()
		if err := rs.Validate(); err != nil {
			return fmt.Errorf("filetypes[%d]: %w", i, err)
		}
		if j, dup := seen[ft.Name]; dup {
			return fmt.Errorf("filetypes[%d]: name %q already used by filetypes[%d]", i, ft.Name, j)
		}
		seen[ft.Name] = i
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// FiletypeTable builds the highlighting table: user filetypes first, then
// the built-in ones.
func (c Config) FiletypeTable() (*syntax.Table, error) {
	extra := make([]syntax.RuleSet, 0, len(c.Filetypes))
	for _, ft := range c.Filetypes {
		extra = append(extra, ft.RuleSet())
	}
	t, err := syntax.DefaultTable(extra...)
	if err != nil {
		return nil, fmt.Errorf("building filetype table: %w", err)
	}
	return t, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# quill configuration
# Values shown are the defaults.

# Columns a tab advances to
tab_stop: 8

# Write a debug log (also enabled by --debug or QUILL_DEBUG=1)
debug: false
# log_file: ~/.config/quill/debug.log

ui:
  show_status_bar: true
  message_timeout: 5s
  quit_times: 3

# Theme: start from a preset and override individual tokens.
# Presets: default, dracula, nord, high-contrast, catppuccin-mocha
# theme:
#   preset: dracula
#   colors:
#     syntax.keyword1: "#FF79C6"
#     syntax.comment: "#6272A4"
#     status.bg: "#44475A"

# Extra filetypes are matched before the built-in ones.
# A pattern starting with "." matches as a suffix, anything else as a substring.
# filetypes:
#   - name: lua
#     patterns: [".lua"]
#     keywords1: [function, local, end, if, then, else, return, for, while, do]
#     keywords2: [nil, "true", "false"]
#     line_comment: "--"
#     block_comment_start: "--[["
#     block_comment_end: "]]"
#     numbers: true
#     strings: true

# Rebind actions. Values are comma separated key lists.
# keys:
#   save: ctrl+s
#   find: ctrl+f,ctrl+r

# Reload the buffer when the file changes on disk and has no unsaved edits
watch:
  enabled: true
  debounce: 300ms

# Remembered cursor positions
positions:
  # path: ~/.config/quill/positions.db
  keep: 500

# Styled line cache
cache:
  ttl: 2m

# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/quill/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

flags:
  remember-position: true
  watch-reload: true
  render-cache: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
