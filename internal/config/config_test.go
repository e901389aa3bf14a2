package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/flags"
	"github.com/zjrosen/quill/internal/syntax"
	"github.com/zjrosen/quill/internal/tracing"
)

func boolPtr(b bool) *bool { return &b }

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, 8, cfg.TabStop)
	require.True(t, cfg.UI.ShowStatusBar)
	require.Equal(t, 5*time.Second, cfg.UI.MessageTimeout)
	require.Equal(t, 3, cfg.UI.QuitTimes)
	require.True(t, cfg.Watch.Enabled)
	require.Equal(t, 500, cfg.Positions.Keep)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, flags.Defaults(), cfg.Flags)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero tab stop", func(c *Config) { c.TabStop = 0 }, "tab_stop must be at least 1"},
		{"negative message timeout", func(c *Config) { c.UI.MessageTimeout = -time.Second }, "ui.message_timeout"},
		{"negative quit times", func(c *Config) { c.UI.QuitTimes = -1 }, "ui.quit_times"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
		{"negative keep", func(c *Config) { c.Positions.Keep = -1 }, "positions.keep"},
		{"filetype without name", func(c *Config) {
			c.Filetypes = []FiletypeConfig{{Patterns: []string{".x"}}}
		}, "filetypes[0]: filetype: name is required"},
		{"filetype without patterns", func(c *Config) {
			c.Filetypes = []FiletypeConfig{{Name: "x"}}
		}, "at least one pattern"},
		{"half a block comment", func(c *Config) {
			c.Filetypes = []FiletypeConfig{{Name: "x", Patterns: []string{".x"}, BlockCommentStart: "{-"}}
		}, "both start and end"},
		{"duplicate filetype", func(c *Config) {
			c.Filetypes = []FiletypeConfig{
				{Name: "x", Patterns: []string{".x"}},
				{Name: "x", Patterns: []string{".y"}},
			}
		}, `filetypes[1]: name "x" already used by filetypes[0]`},
		{"unknown key action", func(c *Config) { c.Keys = map[string]string{"jump": "ctrl+j"} }, "keys: unknown key action"},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "tracing.sample_rate"},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "kafka" }, "tracing.exporter"},
		{"otlp without endpoint", func(c *Config) {
			c.Tracing = tracing.Config{Enabled: true, Exporter: "otlp", SampleRate: 1}
		}, "otlp_endpoint is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AcceptsKeysAndFiletypes(t *testing.T) {
	cfg := Defaults()
	cfg.Keys = map[string]string{"save": "ctrl+w"}
	cfg.Filetypes = []FiletypeConfig{{Name: "lua", Patterns: []string{".lua"}, LineComment: "--"}}
	require.NoError(t, cfg.Validate())
}

func TestFiletypeConfig_RuleSet(t *testing.T) {
	ft := FiletypeConfig{
		Name:              "lua",
		Patterns:          []string{".lua"},
		Keywords1:         []string{"local"},
		Keywords2:         []string{"nil"},
		LineComment:       "--",
		BlockCommentStart: "--[[",
		BlockCommentEnd:   "]]",
	}
	rs := ft.RuleSet()
	require.Equal(t, "lua", rs.Name)
	require.Equal(t, "--[[", rs.BlockStart)
	require.Equal(t, "]]", rs.BlockEnd)
	require.Equal(t, syntax.HighlightNumbers|syntax.HighlightStrings, rs.Flags, "flags default on")

	ft.Numbers = boolPtr(false)
	require.Equal(t, syntax.HighlightStrings, ft.RuleSet().Flags)
	ft.Strings = boolPtr(false)
	require.Equal(t, syntax.Flags(0), ft.RuleSet().Flags)
}

func TestFiletypeTable_UserEntriesFirst(t *testing.T) {
	cfg := Defaults()
	cfg.Filetypes = []FiletypeConfig{{Name: "header", Patterns: []string{".h"}}}

	table, err := cfg.FiletypeTable()
	require.NoError(t, err)
	require.Equal(t, "header", table.Match("x.h").Name, "user entry shadows built-in c")
	require.Equal(t, "c", table.Match("x.c").Name)
	require.Equal(t, "header", table.Names()[0])
}

func TestFiletypeTable_Invalid(t *testing.T) {
	cfg := Defaults()
	cfg.Filetypes = []FiletypeConfig{{Name: "broken"}}
	_, err := cfg.FiletypeTable()
	require.ErrorContains(t, err, "building filetype table")
}

func TestFlattenedColors(t *testing.T) {
	theme := ThemeConfig{Colors: map[string]any{
		"syntax.keyword1": "#FF0000",
		"status": map[string]any{
			"bg": "#111111",
		},
		"message": map[any]any{
			"fg": "#222222",
			1:    "ignored",
		},
	}}
	require.Equal(t, map[string]string{
		"syntax.keyword1": "#FF0000",
		"status.bg":       "#111111",
		"message.fg":      "#222222",
	}, theme.FlattenedColors())
}

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "quill"), DefaultConfigDir())
	require.Equal(t, filepath.Join(home, ".config", "quill", "positions.db"), DefaultPositionsPath())
	require.Equal(t, filepath.Join(home, ".config", "quill", "traces", "traces.jsonl"), DefaultTracesFilePath())
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())
	require.Equal(t, 8, cfg.TabStop)
	require.Equal(t, 5*time.Second, cfg.UI.MessageTimeout)
	require.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	require.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	require.True(t, cfg.Flags[flags.FlagRenderCache])
}

func TestWriteDefaultConfig_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := WriteDefaultConfig(filepath.Join(blocker, "config.yaml"))
	require.ErrorContains(t, err, "creating config directory")
}
