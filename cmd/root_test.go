package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// isolate points the user config directory and working directory at temp dirs.
func isolate(t *testing.T) (home string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

// ============================================================================
// Config loading
// ============================================================================

func TestLoadConfig_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "quill.yaml")
	writeFile(t, path, `tab_stop: 4
theme:
  colors:
    syntax.keyword1: "#FF0000"
`)

	c, used, err := loadConfig(path)

	require.NoError(t, err)
	require.Equal(t, path, used)
	require.Equal(t, 4, c.TabStop)
	require.Equal(t, "#FF0000", c.Theme.FlattenedColors()["syntax.keyword1"])
	require.True(t, c.UI.ShowStatusBar, "unset keys keep defaults")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config")
}

func TestLoadConfig_LocalBeforeUser(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "quill", "config.yaml"), "tab_stop: 3\n")
	writeFile(t, localConfigPath, "tab_stop: 2\n")

	c, used, err := loadConfig("")

	require.NoError(t, err)
	require.Equal(t, localConfigPath, used)
	require.Equal(t, 2, c.TabStop)
}

func TestLoadConfig_UserDirectory(t *testing.T) {
	home := isolate(t)
	userPath := filepath.Join(home, ".config", "quill", "config.yaml")
	writeFile(t, userPath, "tab_stop: 3\n")

	c, used, err := loadConfig("")

	require.NoError(t, err)
	require.Equal(t, userPath, used)
	require.Equal(t, 3, c.TabStop)
}

func TestLoadConfig_WritesDefaultWhenNoneFound(t *testing.T) {
	home := isolate(t)

	c, used, err := loadConfig("")

	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config", "quill", "config.yaml"), used)
	require.FileExists(t, used)
	require.NoError(t, c.Validate())
	require.Equal(t, config.Defaults().TabStop, c.TabStop)
	require.Equal(t, config.Defaults().UI, c.UI)
}

// ============================================================================
// Editor session
// ============================================================================

func sessionConfig(t *testing.T) config.Config {
	t.Helper()
	c := config.Defaults()
	c.Positions.Path = filepath.Join(t.TempDir(), "positions.db")
	return c
}

func TestNewSession_OpensFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "main.go")
	writeFile(t, path, "package main\n\nfunc main() {}\n")

	s, err := newSession(context.Background(), sessionConfig(t), path)
	require.NoError(t, err)

	doc := s.model.Document()
	require.Equal(t, []string{"package main", "", "func main() {}"}, doc.Store().Lines())
	require.Equal(t, "go", doc.Store().Filetype())
	require.NotNil(t, s.db, "position store opens for named files")
	require.NotNil(t, s.watcher)

	require.NoError(t, s.Close(context.Background()))
}

func TestNewSession_UnnamedBufferSkipsFileServices(t *testing.T) {
	isolate(t)

	s, err := newSession(context.Background(), sessionConfig(t), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	require.Nil(t, s.db)
	require.Nil(t, s.watcher)
	require.Equal(t, 0, s.model.Document().Store().Len())
}

func TestNewSession_FlagsDisableServices(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "x\n")
	c := sessionConfig(t)
	c.Flags = map[string]bool{"remember-position": false}
	c.Watch.Enabled = false

	s, err := newSession(context.Background(), c, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	require.Nil(t, s.db)
	require.Nil(t, s.watcher)
}

func TestNewSession_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name        string
		modify      func(*config.Config)
		errContains string
	}{
		{
			name:        "unknown preset",
			modify:      func(c *config.Config) { c.Theme.Preset = "solarized" },
			errContains: "unknown theme preset",
		},
		{
			name:        "bad color",
			modify:      func(c *config.Config) { c.Theme.Colors = map[string]any{"status.bg": "blue"} },
			errContains: "invalid hex color",
		},
		{
			name:        "unknown key action",
			modify:      func(c *config.Config) { c.Keys = map[string]string{"teleport": "ctrl+x"} },
			errContains: "unknown key action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sessionConfig(t)
			tt.modify(&c)

			_, err := newSession(context.Background(), c, "")

			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}

// ============================================================================
// cat
// ============================================================================

func TestPrintFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.c")
	writeFile(t, path, "int x; /* c */\n\tx = 1;\n")

	var plain bytes.Buffer
	require.NoError(t, printFile(context.Background(), &plain, config.Defaults(), path, "never", false))
	require.Equal(t, "int x; /* c */\n        x = 1;\n", plain.String())

	var colored bytes.Buffer
	require.NoError(t, printFile(context.Background(), &colored, config.Defaults(), path, "always", false))
	require.Contains(t, colored.String(), "\x1b[")

	var stripped bytes.Buffer
	require.NoError(t, printFile(context.Background(), &stripped, config.Defaults(), path, "always", true))
	require.Equal(t, plain.String(), stripped.String())
}

func TestPrintFile_ControlCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.txt")
	writeFile(t, path, "a\x01b\n")

	var out bytes.Buffer
	require.NoError(t, printFile(context.Background(), &out, config.Defaults(), path, "never", false))

	require.Equal(t, "aAb\n", out.String())
}

func TestPrintFile_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "a\n")

	err := printFile(context.Background(), &bytes.Buffer{}, config.Defaults(), path, "sometimes", false)
	require.ErrorContains(t, err, "invalid --color")

	err = printFile(context.Background(), &bytes.Buffer{}, config.Defaults(), path+".missing", "never", false)
	require.ErrorContains(t, err, "no such file")
}

// ============================================================================
// config subcommands
// ============================================================================

func TestSetConfigValue(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# mine\ntab_stop: 8\n")

	require.NoError(t, setConfigValue(path, "tab_stop", "4"))
	require.NoError(t, setConfigValue(path, "theme.colors.syntax.keyword1", "#FF79C6"))

	c, _, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 4, c.TabStop)
	require.Equal(t, "#FF79C6", c.Theme.FlattenedColors()["syntax.keyword1"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# mine")
}

func TestSetConfigValue_InvalidRollsBack(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "tab_stop: 8\n")

	err := setConfigValue(path, "tab_stop", "0")

	require.ErrorContains(t, err, "tab_stop must be at least 1")
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, "tab_stop: 8\n", string(data))
}

func TestSetConfigValue_InvalidNewFileRemoved(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := setConfigValue(path, "ui.quit_times", "-1")

	require.Error(t, err)
	require.NoFileExists(t, path)
}

func TestInitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, initConfigFile(path, false))
	require.FileExists(t, path)

	err := initConfigFile(path, false)
	require.ErrorContains(t, err, "already exists")

	require.NoError(t, initConfigFile(path, true))
}

func TestListChoices(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, listChoices(&out, config.Defaults()))

	for _, want := range []string{"Theme presets:", "dracula", "syntax.keyword1", "page_down", "remember-position", "makefile"} {
		require.Contains(t, out.String(), want)
	}
}
