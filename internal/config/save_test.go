package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"tab_stop", []string{"tab_stop"}},
		{"ui.show_status_bar", []string{"ui", "show_status_bar"}},
		{"flags.render-cache", []string{"flags", "render-cache"}},
		{"theme.colors.syntax.keyword1", []string{"theme", "colors", "syntax.keyword1"}},
		{"theme.preset", []string{"theme", "preset"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.Equal(t, tt.want, SplitKey(tt.key))
		})
	}
}

func TestSaveValue_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SaveValue(configPath, []string{"ui", "show_status_bar"}, "false"))

	cfg := loadConfigFromYAML(t, readFile(t, configPath))
	require.False(t, cfg.UI.ShowStatusBar)
}

func TestSaveValue_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# my settings
tab_stop: 4 # narrow
ui:
  show_status_bar: true
flags:
  render-cache: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0644))

	require.NoError(t, SaveValue(configPath, []string{"tab_stop"}, "2"))
	require.NoError(t, SaveValue(configPath, SplitKey("theme.colors.syntax.keyword1"), "#FF0000"))

	content := readFile(t, configPath)
	assert.Contains(t, content, "# my settings")
	assert.Contains(t, content, "tab_stop: 2 # narrow")
	assert.Contains(t, content, "show_status_bar: true")
	assert.Contains(t, content, "render-cache: true")
	assert.Contains(t, content, "syntax.keyword1: '#FF0000'")

	cfg := loadConfigFromYAML(t, content)
	require.Equal(t, 2, cfg.TabStop)
	require.Equal(t, "#FF0000", cfg.Theme.FlattenedColors()["syntax.keyword1"])
}

func TestSaveValue_Errors(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("tab_stop: 8\nui:\n  show_status_bar: true\n"), 0644))

	require.ErrorContains(t, SaveValue(configPath, nil, "x"), "empty config key")
	require.ErrorContains(t, SaveValue(configPath, []string{"ui", ""}, "x"), "invalid config key")
	require.ErrorContains(t, SaveValue(configPath, []string{"tab_stop", "x"}, "1"), "tab_stop is not a mapping")
	require.ErrorContains(t, SaveValue(configPath, []string{"ui"}, "1"), "ui is not a scalar")

	require.NoError(t, os.WriteFile(configPath, []byte("- a\n- b\n"), 0644))
	require.ErrorContains(t, SaveValue(configPath, []string{"tab_stop"}, "1"), "not a mapping")

	require.NoError(t, os.WriteFile(configPath, []byte("a: [\n"), 0644))
	require.ErrorContains(t, SaveValue(configPath, []string{"tab_stop"}, "1"), "parsing config")
}

func TestSaveValue_AtomicWrite(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	require.NoError(t, SaveValue(configPath, []string{"debug"}, "true"))
	require.NoError(t, SaveValue(configPath, []string{"debug"}, "false"))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.Contains(entry.Name(), ".tmp"), "temp file left behind: %s", entry.Name())
	}
	assert.Equal(t, "debug: false\n", readFile(t, configPath))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
