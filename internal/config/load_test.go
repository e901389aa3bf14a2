package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad_DottedColorTokens(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: nord
  colors:
    syntax.keyword1: "#FF0000"
    status.bg: "#00FF00"
`)
	require.Equal(t, "nord", cfg.Theme.Preset)
	require.Equal(t, map[string]string{
		"syntax.keyword1": "#FF0000",
		"status.bg":       "#00FF00",
	}, cfg.Theme.FlattenedColors())
}

func TestLoad_Filetypes(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
filetypes:
  - name: lua
    patterns: [".lua"]
    keywords1: [local, function]
    line_comment: "--"
    numbers: false
`)
	require.Len(t, cfg.Filetypes, 1)
	ft := cfg.Filetypes[0]
	require.Equal(t, []string{"local", "function"}, ft.Keywords1)
	require.NotNil(t, ft.Numbers)
	require.False(t, *ft.Numbers)
	require.Nil(t, ft.Strings)
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
tab_stop: 4
ui:
  message_timeout: 2s
flags:
  render-cache: false
keys:
  quit: ctrl+x
`)
	require.Equal(t, 4, cfg.TabStop)
	require.Equal(t, 2*time.Second, cfg.UI.MessageTimeout)
	require.True(t, cfg.UI.ShowStatusBar, "unset keys keep their default")
	require.False(t, cfg.Flags["render-cache"])
	require.True(t, cfg.Flags["remember-position"])
	require.Equal(t, "ctrl+x", cfg.Keys["quit"])
}

// loadConfigFromYAML loads yaml over Defaults() the way the root command does.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(yaml), 0644)
	require.NoError(t, err)

	// Use custom key delimiter "::" to allow dotted keys like "syntax.keyword1"
	// in the theme.colors map without viper treating them as nested paths.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(configPath)
	err = v.ReadInConfig()
	require.NoError(t, err)

	cfg := Defaults()
	err = v.Unmarshal(&cfg)
	require.NoError(t, err)

	return cfg
}
