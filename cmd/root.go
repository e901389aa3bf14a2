package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the buffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config directory.
const localConfigPath = ".quill/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgUsed   string
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "quill [file]",
	Short: "A small terminal text editor",
	Long: `quill is a small terminal text editor with incremental search and
syntax highlighting for C, Go, Rust, Python, JavaScript, shell and Makefiles.

Opening a file that does not exist starts an empty buffer that is created
on the first save.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/quill/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also QUILL_DEBUG=1)")
}

func initConfig() {
	cfg, cfgUsed, cfgErr = loadConfig(cfgFile)
}

// loadConfig reads the config file over the defaults. Lookup order is
// explicit path, then .quill/config.yaml, then ~/.config/quill/config.yaml.
// When none exists a commented default is written to the user directory.
func loadConfig(explicit string) (config.Config, string, error) {
	// Use custom key delimiter "::" to allow dotted keys like "syntax.keyword1"
	// in the theme.colors map without viper treating them as nested paths.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	userDir := config.DefaultConfigDir()

	switch {
	case explicit != "":
		v.SetConfigFile(explicit)
	case fileExists(localConfigPath):
		v.SetConfigFile(localConfigPath)
	default:
		if userDir != "" {
			v.AddConfigPath(userDir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Defaults(), "", fmt.Errorf("reading config: %w", err)
		}
		// If the write fails, continue with defaults and no config file.
		if userDir != "" {
			defaultPath := filepath.Join(userDir, "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				v.SetConfigFile(defaultPath)
				_ = v.ReadInConfig()
			}
		}
	}

	c := config.Defaults()
	if err := v.Unmarshal(&c); err != nil {
		return config.Defaults(), "", fmt.Errorf("decoding config: %w", err)
	}
	return c, v.ConfigFileUsed(), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// initLogging enables the debug log when asked for by flag, env or config.
// The returned cleanup is never nil.
func initLogging(prefix string) (func(), error) {
	if os.Getenv("QUILL_DEBUG") == "" && !debugFlag && !cfg.Debug {
		log.SetEnabled(false)
		return func() {}, nil
	}
	logPath := os.Getenv("QUILL_LOG")
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return func() {}, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "quill starting", "version", version, "config", cfgUsed, "logPath", logPath)
	return cleanup, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	cleanup, err := initLogging("quill")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	s, err := newSession(cmd.Context(), cfg, path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(s.model, tea.WithAltScreen())
	_, err = p.Run()

	// Clean up watcher, database and tracing resources
	if closeErr := s.Close(cmd.Context()); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
