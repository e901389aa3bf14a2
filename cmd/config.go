package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/flags"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/ui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := targetConfigPath()
		if err := initConfigFile(path, configInitForce); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a single value, keeping comments in the file",
	Long: `Set a single configuration value. Nested keys are dotted; color tokens
keep their own dots.

Example:
  quill config set tab_stop 4
  quill config set ui.message_timeout 10s
  quill config set theme.colors.syntax.keyword1 "#FF79C6"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := targetConfigPath()
		if err := setConfigValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), targetConfigPath())
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List theme presets, color tokens, key actions, flags and filetypes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		return listChoices(cmd.OutOrStdout(), cfg)
	},
}

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configSetCmd, configPathCmd, configListCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
}

// targetConfigPath is the file config subcommands act on.
func targetConfigPath() string {
	switch {
	case cfgFile != "":
		return cfgFile
	case cfgUsed != "":
		return cfgUsed
	case fileExists(localConfigPath):
		return localConfigPath
	}
	if dir := config.DefaultConfigDir(); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return localConfigPath
}

func initConfigFile(path string, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	return config.WriteDefaultConfig(path)
}

// setConfigValue saves key and checks the result still loads and validates;
// an invalid result is rolled back.
func setConfigValue(path, key, value string) error {
	before, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := config.SaveValue(path, config.SplitKey(key), value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	c, _, err := loadConfig(path)
	if err == nil {
		err = c.Validate()
	}
	if err == nil {
		log.Info(log.CatConfig, "config value set", "key", key, "file", path)
		return nil
	}

	if existed {
		_ = os.WriteFile(path, before, 0o600)
	} else {
		_ = os.Remove(path)
	}
	return fmt.Errorf("setting %s: %w", key, err)
}

func listChoices(w io.Writer, c config.Config) error {
	table, err := c.FiletypeTable()
	if err != nil {
		return err
	}
	tokens := make([]string, 0, len(styles.AllTokens()))
	for _, t := range styles.AllTokens() {
		tokens = append(tokens, string(t))
	}
	sections := []struct {
		title string
		items []string
	}{
		{"Theme presets", styles.PresetNames()},
		{"Color tokens", tokens},
		{"Key actions", keys.Actions()},
		{"Flags", flags.WithDefaults(c.Flags).Names()},
		{"Filetypes", table.Names()},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "%s:\n  %s\n", s.title, strings.Join(s.items, "\n  ")); err != nil {
			return err
		}
	}
	return nil
}
