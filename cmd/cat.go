package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/document"
	"github.com/zjrosen/quill/internal/rows"
	"github.com/zjrosen/quill/internal/ui/styles"
)

var catCmd = &cobra.Command{
	Use:   "cat FILE",
	Short: "Print a file with syntax highlighting",
	Long: `Print FILE to standard output highlighted the way the editor shows it.

Tabs are expanded and control characters are shown as ^-style glyphs.

Example:
  quill cat main.go
  quill cat --color always main.c | less -R`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

var (
	catColor string
	catPlain bool
)

func init() {
	rootCmd.AddCommand(catCmd)

	catCmd.Flags().StringVar(&catColor, "color", "auto", "when to use color: auto, always or never")
	catCmd.Flags().BoolVar(&catPlain, "plain", false, "strip all escape sequences from the output")
}

func runCat(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	cleanup, err := initLogging("quill-cat")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return printFile(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], catColor, catPlain)
}

// printFile writes path highlighted to w. color picks the termenv profile.
func printFile(ctx context.Context, w io.Writer, c config.Config, path, color string, plain bool) error {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "auto":
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", color)
	}

	if !fileExists(path) {
		return fmt.Errorf("open %s: no such file", path)
	}
	table, err := c.FiletypeTable()
	if err != nil {
		return err
	}
	store := rows.New(rows.WithTabStop(c.TabStop), rows.WithTable(table))
	doc := document.New(store)
	if err := doc.Open(ctx, path); err != nil {
		return err
	}

	theme, err := styles.NewTheme(styles.ThemeConfig{
		Preset: c.Theme.Preset,
		Colors: c.Theme.FlattenedColors(),
	}, styles.WithRenderer(r))
	if err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	out := bufio.NewWriter(w)
	for i := range store.Len() {
		text, hl := store.RenderSlice(i, 0, store.RenderLen(i))
		line := theme.RenderRow(text, hl)
		if plain {
			line = ansi.Strip(line)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return out.Flush()
}
