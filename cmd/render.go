package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/overlay"
)

func newRenderCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Print a file as formatted text",
		Long: `Render FILE, or standard input when FILE is omitted or "-", the way the
formatted view shows it: markup delimiters are hidden, emphasis is drawn
with terminal attributes and links are underlined.

With --bionic the reading overlay bolds the first part of every word.
Styling is dropped when output is not a terminal or --plain is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, o, args)
		},
	}
	cmd.Flags().Bool("bionic", false, "apply the reading overlay (default from bionic.enabled)")
	cmd.Flags().String("strength", "", "overlay strength: light, medium or strong (default from bionic.strength)")
	cmd.Flags().IntP("width", "w", 0, "wrap lines at this many columns, 0 to disable")
	cmd.Flags().Bool("plain", false, "never emit terminal styling")
	cmd.Flags().Bool("auto-link", true, "detect bare URLs and email addresses (default from editor.auto_link)")
	return cmd
}

func runRender(cmd *cobra.Command, o *rootOptions, args []string) error {
	flags := cmd.Flags()
	bionic := o.cfg.Bionic.Enabled
	if flags.Changed("bionic") {
		bionic, _ = flags.GetBool("bionic")
	}
	strength := o.cfg.Bionic.ParsedStrength()
	if flags.Changed("strength") {
		raw, _ := flags.GetString("strength")
		s, err := overlay.ParseStrength(raw)
		if err != nil {
			return err
		}
		strength = s
	}
	autoLink := o.cfg.Editor.AutoLink
	if flags.Changed("auto-link") {
		autoLink, _ = flags.GetBool("auto-link")
	}
	width, _ := flags.GetInt("width")
	plain, _ := flags.GetBool("plain")

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	doc := markup.Parse(text, autoLink)
	view := overlay.Plain(doc)
	if bionic {
		view = overlay.Apply(doc, strength)
	}

	out := cmd.OutOrStdout()
	profile := termenv.NewOutput(out).EnvColorProfile()
	if plain {
		profile = termenv.Ascii
	}
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(profile)

	_, err = fmt.Fprintln(out, renderView(r, view, width))
	return err
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

// renderView draws every fragment with r and wraps lines at width.
func renderView(r *lipgloss.Renderer, v overlay.View, width int) string {
	lines := make([]string, len(v.Lines))
	for i, line := range v.Lines {
		var b strings.Builder
		for _, f := range line.Fragments {
			b.WriteString(fragmentStyle(r, f).Render(f.Text))
		}
		lines[i] = b.String()
		if width > 0 {
			lines[i] = wordwrap.String(lines[i], width)
		}
	}
	return strings.Join(lines, "\n")
}

func fragmentStyle(r *lipgloss.Renderer, f overlay.Fragment) lipgloss.Style {
	s := r.NewStyle()
	switch f.Style {
	case markup.KindBold:
		s = s.Bold(true)
	case markup.KindItalic:
		s = s.Italic(true)
	case markup.KindBoldItalic:
		s = s.Bold(true).Italic(true)
	case markup.KindLink:
		s = s.Underline(true)
	}
	if f.Emphasis {
		s = s.Bold(true)
	}
	return s
}
