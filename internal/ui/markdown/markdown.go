// Package markdown renders Markdown for the terminal with glamour. The
// editor's markup is a Markdown subset, so the same renderer serves the
// help screen and document previews.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Styles are the accepted glamour style names.
var Styles = []string{"dark", "light", "notty", "ascii", "dracula", "tokyo-night", "pink"}

// Renderer wraps a glamour renderer with its width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer wrapping at width. style is a glamour style name
// and defaults to "dark". Named styles avoid glamour's automatic
// background detection, which queries the terminal and leaks the reply
// into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	if !ValidStyle(style) {
		return nil, fmt.Errorf("unknown markdown style %q (valid: %s)", style, strings.Join(Styles, ", "))
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// ValidStyle reports whether style is a known glamour style.
func ValidStyle(style string) bool {
	for _, s := range Styles {
		if s == style {
			return true
		}
	}
	return false
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms Markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
