// Package help renders the help screen: key bindings and a markup cheat
// sheet, formatted with glamour.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/ui/layer"
	"github.com/zjrosen/quill/internal/ui/markdown"
	"github.com/zjrosen/quill/internal/ui/styles"
)

const syntaxGuide = `
## Markup

| Write | Shows |
|---|---|
| ` + "`**bold**`" + ` | **bold** |
| ` + "`*italic*` or `_italic_`" + ` | *italic* |
| ` + "`***both***`" + ` | ***both*** |
| ` + "`[label](example.com)`" + ` | [label](https://example.com) |
| ` + "`www.example.com`" + ` | auto-link |

## Views

The **source** view edits the text as written. The **formatted** view hides
the markup. With the bionic overlay on, the formatted view bolds the start of
every word and is read-only; turn the overlay off to edit there.
`

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.BorderFocusColor).
	Padding(0, 1)

// Model is the help overlay.
type Model struct {
	keys     keys.KeyMap
	style    string
	width    int
	height   int
	viewport viewport.Model
	content  string
}

// New creates the help overlay for km, rendered with a glamour style.
func New(km keys.KeyMap, style string) Model {
	return Model{keys: km, style: style}
}

// Document returns the help text as Markdown.
func (m Model) Document() string {
	var b strings.Builder
	b.WriteString("# Quill\n\n## Keys\n\n| Key | Action |\n|---|---|\n")
	for _, group := range m.keys.FullHelp() {
		for _, bind := range group {
			writeBinding(&b, bind)
		}
	}
	b.WriteString(syntaxGuide)
	return b.String()
}

func writeBinding(b *strings.Builder, bind key.Binding) {
	h := bind.Help()
	fmt.Fprintf(b, "| `%s` | %s |\n", h.Key, h.Desc)
}

// SetSize re-renders the help for a new screen size.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	boxW := max(min(width-4, 80), 30)
	boxH := max(height-4, 5)

	r, err := markdown.New(boxW-4, m.style)
	if err == nil {
		m.content, err = r.Render(m.Document())
	}
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering help failed", err)
		m.content = m.Document()
	}
	m.viewport = viewport.New(boxW-4, boxH-2)
	m.viewport.SetContent(strings.TrimRight(m.content, "\n"))
	return m
}

// Update scrolls the help.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the help box.
func (m Model) View() string {
	return boxStyle.Render(m.viewport.View())
}

// Overlay draws the help box centered over background.
func (m Model) Overlay(background string) string {
	return layer.Place(layer.Config{Width: m.width, Height: m.height, Position: layer.Center}, m.View(), background)
}
