// Package suggest provides the spelling suggestion picker shown for the
// misspelled word under the caret.
package suggest

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/ui/layer"
	"github.com/zjrosen/quill/internal/ui/styles"
)

// ChosenMsg asks the editor to replace the marked word.
type ChosenMsg struct {
	Marker      spell.Marker
	Word        string
	Replacement string
}

// AddWordMsg asks the editor to add Word to the custom dictionary.
type AddWordMsg struct {
	Word string
}

// CancelMsg is sent when the picker is dismissed.
type CancelMsg struct{}

const minBoxWidth = 25

// Model holds the picker state. The last row is always the "add to
// dictionary" action.
type Model struct {
	word     string
	marker   spell.Marker
	options  []string
	selected int

	viewportWidth  int
	viewportHeight int
}

// New creates a picker for word at marker with the given corrections.
func New(word string, marker spell.Marker, suggestions []string) Model {
	return Model{word: word, marker: marker, options: suggestions}
}

// SetSize sets the screen size used for centering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// Word returns the word being corrected.
func (m Model) Word() string {
	return m.word
}

// Selected returns the index of the highlighted row.
func (m Model) Selected() int {
	return m.selected
}

func (m Model) rows() int {
	return len(m.options) + 1
}

func (m Model) addRow() bool {
	return m.selected == len(m.options)
}

// Update handles navigation and selection.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "j", "down", "ctrl+n", "tab":
		if m.selected < m.rows()-1 {
			m.selected++
		}
	case "k", "up", "ctrl+p", "shift+tab":
		if m.selected > 0 {
			m.selected--
		}
	case "enter":
		return m, m.choose()
	case "esc", "q":
		return m, func() tea.Msg { return CancelMsg{} }
	default:
		// Digits pick a suggestion directly.
		if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.options) {
				m.selected = i
				return m, m.choose()
			}
		}
	}
	return m, nil
}

func (m Model) choose() tea.Cmd {
	if m.addRow() {
		word := m.word
		return func() tea.Msg { return AddWordMsg{Word: word} }
	}
	chosen := ChosenMsg{Marker: m.marker, Word: m.word, Replacement: m.options[m.selected]}
	return func() tea.Msg { return chosen }
}

// View renders the picker box.
func (m Model) View() string {
	title := fmt.Sprintf("Spelling: %s", m.word)
	width := max(minBoxWidth, lipgloss.Width(title)+2)

	labels := make([]string, 0, m.rows())
	for i, opt := range m.options {
		prefix := "  "
		if i < 9 {
			prefix = fmt.Sprintf("%d ", i+1)
		}
		labels = append(labels, prefix+opt)
	}
	labels = append(labels, "+ add to dictionary")
	for _, l := range labels {
		width = max(width, lipgloss.Width(l)+2)
	}

	var rows []string
	if len(m.options) == 0 {
		rows = append(rows, styles.StatusHintStyle.Render(" no suggestions"))
	}
	for i, label := range labels {
		if i == m.selected {
			rows = append(rows, styles.EmphasisStyle.Render(">")+lipgloss.NewStyle().Bold(true).Render(label))
		} else {
			rows = append(rows, " "+label)
		}
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).PaddingLeft(1)
	divider := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", width))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(width).
		Render(titleStyle.Render(title) + "\n" + divider + "\n" + strings.Join(rows, "\n"))
}

// Overlay renders the picker centered over background.
func (m Model) Overlay(background string) string {
	return layer.Place(layer.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: layer.Center,
	}, m.View(), background)
}
