package richview

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/overlay"
	"github.com/zjrosen/quill/internal/spell"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func surface(text string, readOnly bool) *Model {
	m := New("test-")
	doc := markup.Parse(text, true)
	view := overlay.Plain(doc)
	if readOnly {
		view = overlay.Apply(doc, overlay.Medium)
	}
	m.SetView(doc, view, readOnly)
	m.Focus()
	m.SetSize(80, 10)
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestTypingEditsDocument(t *testing.T) {
	m := surface("Hello *world*", false)
	m.SetSelection(markup.Position{Offset: 5}, markup.Position{Offset: 5})

	require.Equal(t, Edited, m.Update(runes(",")))
	require.Equal(t, "Hello, *world*", markup.Serialize(m.Document()))
	require.Equal(t, markup.Position{Offset: 6}, m.caret)
	require.Equal(t, m.Document().PlainText(), m.DisplayView().Text())
}

func TestTypingInsideEmphasisKeepsStyle(t *testing.T) {
	m := surface("*ab*", false)
	m.SetSelection(markup.Position{Offset: 1}, markup.Position{Offset: 1})
	m.Update(runes("x"))
	require.Equal(t, "*axb*", markup.Serialize(m.Document()))
}

func TestReadOnlyBlocksEdits(t *testing.T) {
	m := surface("Hello", true)
	for _, msg := range []tea.KeyMsg{runes("x"), {Type: tea.KeyEnter}, {Type: tea.KeyBackspace}, {Type: tea.KeySpace}} {
		require.Equal(t, Blocked, m.Update(msg))
	}
	require.Equal(t, "Hello", markup.Serialize(m.Document()))

	require.Equal(t, Unchanged, m.Update(tea.KeyMsg{Type: tea.KeyRight}), "movement still works")
	require.Equal(t, markup.Position{Offset: 1}, m.caret)
	require.False(t, m.ReplaceWord(spell.Marker{Start: 0, Length: 5}, "Howdy"))
}

func TestEnterAndBackspaceAcrossParagraphs(t *testing.T) {
	m := surface("ab", false)
	m.SetSelection(markup.Position{Offset: 1}, markup.Position{Offset: 1})

	require.Equal(t, Edited, m.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, "a\nb", markup.Serialize(m.Document()))
	require.Equal(t, markup.Position{Para: 1}, m.caret)

	require.Equal(t, Edited, m.Update(tea.KeyMsg{Type: tea.KeyBackspace}))
	require.Equal(t, "ab", markup.Serialize(m.Document()))
	require.Equal(t, markup.Position{Offset: 1}, m.caret)

	require.Equal(t, Edited, m.Update(tea.KeyMsg{Type: tea.KeyDelete}))
	require.Equal(t, "a", markup.Serialize(m.Document()))
	require.Equal(t, Unchanged, m.Update(tea.KeyMsg{Type: tea.KeyDelete}), "nothing after the last character")
}

func TestBackspaceRemovesWholeGrapheme(t *testing.T) {
	m := surface("a🙂", false)
	m.SetSelection(markup.Position{Offset: 5}, markup.Position{Offset: 5})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "a", markup.Serialize(m.Document()))
}

func TestArrowsCrossParagraphs(t *testing.T) {
	m := surface("ab\ncd", false)
	m.SetSelection(markup.Position{Offset: 2}, markup.Position{Offset: 2})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, markup.Position{Para: 1}, m.caret)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, markup.Position{Offset: 2}, m.caret)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, markup.Position{Para: 1, Offset: 2}, m.caret)
}

func TestLinkAtCaret(t *testing.T) {
	m := surface("see [docs](example.com/docs)", false)
	m.SetSelection(markup.Position{Offset: 5}, markup.Position{Offset: 5})
	url, ok := m.LinkAtCaret()
	require.True(t, ok)
	require.Equal(t, "https://example.com/docs", url)

	m.SetSelection(markup.Position{Offset: 1}, markup.Position{Offset: 1})
	_, ok = m.LinkAtCaret()
	require.False(t, ok)
}

func TestReplaceWord(t *testing.T) {
	m := surface("Hello *wrld*", false)
	m.SetMarkers([]spell.Marker{{Start: 6, Length: 4}})
	m.SetSelection(markup.Position{Offset: 8}, markup.Position{Offset: 8})

	mk, word, ok := m.WordAtCaret()
	require.True(t, ok)
	require.Equal(t, "wrld", word)
	require.True(t, m.ReplaceWord(mk, "world"))
	require.Equal(t, "Hello *world*", markup.Serialize(m.Document()))
}

func TestView_ShowsDisplayTextOnly(t *testing.T) {
	m := surface("Hello *world* and [docs](x.com)\n\nend", true)
	out := ansi.Strip(zone.Scan(m.View()))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Hello world and docs", strings.TrimRight(lines[0], " "))
	require.Equal(t, "end", lines[2])
	require.NotContains(t, out, "*")
	require.NotContains(t, out, "](")
}

func TestSetViewClampsSelection(t *testing.T) {
	m := surface("a long paragraph", false)
	m.SetSelection(markup.Position{Offset: 10}, markup.Position{Offset: 12})
	doc := markup.Parse("short", true)
	m.SetView(doc, overlay.Plain(doc), false)
	a, c := m.Selection()
	require.Equal(t, markup.Position{Offset: 5}, a)
	require.Equal(t, markup.Position{Offset: 5}, c)
}
