package sourceview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/links"
	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/ui/cells"
)

func focused(text string, caret int) *Model {
	m := New()
	m.SetText(text)
	m.SetCaret(caret)
	m.Focus()
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestTyping(t *testing.T) {
	m := focused("", 0)
	require.True(t, m.Update(runes("héllo")))
	require.True(t, m.Update(tea.KeyMsg{Type: tea.KeySpace}))
	require.True(t, m.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, "héllo \n", m.Text())
	require.Equal(t, len("héllo \n"), m.Caret())
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := New()
	require.False(t, m.Update(runes("x")))
	require.Empty(t, m.Text())
}

func TestCaretMovesByGrapheme(t *testing.T) {
	m := focused("a🙂b", 0)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 1, m.Caret())
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 5, m.Caret())

	require.True(t, m.Update(tea.KeyMsg{Type: tea.KeyBackspace}))
	require.Equal(t, "ab", m.Text())
	require.Equal(t, 1, m.Caret())

	require.True(t, m.Update(tea.KeyMsg{Type: tea.KeyDelete}))
	require.Equal(t, "a", m.Text())
}

func TestMovementDoesNotReportChange(t *testing.T) {
	m := focused("one\ntwo", 0)
	for _, k := range []tea.KeyType{tea.KeyRight, tea.KeyDown, tea.KeyEnd, tea.KeyHome, tea.KeyUp} {
		require.False(t, m.Update(tea.KeyMsg{Type: k}), "key %v", k)
	}
}

func TestVerticalMovementKeepsColumn(t *testing.T) {
	m := focused("abcdef\nxy\nlonger line", 5)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 9, m.Caret(), "clamped to the end of the short line")
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 10+5, m.Caret(), "goal column restored on the longer line")
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, len(m.Text()), m.Caret(), "down on the last row goes to the end")
}

func TestVerticalMovementOnWrappedRows(t *testing.T) {
	m := focused("abcdefgh", 1)
	m.SetSize(4, 5)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 5, m.Caret())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 1, m.Caret())
}

func TestKillLine(t *testing.T) {
	m := focused("hello world\nnext", 5)
	require.True(t, m.Update(tea.KeyMsg{Type: tea.KeyCtrlK}))
	require.Equal(t, "hello\nnext", m.Text())
	require.True(t, m.Update(tea.KeyMsg{Type: tea.KeyCtrlU}))
	require.Equal(t, "\nnext", m.Text())
	require.Equal(t, 0, m.Caret())
}

func TestWordMotion(t *testing.T) {
	m := focused("one two_three four", 0)
	m.Update(tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	require.Equal(t, 3, m.Caret())
	m.Update(tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	require.Equal(t, 13, m.Caret())
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true})
	require.Equal(t, 4, m.Caret())
}

func TestPasteNormalizesCRLF(t *testing.T) {
	m := focused("", 0)
	m.Update(runes("a\r\nb"))
	require.Equal(t, "a\nb", m.Text())
}

func TestSetTextClampsCaret(t *testing.T) {
	m := focused("long text", 9)
	m.SetText("ab")
	require.Equal(t, 2, m.Caret())
	m.SetCaret(-4)
	require.Equal(t, 0, m.Caret())
}

func TestLinkAndWordAtCaret(t *testing.T) {
	m := focused("go to example.com helo", 8)
	m.SetLinks(links.Detect(m.Text(), true))
	m.SetMarkers([]spell.Marker{{Start: 18, Length: 4}})

	l, ok := m.LinkAtCaret()
	require.True(t, ok)
	require.Equal(t, "https://example.com", l.URL)

	m.SetCaret(22)
	mk, word, ok := m.WordAtCaret()
	require.True(t, ok)
	require.Equal(t, "helo", word)
	require.Equal(t, 18, mk.Start)

	m.ReplaceRange(18, 22, "hello")
	require.Equal(t, "go to example.com hello", m.Text())
	require.Equal(t, 23, m.Caret())
}

func TestView_ShowsSourceVerbatim(t *testing.T) {
	m := focused("Hello *world* and [docs](x.com)\nsecond", 0)
	m.SetSize(80, 5)
	out := ansi.Strip(m.View())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Hello *world* and [docs](x.com)", lines[0])
	require.Equal(t, "second", lines[1])
}

func TestView_ScrollsToCaret(t *testing.T) {
	m := focused("1\n2\n3\n4\n5\n6", 0)
	m.SetSize(10, 2)
	m.SetCaret(len(m.Text()))
	out := ansi.Strip(m.View())
	require.Equal(t, "5\n6 ", out, "caret cell trails the last line")
}

func TestHighlight(t *testing.T) {
	cs := Highlight("**b** [l](u)")
	attr := func(i int) cells.Attr { return cs[i].Attr }
	require.NotZero(t, attr(0)&cells.Delimiter)
	require.NotZero(t, attr(2)&cells.Bold)
	require.Zero(t, attr(2)&cells.Italic)
	require.NotZero(t, attr(7)&cells.Link, "label")
	require.NotZero(t, attr(10)&cells.Target, "target")
	require.NotZero(t, attr(11)&cells.Delimiter, "closing paren")
}
