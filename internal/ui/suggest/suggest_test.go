package suggest

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/spell"
)

var mk = spell.Marker{Start: 6, Length: 4}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigation_StopsAtEnds(t *testing.T) {
	m := New("helo", mk, []string{"hello", "help"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.Selected())

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, m.Selected(), "add row is selectable")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, m.Selected())

	m, _ = m.Update(runes("k"))
	require.Equal(t, 1, m.Selected())
}

func TestEnter_ChoosesSuggestion(t *testing.T) {
	m := New("helo", mk, []string{"hello", "help"})
	m, _ = m.Update(runes("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, ChosenMsg{Marker: mk, Word: "helo", Replacement: "help"}, cmd())
}

func TestDigitChoosesDirectly(t *testing.T) {
	m := New("helo", mk, []string{"hello", "help"})
	_, cmd := m.Update(runes("1"))
	require.Equal(t, ChosenMsg{Marker: mk, Word: "helo", Replacement: "hello"}, cmd())

	_, cmd = m.Update(runes("7"))
	require.Nil(t, cmd, "digit past the list does nothing")
}

func TestAddRow(t *testing.T) {
	m := New("quill", mk, nil)
	require.Equal(t, 0, m.Selected())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, AddWordMsg{Word: "quill"}, cmd())
}

func TestCancel(t *testing.T) {
	m := New("helo", mk, []string{"hello"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, CancelMsg{}, cmd())
}

func TestView(t *testing.T) {
	m := New("helo", mk, []string{"hello", "help"})
	out := ansi.Strip(m.View())
	require.Contains(t, out, "Spelling: helo")
	require.Contains(t, out, ">1 hello")
	require.Contains(t, out, " 2 help")
	require.Contains(t, out, "+ add to dictionary")

	empty := ansi.Strip(New("zzz", mk, nil).View())
	require.Contains(t, empty, "no suggestions")
	require.Contains(t, empty, ">+ add to dictionary")
}

func TestOverlay_KeepsScreenSize(t *testing.T) {
	m := New("helo", mk, []string{"hello"}).SetSize(60, 12)
	bg := strings.TrimRight(strings.Repeat(strings.Repeat(".", 60)+"\n", 12), "\n")
	out := m.Overlay(bg)
	require.Len(t, strings.Split(out, "\n"), 12)
	require.Contains(t, ansi.Strip(out), "hello")
}
