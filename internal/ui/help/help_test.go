package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/keys"
)

func TestDocument_ListsEveryBinding(t *testing.T) {
	doc := New(keys.Editor, "dark").Document()
	for _, group := range keys.Editor.FullHelp() {
		for _, b := range group {
			require.Contains(t, doc, b.Help().Desc)
		}
	}
	require.Contains(t, doc, "## Markup")
}

func TestView_Rendered(t *testing.T) {
	m := New(keys.Editor, "dark").SetSize(100, 60)
	out := ansi.Strip(m.View())
	require.Contains(t, out, "source/formatted")
	require.Contains(t, out, "╭")
}

func TestOverlay_KeepsScreenHeight(t *testing.T) {
	m := New(keys.Editor, "light").SetSize(90, 30)
	bg := strings.TrimRight(strings.Repeat(strings.Repeat(" ", 90)+"\n", 30), "\n")
	out := m.Overlay(bg)
	require.Len(t, strings.Split(out, "\n"), 30)
}

func TestUnknownStyleFallsBackToPlainMarkdown(t *testing.T) {
	m := New(keys.Editor, "neon").SetSize(80, 40)
	require.Contains(t, ansi.Strip(m.View()), "Action")
}
