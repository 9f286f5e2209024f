package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/ui/suggest"
	"github.com/zjrosen/quill/internal/ui/toaster"
)

// suggestionsMsg delivers corrections computed off the update loop.
type suggestionsMsg struct {
	marker      spell.Marker
	word        string
	suggestions []string
	err         error
}

func (m Model) wordAtCaret() (spell.Marker, string, bool) {
	if m.ctrl.State().Formatted() {
		return m.rich.WordAtCaret()
	}
	return m.source.WordAtCaret()
}

// currentWord returns the text now covered by mk on the shown surface.
func (m Model) currentWord(mk spell.Marker) (string, bool) {
	text := m.source.Text()
	if m.ctrl.State().Formatted() {
		text = m.rich.Document().PlainText()
	}
	end := mk.Start + mk.Length
	if mk.Start < 0 || end > len(text) {
		return "", false
	}
	return text[mk.Start:end], true
}

func (m Model) openSuggestions() (Model, tea.Cmd) {
	mk, word, ok := m.wordAtCaret()
	if !ok {
		return m.toast("No misspelling under the cursor", toaster.StyleInfo)
	}
	checker := m.svc.Checker
	limit := m.svc.Config.Dictionary.MaxSuggestions
	return m, func() tea.Msg {
		out, err := checker.Suggest(context.Background(), word, limit)
		return suggestionsMsg{marker: mk, word: word, suggestions: out, err: err}
	}
}

func (m Model) showSuggestions(msg suggestionsMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatSpell, "Suggestions failed", msg.err, "word", msg.word)
		return m.toast(msg.err.Error(), toaster.StyleError)
	}
	if cur, ok := m.currentWord(msg.marker); !ok || cur != msg.word {
		return m, nil
	}
	s := suggest.New(msg.word, msg.marker, msg.suggestions).SetSize(m.width, m.height)
	m.suggest = &s
	return m, nil
}

// replaceWord applies a chosen correction unless the text moved on since
// the picker opened.
func (m Model) replaceWord(msg suggest.ChosenMsg) (Model, tea.Cmd) {
	if cur, ok := m.currentWord(msg.Marker); !ok || cur != msg.Word {
		return m.toast("Text changed; correction skipped", toaster.StyleWarn)
	}
	if !m.ctrl.State().Formatted() {
		m.source.ReplaceRange(msg.Marker.Start, msg.Marker.Start+msg.Marker.Length, msg.Replacement)
		m.ctrl.SourceEdited()
		return m, nil
	}
	if !m.rich.ReplaceWord(msg.Marker, msg.Replacement) {
		return m.toast("Read-only while the reading overlay is on (ctrl+b)", toaster.StyleInfo)
	}
	m.ctrl.RichEdited()
	return m, nil
}

func (m Model) addWord(word string) (Model, tea.Cmd) {
	if m.svc.Custom == nil {
		return m.toast("No custom dictionary configured", toaster.StyleWarn)
	}
	ctx := context.Background()
	if err := m.svc.Custom.Add(ctx, word); err != nil {
		return m.toast(err.Error(), toaster.StyleError)
	}
	if m.svc.Checker != nil {
		if err := m.svc.Checker.InvalidateSuggestions(ctx); err != nil {
			log.Warn(log.CatCache, "Failed to clear suggestion cache", "error", err)
		}
	}
	m.ctrl.Recheck()
	return m.toast(fmt.Sprintf("Added %q to the dictionary", word), toaster.StyleSuccess)
}
