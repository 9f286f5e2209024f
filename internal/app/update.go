package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/editsync"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/schedule"
	"github.com/zjrosen/quill/internal/store"
	"github.com/zjrosen/quill/internal/ui/logview"
	"github.com/zjrosen/quill/internal/ui/richview"
	"github.com/zjrosen/quill/internal/ui/suggest"
	"github.com/zjrosen/quill/internal/ui/toaster"
)

// Update implements tea.Model. Every path drains the scheduler so timers
// armed by the controller reach the runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	return m, tea.Batch(cmd, m.sched.Cmd())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case schedule.FireMsg:
		m.sched.Fire(msg)
		return m, nil

	case log.LogEvent:
		m.logView.Append(msg.Payload)
		return m, m.logListener.Listen()

	case pubsub.Event[editsync.Event]:
		return m.handleEvent(msg)

	case changedMsg:
		return m.handleChanged(msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logview.CloseMsg:
		m.logView.Hide()
		return m, nil

	case suggestionsMsg:
		return m.showSuggestions(msg)

	case suggest.ChosenMsg:
		m.suggest = nil
		return m.replaceWord(msg)

	case suggest.AddWordMsg:
		m.suggest = nil
		return m.addWord(msg.Word)

	case suggest.CancelMsg:
		m.suggest = nil
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	// pane border and status bar
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)
	if m.svc.Config.UI.ShowStatusBar {
		innerH = max(height-3, 1)
	}
	m.source.SetSize(innerW, innerH)
	m.rich.SetSize(innerW, innerH)
	m.help = m.help.SetSize(width, height)
	m.logView.SetSize(width, height)
	if m.suggest != nil {
		s := m.suggest.SetSize(width, height)
		m.suggest = &s
	}
}

func (m Model) handleEvent(ev pubsub.Event[editsync.Event]) (Model, tea.Cmd) {
	listen := m.events.Listen()
	switch ev.Type {
	case editsync.EventSaved:
		m, cmd := m.toast("Saved "+m.docName(), toaster.StyleSuccess)
		return m, tea.Batch(cmd, listen)
	case editsync.EventLoaded:
		m.stale = false
	}
	return m, listen
}

func (m Model) handleChanged(c changedMsg) (Model, tea.Cmd) {
	wait := m.waitForChange()
	if m.ctrl.Dirty() {
		m.stale = true
		m, cmd := m.toast("File changed on disk; ctrl+r reloads and drops your edits", toaster.StyleWarn)
		return m, tea.Batch(cmd, wait)
	}
	before := m.ctrl.Canonical()
	if err := m.ctrl.Load(context.Background()); err != nil {
		m, cmd := m.toast(err.Error(), toaster.StyleError)
		return m, tea.Batch(cmd, wait)
	}
	delta := store.Compare(before, m.ctrl.Canonical())
	log.Info(log.CatStore, "Reloaded after external change", "path", c.Path, "delta", delta.String())
	m.focusActive()
	m, cmd := m.toast(fmt.Sprintf("Reloaded %s (%s)", m.docName(), delta), toaster.StyleInfo)
	return m, tea.Batch(cmd, wait)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.logView.Visible() {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.ctrl.State().Formatted() {
		return m, nil
	}
	if url, ok := m.rich.LinkAt(msg); ok {
		return m.openLink(url)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.svc.Debug && key.Matches(msg, m.keys.DebugLog) {
		m.logView.Toggle()
		return m, nil
	}
	if m.logView.Visible() {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	if m.suggest != nil {
		s, cmd := m.suggest.Update(msg)
		m.suggest = &s
		return m, cmd
	}

	if key.Matches(msg, m.keys.Quit) {
		if m.ctrl.Dirty() && !m.confirmQuit {
			m.confirmQuit = true
			return m.toast("Unsaved changes; press again to quit", toaster.StyleWarn)
		}
		return m, tea.Quit
	}
	m.confirmQuit = false

	switch {
	case key.Matches(msg, m.keys.ToggleView):
		m.ctrl.ToggleView()
		m.focusActive()
	case key.Matches(msg, m.keys.ToggleOverlay):
		m.ctrl.SetOverlayEnabled(!m.live.BionicEnabled())
		m.focusActive()
	case key.Matches(msg, m.keys.CycleStrength):
		next := nextStrength(m.live.BionicStrength())
		m.ctrl.SetOverlayStrength(next)
		return m.toast("Overlay strength: "+next.String(), toaster.StyleInfo)
	case key.Matches(msg, m.keys.ToggleAutoLink):
		m.ctrl.SetAutoLink(!m.live.AutoLinkEnabled())
	case key.Matches(msg, m.keys.ToggleSpell):
		if m.svc.Checker == nil || !m.svc.Checker.Enabled() {
			return m.toast("No dictionary available", toaster.StyleWarn)
		}
		m.ctrl.SetSpellCheck(!m.live.SpellCheckEnabled())
	case key.Matches(msg, m.keys.OpenLink):
		if url, ok := m.linkAtCaret(); ok {
			return m.openLink(url)
		}
		return m.toast("No link under the cursor", toaster.StyleInfo)
	case key.Matches(msg, m.keys.Suggest):
		return m.openSuggestions()
	case key.Matches(msg, m.keys.AddWord):
		if _, word, ok := m.wordAtCaret(); ok {
			return m.addWord(word)
		}
		return m.toast("No misspelling under the cursor", toaster.StyleInfo)
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.help = m.help.SetSize(m.width, m.height)
	default:
		return m.edit(msg)
	}
	return m, nil
}

// edit routes a key to the surface that is shown.
func (m Model) edit(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.ctrl.State().Formatted() {
		if m.source.Update(msg) {
			m.ctrl.SourceEdited()
		}
		return m, nil
	}
	switch m.rich.Update(msg) {
	case richview.Edited:
		m.ctrl.RichEdited()
	case richview.Blocked:
		return m.toast("Read-only while the reading overlay is on (ctrl+b)", toaster.StyleInfo)
	}
	return m, nil
}

func (m Model) save() (Model, tea.Cmd) {
	if m.svc.Store == nil {
		return m.toast("Scratch buffer has no file", toaster.StyleWarn)
	}
	if err := m.ctrl.Save(context.Background()); err != nil {
		return m.toast(err.Error(), toaster.StyleError)
	}
	m.stale = false
	return m, nil
}

func (m Model) reload() (Model, tea.Cmd) {
	if m.svc.Store == nil {
		return m.toast("Scratch buffer has no file", toaster.StyleWarn)
	}
	if err := m.ctrl.Load(context.Background()); err != nil {
		return m.toast(err.Error(), toaster.StyleError)
	}
	m.stale = false
	m.focusActive()
	return m.toast("Reloaded "+m.docName(), toaster.StyleInfo)
}

func (m Model) linkAtCaret() (string, bool) {
	if m.ctrl.State().Formatted() {
		return m.rich.LinkAtCaret()
	}
	l, ok := m.source.LinkAtCaret()
	return l.URL, ok
}

func (m Model) openLink(url string) (Model, tea.Cmd) {
	if err := m.svc.Opener.Open(url); err != nil {
		log.ErrorErr(log.CatUI, "Opening link failed", err, "url", url)
		return m.toast(err.Error(), toaster.StyleError)
	}
	log.Info(log.CatUI, "Opened link", "url", url)
	return m.toast("Opened "+url, toaster.StyleInfo)
}
