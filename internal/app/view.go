package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/quill/internal/editsync"
	"github.com/zjrosen/quill/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body, title string
	if m.ctrl.State().Formatted() {
		body = m.rich.View()
		title = "Formatted · " + m.docName()
	} else {
		body = m.source.View()
		title = "Source · " + m.docName()
	}
	var view string
	if m.svc.Config.UI.ShowStatusBar {
		view = styles.RenderPane(body, title, m.width, m.height-1, true) + "\n" + m.statusBar()
	} else {
		view = styles.RenderPane(body, title, m.width, m.height, true)
	}

	if m.suggest != nil {
		view = m.suggest.Overlay(view)
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.logView.Visible() {
		view = m.logView.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return zone.Scan(view)
}

func stateLabel(s editsync.State) string {
	switch s {
	case editsync.FormattedEditable:
		return "FORMATTED"
	case editsync.FormattedReadOnly:
		return styles.StatusReadOnlyStyle.Render("READING")
	default:
		return "SOURCE"
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (m Model) statusBar() string {
	left := []string{stateLabel(m.ctrl.State()), m.docName()}
	if m.ctrl.Dirty() {
		left = append(left, styles.StatusDirtyStyle.Render("modified"))
	}
	if m.stale {
		left = append(left, styles.ErrorStyle.Render("changed on disk"))
	}

	bionic := "bionic " + onOff(m.live.BionicEnabled())
	if m.live.BionicEnabled() {
		bionic += " (" + m.live.BionicStrength().String() + ")"
	}
	right := []string{
		bionic,
		fmt.Sprintf("links %s:%d", onOff(m.live.AutoLinkEnabled()), len(m.ctrl.Links())),
	}
	if m.svc.Checker.Enabled() {
		right = append(right, fmt.Sprintf("spell %s:%d", onOff(m.live.SpellCheckEnabled()), len(m.ctrl.Markers())))
	}
	right = append(right, styles.StatusHintStyle.Render("f1 help"))

	l := strings.Join(left, "  ")
	r := strings.Join(right, "  ")
	gap := max(m.width-2-lipgloss.Width(l)-lipgloss.Width(r), 1)
	return styles.StatusBarStyle.Width(m.width).MaxWidth(m.width).Render(l + strings.Repeat(" ", gap) + r)
}
