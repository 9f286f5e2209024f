// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor's global bindings. Keys not bound here go to
// the surface that is shown.
type KeyMap struct {
	// View
	ToggleView    key.Binding
	ToggleOverlay key.Binding
	CycleStrength key.Binding

	// Detection
	ToggleAutoLink key.Binding
	ToggleSpell    key.Binding
	OpenLink       key.Binding
	Suggest        key.Binding
	AddWord        key.Binding

	// File
	Save   key.Binding
	Reload key.Binding

	// General
	Help     key.Binding
	DebugLog key.Binding
	Escape   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleView: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "source/formatted"),
		),
		ToggleOverlay: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bionic overlay"),
		),
		CycleStrength: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "overlay strength"),
		),

		ToggleAutoLink: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "auto-link"),
		),
		ToggleSpell: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "spell check"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open link"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "suggestions"),
		),
		AddWord: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "add to dictionary"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload from disk"),
		),

		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		DebugLog: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "debug log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the status bar hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleView, k.ToggleOverlay, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for the help overlay, grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleView, k.ToggleOverlay, k.CycleStrength},
		{k.ToggleAutoLink, k.ToggleSpell, k.OpenLink, k.Suggest, k.AddWord},
		{k.Save, k.Reload, k.Help, k.DebugLog, k.Quit},
	}
}

// Editor is the shared default key map.
var Editor = DefaultKeyMap()
