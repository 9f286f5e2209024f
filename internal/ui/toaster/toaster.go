// Package toaster shows short notifications at the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/ui/layer"
	"github.com/zjrosen/quill/internal/ui/styles"
)

// Style selects the border color and icon.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Model holds the current toast.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns a command that hides it after d.
// A newer toast cancels the dismissal of an older one.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update hides the toast when its dismissal fires.
func (m Model) Update(msg DismissMsg) Model {
	if msg.seq == m.seq {
		m.visible = false
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}
	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	var icon string
	switch m.style {
	case StyleError:
		box = box.BorderForeground(styles.StatusErrorColor)
		icon = "✗ "
	case StyleInfo:
		box = box.BorderForeground(styles.BorderFocusColor)
		icon = "i "
	case StyleWarn:
		box = box.BorderForeground(styles.StatusWarningColor)
		icon = "! "
	default:
		box = box.BorderForeground(styles.StatusSuccessColor)
		icon = "✓ "
	}
	return box.Render(icon + m.message)
}

// Overlay draws the toast over bg, anchored at the bottom.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return layer.Place(layer.Config{Width: width, Height: height, Position: layer.Bottom, PadY: 1}, m.View(), bg)
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}
