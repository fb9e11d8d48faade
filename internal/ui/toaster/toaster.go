// Package toaster shows short notifications over the bottom of a view.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/gridline/internal/ui/overlay"
	"github.com/zjrosen/gridline/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Style determines the toast's appearance.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Model holds the toast state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a hidden toaster.
func New() Model { return Model{} }

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct{ seq int }

// Show displays message and returns the command that dismisses it after
// d. A newer toast is not dismissed by an older toast's timer.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	m.visible = true
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		m.visible = false
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool { return m.visible }

// Message returns the text of the visible toast.
func (m Model) Message() string { return m.message }

// View renders the toast box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	style := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	var icon string
	switch m.style {
	case StyleError:
		style, icon = style.BorderForeground(styles.StatusErrorColor), "✗ "
	case StyleInfo:
		style, icon = style.BorderForeground(styles.StatusInfoColor), "i "
	case StyleWarn:
		style, icon = style.BorderForeground(styles.StatusWarningColor), "! "
	default:
		style, icon = style.BorderForeground(styles.StatusSuccessColor), "✓ "
	}
	return style.Render(icon + m.message)
}

// Overlay draws the toast at the bottom center of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
