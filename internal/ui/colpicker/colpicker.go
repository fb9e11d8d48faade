// Package colpicker provides the column visibility popover.
package colpicker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/gridline/internal/keys"
	"github.com/zjrosen/gridline/internal/ui/overlay"
	"github.com/zjrosen/gridline/internal/ui/styles"
)

const defaultBoxWidth = 28

// Item is one column entry.
type Item struct {
	ID       string
	Label    string
	Visible  bool
	Hideable bool
}

// ToggleMsg asks the owner to flip the visibility of a column.
type ToggleMsg struct {
	ColumnID string
}

// CloseMsg is sent when the popover is dismissed.
type CloseMsg struct{}

// Model holds the popover state. Visibility itself is owned by the table
// engine; call SetItems after every toggle to reflect it.
type Model struct {
	items    []Item
	cursor   int
	keys     keys.PickerKeyMap
	boxWidth int
	anchorX  int
	anchorY  int
	width    int
	height   int
}

// New creates a popover listing items.
func New(items []Item) Model {
	return Model{items: items, keys: keys.DefaultPickerKeyMap(), boxWidth: defaultBoxWidth}
}

// SetItems replaces the entries, keeping the cursor in range.
func (m Model) SetItems(items []Item) Model {
	m.items = items
	m.cursor = min(m.cursor, max(len(items)-1, 0))
	return m
}

// Items returns the entries.
func (m Model) Items() []Item { return m.items }

// Cursor returns the highlighted entry index.
func (m Model) Cursor() int { return m.cursor }

// SetSize sets the viewport dimensions used by Overlay.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetAnchor places the popover's top-left corner, normally under the
// columns button of the status bar.
func (m Model) SetAnchor(x, y int) Model {
	m.anchorX = x
	m.anchorY = y
	return m
}

// Update handles key presses.
func (m Model) Update(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggle(m.cursor)
	case key.Matches(msg, m.keys.Close):
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

// HandleMouse toggles the entry under a left press. It reports whether
// the press landed inside the popover.
func (m Model) HandleMouse(msg tea.MouseMsg) (Model, tea.Cmd, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil, m.inBounds(msg)
	}
	for i, it := range m.items {
		if z := zone.Get(ItemZoneID(it.ID)); z != nil && z.InBounds(msg) {
			m.cursor = i
			return m, m.toggle(i), true
		}
	}
	return m, nil, m.inBounds(msg)
}

func (m Model) inBounds(msg tea.MouseMsg) bool {
	z := zone.Get(boxZoneID)
	return z != nil && z.InBounds(msg)
}

func (m Model) toggle(i int) tea.Cmd {
	if i < 0 || i >= len(m.items) || !m.items[i].Hideable {
		return nil
	}
	id := m.items[i].ID
	return func() tea.Msg { return ToggleMsg{ColumnID: id} }
}

const boxZoneID = "colpicker"

// ItemZoneID returns the bubblezone id of an entry.
func ItemZoneID(columnID string) string {
	return "colpicker:" + columnID
}

// View renders the popover box.
func (m Model) View() string {
	width := m.boxWidth
	labelWidth := uint(max(width-5, 1)) //nolint:gosec // bounded above

	var lines []string
	for i, it := range m.items {
		box := "[ ]"
		if it.Visible {
			box = "[x]"
		}
		label := truncate.StringWithTail(it.Label, labelWidth, "…")
		var line string
		switch {
		case i == m.cursor:
			line = styles.SelectionIndicatorStyle.Render(">") + lipgloss.NewStyle().Bold(true).Render(box+" "+label)
		case !it.Hideable:
			line = " " + lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(box+" "+label)
		default:
			line = " " + box + " " + label
		}
		lines = append(lines, zone.Mark(ItemZoneID(it.ID), line))
	}

	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	content := styles.OverlayTitleStyle.PaddingLeft(1).Render("Columns") + "\n" +
		divider + "\n" +
		strings.Join(lines, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(content)
	return zone.Mark(boxZoneID, box)
}

// Overlay renders the popover over background at its anchor.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Anchored,
		X:        m.anchorX,
		Y:        m.anchorY,
	}, m.View(), background)
}
