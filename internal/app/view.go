package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/gridline/internal/ui/overlay"
	"github.com/zjrosen/gridline/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	parts := []string{m.grid.View()}
	if m.filtering {
		parts = append(parts, m.filter.View())
	}
	if m.cfg.UI.ShowStatusBar {
		parts = append(parts, m.statusBar())
	}
	view := strings.Join(parts, "\n")

	if m.showHelp {
		view = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.Center,
		}, m.helpView(), view)
	}
	if m.pickerOpen {
		view = m.picker.Overlay(view)
	}
	view = m.toaster.Overlay(view, m.width, m.height)

	return zone.Scan(view)
}

func (m Model) statusBar() string {
	left := []string{fmt.Sprintf("%d/%d rows", m.engine.RowCount(), m.engine.RecordCount())}
	if summary := m.grid.SelectionSummary(); summary != "" {
		left = append(left, styles.SelectionIndicatorStyle.Render(summary))
	}
	if f := m.engine.GlobalFilter(); f != "" {
		left = append(left, "filter: "+f)
	}
	if s := m.engine.Sorting(); s.Active() {
		title := s.ColumnID
		if col, ok := m.engine.Column(s.ColumnID); ok {
			title = col.Title()
		}
		left = append(left, "sort: "+title+" "+s.Direction.Indicator())
	}
	if n := len(m.engine.HiddenColumns()); n > 0 {
		left = append(left, fmt.Sprintf("%d hidden", n))
	}

	status := strings.Join(left, " · ")
	button := zone.Mark(columnsButtonZone, "[columns]")
	right := button + "  " + m.help.ShortHelpView(m.keys.ShortHelp())

	inner := max(m.width-2, 0)
	gap := inner - lipgloss.Width(status) - lipgloss.Width(right)
	if gap < 1 {
		right = button
		gap = max(inner-lipgloss.Width(status)-lipgloss.Width(right), 1)
	}
	line := ansi.Truncate(status+strings.Repeat(" ", gap)+right, inner, "…")
	return styles.StatusBarStyle.Render(line)
}

func (m Model) helpView() string {
	title := styles.OverlayTitleStyle.Render("Keys")
	return styles.OverlayStyle.Render(title + "\n\n" + m.help.FullHelpView(m.keys.FullHelp()))
}
