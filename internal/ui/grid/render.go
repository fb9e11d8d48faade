package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/gridline/internal/tableengine"
	"github.com/zjrosen/gridline/internal/ui/styles"
)

const (
	minColumnWidth = 3
	separator      = " "
)

// bodyHeight is the number of row lines that fit under the header.
func (m *Model) bodyHeight() int {
	return max(m.height-1, 0)
}

// visibleRows returns the half-open range of visual rows on screen.
func (m *Model) visibleRows() (first, last int) {
	first = m.yOffset
	last = min(first+m.bodyHeight(), m.engine.RowCount())
	return first, max(last, first)
}

// ScrollBy moves the viewport by delta rows.
func (m *Model) ScrollBy(delta int) {
	m.yOffset += delta
	m.clampOffset()
}

// PageSize returns the number of rows scrolled by a page key.
func (m *Model) PageSize() int { return max(m.bodyHeight()-1, 1) }

// YOffset returns the first visual row on screen.
func (m *Model) YOffset() int { return m.yOffset }

func (m *Model) clampOffset() {
	maxOffset := max(m.engine.RowCount()-m.bodyHeight(), 0)
	m.yOffset = min(max(m.yOffset, 0), maxOffset)
}

// columnWidths sizes each visible column to its widest header or value,
// capped by the configured maximum unless the column sets a width.
func (m *Model) columnWidths(cols []tableengine.Column) []int {
	widths := make([]int, len(cols))
	rows := m.engine.RowCount()
	for c, col := range cols {
		if col.Width > 0 {
			widths[c] = col.Width
			continue
		}
		w := runewidth.StringWidth(col.Title()) + 2 // sort indicator
		for r := range rows {
			w = max(w, runewidth.StringWidth(tableengine.FormatValue(m.engine.CellValue(r, c))))
		}
		widths[c] = min(max(w, minColumnWidth), m.maxColWidth)
	}
	return widths
}

// View renders the header and the rows in the viewport. The header line,
// each header cell and each row line are marked with bubblezone ids; the caller must run zone.Scan
// on the final frame.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	cols := m.engine.VisibleColumns()
	if len(cols) == 0 {
		return renderEmptyState("No visible columns", m.width, m.height)
	}
	widths := m.columnWidths(cols)

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader(cols, widths))

	if m.engine.RowCount() == 0 {
		msg := "No rows"
		if m.engine.GlobalFilter() != "" {
			msg = "No rows match the filter"
		}
		lines = append(lines, renderEmptyState(msg, m.width, m.bodyHeight()))
		return strings.Join(lines, "\n")
	}

	first, last := m.visibleRows()
	for r := first; r < last; r++ {
		lines = append(lines, zone.Mark(m.rowZone(r), m.renderRow(r, cols, widths)))
	}
	for i := len(lines); i < m.height; i++ {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader(cols []tableengine.Column, widths []int) string {
	sorting := m.engine.Sorting()
	parts := make([]string, len(cols))
	for c, col := range cols {
		title := col.Title()
		if sorting.Active() && sorting.ColumnID == col.ID {
			title += " " + sorting.Direction.Indicator()
		}
		cell := styles.HeaderStyle.Render(styles.Fit(title, widths[c]))
		parts[c] = zone.Mark(m.headerZone(c), cell)
	}
	line := strings.Join(parts, styles.HeaderStyle.Render(separator))
	return zone.Mark(m.headerLineZone(), line)
}

func (m *Model) renderRow(row int, cols []tableengine.Column, widths []int) string {
	base := styles.CellStyle
	if m.stripe && row%2 == 1 {
		base = styles.StripeCellStyle
	}

	var b strings.Builder
	for c, col := range cols {
		if c > 0 {
			sep := base
			if m.store.IsSelected(row, c-1) && m.store.IsSelected(row, c) {
				sep = styles.SelectedCellStyle
			}
			b.WriteString(sep.Render(separator))
		}
		b.WriteString(m.renderCell(row, c, col, widths[c], base))
	}
	return b.String()
}

func (m *Model) renderCell(row, c int, col tableengine.Column, width int, base lipgloss.Style) string {
	if m.editor.IsEditing(row, c) {
		view := ansi.Truncate(m.editor.View(width), width, "")
		if w := ansi.StringWidth(view); w < width {
			view += strings.Repeat(" ", width-w)
		}
		return styles.EditingCellStyle.Render(view)
	}

	text := tableengine.FormatValue(m.engine.CellValue(row, c))
	if col.Type == tableengine.Number {
		text = align(styles.TruncateString(text, width), width, lipgloss.Right)
	} else {
		text = styles.Fit(text, width)
	}

	style := base
	if m.store.IsSelected(row, c) {
		style = styles.SelectedCellStyle
	}
	if m.editor.IsFocused(row, c) {
		style = style.Inherit(styles.FocusedCellStyle)
	}
	return style.Render(text)
}

// align pads text to width according to pos.
func align(text string, width int, pos lipgloss.Position) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	if pos == lipgloss.Right {
		return strings.Repeat(" ", width-w) + text
	}
	return text + strings.Repeat(" ", width-w)
}

// renderEmptyState centers msg in a width x height block.
func renderEmptyState(msg string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	styled := styles.EmptyStateStyle.Render(styles.TruncateString(msg, width))
	leftPad := max((width-lipgloss.Width(styled))/2, 0)
	topPad := max((height-1)/2, 0)

	lines := make([]string, height)
	lines[topPad] = strings.Repeat(" ", leftPad) + styled
	return strings.Join(lines, "\n")
}
