package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/gridline/internal/config"
	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/source"
	"github.com/zjrosen/gridline/internal/ui/colpicker"
	"github.com/zjrosen/gridline/internal/ui/toaster"
)

const columnsButtonZone = "app:columns"

// filterElement is the document focus handle of the filter bar. The
// filter input has no native text selection.
type filterElement struct{}

func (filterElement) ElementID() string { return "app:filter" }

// handleKey routes a key press: overlays first, then document keydown
// listeners, then the focused element, then the default actions when
// nothing prevented or consumed the key.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Clear, m.keys.Quit) {
			m.showHelp = false
		}
		return nil
	}
	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return cmd
	}

	ev, docCmd := m.doc.DispatchKey(msg)
	if ev.DefaultPrevented() {
		return docCmd
	}

	var (
		cmd      tea.Cmd
		consumed bool
	)
	if m.filtering {
		cmd, consumed = m.updateFilter(msg)
	} else {
		cmd, consumed = m.grid.HandleKey(msg)
	}
	if consumed {
		return tea.Batch(docCmd, cmd)
	}
	return tea.Batch(docCmd, cmd, m.defaultAction(msg))
}

func (m *Model) defaultAction(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Filter):
		return m.openFilter()
	case key.Matches(msg, m.keys.Columns):
		return m.openPicker()
	case key.Matches(msg, m.keys.Sort):
		if err := m.grid.SortFocusedColumn(); err != nil {
			return m.showToast(err.Error(), toaster.StyleError)
		}
	case key.Matches(msg, m.keys.Reload):
		return m.reloadCmd(false)
	case key.Matches(msg, m.keys.Export):
		return m.export()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.help.ShowAll = true
	case key.Matches(msg, m.keys.ScrollUp):
		m.grid.ScrollBy(-1)
	case key.Matches(msg, m.keys.ScrollDown):
		m.grid.ScrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.grid.ScrollBy(-m.grid.PageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.grid.ScrollBy(m.grid.PageSize())
	}
	return nil
}

// handleMouse routes a pointer event: overlays first, then the grid's
// own handlers, then document mousedown and mouseup listeners. Presses
// and releases taken by an overlay or the columns button still reach the
// document listeners, so drags end and outside presses clear the
// selection.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if m.showHelp {
		if press {
			m.showHelp = false
		}
		return m.dispatchDocumentMouse(msg)
	}
	if m.pickerOpen {
		var (
			cmd    tea.Cmd
			inside bool
		)
		m.picker, cmd, inside = m.picker.HandleMouse(msg)
		if press && !inside {
			m.pickerOpen = false
		}
		return tea.Batch(cmd, m.dispatchDocumentMouse(msg))
	}

	if press {
		if m.filtering {
			m.closeFilter()
		}
		if z := zone.Get(columnsButtonZone); z != nil && z.InBounds(msg) {
			docCmd := m.dispatchDocumentMouse(msg)
			return tea.Batch(docCmd, m.openPicker())
		}
	}

	cmd := m.grid.HandleMouse(msg)
	_, docCmd := m.doc.DispatchMouse(msg)
	return tea.Batch(cmd, docCmd)
}

// dispatchDocumentMouse sends msg to the document listeners without the
// grid's own cell handling.
func (m *Model) dispatchDocumentMouse(msg tea.MouseMsg) tea.Cmd {
	_, cmd := m.doc.DispatchMouse(msg)
	return cmd
}

func (m *Model) openFilter() tea.Cmd {
	blur := m.grid.BlurEditor()
	m.filtering = true
	m.filterPrev = m.engine.GlobalFilter()
	m.filter.SetValue(m.filterPrev)
	m.filter.CursorEnd()
	m.doc.Focus(filterElement{})
	m.layout()
	return tea.Batch(blur, m.filter.Focus())
}

func (m *Model) closeFilter() {
	m.filtering = false
	m.filter.Blur()
	m.doc.Blur(filterElement{})
	m.layout()
}

// updateFilter edits the filter text. The filter is applied as it is
// typed; cancelling restores the text the bar was opened with.
func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.inputKeys.Apply):
		log.Debug(log.CatUI, "filter applied", "text", m.engine.GlobalFilter())
		m.closeFilter()
		return nil, true
	case key.Matches(msg, m.inputKeys.Cancel):
		m.engine.SetGlobalFilter(m.filterPrev)
		m.closeFilter()
		return nil, true
	case msg.Type == tea.KeyCtrlC:
		return nil, false
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if v := m.filter.Value(); v != m.engine.GlobalFilter() {
		m.engine.SetGlobalFilter(v)
	}
	return cmd, true
}

func (m *Model) openPicker() tea.Cmd {
	blur := m.grid.BlurEditor()
	m.picker = m.picker.
		SetItems(m.columnItems()).
		SetSize(m.width, m.height).
		SetAnchor(m.width, m.height-1)
	m.pickerOpen = true
	return blur
}

func (m *Model) columnItems() []colpicker.Item {
	cols := m.engine.Columns()
	items := make([]colpicker.Item, 0, len(cols))
	for _, col := range cols {
		items = append(items, colpicker.Item{
			ID:       col.ID,
			Label:    col.Title(),
			Visible:  m.engine.IsColumnVisible(col.ID),
			Hideable: col.Hideable,
		})
	}
	return items
}

// toggleColumn flips a column's visibility and records the hidden set in
// the config file.
func (m *Model) toggleColumn(id string) tea.Cmd {
	if err := m.engine.ToggleColumnVisibility(id); err != nil {
		return m.showToast(err.Error(), toaster.StyleError)
	}
	m.picker = m.picker.SetItems(m.columnItems())

	if m.configPath == "" {
		return nil
	}
	if err := config.SaveHiddenColumns(m.configPath, m.engine.HiddenColumns()); err != nil {
		log.ErrorErr(log.CatConfig, "saving hidden columns", err, "path", m.configPath)
		return m.showToast("Could not save column visibility", toaster.StyleError)
	}
	return nil
}

// export renders the visible rows and columns as CSV and writes them to a
// timestamped file off the update loop.
func (m *Model) export() tea.Cmd {
	var buf bytes.Buffer
	if err := source.ExportCSV(&buf, m.engine); err != nil {
		return m.showToast("Export failed: "+err.Error(), toaster.StyleError)
	}
	name := fmt.Sprintf("gridline-%s.csv", m.now().Format("20060102-150405"))
	path := filepath.Join(m.exportDir, name)
	rows := m.engine.RowCount()
	data := buf.Bytes()
	return func() tea.Msg {
		err := os.WriteFile(path, data, 0o644) //nolint:gosec // G306: exports are meant to be shared
		return exportedMsg{path: path, rows: rows, err: err}
	}
}
