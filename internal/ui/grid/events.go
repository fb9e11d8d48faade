package grid

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/gridline/internal/document"
	"github.com/zjrosen/gridline/internal/flags"
	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/selection"
	"github.com/zjrosen/gridline/internal/tableengine"
)

// HandleMouse applies grid-local pointer handling: presses on cells and
// headers, hover changes and wheel scrolling. The caller dispatches the
// same message to the document afterwards.
func (m *Model) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if cell, ok := m.hit.CellAt(msg); ok {
			return m.HandleCellMouseDown(cell.Row, cell.Col)
		}
		if col, ok := m.hit.HeaderAt(msg); ok && m.flags.Enabled(flags.FlagHeaderSort) {
			if err := m.sortColumn(col); err != nil {
				log.ErrorErr(log.CatGrid, "header sort failed", err, "col", col)
			}
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.ScrollBy(-3)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.ScrollBy(3)

	case msg.Action == tea.MouseActionMotion:
		// Motion with no button held means the release was missed.
		if msg.Button == tea.MouseButtonNone {
			m.HandleMouseUp()
		}
		cell, ok := m.hit.CellAt(msg)
		if !ok {
			m.hovering = false
			return nil
		}
		// Enter fires once per cell, like a pointerenter event.
		if m.hovering && cell == m.hover {
			return nil
		}
		m.hover, m.hovering = cell, true
		m.HandleCellMouseEnter(cell.Row, cell.Col)
	}
	return nil
}

func (m *Model) onKeyDown(ev *document.KeyEvent) tea.Cmd {
	switch {
	case key.Matches(ev.Msg, m.keys.Clear):
		m.store.Clear(selection.ClearEscape)
		return nil
	case key.Matches(ev.Msg, m.keys.Copy):
		return m.copySelection(ev)
	}
	return nil
}

func (m *Model) onDocumentMouseDown(ev *document.MouseEvent) tea.Cmd {
	if m.hit.Contains(ev.Msg) {
		return nil
	}
	m.store.Clear(selection.ClearOutside)
	m.hovering = false
	return m.BlurEditor()
}

func (m *Model) onDocumentMouseUp(*document.MouseEvent) tea.Cmd {
	m.HandleMouseUp()
	return nil
}

// onEngineChange runs synchronously inside the engine mutation, so the
// selection is empty before the next render. Visual coordinates of the
// editor's cell are stale as well, so the editor is reset.
func (m *Model) onEngineChange(c tableengine.Change) {
	var reason selection.ClearReason
	switch c.Kind {
	case tableengine.SortChanged:
		reason = selection.ClearSort
	case tableengine.FilterChanged:
		reason = selection.ClearFilter
	case tableengine.VisibilityChanged:
		reason = selection.ClearVisibility
	case tableengine.Reloaded:
		reason = selection.ClearReload
	default:
		return
	}
	m.store.Clear(reason)
	m.editor = m.editor.Cancel()
	m.syncFocus()
	m.hovering = false
	m.clampOffset()
}
