package grid

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/gridline/internal/clipboard"
	"github.com/zjrosen/gridline/internal/document"
	"github.com/zjrosen/gridline/internal/log"
)

// copySelection handles the copy chord. Native copy wins when the focused
// control holds a text selection; with nothing selected the key keeps its
// default action. Otherwise the default is suppressed and the selection is
// written as TSV.
func (m *Model) copySelection(ev *document.KeyEvent) tea.Cmd {
	if m.doc != nil && m.doc.HasActiveTextSelection() {
		log.Debug(log.CatClipboard, "native copy", "session", m.id)
		return nil
	}
	view := m.store.Selected()
	if view.Empty() {
		return nil
	}
	ev.PreventDefault()
	text := clipboard.TSV(view, m.engine)
	return clipboard.WriteCmd(m.clip, text, view.Len())
}

// CopyText returns the TSV text of the current selection.
func (m *Model) CopyText() string {
	return clipboard.TSV(m.store.Selected(), m.engine)
}
