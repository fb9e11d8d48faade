// Package editcell implements inline editing of a single grid cell.
//
// The editor is a small state machine: Viewing (nothing focused), Focused
// (a cell is focused but not being edited) and Editing (the cell's value
// is in an input buffer). It knows nothing about selection; the only
// contract with the grid is the Commit callback carried by Cell.
package editcell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/gridline/internal/clipboard"
	"github.com/zjrosen/gridline/internal/keys"
	"github.com/zjrosen/gridline/internal/log"
)

// Phase is the editor state.
type Phase int

const (
	Viewing Phase = iota
	Focused
	Editing
)

func (p Phase) String() string {
	switch p {
	case Focused:
		return "focused"
	case Editing:
		return "editing"
	default:
		return "viewing"
	}
}

// Cell identifies the cell under the editor and how to save it.
type Cell struct {
	Row, Col int
	Value    string
	Editable bool
	Options  []string
	Commit   func(value string) error
}

// Same reports whether c and other address the same visual cell.
func (c Cell) Same(other Cell) bool { return c.Row == other.Row && c.Col == other.Col }

// CommitFailedMsg reports a rejected commit. The cell keeps its old value.
type CommitFailedMsg struct {
	Cell  Cell
	Value string
	Err   error
}

// CommittedMsg reports a saved value.
type CommittedMsg struct {
	Cell  Cell
	Value string
}

// ErrNoCommit is reported when an editable cell has no commit callback.
var ErrNoCommit = errors.New("cell has no commit handler")

// Model is the editor. It is a value type; methods return the updated
// model in the bubbletea style.
type Model struct {
	phase     Phase
	cell      Cell
	input     textinput.Model
	selectAll bool
	keys      keys.EditorKeyMap
	clip      clipboard.Clipboard
	selStyle  lipgloss.Style
}

// New creates a Viewing editor. clip receives native text copies.
func New(clip clipboard.Clipboard) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	return Model{
		input:    ti,
		keys:     keys.DefaultEditorKeyMap(),
		clip:     clip,
		selStyle: lipgloss.NewStyle().Reverse(true),
	}
}

// SetKeyMap replaces the editor bindings.
func (m Model) SetKeyMap(km keys.EditorKeyMap) Model {
	m.keys = km
	return m
}

// Phase returns the editor state.
func (m Model) Phase() Phase { return m.phase }

// Cell returns the focused cell. It is only meaningful outside Viewing.
func (m Model) Cell() Cell { return m.cell }

// IsEditing reports whether the cell at (row, col) is being edited.
func (m Model) IsEditing(row, col int) bool {
	return m.phase == Editing && m.cell.Row == row && m.cell.Col == col
}

// IsFocused reports whether the cell at (row, col) has the editor's focus.
func (m Model) IsFocused(row, col int) bool {
	return m.phase != Viewing && m.cell.Row == row && m.cell.Col == col
}

// Value returns the edit buffer.
func (m Model) Value() string { return m.input.Value() }

// HasTextSelection reports whether the buffer holds a non-empty native
// text selection.
func (m Model) HasTextSelection() bool {
	return m.phase == Editing && m.selectAll && m.input.Value() != ""
}

// SelectedText returns the selected part of the buffer.
func (m Model) SelectedText() string {
	if !m.HasTextSelection() {
		return ""
	}
	return m.input.Value()
}

// Focus moves focus to cell. A cell being edited elsewhere is committed
// first.
func (m Model) Focus(cell Cell) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.phase == Editing && !m.cell.Same(cell) {
		m, cmd = m.commit()
	}
	if m.phase == Editing {
		return m, cmd
	}
	m.phase = Focused
	m.cell = cell
	log.Debug(log.CatEdit, "focus", "row", cell.Row, "col", cell.Col)
	return m, cmd
}

// DoubleClick starts editing the focused cell with its current value.
func (m Model) DoubleClick() (Model, tea.Cmd) {
	if m.phase != Focused || !m.cell.Editable {
		return m, nil
	}
	return m.startEditing(m.cell.Value), textinput.Blink
}

// Blur leaves the cell, committing an edit in progress.
func (m Model) Blur() (Model, tea.Cmd) {
	switch m.phase {
	case Editing:
		return m.commit()
	case Focused:
		m.phase = Viewing
	}
	return m, nil
}

// Cancel leaves the cell, discarding an edit in progress.
func (m Model) Cancel() Model {
	if m.phase == Editing {
		log.Debug(log.CatEdit, "edit discarded", "row", m.cell.Row, "col", m.cell.Col)
	}
	m.phase = Viewing
	m.selectAll = false
	m.input.Blur()
	m.input.SetValue("")
	return m
}

// Update handles a key for the focused cell. consumed is false when the
// editor ignored the key, so the caller may apply its own default.
func (m Model) Update(msg tea.KeyMsg) (_ Model, cmd tea.Cmd, consumed bool) {
	switch m.phase {
	case Focused:
		return m.updateFocused(msg)
	case Editing:
		return m.updateEditing(msg)
	default:
		return m, nil, false
	}
}

// Tick forwards non-key messages, such as cursor blinks, to the input.
func (m Model) Tick(msg tea.Msg) (Model, tea.Cmd) {
	if m.phase != Editing {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateFocused(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Commit):
		m.phase = Viewing
		return m, nil, true
	case m.cell.Editable && printable(msg):
		return m.startEditing(string(msg.Runes)), textinput.Blink, true
	}
	return m, nil, false
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		m, cmd := m.commit()
		return m, cmd, true

	case key.Matches(msg, m.keys.Cancel):
		return m.Cancel(), nil, true

	case key.Matches(msg, m.keys.SelectAll):
		m.selectAll = m.input.Value() != ""
		m.input.CursorEnd()
		return m, nil, true

	case key.Matches(msg, m.keys.Copy):
		if !m.HasTextSelection() {
			return m, nil, false
		}
		text := m.SelectedText()
		return m, clipboard.WriteCmd(m.clip, text, 1), true
	}

	if m.selectAll {
		m.selectAll = false
		switch {
		case printable(msg):
			m.input.SetValue("")
		case msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete:
			m.input.SetValue("")
			return m, nil, true
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, true
}

func (m Model) startEditing(value string) Model {
	m.phase = Editing
	m.selectAll = false
	m.input.SetSuggestions(m.cell.Options)
	m.input.ShowSuggestions = len(m.cell.Options) > 0
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	log.Debug(log.CatEdit, "editing", "row", m.cell.Row, "col", m.cell.Col)
	return m
}

func (m Model) commit() (Model, tea.Cmd) {
	value := m.input.Value()
	cell := m.cell
	m.phase = Viewing
	m.selectAll = false
	m.input.Blur()
	m.input.SetValue("")

	if value == cell.Value {
		return m, nil
	}
	if cell.Commit == nil {
		return m, failed(cell, value, ErrNoCommit)
	}
	if err := cell.Commit(value); err != nil {
		log.Debug(log.CatEdit, "commit rejected", "row", cell.Row, "col", cell.Col, "error", err)
		return m, failed(cell, value, err)
	}
	log.Debug(log.CatEdit, "committed", "row", cell.Row, "col", cell.Col)
	return m, func() tea.Msg { return CommittedMsg{Cell: cell, Value: value} }
}

func failed(cell Cell, value string, err error) tea.Cmd {
	return func() tea.Msg {
		return CommitFailedMsg{Cell: cell, Value: value, Err: fmt.Errorf("edit %d:%d: %w", cell.Row, cell.Col, err)}
	}
}

// printable reports whether msg types text rather than a control chord.
func printable(msg tea.KeyMsg) bool {
	if msg.Alt || msg.Paste {
		return false
	}
	return (msg.Type == tea.KeyRunes && len(msg.Runes) > 0) || msg.Type == tea.KeySpace
}

// View renders the buffer for a cell of the given display width.
func (m Model) View(width int) string {
	if m.phase != Editing {
		return ""
	}
	m.input.Width = max(width-1, 1)
	if m.selectAll {
		return m.selStyle.Render(truncate(m.input.Value(), width))
	}
	return m.input.View()
}

// truncate cuts s to at most width display cells without splitting a
// grapheme cluster.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String()
}
