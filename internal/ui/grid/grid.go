// Package grid is the interactive data grid: it renders the table
// engine's row model and binds pointer and keyboard input to the cell
// selection, the inline cell editor and clipboard export.
//
// A Model is one grid session. Mount subscribes it to a document's
// keydown, mousedown and mouseup channels and to the engine's change
// feed; Unmount releases every subscription.
package grid

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/zjrosen/gridline/internal/clipboard"
	"github.com/zjrosen/gridline/internal/document"
	"github.com/zjrosen/gridline/internal/editcell"
	"github.com/zjrosen/gridline/internal/flags"
	"github.com/zjrosen/gridline/internal/keys"
	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/selection"
	"github.com/zjrosen/gridline/internal/tableengine"
)

// DefaultDoubleClick is the window in which two presses on one cell
// count as a double click.
const DefaultDoubleClick = 400 * time.Millisecond

// ErrAlreadyMounted is returned by Mount on a mounted session.
var ErrAlreadyMounted = errors.New("grid: already mounted")

// Config configures a grid session.
type Config struct {
	Engine    *tableengine.Engine
	Clipboard clipboard.Clipboard
	Flags     *flags.Registry
	Keys      keys.GridKeyMap
	Editor    keys.EditorKeyMap

	// HitTester maps pointer positions to cells. Nil uses the bubblezone
	// marks emitted by View.
	HitTester HitTester

	DoubleClick    time.Duration
	StripeRows     bool
	MaxColumnWidth int

	// Now is the clock used for double-click detection.
	Now func() time.Time
}

// Model is a grid session.
type Model struct {
	id     string
	engine *tableengine.Engine
	store  *selection.Store
	editor editcell.Model
	clip   clipboard.Clipboard
	flags  *flags.Registry
	keys   keys.GridKeyMap
	hit    HitTester

	doc    *document.Document
	unsubs []func()

	hover     selection.Coord
	hovering  bool
	lastPress selection.Coord
	lastAt    time.Time
	double    time.Duration
	now       func() time.Time

	width       int
	height      int
	yOffset     int
	stripe      bool
	maxColWidth int
}

// New creates an unmounted session over cfg.Engine.
func New(cfg Config) *Model {
	m := &Model{
		id:          uuid.NewString()[:8],
		engine:      cfg.Engine,
		store:       selection.NewStore(),
		editor:      editcell.New(cfg.Clipboard).SetKeyMap(cfg.Editor),
		clip:        cfg.Clipboard,
		flags:       cfg.Flags,
		keys:        cfg.Keys,
		hit:         cfg.HitTester,
		double:      cfg.DoubleClick,
		now:         cfg.Now,
		stripe:      cfg.StripeRows,
		maxColWidth: cfg.MaxColumnWidth,
	}
	if m.double <= 0 {
		m.double = DefaultDoubleClick
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.maxColWidth <= 0 {
		m.maxColWidth = 40
	}
	if m.hit == nil {
		m.hit = zoneHitTester{m: m}
	}
	return m
}

// ID returns the session id used in zone ids and focus tracking.
func (m *Model) ID() string { return m.id }

// Engine returns the table engine.
func (m *Model) Engine() *tableengine.Engine { return m.engine }

// Mount subscribes the session to doc and to the engine's change feed.
func (m *Model) Mount(doc *document.Document) error {
	if m.doc != nil {
		return ErrAlreadyMounted
	}
	m.doc = doc
	m.unsubs = []func(){
		doc.OnKeyDown(m.onKeyDown),
		doc.OnMouseDown(m.onDocumentMouseDown),
		doc.OnMouseUp(m.onDocumentMouseUp),
		m.engine.Subscribe(m.onEngineChange),
	}
	log.Debug(log.CatGrid, "mounted", "session", m.id)
	return nil
}

// Unmount releases every subscription and resets the session. Calling it
// on an unmounted session is a no-op.
func (m *Model) Unmount() {
	if m.doc == nil {
		return
	}
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
	m.store.Clear(selection.ClearUnmount)
	m.editor = m.editor.Cancel()
	m.doc.Blur(m.element())
	m.doc = nil
	m.hovering = false
	log.Debug(log.CatGrid, "unmounted", "session", m.id)
}

// Mounted reports whether the session is attached to a document.
func (m *Model) Mounted() bool { return m.doc != nil }

// SetSize sets the area available to View.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// IsSelected reports whether the visual cell is selected.
func (m *Model) IsSelected(row, col int) bool { return m.store.IsSelected(row, col) }

// IsDragging reports whether a drag selection is in progress.
func (m *Model) IsDragging() bool { return m.store.IsDragging() }

// Selected returns a read-only view of the selected cells.
func (m *Model) Selected() selection.View { return m.store.Selected() }

// SelectionSummary describes the selection for the status bar, or returns
// "" when nothing is selected.
func (m *Model) SelectionSummary() string {
	view := m.store.Selected()
	rect, ok := view.Bounds()
	if !ok {
		return ""
	}
	if view.Len() == 1 {
		return "1 cell"
	}
	return fmt.Sprintf("%d×%d cells", rect.Rows(), rect.Cols())
}

// ClearSelection empties the selection.
func (m *Model) ClearSelection() { m.store.Clear(selection.ClearExplicit) }

// Editor returns the cell editor state.
func (m *Model) Editor() editcell.Model { return m.editor }

// HandleCellMouseDown starts a drag selection at the cell and moves the
// editor's focus there. A second press on the same cell within the
// double-click window starts editing.
func (m *Model) HandleCellMouseDown(row, col int) tea.Cmd {
	m.store.PointerDown(row, col)
	m.hover = selection.Coord{Row: row, Col: col}
	m.hovering = true

	now := m.now()
	double := m.lastPress == m.hover && !m.lastAt.IsZero() && now.Sub(m.lastAt) <= m.double
	m.lastPress, m.lastAt = m.hover, now
	if double {
		m.lastAt = time.Time{}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Focus(m.cellFor(row, col))
	cmds = append(cmds, cmd)
	if double {
		m.editor, cmd = m.editor.DoubleClick()
		cmds = append(cmds, cmd)
	}
	m.syncFocus()
	return tea.Batch(cmds...)
}

// HandleCellMouseEnter extends an active drag to the cell.
func (m *Model) HandleCellMouseEnter(row, col int) {
	m.store.PointerEnter(row, col)
}

// HandleMouseUp ends an active drag.
func (m *Model) HandleMouseUp() {
	m.store.PointerUp()
}

// HandleKey gives the focused cell editor a key that no document
// listener prevented. consumed is false when the editor is not focused
// or ignored the key.
func (m *Model) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, consumed bool) {
	if m.editor.Phase() == editcell.Viewing {
		return nil, false
	}
	if m.editor.Phase() == editcell.Focused && !m.flags.Enabled(flags.FlagTypeToEdit) &&
		(msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt {
		return nil, false
	}
	m.editor, cmd, consumed = m.editor.Update(msg)
	m.syncFocus()
	return cmd, consumed
}

// HandleEditorMsg forwards non-key messages, such as cursor blinks, to
// the editor's input.
func (m *Model) HandleEditorMsg(msg tea.Msg) tea.Cmd {
	if m.editor.Phase() != editcell.Editing {
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Tick(msg)
	return cmd
}

// BlurEditor leaves the focused cell, committing an edit in progress.
func (m *Model) BlurEditor() tea.Cmd {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Blur()
	m.syncFocus()
	return cmd
}

// FocusedColumn returns the visual column of the editor's cell, or 0
// when no cell is focused.
func (m *Model) FocusedColumn() int {
	if m.editor.Phase() == editcell.Viewing {
		return 0
	}
	return m.editor.Cell().Col
}

// SortFocusedColumn cycles the sort of the focused column.
func (m *Model) SortFocusedColumn() error {
	return m.sortColumn(m.FocusedColumn())
}

func (m *Model) sortColumn(col int) error {
	cols := m.engine.VisibleColumns()
	if col < 0 || col >= len(cols) {
		return nil
	}
	return m.engine.ToggleSorting(cols[col].ID)
}

// cellFor builds the editor cell for a visual coordinate. The commit
// callback captures the record index and column id so it stays valid if
// the row model changes while editing.
func (m *Model) cellFor(row, col int) editcell.Cell {
	cell := editcell.Cell{Row: row, Col: col}
	cols := m.engine.VisibleColumns()
	if col < 0 || col >= len(cols) {
		return cell
	}
	column := cols[col]
	cell.Value = tableengine.FormatValue(m.engine.CellValue(row, col))
	cell.Editable = column.Editable
	cell.Options = column.Options

	record, ok := m.engine.RecordIndex(row)
	if !ok {
		cell.Editable = false
		return cell
	}
	engine := m.engine
	cell.Commit = func(value string) error {
		return engine.UpdateData(record, column.ID, value)
	}
	return cell
}

// element is the document focus handle of the cell editor.
type element struct{ m *Model }

func (e element) ElementID() string { return "grid:" + e.m.id + ":editor" }

func (e element) HasTextSelection() bool { return e.m.editor.HasTextSelection() }

func (m *Model) element() element { return element{m: m} }

func (m *Model) syncFocus() {
	if m.doc == nil {
		return
	}
	if m.editor.Phase() == editcell.Viewing {
		m.doc.Blur(m.element())
		return
	}
	m.doc.Focus(m.element())
}
