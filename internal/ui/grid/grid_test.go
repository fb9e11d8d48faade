package grid

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/gridline/internal/clipboard"
	"github.com/zjrosen/gridline/internal/document"
	"github.com/zjrosen/gridline/internal/editcell"
	"github.com/zjrosen/gridline/internal/flags"
	"github.com/zjrosen/gridline/internal/keys"
	"github.com/zjrosen/gridline/internal/selection"
	"github.com/zjrosen/gridline/internal/tableengine"
)

// fakeHits lays the grid out one terminal cell per grid cell: column c
// is at X == c, the header at Y == 0 and visual row r at Y == r+1.
type fakeHits struct {
	engine *tableengine.Engine
}

func (f fakeHits) CellAt(msg tea.MouseMsg) (selection.Coord, bool) {
	if msg.Y < 1 || msg.Y > f.engine.RowCount() || msg.X < 0 || msg.X >= len(f.engine.VisibleColumns()) {
		return selection.Coord{}, false
	}
	return selection.Coord{Row: msg.Y - 1, Col: msg.X}, true
}

func (f fakeHits) HeaderAt(msg tea.MouseMsg) (int, bool) {
	if msg.Y != 0 || msg.X < 0 || msg.X >= len(f.engine.VisibleColumns()) {
		return 0, false
	}
	return msg.X, true
}

func (f fakeHits) Contains(msg tea.MouseMsg) bool {
	_, header := f.HeaderAt(msg)
	_, cell := f.CellAt(msg)
	return header || cell
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	t     *testing.T
	doc   *document.Document
	grid  *Model
	eng   *tableengine.Engine
	clip  *clipboard.Memory
	clock *clock
}

func testEngine() *tableengine.Engine {
	cols := []tableengine.Column{
		{ID: "id", Header: "ID", Type: tableengine.Number, Hideable: true},
		{ID: "name", Header: "Name", Type: tableengine.Text, Editable: true, Hideable: true},
		{ID: "dept", Header: "Dept", Type: tableengine.Options, Editable: true, Hideable: true, Options: []string{"Eng", "Sales"}},
	}
	records := []tableengine.Record{
		tableengine.NewRecord(map[string]any{"id": 1, "name": "Alice", "dept": "Eng"}),
		tableengine.NewRecord(map[string]any{"id": 2, "name": "Bob", "dept": "Sales"}),
		tableengine.NewRecord(map[string]any{"id": 3, "name": "Carol", "dept": "Eng"}),
	}
	return tableengine.New(cols, records)
}

func newHarness(t *testing.T, configured map[string]bool) *harness {
	t.Helper()
	eng := testEngine()
	clip := clipboard.NewMemory()
	clk := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	g := New(Config{
		Engine:    eng,
		Clipboard: clip,
		Flags:     flags.New(configured),
		Keys:      keys.DefaultGridKeyMap(),
		Editor:    keys.DefaultEditorKeyMap(),
		HitTester: fakeHits{engine: eng},
		Now:       clk.now,
	})
	g.SetSize(40, 10)
	doc := document.New()
	require.NoError(t, g.Mount(doc))
	t.Cleanup(g.Unmount)
	return &harness{t: t, doc: doc, grid: g, eng: eng, clip: clip, clock: clk}
}

// mouse routes msg the way the application does: grid-local handling
// first, then the document channels.
func (h *harness) mouse(msg tea.MouseMsg) []tea.Msg {
	cmds := []tea.Cmd{h.grid.HandleMouse(msg)}
	_, cmd := h.doc.DispatchMouse(msg)
	cmds = append(cmds, cmd)
	return run(tea.Batch(cmds...))
}

// key routes msg: document listeners, then the focused editor unless a
// listener prevented the default.
func (h *harness) key(msg tea.KeyMsg) (prevented, consumed bool, msgs []tea.Msg) {
	ev, cmd := h.doc.DispatchKey(msg)
	msgs = run(cmd)
	if ev.DefaultPrevented() {
		return true, false, msgs
	}
	cmd, consumed = h.grid.HandleKey(msg)
	return false, consumed, append(msgs, run(cmd)...)
}

// typeText sends text to the focused editor without running the cursor
// blink commands typing schedules.
func (h *harness) typeText(s string) {
	msg := runes(s)
	ev, _ := h.doc.DispatchKey(msg)
	if !ev.DefaultPrevented() {
		h.grid.HandleKey(msg)
	}
}

func (h *harness) drag(from, to selection.Coord) {
	h.mouse(press(from.Col, from.Row+1))
	h.mouse(motion(to.Col, to.Row+1))
	h.mouse(release(to.Col, to.Row+1))
}

// run executes cmd and any batched commands.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

var (
	ctrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	ctrlA = tea.KeyMsg{Type: tea.KeyCtrlA}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestMount_RegistersAndReleasesListeners(t *testing.T) {
	eng := testEngine()
	g := New(Config{Engine: eng, Keys: keys.DefaultGridKeyMap(), HitTester: fakeHits{engine: eng}})
	doc := document.New()

	require.NoError(t, g.Mount(doc))
	require.True(t, g.Mounted())
	k, d, u := doc.ListenerCounts()
	require.Equal(t, []int{1, 1, 1}, []int{k, d, u})

	require.ErrorIs(t, g.Mount(doc), ErrAlreadyMounted)

	g.Unmount()
	require.False(t, g.Mounted())
	k, d, u = doc.ListenerCounts()
	require.Equal(t, []int{0, 0, 0}, []int{k, d, u})

	g.Unmount()
	require.NoError(t, g.Mount(doc), "remount after unmount")
	g.Unmount()
}

func TestUnmount_ClearsSelectionAndStopsListening(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 1, Col: 1})
	require.Equal(t, 4, h.grid.Selected().Len())

	h.grid.Unmount()
	require.True(t, h.grid.Selected().Empty())

	// Engine changes no longer reach the session.
	h.grid.HandleCellMouseDown(0, 0)
	require.NoError(t, h.eng.ToggleSorting("name"))
	require.Equal(t, 1, h.grid.Selected().Len())
}

func TestDrag_SelectsRectangle(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(press(2, 3))
	require.True(t, h.grid.IsDragging())
	h.mouse(motion(1, 2))
	h.mouse(motion(0, 1))
	require.True(t, h.grid.IsDragging())

	h.mouse(release(0, 1))
	require.False(t, h.grid.IsDragging())
	require.Equal(t, 9, h.grid.Selected().Len())
	require.True(t, h.grid.IsSelected(0, 0))
	require.True(t, h.grid.IsSelected(2, 2))
	require.Equal(t, "3×3 cells", h.grid.SelectionSummary())
}

func TestDrag_SingleClickSelectsOneCell(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(1, 1))
	h.mouse(release(1, 1))
	require.Equal(t, 1, h.grid.Selected().Len())
	require.True(t, h.grid.IsSelected(0, 1))
	require.Equal(t, "1 cell", h.grid.SelectionSummary())
}

func TestDrag_ReleaseOutsideGridEndsDrag(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(0, 1))
	h.mouse(motion(1, 2))
	h.mouse(release(30, 9))

	require.False(t, h.grid.IsDragging())
	require.Equal(t, 4, h.grid.Selected().Len(), "release keeps the selection")

	h.mouse(motion(2, 3))
	require.Equal(t, 4, h.grid.Selected().Len(), "hover after release does not extend")
}

func TestDrag_MotionWithoutButtonEndsDrag(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(0, 1))
	h.mouse(motion(1, 2))

	h.mouse(tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})

	require.False(t, h.grid.IsDragging())
	require.Equal(t, 4, h.grid.Selected().Len())
	require.False(t, h.grid.IsSelected(2, 2))
}

func TestClearSelection(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 1, Col: 1})

	h.grid.ClearSelection()

	require.True(t, h.grid.Selected().Empty())
	require.Equal(t, selection.Idle, h.grid.store.Phase())
}

func TestHover_WithoutDragIsIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(motion(1, 1))
	h.mouse(motion(2, 2))
	require.True(t, h.grid.Selected().Empty())
}

func TestPressReplacesSelection(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 2, Col: 2})
	h.mouse(press(1, 2))
	require.Equal(t, 1, h.grid.Selected().Len())
	require.True(t, h.grid.IsSelected(1, 1))
}

func TestCopy_WritesTSV(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 1, Col: 1})

	prevented, _, _ := h.key(ctrlC)
	require.True(t, prevented)

	got, ok := h.clip.Last()
	require.True(t, ok)
	require.Equal(t, "1\tAlice\n2\tBob", got)
	require.Equal(t, got, h.grid.CopyText())
}

func TestCopy_FollowsSortedOrder(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.eng.SetSorting(tableengine.Sorting{ColumnID: "id", Direction: tableengine.Descending}))
	h.drag(selection.Coord{Row: 0, Col: 1}, selection.Coord{Row: 2, Col: 1})

	h.key(ctrlC)
	got, _ := h.clip.Last()
	require.Equal(t, "Carol\nBob\nAlice", got)
}

func TestCopy_EmptySelectionKeepsDefault(t *testing.T) {
	h := newHarness(t, nil)

	prevented, consumed, _ := h.key(ctrlC)
	require.False(t, prevented)
	require.False(t, consumed)
	require.Empty(t, h.clip.Writes())
}

func TestCopy_ClipboardFailureIsSwallowed(t *testing.T) {
	h := newHarness(t, nil)
	h.clip.FailWith(errors.New("no clipboard"))
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 0, Col: 0})

	prevented, _, msgs := h.key(ctrlC)
	require.True(t, prevented)
	require.Empty(t, msgs)
	require.Equal(t, 1, h.grid.Selected().Len())
}

func TestCopy_NativeTextSelectionBypasses(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 1, Col: 1})

	// Double click Name of row 0 and select the whole buffer.
	h.mouse(press(1, 1))
	h.mouse(release(1, 1))
	h.mouse(press(1, 1))
	h.mouse(release(1, 1))
	require.Equal(t, editcell.Editing, h.grid.Editor().Phase())
	h.key(ctrlA)
	require.True(t, h.doc.HasActiveTextSelection())

	prevented, consumed, _ := h.key(ctrlC)
	require.False(t, prevented, "native copy is not suppressed")
	require.True(t, consumed, "the editor performs the native copy")

	got, _ := h.clip.Last()
	require.Equal(t, "Alice", got)
}

func TestCopy_EditorWithoutTextSelectionCopiesGrid(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(1, 1))
	h.mouse(release(1, 1))
	h.mouse(press(1, 1))
	h.mouse(release(1, 1))
	require.Equal(t, editcell.Editing, h.grid.Editor().Phase())
	require.False(t, h.doc.HasActiveTextSelection())

	prevented, _, _ := h.key(ctrlC)
	require.True(t, prevented)
	got, _ := h.clip.Last()
	require.Equal(t, "Alice", got)
}

func TestEngineChanges_ClearSelectionSynchronously(t *testing.T) {
	tests := []struct {
		name   string
		change func(*tableengine.Engine) error
	}{
		{"sort", func(e *tableengine.Engine) error { return e.ToggleSorting("name") }},
		{"filter", func(e *tableengine.Engine) error { e.SetGlobalFilter("a"); return nil }},
		{"visibility", func(e *tableengine.Engine) error { return e.ToggleColumnVisibility("dept") }},
		{"reload", func(e *tableengine.Engine) error { e.ReplaceData(nil); return nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 1, Col: 1})
			require.NoError(t, tt.change(h.eng))
			require.True(t, h.grid.Selected().Empty())
			require.False(t, h.grid.IsDragging())
		})
	}
}

func TestEngineChange_EditKeepsSelection(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 1, Col: 1})
	require.NoError(t, h.eng.UpdateData(0, "name", "Alicia"))
	require.Equal(t, 4, h.grid.Selected().Len())
}

func TestEscape_ClearsSelection(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 1, Col: 1})

	prevented, _, _ := h.key(esc)
	require.False(t, prevented)
	require.True(t, h.grid.Selected().Empty())
}

func TestEscape_WhileEditingRevertsAndClears(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(1, 1))
	h.mouse(release(1, 1))
	h.key(enter) // Focused -> Viewing
	h.clock.advance(time.Second)
	h.mouse(press(1, 1))
	h.typeText("Z")
	require.Equal(t, editcell.Editing, h.grid.Editor().Phase())

	h.key(esc)
	require.Equal(t, editcell.Viewing, h.grid.Editor().Phase())
	require.True(t, h.grid.Selected().Empty())
	require.Equal(t, "Alice", h.eng.CellValue(0, 1))
	require.Nil(t, h.doc.ActiveElement())
}

func TestOutsidePress_ClearsAndCommits(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(1, 2))
	h.mouse(release(1, 2))
	h.typeText("B")
	h.typeText("o")
	require.Equal(t, "Bo", h.grid.Editor().Value())

	msgs := h.mouse(press(30, 9))
	require.True(t, h.grid.Selected().Empty())
	require.Equal(t, editcell.Viewing, h.grid.Editor().Phase())
	require.Equal(t, "Bo", h.eng.CellValue(1, 1))
	require.Len(t, msgs, 1)
	committed, ok := msgs[0].(editcell.CommittedMsg)
	require.True(t, ok)
	require.Equal(t, "Bo", committed.Value)
}

func TestRightPressOutside_KeepsSelection(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 1, Col: 1})
	h.mouse(tea.MouseMsg{X: 30, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	require.Equal(t, 4, h.grid.Selected().Len())
}

func TestDoubleClick_StartsEditingOnlyWithinWindow(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(1, 1))
	h.mouse(release(1, 1))
	h.clock.advance(time.Second)
	h.mouse(press(1, 1))
	require.Equal(t, editcell.Focused, h.grid.Editor().Phase())

	h.clock.advance(100 * time.Millisecond)
	h.mouse(press(1, 1))
	require.Equal(t, editcell.Editing, h.grid.Editor().Phase())
	require.Equal(t, "Alice", h.grid.Editor().Value())
}

func TestDoubleClick_ReadOnlyColumn(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(0, 1))
	h.mouse(press(0, 1))
	require.Equal(t, editcell.Focused, h.grid.Editor().Phase())
}

func TestEdit_CommitUpdatesEngine(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(2, 1))
	h.mouse(press(2, 1))
	h.key(ctrlA)
	h.typeText("S")
	h.typeText("ales")
	_, consumed, msgs := h.key(enter)
	require.True(t, consumed)
	require.Equal(t, "Sales", h.eng.CellValue(0, 2))
	require.Len(t, msgs, 1)
	require.IsType(t, editcell.CommittedMsg{}, msgs[0])
}

func TestEdit_InvalidOptionReportsFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.mouse(press(2, 1))
	h.mouse(press(2, 1))
	h.key(ctrlA)
	h.typeText("Nope")
	_, _, msgs := h.key(enter)
	require.Len(t, msgs, 1)
	failed, ok := msgs[0].(editcell.CommitFailedMsg)
	require.True(t, ok)
	require.ErrorIs(t, failed.Err, tableengine.ErrInvalidOption)
	require.Equal(t, "Eng", h.eng.CellValue(0, 2))
}

func TestEdit_CommitTargetsRecordAfterSort(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.eng.SetSorting(tableengine.Sorting{ColumnID: "id", Direction: tableengine.Descending}))

	// Visual row 0 is Carol after the sort.
	h.mouse(press(1, 1))
	h.typeText("X")
	h.key(enter)

	rec, ok := h.eng.Record(0)
	require.True(t, ok)
	require.Equal(t, 3, rec.Values["id"])
	require.Equal(t, "X", rec.Values["name"])
}

func TestTypeToEdit_Flag(t *testing.T) {
	h := newHarness(t, map[string]bool{flags.FlagTypeToEdit: false})
	h.mouse(press(1, 1))
	_, consumed, _ := h.key(runes("x"))
	require.False(t, consumed)
	require.Equal(t, editcell.Focused, h.grid.Editor().Phase())
}

func TestHeaderClick_Sorts(t *testing.T) {
	h := newHarness(t, nil)
	h.drag(selection.Coord{Row: 0, Col: 0}, selection.Coord{Row: 0, Col: 0})

	h.mouse(press(1, 0))
	require.Equal(t, tableengine.Ascending, h.eng.SortDirection("name"))
	require.True(t, h.grid.Selected().Empty())

	h.mouse(press(1, 0))
	require.Equal(t, tableengine.Descending, h.eng.SortDirection("name"))
}

func TestHeaderClick_FlagDisabled(t *testing.T) {
	h := newHarness(t, map[string]bool{flags.FlagHeaderSort: false})
	h.mouse(press(1, 0))
	require.Equal(t, tableengine.Unsorted, h.eng.SortDirection("name"))
}

func TestSortFocusedColumn(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.grid.SortFocusedColumn())
	require.NotEqual(t, tableengine.Unsorted, h.eng.SortDirection("id"))

	h.mouse(press(1, 1))
	require.Equal(t, 1, h.grid.FocusedColumn())
	require.NoError(t, h.grid.SortFocusedColumn())
	require.Equal(t, tableengine.Ascending, h.eng.SortDirection("name"))
	require.Equal(t, editcell.Viewing, h.grid.Editor().Phase(), "sort resets the editor")
}

func TestScroll(t *testing.T) {
	h := newHarness(t, nil)
	h.grid.SetSize(40, 3) // header + 2 rows
	h.grid.ScrollBy(5)
	require.Equal(t, 1, h.grid.YOffset())
	h.grid.ScrollBy(-5)
	require.Equal(t, 0, h.grid.YOffset())

	h.mouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	require.Equal(t, 1, h.grid.YOffset())

	h.eng.SetGlobalFilter("carol")
	require.Equal(t, 0, h.grid.YOffset())
}
