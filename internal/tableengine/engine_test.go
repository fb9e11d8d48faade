package tableengine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/gridline/internal/cachemanager"
)

func usersColumns() []Column {
	return []Column{
		{ID: "id", Header: "ID", Type: Number},
		{ID: "name", Header: "Name", Type: Text, Editable: true, Hideable: true},
		{ID: "age", Header: "Age", Type: Number, Editable: true, Hideable: true},
		{ID: "department", Header: "Department", Type: Options, Editable: true, Hideable: true,
			Options: []string{"Engineering", "Marketing", "Sales"}},
	}
}

func usersRecords() []Record {
	return []Record{
		NewRecord(map[string]any{"id": 1, "name": "Alice", "age": 30, "department": "Engineering"}),
		NewRecord(map[string]any{"id": 2, "name": "bob", "age": 25, "department": "Marketing"}),
		NewRecord(map[string]any{"id": 3, "name": "Carol", "age": nil, "department": "Sales"}),
		NewRecord(map[string]any{"id": 4, "name": "Dave", "age": 41, "department": "Engineering"}),
	}
}

func newUsers(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(usersColumns(), usersRecords(), opts...)
}

func visibleNames(e *Engine) []string {
	var names []string
	for row := range e.RowCount() {
		rec, _ := e.Record(row)
		names = append(names, FormatValue(rec.Values["name"]))
	}
	return names
}

func TestRows_DefaultOrder(t *testing.T) {
	e := newUsers(t)
	require.Equal(t, []int{0, 1, 2, 3}, e.Rows())
	require.Equal(t, 4, e.RowCount())
	require.Equal(t, "Alice", e.CellValue(0, 1))
	require.Nil(t, e.CellValue(9, 0))
	require.Nil(t, e.CellValue(0, 9))
}

func TestToggleSorting_TextAscendingFirst(t *testing.T) {
	e := newUsers(t)

	require.NoError(t, e.ToggleSorting("name"))
	require.Equal(t, Sorting{ColumnID: "name", Direction: Ascending}, e.Sorting())
	require.Equal(t, []string{"Alice", "bob", "Carol", "Dave"}, visibleNames(e), "case-insensitive")

	require.NoError(t, e.ToggleSorting("name"))
	require.Equal(t, Descending, e.SortDirection("name"))
	require.Equal(t, []string{"Dave", "Carol", "bob", "Alice"}, visibleNames(e))

	require.NoError(t, e.ToggleSorting("name"))
	require.False(t, e.Sorting().Active())
	require.Equal(t, []string{"Alice", "bob", "Carol", "Dave"}, visibleNames(e))
}

func TestToggleSorting_NumberDescendingFirstNilLast(t *testing.T) {
	e := newUsers(t)

	require.NoError(t, e.ToggleSorting("age"))
	require.Equal(t, Descending, e.SortDirection("age"))
	require.Equal(t, []string{"Dave", "Alice", "bob", "Carol"}, visibleNames(e))

	require.NoError(t, e.ToggleSorting("age"))
	require.Equal(t, Ascending, e.SortDirection("age"))
	require.Equal(t, []string{"bob", "Alice", "Dave", "Carol"}, visibleNames(e), "nil stays last")
}

func TestToggleSorting_OtherColumnReplaces(t *testing.T) {
	e := newUsers(t)
	require.NoError(t, e.ToggleSorting("name"))
	require.NoError(t, e.ToggleSorting("age"))
	require.Equal(t, Sorting{ColumnID: "age", Direction: Descending}, e.Sorting())
	require.Equal(t, Unsorted, e.SortDirection("name"))
}

func TestToggleSorting_UnknownColumn(t *testing.T) {
	e := newUsers(t)
	require.ErrorIs(t, e.ToggleSorting("nope"), ErrUnknownColumn)
}

func TestGlobalFilter(t *testing.T) {
	e := newUsers(t)

	e.SetGlobalFilter("ENGIN")
	require.Equal(t, []string{"Alice", "Dave"}, visibleNames(e))

	e.SetGlobalFilter("4")
	require.Equal(t, []string{"Dave"}, visibleNames(e), "numbers are matched as text")

	e.SetGlobalFilter("")
	require.Equal(t, 4, e.RowCount())
}

func TestGlobalFilter_IncludesHiddenColumns(t *testing.T) {
	e := newUsers(t)
	require.NoError(t, e.SetColumnVisibility("department", false))

	e.SetGlobalFilter("sales")
	require.Equal(t, []string{"Carol"}, visibleNames(e))
}

func TestVisibility(t *testing.T) {
	e := newUsers(t)

	require.NoError(t, e.ToggleColumnVisibility("name"))
	require.False(t, e.IsColumnVisible("name"))
	require.Equal(t, []string{"name"}, e.HiddenColumns())

	cols := e.VisibleColumns()
	require.Len(t, cols, 3)
	require.Equal(t, "age", cols[1].ID)
	require.Equal(t, 30, e.CellValue(0, 1), "visual column indexes shift")

	require.ErrorIs(t, e.SetColumnVisibility("id", false), ErrNotHideable)
	require.ErrorIs(t, e.SetColumnVisibility("nope", true), ErrUnknownColumn)

	require.NoError(t, e.ToggleColumnVisibility("name"))
	require.True(t, e.IsColumnVisible("name"))
}

func TestWithHidden(t *testing.T) {
	e := newUsers(t, WithHidden("age", "id", "unknown"))
	require.Equal(t, []string{"age"}, e.HiddenColumns())
}

func TestUpdateData(t *testing.T) {
	e := newUsers(t)

	require.NoError(t, e.UpdateData(0, "name", "Alicia"))
	require.Equal(t, "Alicia", e.CellValue(0, 1))

	require.NoError(t, e.UpdateData(1, "age", " 26 "))
	require.Equal(t, 26, e.CellValue(1, 2))

	require.NoError(t, e.UpdateData(1, "age", "26.5"))
	require.Equal(t, 26.5, e.CellValue(1, 2))

	require.ErrorIs(t, e.UpdateData(1, "age", "old"), ErrInvalidNumber)
	require.Equal(t, 26.5, e.CellValue(1, 2), "failed edit keeps the value")

	require.NoError(t, e.UpdateData(2, "department", "Marketing"))
	require.ErrorIs(t, e.UpdateData(2, "department", "Legal"), ErrInvalidOption)

	require.ErrorIs(t, e.UpdateData(0, "id", "9"), ErrNotEditable)
	require.ErrorIs(t, e.UpdateData(99, "name", "x"), ErrRecordOutOfRange)
	require.ErrorIs(t, e.UpdateData(0, "nope", "x"), ErrUnknownColumn)
}

func TestUpdateData_ResortsRows(t *testing.T) {
	e := newUsers(t)
	require.NoError(t, e.ToggleSorting("name"))
	require.Equal(t, []string{"Alice", "bob", "Carol", "Dave"}, visibleNames(e))

	require.NoError(t, e.UpdateData(0, "name", "Zed"))
	require.Equal(t, []string{"bob", "Carol", "Dave", "Zed"}, visibleNames(e))
}

func TestNew_CopiesRecords(t *testing.T) {
	records := usersRecords()
	e := New(usersColumns(), records)
	require.NoError(t, e.UpdateData(0, "name", "Changed"))
	require.Equal(t, "Alice", records[0].Values["name"])
}

func TestSubscribe_ChangeFeed(t *testing.T) {
	e := newUsers(t)
	var got []ChangeKind
	unsubscribe := e.Subscribe(func(c Change) { got = append(got, c.Kind) })

	require.NoError(t, e.ToggleSorting("name"))
	e.SetGlobalFilter("a")
	e.SetGlobalFilter("a")
	require.NoError(t, e.SetColumnVisibility("age", false))
	require.NoError(t, e.SetColumnVisibility("age", false))
	require.NoError(t, e.UpdateData(0, "name", "Al"))
	e.ReplaceData(usersRecords())

	require.Equal(t, []ChangeKind{SortChanged, FilterChanged, VisibilityChanged, DataEdited, Reloaded}, got,
		"no-op changes are not published")

	unsubscribe()
	require.NoError(t, e.ToggleSorting("name"))
	require.Len(t, got, 5)
}

func TestSubscribe_SeesNewStateSynchronously(t *testing.T) {
	e := newUsers(t)
	var rowsAtChange []int
	e.Subscribe(func(Change) { rowsAtChange = e.Rows() })

	e.SetGlobalFilter("dave")
	require.Equal(t, []int{3}, rowsAtChange)
}

func TestRows_Memoized(t *testing.T) {
	cache := cachemanager.NewMemory[[]int]("rows", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)
	e := newUsers(t, WithRowCache(cache))

	_ = e.Rows()
	_ = e.Rows()
	_ = e.CellValue(0, 0)
	stats := cache.Stats()
	require.Equal(t, int64(1), stats.Misses)
	require.Equal(t, int64(2), stats.Hits)

	require.NoError(t, e.UpdateData(0, "name", "Zoe"))
	_ = e.Rows()
	require.Equal(t, int64(1), cache.Stats().Misses, "flush resets stats, then one miss")
}

func TestReplaceData_KeepsViewState(t *testing.T) {
	e := newUsers(t)
	require.NoError(t, e.ToggleSorting("name"))
	e.SetGlobalFilter("a")

	e.ReplaceData([]Record{
		NewRecord(map[string]any{"id": 7, "name": "Zara"}),
		NewRecord(map[string]any{"id": 8, "name": "Amy"}),
		NewRecord(map[string]any{"id": 9, "name": "Tom"}),
	})
	require.Equal(t, []string{"Amy", "Zara"}, visibleNames(e))
	require.Equal(t, 3, e.RecordCount())
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "", FormatValue(nil))
	require.Equal(t, "30", FormatValue(30))
	require.Equal(t, "30", FormatValue(30.0))
	require.Equal(t, "1.5", FormatValue(1.5))
	require.Equal(t, "true", FormatValue(true))
	require.Equal(t, "x", FormatValue("x"))
}

func TestParseColumnType(t *testing.T) {
	typ, err := ParseColumnType("Number")
	require.NoError(t, err)
	require.Equal(t, Number, typ)

	typ, err = ParseColumnType("select")
	require.NoError(t, err)
	require.Equal(t, Options, typ)

	_, err = ParseColumnType("date")
	require.Error(t, err)
}
