// Package tableengine computes the visible row model of a dataset: the
// visible columns after visibility toggles and the visible rows after
// the global filter and single-column sort. It publishes a change feed
// so dependent state, such as a cell selection expressed in visual
// coordinates, can reset before the next render.
package tableengine

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/gridline/internal/cachemanager"
	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/pubsub"
)

// ChangeKind classifies a change feed event.
type ChangeKind int

const (
	SortChanged ChangeKind = iota
	FilterChanged
	VisibilityChanged
	DataEdited
	Reloaded
)

func (k ChangeKind) String() string {
	switch k {
	case SortChanged:
		return "sort"
	case FilterChanged:
		return "filter"
	case VisibilityChanged:
		return "visibility"
	case DataEdited:
		return "edit"
	case Reloaded:
		return "reload"
	default:
		return "unknown"
	}
}

// Change is published after the engine's state changed.
type Change struct {
	Kind     ChangeKind
	ColumnID string
}

// Option configures an Engine.
type Option func(*Engine)

// WithRowCache replaces the row model cache.
func WithRowCache(cache cachemanager.Cache[[]int]) Option {
	return func(e *Engine) { e.rowCache = cache }
}

// WithSorting sets the initial sort.
func WithSorting(s Sorting) Option {
	return func(e *Engine) { e.sorting = s }
}

// WithHidden hides the given columns initially. Unknown or non-hideable
// ids are ignored.
func WithHidden(ids ...string) Option {
	return func(e *Engine) {
		for _, id := range ids {
			if col, ok := e.Column(id); ok && col.Hideable {
				e.hidden[id] = true
			}
		}
	}
}

// Engine owns a dataset and its view state. It must only be used from
// the bubbletea update loop.
type Engine struct {
	columns []Column
	records []Record
	hidden  map[string]bool
	sorting Sorting
	filter  string
	version int

	rowCache cachemanager.Cache[[]int]
	rows     *cachemanager.Memo[rowInput, []int]
	changes  *pubsub.Bus[Change]
}

type rowInput struct {
	columns []Column
	records []Record
	sorting Sorting
	filter  string
}

// New creates an engine over columns and records. The records are copied.
func New(columns []Column, records []Record, opts ...Option) *Engine {
	e := &Engine{
		columns: slices.Clone(columns),
		records: cloneRecords(records),
		hidden:  make(map[string]bool),
		changes: pubsub.NewBus[Change](),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rowCache == nil {
		e.rowCache = cachemanager.NewMemory[[]int]("rows", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)
	}
	e.rows = cachemanager.NewMemo(e.rowCache, computeRows, false)
	return e
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return out
}

// Subscribe registers fn on the change feed. Changes are delivered
// synchronously from the mutating call.
func (e *Engine) Subscribe(fn func(Change)) (unsubscribe func()) {
	return e.changes.Subscribe(func(ev pubsub.Event[Change]) tea.Cmd {
		fn(ev.Payload)
		return nil
	})
}

func (e *Engine) publish(c Change) {
	log.Debug(log.CatEngine, "change", "kind", c.Kind, "column", c.ColumnID)
	e.changes.Publish(pubsub.ChangedEvent, c)
}

// Columns returns every column in declaration order.
func (e *Engine) Columns() []Column { return slices.Clone(e.columns) }

// Column looks up a column by id.
func (e *Engine) Column(id string) (Column, bool) {
	for _, c := range e.columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// VisibleColumns returns the columns not hidden, in declaration order.
func (e *Engine) VisibleColumns() []Column {
	cols := make([]Column, 0, len(e.columns))
	for _, c := range e.columns {
		if !e.hidden[c.ID] {
			cols = append(cols, c)
		}
	}
	return cols
}

// IsColumnVisible reports whether the column is shown.
func (e *Engine) IsColumnVisible(id string) bool { return !e.hidden[id] }

// HiddenColumns returns the ids of hidden columns in declaration order.
func (e *Engine) HiddenColumns() []string {
	var ids []string
	for _, c := range e.columns {
		if e.hidden[c.ID] {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// SetColumnVisibility shows or hides a column.
func (e *Engine) SetColumnVisibility(id string, visible bool) error {
	col, ok := e.Column(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	if !visible && !col.Hideable {
		return fmt.Errorf("%w: %s", ErrNotHideable, id)
	}
	if e.hidden[id] == !visible {
		return nil
	}
	if visible {
		delete(e.hidden, id)
	} else {
		e.hidden[id] = true
	}
	e.publish(Change{Kind: VisibilityChanged, ColumnID: id})
	return nil
}

// ToggleColumnVisibility flips a column's visibility.
func (e *Engine) ToggleColumnVisibility(id string) error {
	return e.SetColumnVisibility(id, e.hidden[id])
}

// Sorting returns the current sort.
func (e *Engine) Sorting() Sorting { return e.sorting }

// SortDirection returns the sort direction applied to a column.
func (e *Engine) SortDirection(id string) Direction {
	if e.sorting.ColumnID != id {
		return Unsorted
	}
	return e.sorting.Direction
}

// ToggleSorting cycles the sort of a column: unsorted, then ascending and
// descending (descending first for number columns), then unsorted.
// Sorting another column replaces the current sort.
func (e *Engine) ToggleSorting(id string) error {
	col, ok := e.Column(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	e.setSorting(e.sorting.next(col))
	return nil
}

// SetSorting replaces the sort.
func (e *Engine) SetSorting(s Sorting) error {
	if s.ColumnID != "" {
		if _, ok := e.Column(s.ColumnID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, s.ColumnID)
		}
	}
	if !s.Active() {
		s = Sorting{}
	}
	e.setSorting(s)
	return nil
}

func (e *Engine) setSorting(s Sorting) {
	if s == e.sorting {
		return
	}
	e.sorting = s
	e.publish(Change{Kind: SortChanged, ColumnID: s.ColumnID})
}

// GlobalFilter returns the filter text.
func (e *Engine) GlobalFilter() string { return e.filter }

// SetGlobalFilter sets the filter text. Rows pass when any column,
// hidden ones included, contains the text case-insensitively.
func (e *Engine) SetGlobalFilter(text string) {
	if text == e.filter {
		return
	}
	e.filter = text
	e.publish(Change{Kind: FilterChanged})
}

// Rows returns record indices in visual order.
func (e *Engine) Rows() []int {
	key := cachemanager.Key(e.version, e.sorting.ColumnID, e.sorting.Direction, strings.ToLower(e.filter))
	rows, _ := e.rows.Get(key, rowInput{
		columns: e.columns,
		records: e.records,
		sorting: e.sorting,
		filter:  e.filter,
	})
	return rows
}

// RowCount returns the number of visible rows.
func (e *Engine) RowCount() int { return len(e.Rows()) }

// RecordCount returns the number of records before filtering.
func (e *Engine) RecordCount() int { return len(e.records) }

// RecordIndex maps a visual row to its record index.
func (e *Engine) RecordIndex(row int) (int, bool) {
	rows := e.Rows()
	if row < 0 || row >= len(rows) {
		return 0, false
	}
	return rows[row], true
}

// Record returns the record shown at a visual row.
func (e *Engine) Record(row int) (Record, bool) {
	idx, ok := e.RecordIndex(row)
	if !ok {
		return Record{}, false
	}
	return e.records[idx], true
}

// CellValue returns the value at a visual coordinate, or nil when the
// coordinate is outside the visible grid.
func (e *Engine) CellValue(row, col int) any {
	cols := e.VisibleColumns()
	if col < 0 || col >= len(cols) {
		return nil
	}
	rec, ok := e.Record(row)
	if !ok {
		return nil
	}
	return rec.Values[cols[col].ID]
}

// UpdateData stores a value typed by the user into a record, converting
// it according to the column type.
func (e *Engine) UpdateData(recordIndex int, columnID, value string) error {
	if recordIndex < 0 || recordIndex >= len(e.records) {
		return fmt.Errorf("%w: %d", ErrRecordOutOfRange, recordIndex)
	}
	col, ok := e.Column(columnID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}
	if !col.Editable {
		return fmt.Errorf("%w: %s", ErrNotEditable, columnID)
	}

	var converted any
	switch col.Type {
	case Number:
		n, err := ParseNumber(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		converted = n
	case Options:
		if !col.HasOption(value) {
			return fmt.Errorf("%w: %q", ErrInvalidOption, value)
		}
		converted = value
	default:
		converted = value
	}

	if e.records[recordIndex].Values == nil {
		e.records[recordIndex].Values = make(map[string]any)
	}
	e.records[recordIndex].Values[columnID] = converted
	e.invalidate()
	log.Debug(log.CatEngine, "cell updated", "record", recordIndex, "column", columnID)
	e.publish(Change{Kind: DataEdited, ColumnID: columnID})
	return nil
}

// ReplaceData swaps the records, keeping columns, sort, filter and
// visibility.
func (e *Engine) ReplaceData(records []Record) {
	e.records = cloneRecords(records)
	e.invalidate()
	log.Info(log.CatEngine, "data replaced", "records", len(records))
	e.publish(Change{Kind: Reloaded})
}

func (e *Engine) invalidate() {
	e.version++
	e.rows.Invalidate()
}

func computeRows(in rowInput) ([]int, error) {
	needle := strings.ToLower(in.filter)
	rows := make([]int, 0, len(in.records))
	for i, r := range in.records {
		if needle == "" || matches(r, in.columns, needle) {
			rows = append(rows, i)
		}
	}

	if !in.sorting.Active() {
		return rows, nil
	}
	var col Column
	for _, c := range in.columns {
		if c.ID == in.sorting.ColumnID {
			col = c
			break
		}
	}
	desc := in.sorting.Direction == Descending
	slices.SortStableFunc(rows, func(a, b int) int {
		va, vb := in.records[a].Values[col.ID], in.records[b].Values[col.ID]
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}
		c := compareValues(col.Type, va, vb)
		if desc {
			return -c
		}
		return c
	})
	return rows, nil
}

func matches(r Record, columns []Column, needle string) bool {
	for _, c := range columns {
		if strings.Contains(strings.ToLower(FormatValue(r.Values[c.ID])), needle) {
			return true
		}
	}
	return false
}
