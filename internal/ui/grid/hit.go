package grid

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/gridline/internal/selection"
)

// HitTester maps pointer messages to grid positions.
type HitTester interface {
	// CellAt returns the visual cell under the pointer.
	CellAt(msg tea.MouseMsg) (selection.Coord, bool)

	// HeaderAt returns the visual column whose header is under the pointer.
	HeaderAt(msg tea.MouseMsg) (int, bool)

	// Contains reports whether the pointer is inside the grid's bounds:
	// the header and the rendered rows.
	Contains(msg tea.MouseMsg) bool
}

func (m *Model) headerZone(col int) string {
	return "grid:" + m.id + ":h:" + strconv.Itoa(col)
}

func (m *Model) headerLineZone() string {
	return "grid:" + m.id + ":header"
}

func (m *Model) rowZone(row int) string {
	return "grid:" + m.id + ":r:" + strconv.Itoa(row)
}

// zoneHitTester resolves positions from the zones marked by View: one
// zone per header cell gives column extents, one per row line gives rows.
// The header line has its own zone so separators count as inside.
type zoneHitTester struct {
	m *Model
}

func (z zoneHitTester) column(msg tea.MouseMsg) (int, bool) {
	cols := len(z.m.engine.VisibleColumns())
	for c := range cols {
		info := zone.Get(z.m.headerZone(c))
		if info == nil || info.IsZero() {
			continue
		}
		if msg.X >= info.StartX && msg.X <= info.EndX {
			return c, true
		}
	}
	return 0, false
}

func (z zoneHitTester) CellAt(msg tea.MouseMsg) (selection.Coord, bool) {
	first, last := z.m.visibleRows()
	for r := first; r < last; r++ {
		info := zone.Get(z.m.rowZone(r))
		if info == nil || !info.InBounds(msg) {
			continue
		}
		col, ok := z.column(msg)
		if !ok {
			return selection.Coord{}, false
		}
		return selection.Coord{Row: r, Col: col}, true
	}
	return selection.Coord{}, false
}

func (z zoneHitTester) HeaderAt(msg tea.MouseMsg) (int, bool) {
	cols := len(z.m.engine.VisibleColumns())
	for c := range cols {
		if info := zone.Get(z.m.headerZone(c)); info != nil && info.InBounds(msg) {
			return c, true
		}
	}
	return 0, false
}

func (z zoneHitTester) Contains(msg tea.MouseMsg) bool {
	if info := zone.Get(z.m.headerLineZone()); info != nil && info.InBounds(msg) {
		return true
	}
	first, last := z.m.visibleRows()
	for r := first; r < last; r++ {
		if info := zone.Get(z.m.rowZone(r)); info != nil && info.InBounds(msg) {
			return true
		}
	}
	return false
}
