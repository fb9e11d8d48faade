package grid

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/gridline/internal/selection"
)

// newZoneHarness is a harness that resolves pointer positions from the
// zones of the rendered view instead of fakeHits.
func newZoneHarness(t *testing.T) *harness {
	t.Helper()
	zone.NewGlobal()
	h := newHarness(t, nil)
	h.grid.hit = zoneHitTester{m: h.grid}
	renderZones(t, h.grid)
	return h
}

// renderZones scans the grid view until every header and row zone is
// registered. Zone registration is asynchronous in bubblezone.
func renderZones(t *testing.T, g *Model) {
	t.Helper()
	require.Eventually(t, func() bool {
		zone.Scan(g.View())
		if zone.Get(g.headerLineZone()).IsZero() {
			return false
		}
		for c := range g.engine.VisibleColumns() {
			if zone.Get(g.headerZone(c)).IsZero() {
				return false
			}
		}
		for r := range g.engine.RowCount() {
			if zone.Get(g.rowZone(r)).IsZero() {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}

func at(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestZoneHitTester_MapsCellsAndHeaders(t *testing.T) {
	h := newZoneHarness(t)
	hit := zoneHitTester{m: h.grid}

	for c := range h.eng.VisibleColumns() {
		hz := zone.Get(h.grid.headerZone(c))

		col, ok := hit.HeaderAt(at(hz.StartX, 0))
		require.True(t, ok)
		require.Equal(t, c, col)

		for r := range h.eng.RowCount() {
			cell, ok := hit.CellAt(at(hz.StartX, r+1))
			require.True(t, ok)
			require.Equal(t, selection.Coord{Row: r, Col: c}, cell)

			cell, ok = hit.CellAt(at(hz.EndX, r+1))
			require.True(t, ok)
			require.Equal(t, selection.Coord{Row: r, Col: c}, cell)
		}
	}

	_, ok := hit.CellAt(at(0, 0))
	require.False(t, ok, "the header is not a cell")
}

func TestZoneHitTester_Contains(t *testing.T) {
	h := newZoneHarness(t)
	hit := zoneHitTester{m: h.grid}

	first := zone.Get(h.grid.headerZone(0))
	last := zone.Get(h.grid.headerZone(len(h.eng.VisibleColumns()) - 1))
	gap := first.EndX + 1

	_, ok := hit.HeaderAt(at(gap, 0))
	require.False(t, ok)
	require.True(t, hit.Contains(at(gap, 0)), "header separator is inside")

	_, ok = hit.CellAt(at(gap, 1))
	require.False(t, ok)
	require.True(t, hit.Contains(at(gap, 1)), "row separator is inside")

	require.True(t, hit.Contains(at(last.EndX, h.eng.RowCount())))
	require.False(t, hit.Contains(at(last.EndX+1, 1)), "right of the last column")
	require.False(t, hit.Contains(at(0, h.eng.RowCount()+1)), "below the last row")
}

func TestZoneHitTester_SeparatorPressKeepsSelection(t *testing.T) {
	h := newZoneHarness(t)
	col0 := zone.Get(h.grid.headerZone(0))
	col1 := zone.Get(h.grid.headerZone(1))
	last := zone.Get(h.grid.headerZone(len(h.eng.VisibleColumns()) - 1))

	h.mouse(at(col0.StartX, 1))
	h.mouse(motion(col1.StartX, 2))
	h.mouse(release(col1.StartX, 2))
	require.Equal(t, 4, h.grid.Selected().Len())

	h.mouse(at(col0.EndX+1, 0))
	require.Equal(t, 4, h.grid.Selected().Len())

	h.mouse(at(last.EndX+2, 1))
	require.True(t, h.grid.Selected().Empty())
}
