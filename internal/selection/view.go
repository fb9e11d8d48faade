package selection

import (
	"iter"
	"slices"
)

// View is a read-only snapshot of a selected set.
type View struct {
	set    map[CellID]struct{}
	bounds Rect
	ok     bool
}

// NewView builds a view over an arbitrary set of ids. The selection
// machine only produces rectangles; this exists for callers that need to
// serialize other shapes.
func NewView(ids ...CellID) View {
	if len(ids) == 0 {
		return View{}
	}
	set := toSet(ids)
	first := ids[0].Coord()
	bounds := Rect{Top: first.Row, Left: first.Col, Bottom: first.Row, Right: first.Col}
	for id := range set {
		c := id.Coord()
		bounds.Top = min(bounds.Top, c.Row)
		bounds.Left = min(bounds.Left, c.Col)
		bounds.Bottom = max(bounds.Bottom, c.Row)
		bounds.Right = max(bounds.Right, c.Col)
	}
	return View{set: set, bounds: bounds, ok: true}
}

// Len returns the number of selected cells.
func (v View) Len() int { return len(v.set) }

// Empty reports whether nothing is selected.
func (v View) Empty() bool { return len(v.set) == 0 }

// Has reports whether id is selected.
func (v View) Has(id CellID) bool {
	_, ok := v.set[id]
	return ok
}

// Bounds returns the bounding rectangle of the selection.
func (v View) Bounds() (Rect, bool) {
	return v.bounds, v.ok && len(v.set) > 0
}

// IDs returns the selected ids in row-major order.
func (v View) IDs() []CellID {
	ids := make([]CellID, 0, len(v.set))
	for id := range v.set {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CellID.Compare)
	return ids
}

// All iterates the selected ids in row-major order.
func (v View) All() iter.Seq[CellID] {
	return func(yield func(CellID) bool) {
		for _, id := range v.IDs() {
			if !yield(id) {
				return
			}
		}
	}
}
