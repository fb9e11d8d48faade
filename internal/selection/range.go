package selection

// Rect is an inclusive, axis-aligned span of cells.
type Rect struct {
	Top, Left, Bottom, Right int
}

// Span returns the rectangle between two corners in any drag direction.
func Span(anchor, current Coord) Rect {
	return Rect{
		Top:    min(anchor.Row, current.Row),
		Left:   min(anchor.Col, current.Col),
		Bottom: max(anchor.Row, current.Row),
		Right:  max(anchor.Col, current.Col),
	}
}

// Contains reports whether c lies inside r.
func (r Rect) Contains(c Coord) bool {
	return c.Row >= r.Top && c.Row <= r.Bottom && c.Col >= r.Left && c.Col <= r.Right
}

// Rows returns the number of rows spanned.
func (r Rect) Rows() int { return r.Bottom - r.Top + 1 }

// Cols returns the number of columns spanned.
func (r Rect) Cols() int { return r.Right - r.Left + 1 }

// Range returns every cell of the rectangle spanned by anchor and current,
// in row-major order.
func Range(anchor, current Coord) []CellID {
	r := Span(anchor, current)
	ids := make([]CellID, 0, r.Rows()*r.Cols())
	for row := r.Top; row <= r.Bottom; row++ {
		for col := r.Left; col <= r.Right; col++ {
			ids = append(ids, Coord{Row: row, Col: col}.ID())
		}
	}
	return ids
}
