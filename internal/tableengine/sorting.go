package tableengine

import (
	"cmp"
	"strings"
)

// Direction is a sort direction.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// Indicator returns the header glyph for d.
func (d Direction) Indicator() string {
	switch d {
	case Ascending:
		return "▲"
	case Descending:
		return "▼"
	default:
		return ""
	}
}

// Sorting is the single-column sort state.
type Sorting struct {
	ColumnID  string
	Direction Direction
}

// Active reports whether a sort is applied.
func (s Sorting) Active() bool { return s.ColumnID != "" && s.Direction != Unsorted }

// next cycles none -> first -> second -> none for col.
func (s Sorting) next(col Column) Sorting {
	first, second := Ascending, Descending
	if col.sortDescFirst() {
		first, second = Descending, Ascending
	}
	if s.ColumnID != col.ID || s.Direction == Unsorted {
		return Sorting{ColumnID: col.ID, Direction: first}
	}
	if s.Direction == first {
		return Sorting{ColumnID: col.ID, Direction: second}
	}
	return Sorting{}
}

// compareValues orders two cell values of the given type. nil orders
// after every other value regardless of direction, which callers handle.
func compareValues(typ ColumnType, a, b any) int {
	if typ == Number {
		fa, okA := toFloat(a)
		fb, okB := toFloat(b)
		if okA && okB {
			return cmp.Compare(fa, fb)
		}
	}
	sa, sb := strings.ToLower(FormatValue(a)), strings.ToLower(FormatValue(b))
	if c := strings.Compare(sa, sb); c != 0 {
		return c
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}
