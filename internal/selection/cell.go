// Package selection implements rectangular cell selection for a grid.
//
// Coordinates are visual: they address the grid as currently rendered
// (after sorting, filtering and column visibility), not stable records.
// The state machine is a pure transition function, Reduce, over State;
// Store wraps it for a single grid session.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a visual (row, column) position.
type Coord struct {
	Row int
	Col int
}

// ID returns the CellID encoding of c.
func (c Coord) ID() CellID {
	return CellID(strconv.Itoa(c.Row) + ":" + strconv.Itoa(c.Col))
}

func (c Coord) String() string { return string(c.ID()) }

// CellID is the "row:col" set key of a Coord.
type CellID string

// Coord decodes id. It panics on a malformed id: ids are only ever built
// from valid coordinates, so a bad one is a programming error.
func (id CellID) Coord() Coord {
	c, err := ParseCellID(string(id))
	if err != nil {
		panic(err)
	}
	return c
}

// Compare orders ids row-major: by row, then by column.
func (id CellID) Compare(other CellID) int {
	a, b := id.Coord(), other.Coord()
	switch {
	case a.Row != b.Row:
		return cmpInt(a.Row, b.Row)
	default:
		return cmpInt(a.Col, b.Col)
	}
}

// ParseCellID decodes a "row:col" string.
func ParseCellID(s string) (Coord, error) {
	rowPart, colPart, ok := strings.Cut(s, ":")
	if !ok {
		return Coord{}, fmt.Errorf("cell id %q: missing separator", s)
	}
	row, err := strconv.Atoi(rowPart)
	if err != nil || row < 0 {
		return Coord{}, fmt.Errorf("cell id %q: invalid row", s)
	}
	col, err := strconv.Atoi(colPart)
	if err != nil || col < 0 {
		return Coord{}, fmt.Errorf("cell id %q: invalid column", s)
	}
	return Coord{Row: row, Col: col}, nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
