// Package clipboard serializes a cell selection as tab-separated values
// and writes text to the system clipboard.
package clipboard

import (
	"slices"
	"strings"

	"github.com/zjrosen/gridline/internal/selection"
	"github.com/zjrosen/gridline/internal/tableengine"
)

// Source supplies the visible rows and cell values, in visual order.
type Source interface {
	RowCount() int
	CellValue(row, col int) any
}

// TSV renders the selected cells of src as tab-separated lines. Rows are
// emitted in visual order and rows without a selected cell are skipped.
// Every line has one field per distinct selected column, in ascending
// column order; a column not selected in a given row is an empty field.
// Values are not quoted or escaped.
func TSV(view selection.View, src Source) string {
	if view.Empty() {
		return ""
	}

	byRow := make(map[int]map[int]bool)
	colSet := make(map[int]bool)
	for id := range view.All() {
		c := id.Coord()
		if byRow[c.Row] == nil {
			byRow[c.Row] = make(map[int]bool)
		}
		byRow[c.Row][c.Col] = true
		colSet[c.Col] = true
	}

	order := make([]int, 0, len(colSet))
	for col := range colSet {
		order = append(order, col)
	}
	slices.Sort(order)

	var lines []string
	fields := make([]string, len(order))
	for row := range src.RowCount() {
		cols, ok := byRow[row]
		if !ok {
			continue
		}
		for i, col := range order {
			fields[i] = ""
			if cols[col] {
				fields[i] = tableengine.FormatValue(src.CellValue(row, col))
			}
		}
		lines = append(lines, strings.Join(fields, "\t"))
	}
	return strings.Join(lines, "\n")
}
