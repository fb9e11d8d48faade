package clipboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/gridline/internal/selection"
	"github.com/zjrosen/gridline/internal/tableengine"
)

type grid [][]any

func (g grid) RowCount() int { return len(g) }

func (g grid) CellValue(row, col int) any {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return nil
	}
	return g[row][col]
}

func rect(top, left, bottom, right int) selection.View {
	s := selection.Reduce(selection.State{}, selection.PointerDown{Cell: selection.Coord{Row: top, Col: left}})
	s = selection.Reduce(s, selection.PointerEnter{Cell: selection.Coord{Row: bottom, Col: right}})
	return s.View()
}

func TestTSV_TwoByTwo(t *testing.T) {
	src := grid{
		{1, "Alice", 30},
		{2, "Bob", 25},
	}
	require.Equal(t, "1\tAlice\n2\tBob", TSV(rect(0, 0, 1, 1), src))
}

func TestTSV_Empty(t *testing.T) {
	require.Equal(t, "", TSV(selection.View{}, grid{{1}}))
}

func TestTSV_SingleCell(t *testing.T) {
	require.Equal(t, "Bob", TSV(rect(1, 1, 1, 1), grid{{1, "Alice"}, {2, "Bob"}}))
}

func TestTSV_NilIsEmptyField(t *testing.T) {
	src := grid{{"a", nil, "c"}}
	require.Equal(t, "a\t\tc", TSV(rect(0, 0, 0, 2), src))
}

func TestTSV_NumbersMatchDisplayedText(t *testing.T) {
	big, err := tableengine.ParseNumber("1234567.25")
	require.NoError(t, err)
	small, err := tableengine.ParseNumber("0.000001")
	require.NoError(t, err)
	whole, err := tableengine.ParseNumber("42")
	require.NoError(t, err)

	src := grid{{big, small, whole}}
	got := TSV(rect(0, 0, 0, 2), src)

	require.Equal(t, "1234567.25\t0.000001\t42", got)
	require.Equal(t, tableengine.FormatValue(big), strings.Split(got, "\t")[0])
}

func TestTSV_RowsBeyondSourceAreSkipped(t *testing.T) {
	src := grid{{"a"}, {"b"}}
	require.Equal(t, "b", TSV(rect(1, 0, 5, 0), src))
}

func TestTSV_NonRectangularKeepsAlignment(t *testing.T) {
	src := grid{
		{"a0", "a1", "a2"},
		{"b0", "b1", "b2"},
		{"c0", "c1", "c2"},
	}
	view := selection.NewView("0:0", "2:2", "0:2")
	require.Equal(t, "a0\t\ta2\n\t\tc2", TSV(view, src), "row 1 has no cells and is skipped")
}

func TestTSV_NoEscaping(t *testing.T) {
	src := grid{{"has\ttab"}}
	require.Equal(t, "has\ttab", TSV(rect(0, 0, 0, 0), src))
}

func TestTSV_RectangleShape(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rows := rapid.IntRange(1, 12).Draw(rt, "rows")
		cols := rapid.IntRange(1, 6).Draw(rt, "cols")
		src := make(grid, rows)
		for r := range src {
			src[r] = make([]any, cols)
			for c := range src[r] {
				src[r][c] = rapid.StringMatching(`[a-z0-9]{1,4}`).Draw(rt, "value")
			}
		}

		r0 := rapid.IntRange(0, rows-1).Draw(rt, "r0")
		r1 := rapid.IntRange(0, rows-1).Draw(rt, "r1")
		c0 := rapid.IntRange(0, cols-1).Draw(rt, "c0")
		c1 := rapid.IntRange(0, cols-1).Draw(rt, "c1")

		out := TSV(rect(r0, c0, r1, c1), src)
		lines := strings.Split(out, "\n")
		require.Len(rt, lines, max(r0, r1)-min(r0, r1)+1)

		for i, line := range lines {
			fields := strings.Split(line, "\t")
			require.Len(rt, fields, max(c0, c1)-min(c0, c1)+1)
			for j, f := range fields {
				require.Equal(rt, src[min(r0, r1)+i][min(c0, c1)+j], f)
			}
		}
	})
}
