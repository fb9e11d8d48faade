package styles

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/padding"
)

// TruncateString cuts s to maxWidth display cells, ending in an ellipsis
// when anything was cut.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// Fit truncates or pads s to exactly width display cells.
func Fit(s string, width int) string {
	if width < 1 {
		return ""
	}
	return padding.String(TruncateString(s, width), uint(width))
}
