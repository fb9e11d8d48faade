package tableengine

import (
	"fmt"
	"strings"
)

// ColumnType decides how values are compared, parsed and edited.
type ColumnType int

const (
	Text ColumnType = iota
	Number
	Options
)

func (t ColumnType) String() string {
	switch t {
	case Number:
		return "number"
	case Options:
		return "options"
	default:
		return "text"
	}
}

// ParseColumnType parses the configuration spelling of a column type.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "string":
		return Text, nil
	case "number", "numeric", "int", "float":
		return Number, nil
	case "options", "select", "enum":
		return Options, nil
	default:
		return Text, fmt.Errorf("unknown column type %q", s)
	}
}

// Column describes one field of the dataset.
type Column struct {
	ID       string
	Header   string
	Type     ColumnType
	Editable bool
	Options  []string
	Width    int
	Hideable bool
}

// Title returns the header, falling back to the id.
func (c Column) Title() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

// HasOption reports whether v is one of the column's options.
func (c Column) HasOption(v string) bool {
	for _, o := range c.Options {
		if o == v {
			return true
		}
	}
	return false
}

// sortDescFirst reports whether the first sort click on the column
// sorts descending.
func (c Column) sortDescFirst() bool { return c.Type == Number }
