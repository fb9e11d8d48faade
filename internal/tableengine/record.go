package tableengine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Record is one row of data keyed by column id.
type Record struct {
	ID     uuid.UUID
	Values map[string]any
}

// NewRecord creates a record with a fresh id.
func NewRecord(values map[string]any) Record {
	return Record{ID: uuid.New(), Values: values}
}

func (r Record) clone() Record {
	values := make(map[string]any, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return Record{ID: r.ID, Values: values}
}

// FormatValue renders a cell value as display and clipboard text.
// nil renders as the empty string.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// ParseNumber converts text to a number value. Integral values are
// returned as int so they display without a decimal point.
func ParseNumber(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f), nil
	}
	return f, nil
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
