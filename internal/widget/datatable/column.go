package datatable

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/cellstorm/internal/renderer/core"
)

// Column holds a column's label and sizing.
type Column struct {
	Key          ColumnKey
	Label        string
	Width        int
	ContentWidth int
	AutoWidth    bool
}

// RenderWidth returns the width in cells including one cell of padding
// on each side.
func (c *Column) RenderWidth() int {
	if c.AutoWidth {
		return c.ContentWidth + 2
	}
	return c.Width + 2
}

// Row holds a row's height and optional label.
type Row struct {
	Key    RowKey
	Height int
	Label  string
}

// Formatter turns a cell value into display text.
type Formatter func(value any) string

// DefaultFormatter renders strings verbatim, floats with two decimals and
// nil as an empty cell.
func DefaultFormatter(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 2, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// textWidth returns the widest line of text in cells.
func textWidth(text string) int {
	width := 0
	for line := range strings.SplitSeq(text, "\n") {
		width = max(width, core.StringWidth(line))
	}
	return width
}

// compareValues orders two cell values: numbers numerically, strings
// lexically, nil first, anything else by its printed form.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
