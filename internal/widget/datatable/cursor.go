package datatable

import (
	"fmt"
	"strings"

	"github.com/dshills/cellstorm/internal/event"
	"github.com/dshills/cellstorm/internal/renderer/core"
)

// CursorType selects what the keyboard cursor highlights.
type CursorType int

// Cursor types.
const (
	CursorCell CursorType = iota
	CursorRow
	CursorColumn
	CursorNone
)

// String implements fmt.Stringer.
func (c CursorType) String() string {
	switch c {
	case CursorCell:
		return "cell"
	case CursorRow:
		return "row"
	case CursorColumn:
		return "column"
	case CursorNone:
		return "none"
	default:
		return fmt.Sprintf("CursorType(%d)", int(c))
	}
}

// ParseCursorType parses "cell", "row", "column" or "none".
func ParseCursorType(s string) (CursorType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cell":
		return CursorCell, nil
	case "row":
		return CursorRow, nil
	case "column":
		return CursorColumn, nil
	case "none":
		return CursorNone, nil
	}
	return CursorNone, fmt.Errorf("unknown cursor type %q", s)
}

// cursorMode is the behaviour of one cursor type.
type cursorMode struct {
	// covers reports whether a cursor at pos highlights cell.
	covers func(pos, cell Coordinate) bool
	// refresh repaints what a cursor at pos highlights.
	refresh func(t *Table, pos Coordinate)
	// highlighted and selected build the messages for pos; nil means none.
	highlighted func(t *Table, pos Coordinate) event.Message
	selected    func(t *Table, pos Coordinate) event.Message

	vertical   bool
	horizontal bool
}

var cursorModes = map[CursorType]cursorMode{
	CursorCell: {
		covers:  func(pos, cell Coordinate) bool { return pos == cell },
		refresh: (*Table).RefreshCoordinate,
		highlighted: func(t *Table, pos Coordinate) event.Message {
			key, value, ok := t.cellAt(pos)
			if !ok {
				return nil
			}
			return CellHighlighted{Value: value, Coordinate: pos, CellKey: key}
		},
		selected: func(t *Table, pos Coordinate) event.Message {
			key, value, ok := t.cellAt(pos)
			if !ok {
				return nil
			}
			return CellSelected{Value: value, Coordinate: pos, CellKey: key}
		},
		vertical:   true,
		horizontal: true,
	},
	CursorRow: {
		covers:  func(pos, cell Coordinate) bool { return pos.Row == cell.Row },
		refresh: func(t *Table, pos Coordinate) { t.RefreshRow(pos.Row) },
		highlighted: func(t *Table, pos Coordinate) event.Message {
			key, ok := t.rowLocations.Key(pos.Row)
			if !ok {
				return nil
			}
			return RowHighlighted{CursorRow: pos.Row, RowKey: key}
		},
		selected: func(t *Table, pos Coordinate) event.Message {
			key, ok := t.rowLocations.Key(pos.Row)
			if !ok {
				return nil
			}
			return RowSelected{CursorRow: pos.Row, RowKey: key}
		},
		vertical: true,
	},
	CursorColumn: {
		covers:  func(pos, cell Coordinate) bool { return pos.Column == cell.Column },
		refresh: func(t *Table, pos Coordinate) { t.RefreshColumn(pos.Column) },
		highlighted: func(t *Table, pos Coordinate) event.Message {
			key, ok := t.columnLocations.Key(pos.Column)
			if !ok {
				return nil
			}
			return ColumnHighlighted{CursorColumn: pos.Column, ColumnKey: key}
		},
		selected: func(t *Table, pos Coordinate) event.Message {
			key, ok := t.columnLocations.Key(pos.Column)
			if !ok {
				return nil
			}
			return ColumnSelected{CursorColumn: pos.Column, ColumnKey: key}
		},
		horizontal: true,
	},
	CursorNone: {
		covers:      func(Coordinate, Coordinate) bool { return false },
		refresh:     func(*Table, Coordinate) {},
		highlighted: func(*Table, Coordinate) event.Message { return nil },
		selected:    func(*Table, Coordinate) event.Message { return nil },
	},
}

func (t *Table) mode() cursorMode {
	return cursorModes[t.cursorType]
}

func (t *Table) cellAt(pos Coordinate) (CellKey, any, bool) {
	key, err := t.CoordinateToCellKey(pos)
	if err != nil {
		return CellKey{}, nil, false
	}
	value, err := t.GetCell(key.Row, key.Column)
	if err != nil {
		return CellKey{}, nil, false
	}
	return key, value, true
}

// clampCoordinate keeps c inside the table. An empty table clamps to the origin.
func (t *Table) clampCoordinate(c Coordinate) Coordinate {
	return Coordinate{
		Row:    clamp(c.Row, 0, len(t.rows)-1),
		Column: clamp(c.Column, 0, len(t.columns)-1),
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

// SetCursorCoordinate moves the cursor, clamped to the table.
func (t *Table) SetCursorCoordinate(c Coordinate) {
	t.setCursorCoordinate(c)
}

func (t *Table) setCursorCoordinate(c Coordinate) {
	c = t.clampCoordinate(c)
	old := t.cursor
	t.cursor = c
	if old == c {
		return
	}
	m := t.mode()
	m.refresh(t, old)
	t.highlight(c)
}

// highlight repaints what the cursor covers at pos and posts the
// highlighted message.
func (t *Table) highlight(pos Coordinate) {
	m := t.mode()
	m.refresh(t, pos)
	if msg := m.highlighted(t, pos); msg != nil {
		t.post(msg)
	}
}

func (t *Table) highlightCursor() {
	t.highlight(t.cursor)
}

func (t *Table) setHoverCoordinate(c Coordinate) {
	old := t.hover
	t.hover = c
	if old == c {
		return
	}
	m := t.mode()
	m.refresh(t, old)
	m.refresh(t, c)
}

// setHoverCursor shows or hides the pointer highlight. Keyboard use hides it.
func (t *Table) setHoverCursor(active bool) {
	t.showHover = active
	t.mode().refresh(t, t.hover)
}

func (t *Table) postSelected() {
	if msg := t.mode().selected(t, t.cursor); msg != nil {
		t.post(msg)
	}
}

// scrollCursorIntoView scrolls so the cursor is clear of the fixed rows
// and columns.
func (t *Table) scrollCursorIntoView(animate bool) {
	fixed := t.fixedOffset()
	target := t.Viewport().Target()

	var region core.Region
	switch t.cursorType {
	case CursorRow:
		r := t.rowRegion(t.cursor.Row)
		region = core.NewRegion(target.X+fixed.Left, r.Y, r.Width-fixed.Left, r.Height)
	case CursorColumn:
		c := t.columnRegion(t.cursor.Column)
		region = core.NewRegion(c.X, target.Y+fixed.Top, c.Width, c.Height-fixed.Top)
	default:
		region = t.cellRegion(t.cursor)
	}
	if region.IsEmpty() {
		return
	}
	t.ScrollToRegion(region, fixed, animate)
}

// CursorUp moves the cursor up, or scrolls when the cursor cannot move
// vertically.
func (t *Table) CursorUp() {
	t.setHoverCursor(false)
	if t.showCursor && t.mode().vertical {
		t.setCursorCoordinate(t.cursor.Up())
		t.scrollCursorIntoView(false)
		return
	}
	t.ScrollBy(0, -1, true)
}

// CursorDown moves the cursor down, or scrolls.
func (t *Table) CursorDown() {
	t.setHoverCursor(false)
	if t.showCursor && t.mode().vertical {
		t.setCursorCoordinate(t.cursor.Down())
		t.scrollCursorIntoView(false)
		return
	}
	t.ScrollBy(0, 1, true)
}

// CursorRight moves the cursor right, or scrolls.
func (t *Table) CursorRight() {
	t.setHoverCursor(false)
	if t.showCursor && t.mode().horizontal {
		t.setCursorCoordinate(t.cursor.Right())
		t.scrollCursorIntoView(true)
		return
	}
	t.ScrollBy(1, 0, true)
}

// CursorLeft moves the cursor left, or scrolls.
func (t *Table) CursorLeft() {
	t.setHoverCursor(false)
	if t.showCursor && t.mode().horizontal {
		t.setCursorCoordinate(t.cursor.Left())
		t.scrollCursorIntoView(true)
		return
	}
	t.ScrollBy(-1, 0, true)
}

// SelectCursor posts the selected message for the cursor.
func (t *Table) SelectCursor() {
	t.setHoverCursor(false)
	if t.showCursor && t.cursorType != CursorNone {
		t.postSelected()
	}
}

// OnMouseMove updates the hover position from the metadata of the cell
// under the pointer.
func (t *Table) OnMouseMove(meta core.Meta) {
	t.setHoverCursor(true)
	if meta.HasCell && t.showCursor && t.cursorType != CursorNone {
		t.setHoverCoordinate(Coordinate{Row: meta.Row, Column: meta.Column})
	}
}

// OnClick handles a click on the cell carrying meta. Header clicks post
// HeaderSelected; other clicks move the cursor and select.
func (t *Table) OnClick(meta core.Meta) {
	t.setHoverCursor(true)
	if !meta.HasCell {
		return
	}

	if t.showHeader && meta.Row == -1 {
		key, ok := t.columnLocations.Key(meta.Column)
		if !ok {
			return
		}
		t.post(HeaderSelected{ColumnKey: key, ColumnIndex: meta.Column, Label: t.columns[key].Label})
		return
	}

	if t.showCursor && t.cursorType != CursorNone {
		t.setCursorCoordinate(Coordinate{Row: meta.Row, Column: meta.Column})
		t.postSelected()
		t.scrollCursorIntoView(true)
	}
}

// SetCursorType switches the cursor mode and re-derives highlighting.
func (t *Table) SetCursorType(ct CursorType) {
	if ct == t.cursorType {
		return
	}
	old := cursorModes[t.cursorType]
	t.cursorType = ct
	t.clearCaches()

	t.setHoverCursor(false)
	if t.showCursor {
		t.highlightCursor()
	}
	old.refresh(t, t.cursor)
	t.scrollCursorIntoView(false)
}

// SetShowCursor shows or hides the cursor and the hover highlight.
func (t *Table) SetShowCursor(show bool) {
	if show == t.showCursor {
		return
	}
	t.showCursor = show
	t.clearCaches()
	if show && t.cursorType != CursorNone {
		t.scrollCursorIntoView(false)
		t.highlightCursor()
	}
	t.Refresh()
}
