package datatable

import (
	"strings"

	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/renderer/strip"
)

type cellCacheKey struct {
	row     RowKey
	column  ColumnKey
	style   core.Style
	cursor  bool
	hover   bool
	version uint64
}

type rowCacheKey struct {
	row        RowKey
	line       int
	base       core.Style
	cursor     Coordinate
	hover      Coordinate
	cursorType CursorType
	showCursor bool
	showHover  bool
	version    uint64
}

type lineCacheKey struct {
	y          int
	x1, x2     int
	width      int
	cursor     Coordinate
	hover      Coordinate
	base       core.Style
	cursorType CursorType
	showHover  bool
	version    uint64
}

// renderedRow is one line of a row split into the part that ignores
// horizontal scrolling and the part that scrolls.
type renderedRow struct {
	fixed      []strip.Strip
	scrollable []strip.Strip
}

// lineOffsets maps each content line (header excluded) to its row and the
// line within that row.
func (t *Table) lineOffsets() []lineOffset {
	return t.offsetCache.GetOrCompute(t.updateCount, func() []lineOffset {
		var offsets []lineOffset
		for _, r := range t.OrderedRows() {
			for line := range r.Height {
				offsets = append(offsets, lineOffset{key: r.Key, line: line})
			}
		}
		return offsets
	})
}

// offsetsFor resolves virtual line y to a row key and line within the row.
func (t *Table) offsetsFor(y int) (RowKey, int, bool) {
	if t.showHeader {
		if y >= 0 && y < t.headerHeight {
			return t.headerKey, y, true
		}
		y -= t.headerHeight
	}
	offsets := t.lineOffsets()
	if y < 0 || y >= len(offsets) {
		return RowKey{}, 0, false
	}
	o := offsets[y]
	return o.key, o.line, true
}

// RenderLine renders widget line y. Lines in the header and fixed rows
// ignore vertical scrolling.
func (t *Table) RenderLine(y int) strip.Strip {
	width := t.Size().Width
	scroll := t.ScrollOffset()

	fixedHeight := t.headerOffset()
	rows := t.OrderedRows()
	for _, r := range rows[:min(t.fixedRows, len(rows))] {
		fixedHeight += r.Height
	}
	if y >= fixedHeight {
		y += scroll.Y
	}
	return t.renderLine(y, scroll.X, scroll.X+width, t.styles.Base)
}

func (t *Table) renderLine(y, x1, x2 int, base core.Style) strip.Strip {
	width := t.Size().Width

	rowKey, line, ok := t.offsetsFor(y)
	if !ok {
		return strip.Blank(width, base)
	}

	key := lineCacheKey{
		y:          y,
		x1:         x1,
		x2:         x2,
		width:      width,
		cursor:     t.cursor,
		hover:      t.hover,
		base:       base,
		cursorType: t.cursorType,
		showHover:  t.showHover,
		version:    t.updateCount,
	}
	return t.lineCache.GetOrCompute(key, func() strip.Strip {
		row := t.renderLineInRow(rowKey, line, base)

		// The scrollable part holds every column; skip the ones drawn
		// in the fixed part and whatever is scrolled off to the left.
		fixedWidth := t.fixedColumnsWidth()
		scrollable := strip.Join(row.scrollable...).Crop(x1+fixedWidth, x2-t.labelColumnWidth())

		parts := append(append([]strip.Strip(nil), row.fixed...), scrollable)
		return strip.Join(parts...).AdjustCellLength(width, base).Simplify()
	})
}

func (t *Table) renderLineInRow(rowKey RowKey, line int, base core.Style) renderedRow {
	key := rowCacheKey{
		row:        rowKey,
		line:       line,
		base:       base,
		cursor:     t.cursor,
		hover:      t.hover,
		cursorType: t.cursorType,
		showCursor: t.showCursor,
		showHover:  t.showHover,
		version:    t.updateCount,
	}
	if cached, ok := t.rowCache.Get(key); ok {
		return cached
	}

	isHeader := rowKey == t.headerKey
	rowIndex := -1
	if !isHeader {
		rowIndex, _ = t.rowLocations.Index(rowKey)
	}

	covers := t.mode().covers
	header := base.Merge(t.styles.Header)
	columns := t.OrderedColumns()

	var row renderedRow
	if t.shouldRenderRowLabels() {
		cell := t.renderCell(rowIndex, -1, header, t.labelColumnWidth(), false, false)
		row.fixed = append(row.fixed, cell[line])
	}

	if t.fixedColumns > 0 {
		fixed := base.Merge(t.styles.Fixed).WithMeta(core.Meta{Fixed: true})
		if isHeader {
			fixed = header
		}
		for i, c := range columns[:min(t.fixedColumns, len(columns))] {
			pos := Coordinate{Row: rowIndex, Column: i}
			cell := t.renderCell(rowIndex, i, fixed, c.RenderWidth(), covers(t.cursor, pos), covers(t.hover, pos))
			row.fixed = append(row.fixed, cell[line])
		}
	}

	var style core.Style
	switch {
	case isHeader:
		style = header
	case rowIndex < t.fixedRows:
		style = base.Merge(t.styles.Fixed)
	case t.zebraStripes && rowIndex%2 == 1:
		style = base.Merge(t.styles.OddRow)
	case t.zebraStripes:
		style = base.Merge(t.styles.EvenRow)
	default:
		style = base
	}

	for i, c := range columns {
		pos := Coordinate{Row: rowIndex, Column: i}
		cell := t.renderCell(rowIndex, i, style, c.RenderWidth(), covers(t.cursor, pos), covers(t.hover, pos))
		row.scrollable = append(row.scrollable, cell[line])
	}

	t.rowCache.Set(key, row)
	return row
}

// renderCell returns one padded strip per line of the cell. Row -1 is the
// header and column -1 the row label column.
func (t *Table) renderCell(rowIndex, columnIndex int, style core.Style, width int, cursor, hover bool) []strip.Strip {
	isHeader := rowIndex == -1
	isLabel := columnIndex == -1
	isFixed := !isHeader && !isLabel && (rowIndex < t.fixedRows || columnIndex < t.fixedColumns)

	if hover && t.showCursor && t.showHover {
		style = style.Merge(t.styles.Hover)
		if isHeader {
			style = style.Merge(t.styles.HeaderHover)
		}
	}
	if cursor && t.showCursor {
		style = style.Merge(t.styles.Cursor)
		switch {
		case isHeader:
			style = style.Merge(t.styles.HeaderCursor)
		case isFixed:
			style = style.Merge(t.styles.FixedCursor)
		}
	}

	rowKey := t.headerKey
	if !isHeader {
		rowKey, _ = t.rowLocations.Key(rowIndex)
	}
	columnKey := t.labelKey
	if !isLabel {
		columnKey, _ = t.columnLocations.Key(columnIndex)
	}

	key := cellCacheKey{row: rowKey, column: columnKey, style: style, cursor: cursor, hover: hover, version: t.updateCount}
	return t.cellCache.GetOrCompute(key, func() []strip.Strip {
		style := style.WithMeta(core.Meta{
			Row:     rowIndex,
			Column:  columnIndex,
			Fixed:   style.Meta.Fixed,
			HasCell: true,
		})
		height := t.RowHeight(rowKey)
		if isHeader {
			height = t.headerHeight
		}

		text := strings.Split(t.cellText(rowIndex, columnIndex), "\n")
		lines := make([]strip.Strip, height)
		for i := range lines {
			var content string
			if i < len(text) {
				content = text[i]
			}
			lines[i] = padCell(content, width, style)
		}
		return lines
	})
}

// padCell renders text with one space either side, fitted to width.
func padCell(text string, width int, style core.Style) strip.Strip {
	inner := strip.Text(text, style).AdjustCellLength(max(width-2, 0), style)
	return strip.Join(strip.Blank(1, style), inner, strip.Blank(1, style)).AdjustCellLength(width, style)
}

// cellText returns the display text for a cell, header label or row label.
func (t *Table) cellText(rowIndex, columnIndex int) string {
	switch {
	case columnIndex == -1 && rowIndex == -1:
		return ""
	case columnIndex == -1:
		key, _ := t.rowLocations.Key(rowIndex)
		if r, ok := t.rows[key]; ok {
			return r.Label
		}
		return ""
	case rowIndex == -1:
		key, _ := t.columnLocations.Key(columnIndex)
		if c, ok := t.columns[key]; ok {
			return c.Label
		}
		return ""
	}

	rowKey, _ := t.rowLocations.Key(rowIndex)
	columnKey, _ := t.columnLocations.Key(columnIndex)
	return t.formatter(t.data[rowKey][columnKey])
}
