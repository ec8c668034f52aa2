package datatable

import "github.com/dshills/cellstorm/internal/renderer/core"

// Regions are in virtual canvas coordinates: the header occupies the top
// headerHeight lines when shown and the row label column the leftmost
// labelColumnWidth cells.

func (t *Table) headerOffset() int {
	if t.showHeader {
		return t.headerHeight
	}
	return 0
}

func (t *Table) columnX(index int) int {
	x := t.labelColumnWidth()
	for _, c := range t.OrderedColumns()[:index] {
		x += c.RenderWidth()
	}
	return x
}

func (t *Table) rowY(index int) int {
	y := t.headerOffset()
	for _, r := range t.OrderedRows()[:index] {
		y += r.Height
	}
	return y
}

func (t *Table) totalColumnWidth() int {
	width := 0
	for _, c := range t.columns {
		width += c.RenderWidth()
	}
	return width
}

func (t *Table) cellRegion(c Coordinate) core.Region {
	if !t.IsValidCoordinate(c) {
		return core.Region{}
	}
	rowKey, _ := t.rowLocations.Key(c.Row)
	columnKey, _ := t.columnLocations.Key(c.Column)
	return core.Region{
		X:      t.columnX(c.Column),
		Y:      t.rowY(c.Row),
		Width:  t.columns[columnKey].RenderWidth(),
		Height: t.rows[rowKey].Height,
	}
}

func (t *Table) rowRegion(index int) core.Region {
	if !t.IsValidRowIndex(index) {
		return core.Region{}
	}
	key, _ := t.rowLocations.Key(index)
	return core.Region{
		X:      0,
		Y:      t.rowY(index),
		Width:  t.labelColumnWidth() + t.totalColumnWidth(),
		Height: t.rows[key].Height,
	}
}

func (t *Table) columnRegion(index int) core.Region {
	if !t.IsValidColumnIndex(index) {
		return core.Region{}
	}
	key, _ := t.columnLocations.Key(index)
	return core.Region{
		X:      t.columnX(index),
		Y:      0,
		Width:  t.columns[key].RenderWidth(),
		Height: t.totalRowHeight() + t.headerOffset(),
	}
}

// RefreshCoordinate repaints the cell at c. Invalid coordinates are ignored.
func (t *Table) RefreshCoordinate(c Coordinate) {
	if !t.IsValidCoordinate(c) {
		return
	}
	t.refreshRegion(t.cellRegion(c))
}

// RefreshRow repaints the row at index. Invalid indices are ignored.
func (t *Table) RefreshRow(index int) {
	if !t.IsValidRowIndex(index) {
		return
	}
	t.refreshRegion(t.rowRegion(index))
}

// RefreshColumn repaints the column at index. Invalid indices are ignored.
func (t *Table) RefreshColumn(index int) {
	if !t.IsValidColumnIndex(index) {
		return
	}
	t.refreshRegion(t.columnRegion(index))
}

// refreshRegion damages region if any of it is in the window, translated
// to widget coordinates.
func (t *Table) refreshRegion(region core.Region) {
	if !t.WindowRegion().Overlaps(region) {
		return
	}
	t.Refresh(region.TranslateBy(t.ScrollOffset().Negate()))
}
