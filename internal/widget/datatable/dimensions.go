package datatable

import "github.com/dshills/cellstorm/internal/renderer/core"

// OnIdle applies deferred dimension work: widths contributed by new rows
// first, since they feed the virtual size, then re-measurement of updated
// cells.
func (t *Table) OnIdle() {
	newRows, updatedCells := len(t.newRows), len(t.updatedCells)

	if t.requireUpdateDimensions {
		t.requireUpdateDimensions = false
		rows := t.newRows
		t.newRows = make(map[RowKey]struct{})
		if t.remeasureColumns {
			t.remeasureColumns = false
			for _, c := range t.columns {
				c.ContentWidth = textWidth(c.Label)
			}
		}
		t.updateDimensions(rows)
	}

	if len(t.updatedCells) > 0 {
		cells := t.updatedCells
		t.updatedCells = make(map[CellKey]struct{})
		t.updateColumnWidths(cells)
	}

	if t.logger != nil && newRows+updatedCells > 0 {
		t.logger.Debugf("datatable idle flush: rows=%d cells=%d virtual=%v", newRows, updatedCells, t.VirtualSize())
	}
}

// NeedsIdle reports whether OnIdle has pending work.
func (t *Table) NeedsIdle() bool {
	return t.requireUpdateDimensions || len(t.updatedCells) > 0
}

func (t *Table) updateDimensions(newRows map[RowKey]struct{}) {
	columns := t.OrderedColumns()
	for key := range newRows {
		row, ok := t.rows[key]
		if !ok {
			continue
		}
		if row.Label != "" {
			t.labelledRowExists = true
			t.labelWidth = max(t.labelWidth, textWidth(row.Label))
		}
		cells := t.data[key]
		for _, c := range columns {
			c.ContentWidth = max(c.ContentWidth, textWidth(t.formatter(cells[c.Key])))
		}
	}

	t.clearCaches()
	t.updateVirtualSize()
	t.Refresh()
}

// updateColumnWidths re-measures columns after cell edits. A cell that got
// narrower may have been the widest, so the whole column is rescanned.
func (t *Table) updateColumnWidths(cells map[CellKey]struct{}) {
	changed := false
	for key := range cells {
		column, ok := t.columns[key.Column]
		if !ok {
			continue
		}
		cellsInRow, ok := t.data[key.Row]
		if !ok {
			continue
		}

		labelWidth := textWidth(column.Label)
		width := textWidth(t.formatter(cellsInRow[key.Column]))
		if width < column.ContentWidth {
			width = labelWidth
			for _, r := range t.OrderedRows() {
				width = max(width, textWidth(t.formatter(t.data[r.Key][key.Column])))
			}
		} else {
			width = max(width, labelWidth)
		}

		if width != column.ContentWidth {
			column.ContentWidth = width
			changed = true
		}
	}

	if changed {
		t.clearCaches()
		t.updateVirtualSize()
		t.Refresh()
	}
}

func (t *Table) totalRowHeight() int {
	return len(t.lineOffsets())
}

func (t *Table) updateVirtualSize() {
	t.SetVirtualSize(core.Size{
		Width:  t.labelColumnWidth() + t.totalColumnWidth(),
		Height: t.totalRowHeight() + t.headerOffset(),
	})
}
