package datatable

// Display settings. Each one invalidates the render caches and repaints.

// SetShowHeader shows or hides the column labels.
func (t *Table) SetShowHeader(show bool) {
	if show == t.showHeader {
		return
	}
	t.showHeader = show
	t.clearCaches()
	t.updateVirtualSize()
	t.scrollCursorIntoView(false)
	t.Refresh()
}

// SetHeaderHeight sets the header height in lines. Values below 1 mean 1.
func (t *Table) SetHeaderHeight(height int) {
	height = max(height, 1)
	if height == t.headerHeight {
		return
	}
	t.headerHeight = height
	t.clearCaches()
	t.updateVirtualSize()
	t.Refresh()
}

// SetShowRowLabels shows or hides the row label column.
func (t *Table) SetShowRowLabels(show bool) {
	if show == t.showRowLabels {
		return
	}
	t.showRowLabels = show
	t.clearCaches()
	t.updateVirtualSize()
	t.Refresh()
}

// SetFixedRows sets how many leading rows stay put when scrolling.
func (t *Table) SetFixedRows(n int) {
	t.fixedRows = max(n, 0)
	t.clearCaches()
	t.Refresh()
}

// SetFixedColumns sets how many leading columns stay put when scrolling.
func (t *Table) SetFixedColumns(n int) {
	t.fixedColumns = max(n, 0)
	t.clearCaches()
	t.Refresh()
}

// SetZebraStripes alternates row backgrounds.
func (t *Table) SetZebraStripes(on bool) {
	t.zebraStripes = on
	t.clearCaches()
	t.Refresh()
}

// SetStyles replaces the component styles.
func (t *Table) SetStyles(s Styles) {
	t.styles = s
	t.OnStylesUpdated()
}

// OnStylesUpdated drops everything rendered with the previous styles.
func (t *Table) OnStylesUpdated() {
	t.clearCaches()
	t.Refresh()
}
