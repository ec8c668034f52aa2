// Package datatable implements a scrollable data grid.
//
// Rows and columns are identified by keys that survive reordering; a pair
// of TwoWayMaps records where each key currently sits. Rendering is cached
// at four levels (cell, row line, composited line and the line-to-row
// offset table). Every cache key embeds the table's update counter, which
// is bumped synchronously by each mutation, so stale entries simply stop
// being reachable.
//
// Structural changes that affect column widths or the virtual size are
// queued and applied by OnIdle, which the UI loop calls once pending
// messages have been handled.
//
// A Table is not safe for concurrent use.
package datatable

import (
	"fmt"
	"slices"

	"github.com/dshills/cellstorm/internal/event"
	"github.com/dshills/cellstorm/internal/renderer/cache"
	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/renderer/strip"
	"github.com/dshills/cellstorm/internal/widget"
)

// Logger receives debug output.
type Logger interface {
	Debugf(format string, args ...any)
}

// Options configures a new table.
type Options struct {
	ShowHeader    bool
	ShowRowLabels bool
	ShowCursor    bool
	ZebraStripes  bool
	HeaderHeight  int
	FixedRows     int
	FixedColumns  int
	CursorType    CursorType

	// Cache capacities in entries.
	CellCacheSize int
	RowCacheSize  int
	LineCacheSize int
}

// DefaultOptions returns the default table options.
func DefaultOptions() Options {
	return Options{
		ShowHeader:    true,
		ShowRowLabels: true,
		ShowCursor:    true,
		HeaderHeight:  1,
		CursorType:    CursorCell,
		CellCacheSize: 10000,
		RowCacheSize:  1000,
		LineCacheSize: 1000,
	}
}

// RowOptions configures AddRowWithOptions.
type RowOptions struct {
	// Key identifies the row. Empty generates a unique key.
	Key string
	// Height in lines. Values below 1 mean 1.
	Height int
	// Label is shown in the row label column.
	Label string
}

// ColumnOptions configures AddColumnWithOptions.
type ColumnOptions struct {
	// Key identifies the column. Empty generates a unique key.
	Key string
	// Width fixes the content width. Zero sizes the column to its content.
	Width int
}

type lineOffset struct {
	key  RowKey
	line int
}

type orderedRowsKey struct {
	rows   int
	update uint64
}

// Table is a data grid widget.
type Table struct {
	*widget.ScrollView

	poster    event.Poster
	logger    Logger
	formatter Formatter
	styles    Styles

	data            map[RowKey]map[ColumnKey]any
	columns         map[ColumnKey]*Column
	rows            map[RowKey]*Row
	rowLocations    *TwoWayMap[RowKey]
	columnLocations *TwoWayMap[ColumnKey]

	cellCache       *cache.LRU[cellCacheKey, []strip.Strip]
	rowCache        *cache.LRU[rowCacheKey, renderedRow]
	lineCache       *cache.LRU[lineCacheKey, strip.Strip]
	offsetCache     *cache.LRU[uint64, []lineOffset]
	orderedRowCache *cache.LRU[orderedRowsKey, []*Row]

	// Work deferred to OnIdle.
	requireUpdateDimensions bool
	remeasureColumns        bool
	newRows                 map[RowKey]struct{}
	updatedCells            map[CellKey]struct{}

	updateCount uint64

	headerKey         RowKey
	labelKey          ColumnKey
	labelledRowExists bool
	labelWidth        int

	cursor     Coordinate
	hover      Coordinate
	showHover  bool
	cursorType CursorType

	showHeader    bool
	showRowLabels bool
	showCursor    bool
	zebraStripes  bool
	headerHeight  int
	fixedRows     int
	fixedColumns  int
}

// New creates an empty table with a window of width x height cells.
func New(width, height int, opts Options) *Table {
	t := &Table{
		ScrollView:      widget.NewScrollView(width, height),
		formatter:       DefaultFormatter,
		styles:          DefaultStyles(),
		data:            make(map[RowKey]map[ColumnKey]any),
		columns:         make(map[ColumnKey]*Column),
		rows:            make(map[RowKey]*Row),
		rowLocations:    NewTwoWayMap[RowKey](),
		columnLocations: NewTwoWayMap[ColumnKey](),
		cellCache:       cache.New[cellCacheKey, []strip.Strip]("cell", opts.CellCacheSize),
		rowCache:        cache.New[rowCacheKey, renderedRow]("row", opts.RowCacheSize),
		lineCache:       cache.New[lineCacheKey, strip.Strip]("line", opts.LineCacheSize),
		offsetCache:     cache.New[uint64, []lineOffset]("offset", 1),
		orderedRowCache: cache.New[orderedRowsKey, []*Row]("ordered-rows", 1),
		newRows:         make(map[RowKey]struct{}),
		updatedCells:    make(map[CellKey]struct{}),
		headerKey:       NewRowKey(),
		labelKey:        NewColumnKey(),
		cursorType:      opts.CursorType,
		showHeader:      opts.ShowHeader,
		showRowLabels:   opts.ShowRowLabels,
		showCursor:      opts.ShowCursor,
		zebraStripes:    opts.ZebraStripes,
		headerHeight:    max(opts.HeaderHeight, 1),
		fixedRows:       max(opts.FixedRows, 0),
		fixedColumns:    max(opts.FixedColumns, 0),
	}
	t.updateVirtualSize()
	return t
}

// SetPoster sets where messages are posted. A nil poster drops them.
func (t *Table) SetPoster(p event.Poster) {
	t.poster = p
}

// SetLogger sets the debug logger.
func (t *Table) SetLogger(l Logger) {
	t.logger = l
}

// SetFormatter replaces the cell formatter. A nil formatter restores the default.
func (t *Table) SetFormatter(f Formatter) {
	if f == nil {
		f = DefaultFormatter
	}
	t.formatter = f
	t.updateCount++

	// Re-measure every row with the new formatter. Widths restart from
	// the labels so columns can shrink as well as grow.
	t.remeasureColumns = true
	for key := range t.rows {
		t.newRows[key] = struct{}{}
	}
	t.requireUpdateDimensions = true
	t.Refresh()
}

func (t *Table) post(msg event.Message) {
	if t.poster != nil {
		t.poster.Post(msg)
	}
}

// UpdateCount returns the mutation counter.
func (t *Table) UpdateCount() uint64 { return t.updateCount }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// CursorCoordinate returns the keyboard cursor position.
func (t *Table) CursorCoordinate() Coordinate { return t.cursor }

// HoverCoordinate returns the pointer hover position.
func (t *Table) HoverCoordinate() Coordinate { return t.hover }

// CursorType returns the cursor mode.
func (t *Table) CursorType() CursorType { return t.cursorType }

// Styles returns the component styles.
func (t *Table) Styles() Styles { return t.styles }

// Column returns the column with key.
func (t *Table) Column(key ColumnKey) (*Column, error) {
	c, ok := t.columns[key]
	if !ok {
		return nil, fmt.Errorf("column key %v: %w", key, ErrColumnDoesNotExist)
	}
	return c, nil
}

// Row returns the row with key.
func (t *Table) Row(key RowKey) (*Row, error) {
	r, ok := t.rows[key]
	if !ok {
		return nil, fmt.Errorf("row key %v: %w", key, ErrRowDoesNotExist)
	}
	return r, nil
}

// RowHeight returns the height in lines of the row with key. Unknown keys
// have height zero.
func (t *Table) RowHeight(key RowKey) int {
	if key == t.headerKey {
		return t.headerHeight
	}
	if r, ok := t.rows[key]; ok {
		return r.Height
	}
	return 0
}

// GetCell returns the value stored under the row and column keys.
func (t *Table) GetCell(row RowKey, column ColumnKey) (any, error) {
	cells, ok := t.data[row]
	if !ok {
		return nil, fmt.Errorf("row %v, column %v: %w", row, column, ErrCellDoesNotExist)
	}
	value, ok := cells[column]
	if !ok {
		return nil, fmt.Errorf("row %v, column %v: %w", row, column, ErrCellDoesNotExist)
	}
	return value, nil
}

// GetCellAt returns the value of the cell currently at coordinate.
func (t *Table) GetCellAt(c Coordinate) (any, error) {
	key, err := t.CoordinateToCellKey(c)
	if err != nil {
		return nil, err
	}
	return t.GetCell(key.Row, key.Column)
}

// GetRow returns the row's values in column order.
func (t *Table) GetRow(key RowKey) ([]any, error) {
	if !t.rowLocations.Contains(key) {
		return nil, fmt.Errorf("row key %v: %w", key, ErrRowDoesNotExist)
	}
	cells := t.data[key]
	columns := t.OrderedColumns()
	values := make([]any, len(columns))
	for i, c := range columns {
		values[i] = cells[c.Key]
	}
	return values, nil
}

// GetRowAt returns the values of the row currently at index.
func (t *Table) GetRowAt(index int) ([]any, error) {
	key, ok := t.rowLocations.Key(index)
	if !ok {
		return nil, fmt.Errorf("row index %d: %w", index, ErrRowDoesNotExist)
	}
	return t.GetRow(key)
}

// GetColumn returns the column's values in row order.
func (t *Table) GetColumn(key ColumnKey) ([]any, error) {
	if !t.columnLocations.Contains(key) {
		return nil, fmt.Errorf("column key %v: %w", key, ErrColumnDoesNotExist)
	}
	rows := t.OrderedRows()
	values := make([]any, len(rows))
	for i, r := range rows {
		values[i] = t.data[r.Key][key]
	}
	return values, nil
}

// GetColumnAt returns the values of the column currently at index.
func (t *Table) GetColumnAt(index int) ([]any, error) {
	key, ok := t.columnLocations.Key(index)
	if !ok {
		return nil, fmt.Errorf("column index %d: %w", index, ErrColumnDoesNotExist)
	}
	return t.GetColumn(key)
}

// CoordinateToCellKey returns the key of the cell currently at c.
func (t *Table) CoordinateToCellKey(c Coordinate) (CellKey, error) {
	if !t.IsValidCoordinate(c) {
		return CellKey{}, fmt.Errorf("coordinate %v: %w", c, ErrCellDoesNotExist)
	}
	row, _ := t.rowLocations.Key(c.Row)
	column, _ := t.columnLocations.Key(c.Column)
	return CellKey{Row: row, Column: column}, nil
}

// IsValidRowIndex reports whether index is within [0, RowCount).
func (t *Table) IsValidRowIndex(index int) bool {
	return index >= 0 && index < len(t.rows)
}

// IsValidColumnIndex reports whether index is within [0, ColumnCount).
func (t *Table) IsValidColumnIndex(index int) bool {
	return index >= 0 && index < len(t.columns)
}

// IsValidCoordinate reports whether c addresses a cell.
func (t *Table) IsValidCoordinate(c Coordinate) bool {
	return t.IsValidRowIndex(c.Row) && t.IsValidColumnIndex(c.Column)
}

// OrderedColumns returns the columns in display order.
func (t *Table) OrderedColumns() []*Column {
	columns := make([]*Column, 0, len(t.columns))
	for i := range len(t.columns) {
		key, _ := t.columnLocations.Key(i)
		columns = append(columns, t.columns[key])
	}
	return columns
}

// OrderedRows returns the rows in display order. The result is cached per
// generation and must not be modified.
func (t *Table) OrderedRows() []*Row {
	key := orderedRowsKey{rows: len(t.rows), update: t.updateCount}
	return t.orderedRowCache.GetOrCompute(key, func() []*Row {
		rows := make([]*Row, 0, len(t.rows))
		for i := range len(t.rows) {
			rk, _ := t.rowLocations.Key(i)
			rows = append(rows, t.rows[rk])
		}
		return rows
	})
}

// UpdateCell stores value in the cell at (row, column). With updateWidth
// the column is re-measured on the next idle flush.
func (t *Table) UpdateCell(row RowKey, column ColumnKey, value any, updateWidth bool) error {
	cells, ok := t.data[row]
	if !ok || !t.columnLocations.Contains(column) {
		return fmt.Errorf("row %v, column %v: %w", row, column, ErrCellDoesNotExist)
	}
	cells[column] = value
	t.updateCount++

	if updateWidth {
		t.updatedCells[CellKey{Row: row, Column: column}] = struct{}{}
		t.requireUpdateDimensions = true
	}
	t.Refresh()
	return nil
}

// UpdateCellAt stores value in the cell currently at c.
func (t *Table) UpdateCellAt(c Coordinate, value any, updateWidth bool) error {
	key, err := t.CoordinateToCellKey(c)
	if err != nil {
		return err
	}
	return t.UpdateCell(key.Row, key.Column, value, updateWidth)
}

// AddColumn appends an auto-width column.
func (t *Table) AddColumn(label string) (ColumnKey, error) {
	return t.AddColumnWithOptions(label, ColumnOptions{})
}

// AddColumnWithOptions appends a column.
func (t *Table) AddColumnWithOptions(label string, opts ColumnOptions) (ColumnKey, error) {
	key := NewColumnKey()
	if opts.Key != "" {
		key = ColumnKeyOf(opts.Key)
	}
	if t.columnLocations.Contains(key) {
		return ColumnKey{}, fmt.Errorf("column key %q: %w", opts.Key, ErrDuplicateKey)
	}

	contentWidth := textWidth(label)
	column := &Column{
		Key:          key,
		Label:        label,
		Width:        contentWidth,
		ContentWidth: contentWidth,
		AutoWidth:    true,
	}
	if opts.Width > 0 {
		column.Width = opts.Width
		column.AutoWidth = false
	}

	t.columnLocations.Append(key)
	t.columns[key] = column
	for _, cells := range t.data {
		cells[key] = nil
	}
	t.requireUpdateDimensions = true
	t.updateCount++
	return key, nil
}

// AddColumns appends one auto-width column per label.
func (t *Table) AddColumns(labels ...string) []ColumnKey {
	keys := make([]ColumnKey, 0, len(labels))
	for _, label := range labels {
		// Generated keys cannot collide.
		key, _ := t.AddColumn(label)
		keys = append(keys, key)
	}
	return keys
}

// AddRow appends a row of cells with a generated key.
func (t *Table) AddRow(cells ...any) (RowKey, error) {
	return t.AddRowWithOptions(RowOptions{}, cells...)
}

// AddRowWithOptions appends a row. Cells beyond the column count are
// dropped; missing cells are nil.
func (t *Table) AddRowWithOptions(opts RowOptions, cells ...any) (RowKey, error) {
	key := NewRowKey()
	if opts.Key != "" {
		key = RowKeyOf(opts.Key)
	}
	if t.rowLocations.Contains(key) {
		return RowKey{}, fmt.Errorf("row key %q: %w", opts.Key, ErrDuplicateKey)
	}

	values := make(map[ColumnKey]any, len(t.columns))
	for i, column := range t.OrderedColumns() {
		var v any
		if i < len(cells) {
			v = cells[i]
		}
		values[column.Key] = v
	}

	t.rowLocations.Append(key)
	t.data[key] = values
	t.rows[key] = &Row{Key: key, Height: max(opts.Height, 1), Label: opts.Label}
	t.newRows[key] = struct{}{}
	t.requireUpdateDimensions = true
	t.updateCount++

	t.setCursorCoordinate(t.cursor)

	// The first row gives the cursor somewhere to be.
	if len(t.rows) == 1 && len(t.columns) > 0 && t.showCursor && t.cursorType != CursorNone {
		t.highlightCursor()
	}
	return key, nil
}

// AddRows appends rows with generated keys.
func (t *Table) AddRows(rows [][]any) []RowKey {
	keys := make([]RowKey, 0, len(rows))
	for _, cells := range rows {
		key, _ := t.AddRow(cells...)
		keys = append(keys, key)
	}
	return keys
}

// Sort orders rows by the values in columns, compared left to right.
// The sort is stable, so equal rows keep their relative order.
func (t *Table) Sort(reverse bool, columns ...ColumnKey) error {
	for _, c := range columns {
		if !t.columnLocations.Contains(c) {
			return fmt.Errorf("sort by %v: %w", c, ErrColumnDoesNotExist)
		}
	}

	keys := make([]RowKey, 0, len(t.rows))
	for _, r := range t.OrderedRows() {
		keys = append(keys, r.Key)
	}
	slices.SortStableFunc(keys, func(a, b RowKey) int {
		for _, c := range columns {
			if n := compareValues(t.data[a][c], t.data[b][c]); n != 0 {
				if reverse {
					return -n
				}
				return n
			}
		}
		return 0
	})

	t.rowLocations.Reorder(keys)
	t.updateCount++
	t.Refresh()
	return nil
}

// Clear removes every row, and the columns too when columns is true.
func (t *Table) Clear(columns bool) {
	t.clearCaches()
	clear(t.data)
	clear(t.rows)
	t.rowLocations.Clear()
	if columns {
		clear(t.columns)
		t.columnLocations.Clear()
	}
	clear(t.newRows)
	clear(t.updatedCells)
	t.requireUpdateDimensions = true
	t.labelledRowExists = false
	t.labelWidth = 0
	t.updateCount++

	t.setCursorCoordinate(Coordinate{})
	t.setHoverCoordinate(Coordinate{})
	t.Refresh()
}

func (t *Table) clearCaches() {
	t.cellCache.Clear()
	t.rowCache.Clear()
	t.lineCache.Clear()
	t.offsetCache.Clear()
	t.orderedRowCache.Clear()
}

// CacheStats returns statistics for each render cache.
func (t *Table) CacheStats() []cache.Stats {
	return []cache.Stats{
		t.cellCache.Stats(),
		t.rowCache.Stats(),
		t.lineCache.Stats(),
		t.offsetCache.Stats(),
		t.orderedRowCache.Stats(),
	}
}

// fixedOffset returns the space at the top and left taken by the header,
// fixed rows, row labels and fixed columns.
func (t *Table) fixedOffset() core.Spacing {
	top := 0
	if t.showHeader {
		top = t.headerHeight
	}
	rows := t.OrderedRows()
	for _, r := range rows[:min(t.fixedRows, len(rows))] {
		top += r.Height
	}
	return core.Spacing{Top: top, Left: t.labelColumnWidth() + t.fixedColumnsWidth()}
}

func (t *Table) fixedColumnsWidth() int {
	width := 0
	columns := t.OrderedColumns()
	for _, c := range columns[:min(t.fixedColumns, len(columns))] {
		width += c.RenderWidth()
	}
	return width
}

func (t *Table) shouldRenderRowLabels() bool {
	return t.labelledRowExists && t.showRowLabels
}

// labelColumnWidth returns the render width of the row label column, or
// zero when it is not shown.
func (t *Table) labelColumnWidth() int {
	if !t.shouldRenderRowLabels() {
		return 0
	}
	return t.labelWidth + 2
}
