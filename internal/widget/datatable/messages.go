package datatable

import "github.com/dshills/cellstorm/internal/event"

// Message topics posted by the table.
const (
	TopicCellHighlighted   event.Topic = "datatable.cell.highlighted"
	TopicCellSelected      event.Topic = "datatable.cell.selected"
	TopicRowHighlighted    event.Topic = "datatable.row.highlighted"
	TopicRowSelected       event.Topic = "datatable.row.selected"
	TopicColumnHighlighted event.Topic = "datatable.column.highlighted"
	TopicColumnSelected    event.Topic = "datatable.column.selected"
	TopicHeaderSelected    event.Topic = "datatable.header.selected"
)

// CellHighlighted is posted when the cell cursor moves onto a cell.
type CellHighlighted struct {
	Value      any
	Coordinate Coordinate
	CellKey    CellKey
}

func (CellHighlighted) Topic() event.Topic { return TopicCellHighlighted }

// CellSelected is posted when the cell under the cursor is selected.
type CellSelected struct {
	Value      any
	Coordinate Coordinate
	CellKey    CellKey
}

func (CellSelected) Topic() event.Topic { return TopicCellSelected }

// RowHighlighted is posted when the row cursor moves onto a row.
type RowHighlighted struct {
	CursorRow int
	RowKey    RowKey
}

func (RowHighlighted) Topic() event.Topic { return TopicRowHighlighted }

// RowSelected is posted when the row under the cursor is selected.
type RowSelected struct {
	CursorRow int
	RowKey    RowKey
}

func (RowSelected) Topic() event.Topic { return TopicRowSelected }

// ColumnHighlighted is posted when the column cursor moves onto a column.
type ColumnHighlighted struct {
	CursorColumn int
	ColumnKey    ColumnKey
}

func (ColumnHighlighted) Topic() event.Topic { return TopicColumnHighlighted }

// ColumnSelected is posted when the column under the cursor is selected.
type ColumnSelected struct {
	CursorColumn int
	ColumnKey    ColumnKey
}

func (ColumnSelected) Topic() event.Topic { return TopicColumnSelected }

// HeaderSelected is posted when a column label is clicked. It does not
// move the cursor and is posted even when the cursor is hidden.
type HeaderSelected struct {
	ColumnKey   ColumnKey
	ColumnIndex int
	Label       string
}

func (HeaderSelected) Topic() event.Topic { return TopicHeaderSelected }
