package datatable

import "fmt"

// Coordinate is a (row, column) position in the table.
type Coordinate struct {
	Row    int
	Column int
}

// Up returns the coordinate above. No clamping is applied.
func (c Coordinate) Up() Coordinate { return Coordinate{c.Row - 1, c.Column} }

// Down returns the coordinate below.
func (c Coordinate) Down() Coordinate { return Coordinate{c.Row + 1, c.Column} }

// Left returns the coordinate to the left.
func (c Coordinate) Left() Coordinate { return Coordinate{c.Row, c.Column - 1} }

// Right returns the coordinate to the right.
func (c Coordinate) Right() Coordinate { return Coordinate{c.Row, c.Column + 1} }

// Less orders coordinates by row, then column.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Column < other.Column
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Column)
}
