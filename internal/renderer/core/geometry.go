package core

import "fmt"

// Offset is a displacement in cells.
type Offset struct {
	X, Y int
}

// Negate returns the inverse offset.
func (o Offset) Negate() Offset {
	return Offset{X: -o.X, Y: -o.Y}
}

// Size is a width/height pair.
type Size struct {
	Width, Height int
}

// Area returns the number of cells covered.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Region returns the region of this size anchored at the origin.
func (s Size) Region() Region {
	return Region{Width: s.Width, Height: s.Height}
}

// Spacing describes space around an edge: top, right, bottom, left.
type Spacing struct {
	Top, Right, Bottom, Left int
}

// Width returns the total horizontal spacing.
func (s Spacing) Width() int { return s.Left + s.Right }

// Height returns the total vertical spacing.
func (s Spacing) Height() int { return s.Top + s.Bottom }

// Region is an axis-aligned rectangle of cells. The zero Region is empty.
type Region struct {
	X, Y          int
	Width, Height int
}

// NewRegion creates a region, clamping negative sizes to zero.
func NewRegion(x, y, width, height int) Region {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Region{X: x, Y: y, Width: width, Height: height}
}

// Right returns the first column past the region.
func (r Region) Right() int { return r.X + r.Width }

// Bottom returns the first row past the region.
func (r Region) Bottom() int { return r.Y + r.Height }

// Size returns the region dimensions.
func (r Region) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Offset returns the region origin.
func (r Region) Offset() Offset { return Offset{X: r.X, Y: r.Y} }

// IsEmpty returns true if the region covers no cells.
func (r Region) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the number of cells in the region.
func (r Region) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains returns true if the cell (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsLine returns true if row y intersects the region.
func (r Region) ContainsLine(y int) bool {
	return !r.IsEmpty() && y >= r.Y && y < r.Bottom()
}

// Overlaps returns true if the two regions share at least one cell.
func (r Region) Overlaps(other Region) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Translate returns the region moved by (dx, dy).
func (r Region) Translate(dx, dy int) Region {
	r.X += dx
	r.Y += dy
	return r
}

// TranslateBy returns the region moved by the offset.
func (r Region) TranslateBy(o Offset) Region {
	return r.Translate(o.X, o.Y)
}

// Crop returns the part of r that lies inside other.
// The result is empty when the regions do not overlap.
func (r Region) Crop(other Region) Region {
	if !r.Overlaps(other) {
		return Region{}
	}
	x1, y1 := max(r.X, other.X), max(r.Y, other.Y)
	x2, y2 := min(r.Right(), other.Right()), min(r.Bottom(), other.Bottom())
	return Region{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Union returns the smallest region containing both regions.
func (r Region) Union(other Region) Region {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x1, y1 := min(r.X, other.X), min(r.Y, other.Y)
	x2, y2 := max(r.Right(), other.Right()), max(r.Bottom(), other.Bottom())
	return Region{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Shrink returns the region with spacing removed from each edge.
func (r Region) Shrink(s Spacing) Region {
	return NewRegion(r.X+s.Left, r.Y+s.Top, r.Width-s.Width(), r.Height-s.Height())
}

// String implements fmt.Stringer.
func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
