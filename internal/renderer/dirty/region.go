// Package dirty tracks which parts of the screen need repainting.
// Widgets report damage as core.Region values in screen space; the tracker
// clips them to the screen and coalesces overlapping or adjacent regions so
// the compositor repaints as few cells as possible.
package dirty

import "github.com/dshills/cellstorm/internal/renderer/core"

// Adjacent returns true if two regions touch along a full shared edge,
// so their union covers no extra cells.
func Adjacent(a, b core.Region) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	// Stacked vertically with identical column span.
	if a.X == b.X && a.Width == b.Width {
		if a.Bottom() == b.Y || b.Bottom() == a.Y {
			return true
		}
	}
	// Side by side with identical line span.
	if a.Y == b.Y && a.Height == b.Height {
		if a.Right() == b.X || b.Right() == a.X {
			return true
		}
	}
	return false
}

// Merge combines two regions into their bounding region.
// Returns false if the regions neither overlap nor touch.
func Merge(a, b core.Region) (core.Region, bool) {
	if !a.Overlaps(b) && !Adjacent(a, b) {
		return core.Region{}, false
	}
	return a.Union(b), true
}

// Lines returns the full-width region covering lines [start, end) of a
// screen of the given width.
func Lines(start, end, width int) core.Region {
	if end < start {
		start, end = end, start
	}
	return core.NewRegion(0, start, width, end-start)
}
