package backend

import (
	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/renderer/strip"
)

// ScreenBuffer provides double-buffered rendering with change tracking.
// It maintains two buffers: front (displayed) and back (drawing).
// On flush, only cells that differ from the front buffer reach the backend.
type ScreenBuffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	fullRedraw    bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{
		width:      max(width, 0),
		height:     max(height, 0),
		fullRedraw: true,
	}
	sb.allocate()
	return sb
}

func (sb *ScreenBuffer) allocate() {
	sb.front = make([][]core.Cell, sb.height)
	sb.back = make([][]core.Cell, sb.height)
	for y := 0; y < sb.height; y++ {
		sb.front[y] = make([]core.Cell, sb.width)
		sb.back[y] = make([]core.Cell, sb.width)
		for x := 0; x < sb.width; x++ {
			sb.front[y][x] = core.EmptyCell()
			sb.back[y][x] = core.EmptyCell()
		}
	}
}

// Resize resizes the buffer, preserving content where possible.
func (sb *ScreenBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == sb.width && height == sb.height {
		return
	}

	oldBack := sb.back
	copyHeight := min(sb.height, height)
	copyWidth := min(sb.width, width)

	sb.width = width
	sb.height = height
	sb.allocate()

	for y := 0; y < copyHeight; y++ {
		copy(sb.back[y][:copyWidth], oldBack[y][:copyWidth])
	}
	sb.fullRedraw = true
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// SetCell sets a cell in the back buffer.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return
	}
	sb.back[y][x] = cell
}

// GetCell returns a cell from the back buffer.
func (sb *ScreenBuffer) GetCell(x, y int) core.Cell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.back[y][x]
}

// GetFrontCell returns a cell from the front buffer (currently displayed).
func (sb *ScreenBuffer) GetFrontCell(x, y int) core.Cell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.front[y][x]
}

// Fill fills a region of the back buffer with the given cell.
func (sb *ScreenBuffer) Fill(region core.Region, cell core.Cell) {
	region = region.Crop(core.Region{Width: sb.width, Height: sb.height})
	for y := region.Y; y < region.Bottom(); y++ {
		for x := region.X; x < region.Right(); x++ {
			sb.back[y][x] = cell
		}
	}
}

// Clear clears the back buffer with empty cells.
func (sb *ScreenBuffer) Clear() {
	sb.Fill(core.Region{Width: sb.width, Height: sb.height}, core.EmptyCell())
}

// SetStrip writes a strip into the back buffer starting at (x, y).
// Cells past the right edge are dropped.
func (sb *ScreenBuffer) SetStrip(x, y int, s strip.Strip) {
	if y < 0 || y >= sb.height {
		return
	}
	for i, cell := range s.Cells() {
		col := x + i
		if col >= sb.width {
			break
		}
		if col >= 0 {
			sb.back[y][col] = cell
		}
	}
}

// DiffChange represents a cell change for synchronization.
type DiffChange struct {
	X, Y int
	Cell core.Cell
}

// ComputeDiff returns the changes needed to update the display.
// Returns nil if no changes are needed.
func (sb *ScreenBuffer) ComputeDiff() []DiffChange {
	var changes []DiffChange
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.fullRedraw || sb.back[y][x] != sb.front[y][x] {
				changes = append(changes, DiffChange{X: x, Y: y, Cell: sb.back[y][x]})
			}
		}
	}
	return changes
}

// Sync copies the back buffer to the front buffer.
func (sb *ScreenBuffer) Sync() {
	for y := 0; y < sb.height; y++ {
		copy(sb.front[y], sb.back[y])
	}
	sb.fullRedraw = false
}

// Flush sends changed cells to b, shows them and syncs the buffers.
// Returns the number of cells written.
func (sb *ScreenBuffer) Flush(b Backend) int {
	changes := sb.ComputeDiff()
	for _, ch := range changes {
		b.SetCell(ch.X, ch.Y, ch.Cell)
	}
	sb.Sync()
	b.Show()
	return len(changes)
}

// MarkFullRedraw forces a complete redraw on next flush.
func (sb *ScreenBuffer) MarkFullRedraw() {
	sb.fullRedraw = true
}

// IsDirty returns true if there are pending changes.
func (sb *ScreenBuffer) IsDirty() bool {
	if sb.fullRedraw {
		return true
	}
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.back[y][x] != sb.front[y][x] {
				return true
			}
		}
	}
	return false
}
