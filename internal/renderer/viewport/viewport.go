// Package viewport tracks the visible window onto a widget's virtual content
// and drives scroll animation.
//
// Scroll requests set a target offset. With smooth scrolling the offset
// approaches the target on each Update; a later request simply replaces the
// target, so an in-flight animation is abandoned without side effects.
package viewport

import (
	"math"
	"sync"

	"github.com/dshills/cellstorm/internal/renderer/core"
)

// Viewport represents the visible portion of a widget's virtual content.
type Viewport struct {
	mu sync.RWMutex

	// Current scroll position
	offset core.Offset

	// Size of the visible window in cells
	size core.Size

	// Size of the scrollable content
	virtual core.Size

	// Scroll animation state
	target       core.Offset
	animating    bool
	smoothScroll bool

	// requests counts scroll requests; each one supersedes the last
	requests uint64
}

// NewViewport creates a viewport with the given window size.
// Negative dimensions are treated as zero.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		size:         core.Size{Width: max(width, 0), Height: max(height, 0)},
		smoothScroll: true,
	}
}

// Size returns the visible window size.
func (v *Viewport) Size() core.Size {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.size
}

// Resize updates the window size and re-clamps the scroll position.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.size = core.Size{Width: max(width, 0), Height: max(height, 0)}
	v.clamp()
}

// VirtualSize returns the size of the scrollable content.
func (v *Viewport) VirtualSize() core.Size {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.virtual
}

// SetVirtualSize sets the content size and re-clamps the scroll position.
func (v *Viewport) SetVirtualSize(size core.Size) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.virtual = core.Size{Width: max(size.Width, 0), Height: max(size.Height, 0)}
	v.clamp()
}

// ScrollOffset returns the current scroll position.
func (v *Viewport) ScrollOffset() core.Offset {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset
}

// Target returns the offset the viewport is moving toward.
func (v *Viewport) Target() core.Offset {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.target
}

// MaxScroll returns the largest valid scroll offset.
func (v *Viewport) MaxScroll() core.Offset {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.maxScroll()
}

func (v *Viewport) maxScroll() core.Offset {
	return core.Offset{
		X: max(v.virtual.Width-v.size.Width, 0),
		Y: max(v.virtual.Height-v.size.Height, 0),
	}
}

// WindowRegion returns the visible region in content coordinates.
func (v *Viewport) WindowRegion() core.Region {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return core.Region{X: v.offset.X, Y: v.offset.Y, Width: v.size.Width, Height: v.size.Height}
}

// SetSmoothScroll enables or disables smooth scrolling.
func (v *Viewport) SetSmoothScroll(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.smoothScroll = enabled
}

// SmoothScroll returns whether smooth scrolling is enabled.
func (v *Viewport) SmoothScroll() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.smoothScroll
}

// IsAnimating returns true if a scroll animation is in progress.
func (v *Viewport) IsAnimating() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.animating
}

// Requests returns the number of scroll requests accepted so far.
func (v *Viewport) Requests() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.requests
}

// clampOffset limits an offset to the scrollable range.
func (v *Viewport) clampOffset(o core.Offset) core.Offset {
	m := v.maxScroll()
	return core.Offset{
		X: min(max(o.X, 0), m.X),
		Y: min(max(o.Y, 0), m.Y),
	}
}

func (v *Viewport) clamp() {
	v.offset = v.clampOffset(v.offset)
	v.target = v.clampOffset(v.target)
	if v.offset == v.target {
		v.animating = false
	}
}

// scrollTo records a new target, replacing any in-flight animation.
// Returns true if the target differs from the current position.
func (v *Viewport) scrollTo(target core.Offset, smooth bool) bool {
	target = v.clampOffset(target)
	v.requests++
	v.target = target

	if target == v.offset {
		v.animating = false
		return false
	}
	if smooth && v.smoothScroll {
		v.animating = true
	} else {
		v.offset = target
		v.animating = false
	}
	return true
}

// ScrollTo scrolls to the given content offset.
func (v *Viewport) ScrollTo(x, y int, smooth bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollTo(core.Offset{X: x, Y: y}, smooth)
}

// ScrollBy scrolls relative to the current target.
func (v *Viewport) ScrollBy(dx, dy int, smooth bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollTo(core.Offset{X: v.target.X + dx, Y: v.target.Y + dy}, smooth)
}

// ScrollToRegion scrolls the minimum distance needed to bring region fully
// into the window, keeping spacing clear around it. Returns true if a
// scroll was needed.
func (v *Viewport) ScrollToRegion(region core.Region, spacing core.Spacing, smooth bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	window := core.Region{X: v.target.X, Y: v.target.Y, Width: v.size.Width, Height: v.size.Height}
	window = window.Shrink(spacing)
	delta := ScrollDelta(window, region)
	if delta == (core.Offset{}) {
		return false
	}
	return v.scrollTo(core.Offset{X: v.target.X + delta.X, Y: v.target.Y + delta.Y}, smooth)
}

// ScrollDelta returns the smallest offset that moves window so it contains
// region. Axes on which region already fits produce zero.
func ScrollDelta(window, region core.Region) core.Offset {
	return core.Offset{
		X: axisDelta(window.X, window.Right(), region.X, region.Right()),
		Y: axisDelta(window.Y, window.Bottom(), region.Y, region.Bottom()),
	}
}

func axisDelta(winStart, winEnd, start, end int) int {
	if start >= winStart && end <= winEnd {
		return 0
	}
	toStart := start - winStart
	toEnd := end - winEnd
	if abs(toStart) <= abs(toEnd) {
		return toStart
	}
	return toEnd
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Update advances scroll animation by dt seconds.
// Returns true if the viewport moved.
func (v *Viewport) Update(dt float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.animating {
		return false
	}

	before := v.offset
	v.offset.X = step(v.offset.X, v.target.X, dt)
	v.offset.Y = step(v.offset.Y, v.target.Y, dt)

	if v.offset == v.target {
		v.animating = false
	}
	return v.offset != before
}

// step moves pos toward target using exponential decay, always moving at
// least one cell so animations converge.
func step(pos, target int, dt float64) int {
	diff := float64(target - pos)
	if diff == 0 {
		return pos
	}
	factor := 1.0 - math.Pow(0.1, dt*10)
	move := diff * factor
	if math.Abs(move) < 1 {
		move = math.Copysign(1, diff)
	}
	if math.Abs(move) >= math.Abs(diff) {
		return target
	}
	return pos + int(move)
}

// StopAnimation stops any ongoing scroll animation at the current position.
func (v *Viewport) StopAnimation() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.animating = false
	v.target = v.offset
}

// PageUp scrolls up by one window height.
func (v *Viewport) PageUp(smooth bool) bool {
	return v.ScrollBy(0, -v.Size().Height, smooth)
}

// PageDown scrolls down by one window height.
func (v *Viewport) PageDown(smooth bool) bool {
	return v.ScrollBy(0, v.Size().Height, smooth)
}

// ScrollHome scrolls to the top left of the content.
func (v *Viewport) ScrollHome(smooth bool) bool {
	return v.ScrollTo(0, 0, smooth)
}

// ScrollEnd scrolls to the bottom of the content.
func (v *Viewport) ScrollEnd(smooth bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollTo(core.Offset{X: v.target.X, Y: v.maxScroll().Y}, smooth)
}
