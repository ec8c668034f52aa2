// Package widget provides the scrollable widget base shared by the
// cellstorm widgets.
//
// A ScrollView owns a viewport onto virtual content and forwards damage to
// a DamageSink, normally the compositor layer the widget is mounted on.
// Widgets are driven from the UI loop and are not safe for concurrent use.
package widget

import (
	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/renderer/viewport"
)

// DamageSink receives regions, in widget coordinates, that need repainting.
// Refresh with no regions damages the whole widget.
type DamageSink interface {
	Refresh(regions ...core.Region)
}

// ScrollView is a widget with a scrollable virtual canvas.
type ScrollView struct {
	viewport *viewport.Viewport
	sink     DamageSink
}

// NewScrollView creates a scroll view with the given window size.
func NewScrollView(width, height int) *ScrollView {
	return &ScrollView{viewport: viewport.NewViewport(width, height)}
}

// SetDamageSink sets where damage is reported. A nil sink discards damage.
func (s *ScrollView) SetDamageSink(sink DamageSink) {
	s.sink = sink
}

// Viewport returns the underlying viewport.
func (s *ScrollView) Viewport() *viewport.Viewport {
	return s.viewport
}

// Size returns the visible window size.
func (s *ScrollView) Size() core.Size {
	return s.viewport.Size()
}

// Resize changes the window size and repaints everything.
func (s *ScrollView) Resize(width, height int) {
	s.viewport.Resize(width, height)
	s.Refresh()
}

// ScrollOffset returns the current scroll position.
func (s *ScrollView) ScrollOffset() core.Offset {
	return s.viewport.ScrollOffset()
}

// VirtualSize returns the size of the scrollable content.
func (s *ScrollView) VirtualSize() core.Size {
	return s.viewport.VirtualSize()
}

// SetVirtualSize sets the size of the scrollable content. If this moves
// the scroll position the whole window is damaged.
func (s *ScrollView) SetVirtualSize(size core.Size) {
	before := s.viewport.ScrollOffset()
	s.viewport.SetVirtualSize(size)
	if s.viewport.ScrollOffset() != before {
		s.Refresh()
	}
}

// WindowRegion returns the visible part of the virtual canvas.
func (s *ScrollView) WindowRegion() core.Region {
	return s.viewport.WindowRegion()
}

// Refresh reports damage to the sink.
func (s *ScrollView) Refresh(regions ...core.Region) {
	if s.sink == nil {
		return
	}
	s.sink.Refresh(regions...)
}

// ScrollTo scrolls to an absolute content offset.
func (s *ScrollView) ScrollTo(x, y int, smooth bool) bool {
	return s.scrolled(s.viewport.ScrollTo(x, y, smooth))
}

// ScrollBy scrolls relative to the current scroll target.
func (s *ScrollView) ScrollBy(dx, dy int, smooth bool) bool {
	return s.scrolled(s.viewport.ScrollBy(dx, dy, smooth))
}

// ScrollToRegion scrolls the minimum distance that reveals region with
// spacing kept clear around it. A newer request replaces one still
// animating.
func (s *ScrollView) ScrollToRegion(region core.Region, spacing core.Spacing, smooth bool) bool {
	return s.scrolled(s.viewport.ScrollToRegion(region, spacing, smooth))
}

// PageUp scrolls up one window.
func (s *ScrollView) PageUp(smooth bool) bool {
	return s.scrolled(s.viewport.PageUp(smooth))
}

// PageDown scrolls down one window.
func (s *ScrollView) PageDown(smooth bool) bool {
	return s.scrolled(s.viewport.PageDown(smooth))
}

// ScrollHome scrolls to the origin.
func (s *ScrollView) ScrollHome(smooth bool) bool {
	return s.scrolled(s.viewport.ScrollHome(smooth))
}

// ScrollEnd scrolls to the last line.
func (s *ScrollView) ScrollEnd(smooth bool) bool {
	return s.scrolled(s.viewport.ScrollEnd(smooth))
}

func (s *ScrollView) scrolled(changed bool) bool {
	if changed {
		s.Refresh()
	}
	return changed
}

// Update advances smooth scrolling by dt seconds.
// Returns true if the scroll position moved.
func (s *ScrollView) Update(dt float64) bool {
	return s.scrolled(s.viewport.Update(dt))
}
