// Package compositor assembles z-ordered widget layers into terminal cells.
//
// Each layer owns a screen region and a widget that renders one strip per
// line. Widgets report damage in their own coordinates through the layer;
// on each frame the compositor re-renders only the damaged spans, paints
// layers bottom to top and lets the screen buffer diff the result against
// what the terminal already shows.
package compositor

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/cellstorm/internal/renderer/backend"
	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/renderer/dirty"
	"github.com/dshills/cellstorm/internal/renderer/strip"
)

// Widget renders lines of content in its own coordinate space.
type Widget interface {
	// RenderLine returns the strip for widget line y.
	RenderLine(y int) strip.Strip
}

// Animator is implemented by widgets that animate, such as smooth scrolling.
type Animator interface {
	// Update advances animations by dt seconds and reports whether
	// the widget needs repainting.
	Update(dt float64) bool
}

// Logger receives debug output.
type Logger interface {
	Debugf(format string, args ...any)
}

// Options configures the compositor.
type Options struct {
	// MaxFPS bounds Render calls. Zero disables frame limiting.
	MaxFPS int

	// Background is the style of cells no layer covers.
	Background core.Style
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		MaxFPS:     60,
		Background: core.DefaultStyle(),
	}
}

// Compositor paints layers onto a backend.
type Compositor struct {
	mu sync.Mutex

	backend backend.Backend
	buffer  *backend.ScreenBuffer
	tracker *dirty.Tracker
	layers  []*Layer
	nextSeq int
	opts    Options
	logger  Logger

	// Frame timing
	lastFrame    time.Time
	minFrameTime time.Duration

	// Stats
	frames        uint64
	linesRendered uint64
	cellsWritten  uint64
}

// New creates a compositor drawing to b.
func New(b backend.Backend, opts Options) *Compositor {
	width, height := b.Size()
	c := &Compositor{
		backend: b,
		buffer:  backend.NewScreenBuffer(width, height),
		tracker: dirty.NewTracker(width, height),
		opts:    opts,
	}
	if opts.MaxFPS > 0 {
		c.minFrameTime = time.Second / time.Duration(opts.MaxFPS)
	}
	c.tracker.MarkFullRedraw()
	return c
}

// SetLogger sets the debug logger.
func (c *Compositor) SetLogger(l Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

// Tracker returns the damage tracker.
func (c *Compositor) Tracker() *dirty.Tracker {
	return c.tracker
}

// Resize updates the screen size and forces a full repaint.
func (c *Compositor) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buffer.Resize(width, height)
	c.tracker.SetScreenSize(width, height)
}

// AddLayer adds a widget covering region at depth z. Higher z paints on
// top; equal z paints in insertion order.
func (c *Compositor) AddLayer(name string, z int, region core.Region, w Widget) *Layer {
	c.mu.Lock()
	defer c.mu.Unlock()

	l := &Layer{name: name, z: z, region: region, widget: w, seq: c.nextSeq, tracker: c.tracker}
	c.nextSeq++
	c.layers = append(c.layers, l)
	c.sortLayers()
	c.tracker.MarkRegion(region)
	return l
}

// RemoveLayer removes the named layer. Returns false if not found.
func (c *Compositor) RemoveLayer(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.layers {
		if l.name == name {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			c.tracker.MarkRegion(l.Region())
			return true
		}
	}
	return false
}

// Layer returns the named layer, or nil.
func (c *Compositor) Layer(name string) *Layer {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.layers {
		if l.name == name {
			return l
		}
	}
	return nil
}

// MoveLayer changes a layer's region, damaging both old and new areas.
func (c *Compositor) MoveLayer(name string, region core.Region) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.layers {
		if l.name == name {
			old := l.setRegion(region)
			c.tracker.MarkRegions(old, region)
			return true
		}
	}
	return false
}

// SetLayerHidden shows or hides a layer.
func (c *Compositor) SetLayerHidden(name string, hidden bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.layers {
		if l.name == name {
			l.mu.Lock()
			l.hidden = hidden
			l.mu.Unlock()
			c.tracker.MarkRegion(l.Region())
			return true
		}
	}
	return false
}

func (c *Compositor) sortLayers() {
	sort.SliceStable(c.layers, func(i, j int) bool {
		if c.layers[i].z != c.layers[j].z {
			return c.layers[i].z < c.layers[j].z
		}
		return c.layers[i].seq < c.layers[j].seq
	})
}

// LayerAt returns the topmost visible layer containing the screen cell
// (x, y) and the cell position in that layer's coordinates.
func (c *Compositor) LayerAt(x, y int) (*Layer, core.Offset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		r := l.Region()
		if l.Hidden() || !r.Contains(x, y) {
			continue
		}
		return l, core.Offset{X: x - r.X, Y: y - r.Y}, true
	}
	return nil, core.Offset{}, false
}

// StyleAt returns the style of the cell last painted at (x, y), including
// widget metadata.
func (c *Compositor) StyleAt(x, y int) core.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.GetFrontCell(x, y).Style
}

// Update advances widget animations, damaging layers that moved.
// Returns true if anything needs repainting.
func (c *Compositor) Update(dt float64) bool {
	c.mu.Lock()
	layers := append([]*Layer(nil), c.layers...)
	c.mu.Unlock()

	for _, l := range layers {
		if a, ok := l.widget.(Animator); ok && a.Update(dt) {
			c.tracker.MarkRegion(l.Region())
		}
	}
	return c.tracker.IsDirty()
}

// NeedsRedraw returns true if any damage is pending.
func (c *Compositor) NeedsRedraw() bool {
	return c.tracker.IsDirty()
}

// Render paints pending damage, respecting the frame rate limit.
// Returns false if the frame was skipped.
func (c *Compositor) Render() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.minFrameTime > 0 && now.Sub(c.lastFrame) < c.minFrameTime {
		return false
	}
	if !c.tracker.IsDirty() {
		return false
	}
	c.render()
	c.lastFrame = now
	return true
}

// RenderNow paints pending damage immediately.
// Returns the number of cells sent to the backend.
func (c *Compositor) RenderNow() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.render()
	c.lastFrame = time.Now()
	return n
}

// render paints dirty regions and flushes them (must hold lock).
func (c *Compositor) render() int {
	full := c.tracker.NeedsFullRedraw()
	if full {
		c.buffer.MarkFullRedraw()
	}

	for _, region := range c.tracker.DirtyRegions() {
		c.paint(region)
	}
	c.tracker.Clear()

	n := c.buffer.Flush(c.backend)
	c.frames++
	c.cellsWritten += uint64(n)

	if c.logger != nil {
		c.logger.Debugf("frame %d: full=%v cells=%d", c.frames, full, n)
	}
	return n
}

// paint repaints one screen region from the layers beneath it.
func (c *Compositor) paint(region core.Region) {
	c.buffer.Fill(region, core.BlankCell(c.opts.Background))

	for _, l := range c.layers {
		lr := l.Region()
		if l.Hidden() {
			continue
		}
		span := lr.Crop(region)
		if span.IsEmpty() {
			continue
		}
		for y := span.Y; y < span.Bottom(); y++ {
			line := l.widget.RenderLine(y-lr.Y).AdjustCellLength(lr.Width, c.opts.Background)
			part := line.Crop(span.X-lr.X, span.Right()-lr.X)
			c.buffer.SetStrip(span.X, y, part)
			c.linesRendered++
		}
	}
}

// Stats returns rendering statistics.
func (c *Compositor) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Frames:        c.frames,
		LinesRendered: c.linesRendered,
		CellsWritten:  c.cellsWritten,
		Layers:        len(c.layers),
	}
}

// Stats holds compositor statistics.
type Stats struct {
	Frames        uint64
	LinesRendered uint64
	CellsWritten  uint64
	Layers        int
}
