package compositor

import (
	"sync"

	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/renderer/dirty"
)

// Layer places a widget on screen. It is the widget's damage sink:
// regions passed to Refresh are in widget coordinates.
type Layer struct {
	mu      sync.RWMutex
	name    string
	z       int
	seq     int
	region  core.Region
	hidden  bool
	widget  Widget
	tracker *dirty.Tracker
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Z returns the layer depth.
func (l *Layer) Z() int { return l.z }

// Widget returns the layer's widget.
func (l *Layer) Widget() Widget { return l.widget }

// Region returns the layer's screen region.
func (l *Layer) Region() core.Region {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.region
}

// Hidden reports whether the layer is hidden.
func (l *Layer) Hidden() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hidden
}

func (l *Layer) setRegion(r core.Region) core.Region {
	l.mu.Lock()
	defer l.mu.Unlock()
	old := l.region
	l.region = r
	return old
}

// Refresh marks widget-local regions dirty. Regions are clipped to the
// layer so a widget cannot damage its neighbours.
func (l *Layer) Refresh(regions ...core.Region) {
	bounds := l.Region()
	if len(regions) == 0 {
		l.tracker.MarkRegion(bounds)
		return
	}
	for _, r := range regions {
		r = r.Translate(bounds.X, bounds.Y).Crop(bounds)
		if !r.IsEmpty() {
			l.tracker.MarkRegion(r)
		}
	}
}
