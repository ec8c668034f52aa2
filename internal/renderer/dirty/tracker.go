package dirty

import (
	"sort"
	"sync"

	"github.com/dshills/cellstorm/internal/renderer/core"
)

// Tracker tracks dirty regions and coalesces them for efficient rendering.
type Tracker struct {
	mu sync.RWMutex

	// regions contains the current dirty regions, in screen space.
	regions []core.Region

	// fullRedraw indicates the entire screen needs redrawing.
	fullRedraw bool

	// maxRegions is the number of regions above which the tracker coalesces.
	maxRegions int

	screen core.Size

	// coalesceThreshold is the fraction of the screen that triggers full redraw.
	coalesceThreshold float64
}

// NewTracker creates a new dirty region tracker.
// Negative dimensions are treated as zero.
func NewTracker(screenWidth, screenHeight int) *Tracker {
	return &Tracker{
		regions:           make([]core.Region, 0, 16),
		maxRegions:        32,
		screen:            core.Size{Width: max(screenWidth, 0), Height: max(screenHeight, 0)},
		coalesceThreshold: 0.5,
	}
}

// SetScreenSize updates the screen dimensions and forces a full redraw.
func (t *Tracker) SetScreenSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen = core.Size{Width: max(width, 0), Height: max(height, 0)}
	t.fullRedraw = true
	t.regions = t.regions[:0]
}

// ScreenSize returns the tracked screen size.
func (t *Tracker) ScreenSize() core.Size {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen
}

// MarkFullRedraw marks the entire screen as needing redraw.
func (t *Tracker) MarkFullRedraw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fullRedraw = true
	t.regions = t.regions[:0]
}

// MarkLine marks a single screen line as dirty.
func (t *Tracker) MarkLine(line int) {
	t.MarkRegion(Lines(line, line+1, t.ScreenSize().Width))
}

// MarkRegion marks a rectangular region as dirty.
func (t *Tracker) MarkRegion(region core.Region) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fullRedraw {
		return
	}
	t.addRegion(region)
}

// MarkRegions marks each region as dirty.
func (t *Tracker) MarkRegions(regions ...core.Region) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range regions {
		if t.fullRedraw {
			return
		}
		t.addRegion(r)
	}
}

// addRegion clips a region to the screen and merges it into the set.
func (t *Tracker) addRegion(region core.Region) {
	region = region.Crop(t.screen.Region())
	if region.IsEmpty() {
		return
	}

	for i := range t.regions {
		if merged, ok := Merge(t.regions[i], region); ok {
			t.regions[i] = merged
			t.coalesceRegions()
			t.checkThreshold()
			return
		}
	}

	t.regions = append(t.regions, region)

	if len(t.regions) > t.maxRegions {
		t.collapse()
	}
	t.checkThreshold()
}

// coalesceRegions merges overlapping or adjacent regions until stable.
func (t *Tracker) coalesceRegions() {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(t.regions) && !changed; i++ {
			for j := i + 1; j < len(t.regions); j++ {
				if merged, ok := Merge(t.regions[i], t.regions[j]); ok {
					t.regions[i] = merged
					t.regions = append(t.regions[:j], t.regions[j+1:]...)
					changed = true
					break
				}
			}
		}
	}
}

// collapse replaces all regions with their bounding region.
func (t *Tracker) collapse() {
	var bounds core.Region
	for _, r := range t.regions {
		bounds = bounds.Union(r)
	}
	t.regions = append(t.regions[:0], bounds)
}

func (t *Tracker) checkThreshold() {
	if t.dirtyAreaRatio() > t.coalesceThreshold {
		t.fullRedraw = true
		t.regions = t.regions[:0]
	}
}

// dirtyAreaRatio returns the ratio of dirty area to total screen area.
func (t *Tracker) dirtyAreaRatio() float64 {
	total := t.screen.Area()
	if total == 0 {
		return 0
	}
	dirty := 0
	for _, r := range t.regions {
		dirty += r.Area()
	}
	return float64(dirty) / float64(total)
}

// IsDirty returns true if any region is marked dirty.
func (t *Tracker) IsDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.fullRedraw || len(t.regions) > 0
}

// NeedsFullRedraw returns true if a full redraw is needed.
func (t *Tracker) NeedsFullRedraw() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.fullRedraw
}

// DirtyRegions returns a copy of the current dirty regions.
// If full redraw is needed, returns a single region covering the screen.
func (t *Tracker) DirtyRegions() []core.Region {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.fullRedraw {
		if t.screen.Area() == 0 {
			return []core.Region{}
		}
		return []core.Region{t.screen.Region()}
	}

	result := make([]core.Region, len(t.regions))
	copy(result, t.regions)
	return result
}

// DirtyLines returns the sorted screen lines touched by any dirty region.
func (t *Tracker) DirtyLines() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.fullRedraw {
		lines := make([]int, t.screen.Height)
		for i := range lines {
			lines[i] = i
		}
		return lines
	}

	set := make(map[int]struct{})
	for _, r := range t.regions {
		for y := r.Y; y < r.Bottom(); y++ {
			set[y] = struct{}{}
		}
	}

	lines := make([]int, 0, len(set))
	for y := range set {
		lines = append(lines, y)
	}
	sort.Ints(lines)
	return lines
}

// IsLineDirty returns true if the given screen line needs redrawing.
func (t *Tracker) IsLineDirty(line int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.fullRedraw {
		return line >= 0 && line < t.screen.Height
	}
	for _, r := range t.regions {
		if r.ContainsLine(line) {
			return true
		}
	}
	return false
}

// IsRegionDirty returns true if any part of the region needs redrawing.
func (t *Tracker) IsRegionDirty(region core.Region) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.fullRedraw {
		return region.Overlaps(t.screen.Region())
	}
	for _, r := range t.regions {
		if r.Overlaps(region) {
			return true
		}
	}
	return false
}

// Clear clears all dirty regions.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.regions = t.regions[:0]
	t.fullRedraw = false
}

// RegionCount returns the number of dirty regions.
func (t *Tracker) RegionCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.fullRedraw {
		return 1
	}
	return len(t.regions)
}

// SetMaxRegions sets the region count above which regions are collapsed.
// Values less than 1 are clamped to 1.
func (t *Tracker) SetMaxRegions(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.maxRegions = max(n, 1)
}

// SetCoalesceThreshold sets the dirty area threshold for triggering full redraw.
func (t *Tracker) SetCoalesceThreshold(threshold float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.coalesceThreshold = min(max(threshold, 0), 1)
}

// Stats returns statistics about the tracker state.
func (t *Tracker) Stats() TrackerStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return TrackerStats{
		RegionCount:   len(t.regions),
		FullRedraw:    t.fullRedraw,
		DirtyRatio:    t.dirtyAreaRatio(),
		Screen:        t.screen,
		MaxRegions:    t.maxRegions,
		CoalThreshold: t.coalesceThreshold,
	}
}

// TrackerStats contains statistics about the tracker state.
type TrackerStats struct {
	RegionCount   int
	FullRedraw    bool
	DirtyRatio    float64
	Screen        core.Size
	MaxRegions    int
	CoalThreshold float64
}
