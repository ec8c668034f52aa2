package dirty

import (
	"sync"
	"testing"

	"github.com/dshills/cellstorm/internal/renderer/core"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(80, 24)

	if got := tracker.ScreenSize(); got != (core.Size{Width: 80, Height: 24}) {
		t.Errorf("ScreenSize = %v, want 80x24", got)
	}
	if tracker.IsDirty() {
		t.Error("new tracker should not be dirty")
	}

	neg := NewTracker(-1, -5)
	if got := neg.ScreenSize(); got != (core.Size{}) {
		t.Errorf("negative size should clamp to zero, got %v", got)
	}
}

func TestTrackerSetScreenSize(t *testing.T) {
	tracker := NewTracker(80, 24)
	tracker.SetScreenSize(120, 40)

	if !tracker.NeedsFullRedraw() {
		t.Error("screen resize should trigger full redraw")
	}
	regions := tracker.DirtyRegions()
	if len(regions) != 1 || regions[0] != (core.Region{Width: 120, Height: 40}) {
		t.Errorf("DirtyRegions = %v, want full screen", regions)
	}
}

func TestTrackerMarkRegionClipsToScreen(t *testing.T) {
	tracker := NewTracker(80, 24)

	tracker.MarkRegion(core.Region{X: 75, Y: 22, Width: 10, Height: 10})

	regions := tracker.DirtyRegions()
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	want := core.Region{X: 75, Y: 22, Width: 5, Height: 2}
	if regions[0] != want {
		t.Errorf("region = %v, want %v", regions[0], want)
	}
}

func TestTrackerIgnoresOffscreen(t *testing.T) {
	tracker := NewTracker(80, 24)

	tracker.MarkRegion(core.Region{X: 0, Y: -5, Width: 10, Height: 2})
	tracker.MarkRegion(core.Region{X: 100, Y: 0, Width: 10, Height: 2})

	if tracker.IsDirty() {
		t.Errorf("offscreen regions should be dropped, got %v", tracker.DirtyRegions())
	}
}

func TestTrackerCoalesces(t *testing.T) {
	tracker := NewTracker(80, 24)

	tracker.MarkRegion(core.Region{X: 0, Y: 1, Width: 10, Height: 1})
	tracker.MarkRegion(core.Region{X: 20, Y: 5, Width: 4, Height: 1})
	tracker.MarkRegion(core.Region{X: 0, Y: 2, Width: 10, Height: 1})

	if got := tracker.RegionCount(); got != 2 {
		t.Fatalf("RegionCount = %d, want 2", got)
	}

	tracker.MarkRegion(core.Region{X: 5, Y: 1, Width: 17, Height: 5})
	if got := tracker.RegionCount(); got != 1 {
		t.Errorf("RegionCount after bridging region = %d, want 1", got)
	}
}

func TestTrackerFullRedrawThreshold(t *testing.T) {
	tracker := NewTracker(10, 10)

	tracker.MarkRegion(core.Region{X: 0, Y: 0, Width: 10, Height: 4})
	if tracker.NeedsFullRedraw() {
		t.Fatal("40% dirty should not force a full redraw")
	}

	tracker.MarkRegion(core.Region{X: 0, Y: 4, Width: 10, Height: 2})
	if !tracker.NeedsFullRedraw() {
		t.Error("60% dirty should force a full redraw")
	}
}

func TestTrackerMaxRegionsCollapses(t *testing.T) {
	tracker := NewTracker(100, 100)
	tracker.SetMaxRegions(2)

	tracker.MarkRegion(core.Region{X: 0, Y: 0, Width: 1, Height: 1})
	tracker.MarkRegion(core.Region{X: 10, Y: 10, Width: 1, Height: 1})
	tracker.MarkRegion(core.Region{X: 20, Y: 20, Width: 1, Height: 1})

	regions := tracker.DirtyRegions()
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	want := core.Region{X: 0, Y: 0, Width: 21, Height: 21}
	if regions[0] != want {
		t.Errorf("collapsed region = %v, want %v", regions[0], want)
	}
}

func TestTrackerDirtyLines(t *testing.T) {
	tracker := NewTracker(80, 24)

	tracker.MarkLine(7)
	tracker.MarkRegion(core.Region{X: 3, Y: 2, Width: 2, Height: 2})

	got := tracker.DirtyLines()
	want := []int{2, 3, 7}
	if len(got) != len(want) {
		t.Fatalf("DirtyLines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DirtyLines[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if !tracker.IsLineDirty(3) || tracker.IsLineDirty(4) {
		t.Error("IsLineDirty mismatch")
	}
	if !tracker.IsRegionDirty(core.Region{X: 0, Y: 7, Width: 1, Height: 1}) {
		t.Error("IsRegionDirty should report overlap with line 7")
	}
}

func TestTrackerClear(t *testing.T) {
	tracker := NewTracker(80, 24)
	tracker.MarkFullRedraw()
	tracker.MarkLine(3)

	tracker.Clear()

	if tracker.IsDirty() || tracker.NeedsFullRedraw() {
		t.Error("Clear should reset all state")
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tracker := NewTracker(200, 200)
	tracker.SetCoalesceThreshold(1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tracker.MarkRegion(core.Region{X: i * 20, Y: j, Width: 5, Height: 1})
				_ = tracker.DirtyLines()
			}
		}(i)
	}
	wg.Wait()

	if !tracker.IsDirty() {
		t.Error("tracker should be dirty after concurrent marks")
	}
}
