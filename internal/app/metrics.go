package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks frame and input timings of the event loop.
type Metrics struct {
	// Frame timing
	frameCount    atomic.Uint64
	frameTotalNs  atomic.Int64
	frameMinNs    atomic.Int64
	frameMaxNs    atomic.Int64
	lastFrameNs   atomic.Int64
	droppedFrames atomic.Uint64

	// Input handling
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the time taken to produce a painted frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordDroppedFrame records damage that waited for the frame limiter.
func (m *Metrics) RecordDroppedFrame() {
	m.droppedFrames.Add(1)
}

// RecordInput records input processing timing.
func (m *Metrics) RecordInput(duration time.Duration) {
	m.inputCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	inputCount := m.inputCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	var avgInputNs int64
	if inputCount > 0 {
		avgInputNs = m.inputTotalNs.Load() / int64(inputCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		DroppedFrames:  m.droppedFrames.Load(),
		InputCount:     inputCount,
		AvgInputTimeNs: avgInputNs,
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	DroppedFrames  uint64
	InputCount     uint64
	AvgInputTimeNs int64
}

// DropRate returns the percentage of frames held back by the limiter.
func (s MetricsSnapshot) DropRate() float64 {
	total := s.FrameCount + s.DroppedFrames
	if total == 0 {
		return 0
	}
	return float64(s.DroppedFrames) / float64(total) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// logStats writes loop, pump and cache statistics at info level.
func (app *Application) logStats() {
	s := app.metrics.Snapshot()
	log := app.logger.WithComponent("stats")
	log.Info("uptime=%s frames=%d avg_frame=%s max_frame=%s dropped=%.1f%% inputs=%d avg_input=%s",
		s.Uptime.Round(time.Millisecond), s.FrameCount,
		time.Duration(s.AvgFrameTimeNs), time.Duration(s.MaxFrameTimeNs),
		s.DropRate(), s.InputCount, time.Duration(s.AvgInputTimeNs))

	ps := app.pump.Stats()
	log.Info("pump posted=%d delivered=%d failed=%d idle=%d", ps.Posted, ps.Delivered, ps.Failed, ps.IdleRuns)

	cs := app.compositor.Stats()
	log.Info("compositor frames=%d lines=%d cells=%d", cs.Frames, cs.LinesRendered, cs.CellsWritten)

	for _, c := range app.table.CacheStats() {
		log.Info("cache %s size=%d/%d hits=%d misses=%d evictions=%d hit_rate=%.2f",
			c.Name, c.Size, c.MaxSize, c.Hits, c.Misses, c.Evictions, c.HitRate)
	}
}
