package app

import (
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 0 {
		t.Errorf("expected 0 frame count, got %d", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != 0 {
		t.Errorf("expected 0 min frame time (sentinel handled), got %d", snapshot.MinFrameTimeNs)
	}
	if snapshot.DropRate() != 0 {
		t.Errorf("expected 0 drop rate, got %v", snapshot.DropRate())
	}
}

func TestMetrics_RecordFrame(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordFrame(6 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 3 {
		t.Errorf("expected 3 frames, got %d", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != int64(6*time.Millisecond) {
		t.Errorf("expected min 6ms, got %d ns", snapshot.MinFrameTimeNs)
	}
	if snapshot.MaxFrameTimeNs != int64(20*time.Millisecond) {
		t.Errorf("expected max 20ms, got %d ns", snapshot.MaxFrameTimeNs)
	}
	if snapshot.LastFrameNs != int64(6*time.Millisecond) {
		t.Errorf("expected last 6ms, got %d ns", snapshot.LastFrameNs)
	}
	if snapshot.AvgFrameTimeNs != int64(12*time.Millisecond) {
		t.Errorf("expected avg 12ms, got %d ns", snapshot.AvgFrameTimeNs)
	}
}

func TestMetrics_DropRate(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(time.Millisecond)
	m.RecordFrame(time.Millisecond)
	m.RecordFrame(time.Millisecond)
	m.RecordDroppedFrame()

	snapshot := m.Snapshot()
	if snapshot.DroppedFrames != 1 {
		t.Errorf("expected 1 dropped frame, got %d", snapshot.DroppedFrames)
	}
	if got := snapshot.DropRate(); got != 25 {
		t.Errorf("DropRate() = %v, want 25", got)
	}
}

func TestMetrics_RecordInput(t *testing.T) {
	m := NewMetrics()

	m.RecordInput(1 * time.Millisecond)
	m.RecordInput(2 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.InputCount != 2 {
		t.Errorf("expected 2 inputs, got %d", snapshot.InputCount)
	}
	expectedAvg := int64(1500000) // 1.5ms in nanoseconds
	if snapshot.AvgInputTimeNs != expectedAvg {
		t.Errorf("expected avg input time %d ns, got %d ns", expectedAvg, snapshot.AvgInputTimeNs)
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(5 * time.Millisecond)
	if got := timer.Elapsed(); got < 5*time.Millisecond {
		t.Errorf("Elapsed() = %v, want >= 5ms", got)
	}
}
