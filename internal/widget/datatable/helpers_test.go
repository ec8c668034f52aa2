package datatable

import (
	"strings"
	"testing"

	"github.com/dshills/cellstorm/internal/event"
	"github.com/dshills/cellstorm/internal/renderer/core"
)

type recordingPoster struct {
	msgs []event.Message
}

func (p *recordingPoster) Post(msg event.Message) {
	p.msgs = append(p.msgs, msg)
}

func (p *recordingPoster) reset() { p.msgs = nil }

type recordingSink struct {
	full    int
	regions []core.Region
}

func (s *recordingSink) Refresh(regions ...core.Region) {
	if len(regions) == 0 {
		s.full++
	}
	s.regions = append(s.regions, regions...)
}

func (s *recordingSink) reset() {
	s.full = 0
	s.regions = nil
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, format)
}

func newTestTable(t *testing.T, width, height int) (*Table, *recordingPoster, *recordingSink) {
	t.Helper()
	tbl := New(width, height, DefaultOptions())
	tbl.Viewport().SetSmoothScroll(false)
	poster := &recordingPoster{}
	sink := &recordingSink{}
	tbl.SetPoster(poster)
	tbl.SetDamageSink(sink)
	return tbl, poster, sink
}

// newABTable returns a 20x5 table with columns "A" and "B" holding the
// rows ("a", "bb") and ("c", "dd"), flushed.
func newABTable(t *testing.T) (*Table, *recordingPoster, *recordingSink) {
	t.Helper()
	tbl, poster, sink := newTestTable(t, 20, 5)
	tbl.AddColumns("A", "B")
	if _, err := tbl.AddRowWithOptions(RowOptions{Key: "r0"}, "a", "bb"); err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	if _, err := tbl.AddRowWithOptions(RowOptions{Key: "r1"}, "c", "dd"); err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	tbl.OnIdle()
	poster.reset()
	sink.reset()
	return tbl, poster, sink
}

func lineText(tbl *Table, y int) string {
	return strings.TrimRight(tbl.RenderLine(y).String(), " ")
}
