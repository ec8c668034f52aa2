package datatable

import (
	"strings"
	"testing"

	"github.com/dshills/cellstorm/internal/renderer/core"
)

func TestRenderLines(t *testing.T) {
	tbl, _, _ := newABTable(t)

	tests := []struct {
		y    int
		want string
	}{
		{0, " A  B"},
		{1, " a  bb"},
		{2, " c  dd"},
		{3, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		line := tbl.RenderLine(tt.y)
		if line.CellLength() != 20 {
			t.Errorf("line %d length = %d, want 20", tt.y, line.CellLength())
		}
		if got := strings.TrimRight(line.String(), " "); got != tt.want {
			t.Errorf("line %d = %q, want %q", tt.y, got, tt.want)
		}
	}
}

func TestRenderStampsCellMeta(t *testing.T) {
	tbl, _, _ := newABTable(t)

	header := tbl.RenderLine(0).Cells()
	if got, want := header[0].Style.Meta, (core.Meta{Row: -1, Column: 0, HasCell: true}); got != want {
		t.Errorf("header meta = %+v, want %+v", got, want)
	}

	cells := tbl.RenderLine(1).Cells()
	if got, want := cells[4].Style.Meta, (core.Meta{Row: 0, Column: 1, HasCell: true}); got != want {
		t.Errorf("cell meta = %+v, want %+v", got, want)
	}
	if cells[10].Style.Meta.HasCell {
		t.Error("padding past the last column should carry no cell")
	}
}

func TestRenderCursorStyle(t *testing.T) {
	tbl, _, _ := newABTable(t)
	styles := tbl.Styles()

	cells := tbl.RenderLine(1).Cells()
	if cells[1].Style.Background != styles.Cursor.Background {
		t.Errorf("cursor cell background = %v, want %v", cells[1].Style.Background, styles.Cursor.Background)
	}
	if cells[4].Style.Background == styles.Cursor.Background {
		t.Error("non-cursor cell should not use the cursor background")
	}

	tbl.SetShowCursor(false)
	cells = tbl.RenderLine(1).Cells()
	if cells[1].Style.Background == styles.Cursor.Background {
		t.Error("hidden cursor should not be painted")
	}
}

func TestRenderLineIsCached(t *testing.T) {
	tbl, _, _ := newABTable(t)

	first := tbl.RenderLine(1)
	hits := tbl.CacheStats()[2].Hits
	second := tbl.RenderLine(1)

	if !first.Equals(second) {
		t.Error("repeated render should produce an identical strip")
	}
	if got := tbl.CacheStats()[2].Hits; got != hits+1 {
		t.Errorf("line cache hits = %d, want %d", got, hits+1)
	}
}

func TestRenderLineHitSkipsInnerCaches(t *testing.T) {
	tbl, _, _ := newABTable(t)

	tbl.RenderLine(1)
	before := tbl.CacheStats()
	tbl.RenderLine(1)
	after := tbl.CacheStats()

	for i, name := range []string{"cell", "row"} {
		if after[i].Hits != before[i].Hits || after[i].Misses != before[i].Misses {
			t.Errorf("%s cache hits/misses = %d/%d, want %d/%d", name,
				after[i].Hits, after[i].Misses, before[i].Hits, before[i].Misses)
		}
	}
	if after[2].Hits != before[2].Hits+1 {
		t.Errorf("line cache hits = %d, want %d", after[2].Hits, before[2].Hits+1)
	}
}

func TestRenderReflectsUpdates(t *testing.T) {
	tbl, _, _ := newABTable(t)
	column := tbl.OrderedColumns()[0].Key

	before := tbl.UpdateCount()
	tbl.RenderLine(1)
	if err := tbl.UpdateCell(RowKeyOf("r0"), column, "z", false); err != nil {
		t.Fatalf("UpdateCell failed: %v", err)
	}
	if tbl.UpdateCount() != before+1 {
		t.Errorf("UpdateCount = %d, want %d", tbl.UpdateCount(), before+1)
	}
	if got := lineText(tbl, 1); got != " z  bb" {
		t.Errorf("line 1 = %q, want %q", got, " z  bb")
	}
}

func TestRenderAfterSort(t *testing.T) {
	tbl, _, _ := newABTable(t)
	column := tbl.OrderedColumns()[0].Key
	tbl.RenderLine(1)

	if err := tbl.Sort(true, column); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if got := lineText(tbl, 1); got != " c  dd" {
		t.Errorf("line 1 = %q, want %q", got, " c  dd")
	}
	if got := tbl.RenderLine(1).Cells()[1].Style.Meta.Row; got != 0 {
		t.Errorf("meta row = %d, want 0", got)
	}
}

func TestRenderHiddenHeader(t *testing.T) {
	tbl, _, _ := newABTable(t)
	tbl.SetShowHeader(false)

	if got := tbl.VirtualSize().Height; got != 2 {
		t.Errorf("virtual height = %d, want 2", got)
	}
	if got := lineText(tbl, 0); got != " a  bb" {
		t.Errorf("line 0 = %q, want %q", got, " a  bb")
	}
}

func TestRenderMultiLineRows(t *testing.T) {
	tbl, _, _ := newTestTable(t, 20, 5)
	tbl.AddColumns("A")
	key, _ := tbl.AddRowWithOptions(RowOptions{Height: 2}, "l1\nl2")
	tbl.AddRow("x")
	tbl.OnIdle()

	if got := tbl.RowHeight(key); got != 2 {
		t.Errorf("RowHeight = %d, want 2", got)
	}
	if got := tbl.VirtualSize().Height; got != 4 {
		t.Errorf("virtual height = %d, want 4", got)
	}
	for y, want := range []string{" A", " l1", " l2", " x"} {
		if got := lineText(tbl, y); got != want {
			t.Errorf("line %d = %q, want %q", y, got, want)
		}
	}
	if got := tbl.RenderLine(2).Cells()[1].Style.Meta.Row; got != 0 {
		t.Errorf("second line of row 0 has meta row %d", got)
	}
}

func TestRenderZebraStripes(t *testing.T) {
	tbl, _, _ := newABTable(t)
	tbl.SetZebraStripes(true)
	styles := tbl.Styles()

	even := tbl.RenderLine(1).Cells()
	if even[4].Style.Background != styles.EvenRow.Background {
		t.Errorf("even row background = %v, want %v", even[4].Style.Background, styles.EvenRow.Background)
	}
	odd := tbl.RenderLine(2).Cells()
	if odd[4].Style.Background != core.ColorDefault {
		t.Errorf("odd row background = %v, want default", odd[4].Style.Background)
	}
}

func TestRenderRowLabels(t *testing.T) {
	tbl, _, _ := newTestTable(t, 30, 5)
	tbl.AddColumns("A", "B")
	tbl.AddRowWithOptions(RowOptions{Label: "first"}, "a", "bb")
	tbl.AddRow("c", "dd")
	tbl.OnIdle()

	if got := tbl.VirtualSize().Width; got != 14 {
		t.Errorf("virtual width = %d, want 14", got)
	}

	blank := strings.Repeat(" ", 7)
	for y, want := range []string{blank + " A  B", " first  a  bb", blank + " c  dd"} {
		if got := lineText(tbl, y); got != want {
			t.Errorf("line %d = %q, want %q", y, got, want)
		}
	}

	label := tbl.RenderLine(1).Cells()[0].Style.Meta
	if want := (core.Meta{Row: 0, Column: -1, HasCell: true}); label != want {
		t.Errorf("label meta = %+v, want %+v", label, want)
	}
	if got := tbl.cellRegion(Coordinate{}).X; got != 7 {
		t.Errorf("cell region x = %d, want 7", got)
	}

	tbl.SetShowRowLabels(false)
	if got := tbl.VirtualSize().Width; got != 7 {
		t.Errorf("virtual width without labels = %d, want 7", got)
	}
	if got := lineText(tbl, 1); got != " a  bb" {
		t.Errorf("line 1 without labels = %q", got)
	}
}

func newScrollTable(t *testing.T, rows int) (*Table, *recordingPoster, *recordingSink) {
	t.Helper()
	tbl, poster, sink := newTestTable(t, 20, 3)
	tbl.AddColumns("A")
	for i := range rows {
		tbl.AddRow("v" + string(rune('0'+i)))
	}
	tbl.OnIdle()
	poster.reset()
	sink.reset()
	return tbl, poster, sink
}

func TestRenderScrolled(t *testing.T) {
	tbl, _, _ := newScrollTable(t, 10)
	tbl.ScrollTo(0, 7, false)

	if got := lineText(tbl, 0); got != " A" {
		t.Errorf("header = %q, want %q", got, " A")
	}
	if got := lineText(tbl, 1); got != " v7" {
		t.Errorf("line 1 = %q, want %q", got, " v7")
	}
	if got := lineText(tbl, 2); got != " v8" {
		t.Errorf("line 2 = %q, want %q", got, " v8")
	}
}

func TestRenderFixedRows(t *testing.T) {
	tbl, _, _ := newScrollTable(t, 10)
	tbl.SetFixedRows(1)
	tbl.ScrollTo(0, 7, false)

	if got := lineText(tbl, 1); got != " v0" {
		t.Errorf("fixed line = %q, want %q", got, " v0")
	}
	if got := lineText(tbl, 2); got != " v8" {
		t.Errorf("scrolled line = %q, want %q", got, " v8")
	}
}

func TestRenderFixedColumns(t *testing.T) {
	tbl, _, _ := newTestTable(t, 10, 3)
	tbl.AddColumns("A", "B", "C")
	tbl.AddRow("aaaa", "bbbb", "cccc")
	tbl.OnIdle()
	tbl.SetFixedColumns(1)

	if !tbl.ScrollTo(4, 0, false) {
		t.Fatal("expected horizontal scroll")
	}

	line := tbl.RenderLine(1)
	if got := line.String(); got != " aaaa b  c" {
		t.Errorf("line 1 = %q, want %q", got, " aaaa b  c")
	}
	cells := line.Cells()
	if !cells[1].Style.Meta.Fixed {
		t.Error("fixed column cell should carry fixed meta")
	}
	if got, want := cells[1].Style.Background, tbl.Styles().FixedCursor.Background; got != want {
		t.Errorf("fixed cursor background = %v, want %v", got, want)
	}
	if got, want := cells[6].Style.Meta, (core.Meta{Row: 0, Column: 1, HasCell: true}); got != want {
		t.Errorf("scrolled cell meta = %+v, want %+v", got, want)
	}
	if got := cells[9].Style.Meta.Column; got != 2 {
		t.Errorf("last cell column = %d, want 2", got)
	}

	if got := tbl.RenderLine(0).String(); got != " A       C" {
		t.Errorf("header = %q, want %q", got, " A       C")
	}
}
