// Package strip provides Strip, an immutable run of styled text segments
// representing one terminal row or part of one.
//
// Widths are measured in terminal cells per grapheme cluster, so cropping
// never splits a cluster. A wide cluster cut by a crop boundary is replaced
// by spaces in the same style.
package strip

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/cellstorm/internal/renderer/core"
)

// Segment is a run of text sharing one style.
// Control segments carry terminal control data and occupy no cells.
type Segment struct {
	Text    string
	Style   core.Style
	Control bool
}

// CellLength returns the number of cells the segment occupies.
func (s Segment) CellLength() int {
	if s.Control {
		return 0
	}
	return core.StringWidth(s.Text)
}

// Strip is an immutable sequence of segments.
// The zero Strip is empty and ready to use.
type Strip struct {
	segments   []Segment
	cellLength int
}

// New creates a strip from segments. The slice is copied.
func New(segments ...Segment) Strip {
	segs := make([]Segment, 0, len(segments))
	length := 0
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		segs = append(segs, seg)
		length += seg.CellLength()
	}
	return Strip{segments: segs, cellLength: length}
}

// Text creates a single segment strip.
func Text(text string, style core.Style) Strip {
	return New(Segment{Text: text, Style: style})
}

// Blank creates a strip of width spaces in the given style.
func Blank(width int, style core.Style) Strip {
	if width <= 0 {
		return Strip{}
	}
	return Strip{
		segments:   []Segment{{Text: strings.Repeat(" ", width), Style: style}},
		cellLength: width,
	}
}

// Join concatenates strips left to right.
func Join(strips ...Strip) Strip {
	n := 0
	for _, s := range strips {
		n += len(s.segments)
	}
	segs := make([]Segment, 0, n)
	length := 0
	for _, s := range strips {
		segs = append(segs, s.segments...)
		length += s.cellLength
	}
	return Strip{segments: segs, cellLength: length}
}

// Segments returns a copy of the strip's segments.
func (s Strip) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the number of segments.
func (s Strip) Len() int {
	return len(s.segments)
}

// CellLength returns the number of cells the strip occupies.
func (s Strip) CellLength() int {
	return s.cellLength
}

// String returns the plain text of the strip, excluding control segments.
func (s Strip) String() string {
	var b strings.Builder
	for _, seg := range s.segments {
		if !seg.Control {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// Equals returns true if both strips have identical segments.
func (s Strip) Equals(other Strip) bool {
	if s.cellLength != other.cellLength || len(s.segments) != len(other.segments) {
		return false
	}
	for i := range s.segments {
		if s.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Crop returns the part of the strip covering cells [x1, x2).
func (s Strip) Crop(x1, x2 int) Strip {
	x1 = max(x1, 0)
	x2 = min(x2, s.cellLength)
	if x1 >= x2 {
		return Strip{}
	}
	if x1 == 0 && x2 == s.cellLength {
		return s
	}

	segs := make([]Segment, 0, len(s.segments))
	pos := 0
	for _, seg := range s.segments {
		if pos >= x2 {
			break
		}
		if seg.Control {
			if pos >= x1 {
				segs = append(segs, seg)
			}
			continue
		}
		width := seg.CellLength()
		end := pos + width
		switch {
		case end <= x1:
		case pos >= x1 && end <= x2:
			segs = append(segs, seg)
		default:
			if text := cropText(seg.Text, x1-pos, x2-pos); text != "" {
				segs = append(segs, Segment{Text: text, Style: seg.Style})
			}
		}
		pos = end
	}
	return Strip{segments: segs, cellLength: x2 - x1}
}

// cropText returns the cells [start, end) of text, padding any grapheme
// cluster cut by a boundary with spaces.
func cropText(text string, start, end int) string {
	var b strings.Builder
	pos := 0
	state := -1
	for len(text) > 0 && pos < end {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		width := core.StringWidth(cluster)
		next := pos + width
		switch {
		case next <= start:
		case pos >= start && next <= end:
			b.WriteString(cluster)
		default:
			visible := min(next, end) - max(pos, start)
			b.WriteString(strings.Repeat(" ", visible))
		}
		pos = next
	}
	return b.String()
}

// AdjustCellLength pads the strip with style or truncates it so that it
// occupies exactly width cells.
func (s Strip) AdjustCellLength(width int, style core.Style) Strip {
	switch {
	case width <= 0:
		return Strip{}
	case s.cellLength < width:
		return Join(s, Blank(width-s.cellLength, style))
	case s.cellLength > width:
		return s.Crop(0, width)
	default:
		return s
	}
}

// Simplify merges neighbouring segments that share a style.
func (s Strip) Simplify() Strip {
	if len(s.segments) < 2 {
		return s
	}
	segs := make([]Segment, 0, len(s.segments))
	for _, seg := range s.segments {
		if n := len(segs); n > 0 {
			last := &segs[n-1]
			if !last.Control && !seg.Control && last.Style == seg.Style {
				last.Text += seg.Text
				continue
			}
		}
		segs = append(segs, seg)
	}
	return Strip{segments: segs, cellLength: s.cellLength}
}

// ApplyStyle layers each segment's style over base.
func (s Strip) ApplyStyle(base core.Style) Strip {
	segs := make([]Segment, len(s.segments))
	for i, seg := range s.segments {
		seg.Style = base.Merge(seg.Style)
		segs[i] = seg
	}
	return Strip{segments: segs, cellLength: s.cellLength}
}

// Cells expands the strip into terminal cells. Wide clusters are followed by
// continuation cells so that len(result) == CellLength().
func (s Strip) Cells() []core.Cell {
	cells := make([]core.Cell, 0, s.cellLength)
	for _, seg := range s.segments {
		if seg.Control {
			continue
		}
		text := seg.Text
		state := -1
		for len(text) > 0 {
			var cluster string
			cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
			width := core.StringWidth(cluster)
			if width == 0 {
				continue
			}
			cells = append(cells, core.Cell{Text: cluster, Width: width, Style: seg.Style})
			for i := 1; i < width; i++ {
				cells = append(cells, core.Cell{Style: seg.Style})
			}
		}
	}
	return cells
}
