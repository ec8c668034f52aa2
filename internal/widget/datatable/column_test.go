package datatable

import (
	"testing"
	"time"
)

type celsius float64

func (c celsius) String() string { return "hot" }

func TestDefaultFormatter(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{1.5, "1.50"},
		{float32(2), "2.00"},
		{42, "42"},
		{true, "true"},
		{celsius(30), "hot"},
		{time.Duration(0), "0s"},
	}

	for _, tt := range tests {
		if got := DefaultFormatter(tt.in); got != tt.want {
			t.Errorf("DefaultFormatter(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderWidth(t *testing.T) {
	auto := &Column{ContentWidth: 5, Width: 9, AutoWidth: true}
	if got := auto.RenderWidth(); got != 7 {
		t.Errorf("auto RenderWidth = %d, want 7", got)
	}
	fixed := &Column{ContentWidth: 5, Width: 9}
	if got := fixed.RenderWidth(); got != 11 {
		t.Errorf("fixed RenderWidth = %d, want 11", got)
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		a, b any
		want int
	}{
		{1, 2, -1},
		{2.5, 2, 1},
		{int64(3), 3.0, 0},
		{"a", "b", -1},
		{nil, 1, -1},
		{1, nil, 1},
		{nil, nil, 0},
		{"10", 9, -1},
	}

	for _, tt := range tests {
		if got := compareValues(tt.a, tt.b); got != tt.want {
			t.Errorf("compareValues(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTextWidth(t *testing.T) {
	if got := textWidth("ab\nabcd\nx"); got != 4 {
		t.Errorf("textWidth = %d, want 4", got)
	}
	if got := textWidth("日本"); got != 4 {
		t.Errorf("textWidth(wide) = %d, want 4", got)
	}
}

func TestParseCursorType(t *testing.T) {
	for _, ct := range []CursorType{CursorCell, CursorRow, CursorColumn, CursorNone} {
		got, err := ParseCursorType(ct.String())
		if err != nil || got != ct {
			t.Errorf("ParseCursorType(%q) = %v, %v", ct.String(), got, err)
		}
	}
	if _, err := ParseCursorType("diagonal"); err == nil {
		t.Error("expected error for unknown cursor type")
	}
}
