package dirty

import (
	"testing"

	"github.com/dshills/cellstorm/internal/renderer/core"
)

func TestAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b core.Region
		want bool
	}{
		{
			name: "stacked same span",
			a:    core.Region{X: 2, Y: 0, Width: 4, Height: 1},
			b:    core.Region{X: 2, Y: 1, Width: 4, Height: 2},
			want: true,
		},
		{
			name: "stacked different span",
			a:    core.Region{X: 2, Y: 0, Width: 4, Height: 1},
			b:    core.Region{X: 3, Y: 1, Width: 4, Height: 1},
			want: false,
		},
		{
			name: "side by side",
			a:    core.Region{X: 0, Y: 3, Width: 4, Height: 1},
			b:    core.Region{X: 4, Y: 3, Width: 2, Height: 1},
			want: true,
		},
		{
			name: "gap",
			a:    core.Region{X: 0, Y: 3, Width: 4, Height: 1},
			b:    core.Region{X: 5, Y: 3, Width: 2, Height: 1},
			want: false,
		},
		{
			name: "empty",
			a:    core.Region{},
			b:    core.Region{X: 0, Y: 0, Width: 1, Height: 1},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adjacent(tt.a, tt.b); got != tt.want {
				t.Errorf("Adjacent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	a := core.Region{X: 0, Y: 0, Width: 4, Height: 2}
	b := core.Region{X: 2, Y: 1, Width: 4, Height: 2}

	merged, ok := Merge(a, b)
	if !ok {
		t.Fatal("overlapping regions should merge")
	}
	want := core.Region{X: 0, Y: 0, Width: 6, Height: 3}
	if merged != want {
		t.Errorf("Merge = %v, want %v", merged, want)
	}

	if _, ok := Merge(a, core.Region{X: 10, Y: 10, Width: 1, Height: 1}); ok {
		t.Error("disjoint regions should not merge")
	}
}

func TestLines(t *testing.T) {
	got := Lines(5, 3, 80)
	want := core.Region{X: 0, Y: 3, Width: 80, Height: 2}
	if got != want {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}
