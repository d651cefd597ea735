package render

import (
	"strings"
	"testing"

	"github.com/nathoo/spinwheel/engine/layout"
	"github.com/nathoo/spinwheel/types"
)

func items(labels ...string) []types.WheelItem {
	out := make([]types.WheelItem, len(labels))
	for i, l := range labels {
		out[i] = types.WheelItem{ID: l, Label: l, Color: "#FF6B6B"}
	}
	return out
}

func TestASCII_Quadrants(t *testing.T) {
	grid := ASCII(items("a", "b", "c", "d"), 0, 40, 20)
	if len(grid) != 20 || len(grid[0]) != 40 {
		t.Fatalf("grid is %dx%d", len(grid), len(grid[0]))
	}

	tests := []struct {
		name     string
		row, col int
		want     int
	}{
		{"corner", 0, 0, Outside},
		{"top right of pointer", 0, 20, 3},
		{"top left of pointer", 0, 19, 2},
		{"right", 10, 39, 0},
		{"bottom", 19, 19, 1},
		{"left above center", 9, 0, 2},
		{"left below center", 10, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid[tt.row][tt.col]; got != tt.want {
				t.Errorf("grid[%d][%d] = %d, want %d", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestASCII_Rotation(t *testing.T) {
	grid := ASCII(items("a", "b", "c", "d"), 90, 40, 20)
	// Cell just right of the pointer sits at ~271.5°, which is segment 2
	// once the wheel has turned a quarter clockwise.
	if got := grid[0][20]; got != 2 {
		t.Errorf("top cell = %d, want 2", got)
	}
	if got := grid[10][39]; got != 3 {
		t.Errorf("right cell = %d, want 3", got)
	}
}

func TestASCII_PointerAgreesWithSegmentAt(t *testing.T) {
	its := items("a", "b", "c", "d", "e")
	for _, rot := range []float64{0, 17, 123.4, 1000, -45} {
		grid := ASCII(its, rot, 41, 21)
		// Column 20 is the exact center column, so its top cell is at 270°.
		want := layout.SegmentAt(270, rot, len(its))
		if got := grid[0][20]; got != want {
			t.Errorf("rotation %v: top cell = %d, want %d", rot, got, want)
		}
	}
}

func TestASCII_Empty(t *testing.T) {
	grid := ASCII(nil, 0, 10, 5)
	for _, row := range grid {
		for _, c := range row {
			if c != Outside {
				t.Fatalf("empty wheel has segment %d", c)
			}
		}
	}
	if ASCII(items("a"), 0, 0, 5) != nil {
		t.Error("zero width should give nil grid")
	}
}

func TestSVG(t *testing.T) {
	its := items("Pizza", "Tacos & <Burgers>", "Sushi")
	svg := SVG(layout.Segments(its, 160, layout.Options{}), 160, 123.5)

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("not an svg document:\n%s", svg)
	}
	if got := strings.Count(svg, "<path "); got != 3 {
		t.Errorf("expected 3 slices, got %d", got)
	}
	if !strings.Contains(svg, `rotate(123.5 160 160)`) {
		t.Error("missing wheel rotation")
	}
	if !strings.Contains(svg, "Tacos &amp;") || strings.Contains(svg, "<Burgers>") {
		t.Error("label text not escaped")
	}
	if !strings.Contains(svg, "<polygon ") {
		t.Error("missing pointer")
	}
}

func TestSVG_Empty(t *testing.T) {
	svg := SVG(nil, 100, 0)
	if strings.Contains(svg, "<path ") {
		t.Error("empty wheel should have no slices")
	}
	if !strings.Contains(svg, "Add items to spin") {
		t.Error("missing empty wheel hint")
	}
}

func TestSVG_SingleItem(t *testing.T) {
	svg := SVG(layout.Segments(items("Only"), 100, layout.Options{}), 100, 0)
	if !strings.Contains(svg, "M 0 100 A 100 100 0 1 1 200 100 A 100 100 0 1 1 0 100 Z") {
		t.Errorf("single item should draw a full disk:\n%s", svg)
	}
}
