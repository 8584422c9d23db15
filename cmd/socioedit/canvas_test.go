package main

import (
	"math"
	"testing"

	"github.com/ha1tch/sociogram/internal/config"
	"github.com/ha1tch/sociogram/pkg/sociogram"
)

func testViewport() viewport {
	return newViewport(config.EditorConfig{CellWidth: 8, CellHeight: 16})
}

func TestViewportRoundTrip(t *testing.T) {
	tests := []struct {
		zoom       float64
		panX, panY int
		col, row   int
	}{
		{1, 0, 0, 40, 12},
		{1, 0, 0, 0, 0},
		{2.5, 3, -2, 17, 30},
		{0.3, -10, 5, 79, 1},
	}
	for _, tt := range tests {
		v := testViewport()
		v.zoom, v.panX, v.panY = tt.zoom, tt.panX, tt.panY

		p := v.toScene(tt.col, tt.row, 80, 24)
		col, row := v.toCell(p, 80, 24)
		if col != tt.col || row != tt.row {
			t.Errorf("zoom %v pan (%d,%d): cell (%d,%d) -> %v -> (%d,%d)",
				tt.zoom, tt.panX, tt.panY, tt.col, tt.row, p, col, row)
		}
	}
}

func TestViewportOriginAtCanvasCentre(t *testing.T) {
	v := testViewport()
	col, row := v.toCell(sociogram.Point{}, 80, 24)
	if col != 40 || row != 12 {
		t.Errorf("origin at (%d,%d), want (40,12)", col, row)
	}

	// One cell right is cellW scene pixels at zoom 1
	if p := v.toScene(41, 12, 80, 24); p.X != 8 || p.Y != 0 {
		t.Errorf("toScene(41,12) = %v, want (8,0)", p)
	}
}

func TestViewportZoomClamps(t *testing.T) {
	v := testViewport()
	for i := 0; i < 50; i++ {
		v.zoomBy(1.25)
	}
	if v.zoom != maxZoom {
		t.Errorf("zoom = %v, want clamp to %v", v.zoom, maxZoom)
	}
	for i := 0; i < 100; i++ {
		v.zoomBy(0.8)
	}
	if v.zoom != minZoom {
		t.Errorf("zoom = %v, want clamp to %v", v.zoom, minZoom)
	}
}

func TestViewportFit(t *testing.T) {
	v := testViewport()
	v.panX, v.panY = 7, 7
	v.fit(200, 200, 4, 90, 38)

	if v.panX != 0 || v.panY != 0 {
		t.Errorf("pan = (%d,%d), want reset", v.panX, v.panY)
	}
	// Everything within the extent must land inside the canvas.
	for _, p := range []sociogram.Point{{X: 200, Y: 0}, {X: -200, Y: 0}, {X: 0, Y: 200}, {X: 0, Y: -200}} {
		col, row := v.toCell(p, 90, 38)
		if col < 0 || col >= 90 || row < 0 || row >= 38 {
			t.Errorf("%v at (%d,%d) outside 90x38 canvas", p, col, row)
		}
	}

	v.fit(0, 0, 0, 90, 38)
	if v.zoom != 1 {
		t.Errorf("empty fit zoom = %v, want 1", v.zoom)
	}
}

func TestViewportSlopShrinksWithZoom(t *testing.T) {
	v := testViewport()
	base := v.slop()
	v.zoomBy(2)
	if got := v.slop(); math.Abs(got-base/2) > 1e-9 {
		t.Errorf("slop at 2x = %v, want %v", got, base/2)
	}
}

func TestArrowRune(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{1, 0, '→'},
		{-1, 0, '←'},
		{0, 1, '↓'},
		{0, -1, '↑'},
		{1, 1, '↘'},
		{-1, -1, '↖'},
		{1, -1, '↗'},
		{-1, 1, '↙'},
	}
	for _, tt := range tests {
		if got := arrowRune(tt.dx, tt.dy); got != tt.want {
			t.Errorf("arrowRune(%v,%v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestLinkRune(t *testing.T) {
	tests := []struct {
		thickness int
		want      rune
	}{
		{1, '·'},
		{3, '•'},
		{5, '●'},
		{15, '█'},
	}
	for _, tt := range tests {
		if got := linkRune(tt.thickness); got != tt.want {
			t.Errorf("linkRune(%d) = %q, want %q", tt.thickness, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 8, "much ..."},
		{"abc", 2, "ab"},
		{"→→→→", 3, "→→→"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
