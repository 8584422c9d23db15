package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/fogleman/gg"

	"github.com/ha1tch/sociogram/pkg/sociogram"
)

var red = color.RGBA{255, 0, 0, 255}

// painted reports whether the pixel is (close to) opaque red.
func painted(img image.Image, x, y int) bool {
	c := toRGBA(img.At(x, y))
	return c.A > 200 && c.R > 200 && c.G < 50 && c.B < 50
}

func TestFillCircle(t *testing.T) {
	dc := gg.NewContext(40, 40)
	fillCircle(dc, 20, 20, 10, red)
	img := dc.Image()

	tests := []struct {
		x, y int
		want bool
	}{
		{20, 20, true},
		{12, 20, true},
		{20, 28, true},
		{5, 5, false},
		{31, 20, false},
	}
	for _, tt := range tests {
		if got := painted(img, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) filled = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFillCircleClipsToBounds(t *testing.T) {
	dc := gg.NewContext(10, 10)
	fillCircle(dc, 5, 5, 50, red)
	img := dc.Image()
	if !painted(img, 0, 0) || !painted(img, 9, 9) {
		t.Error("expected the whole image to be filled")
	}
}

func TestFillCircleZeroRadius(t *testing.T) {
	dc := gg.NewContext(10, 10)
	fillCircle(dc, 5, 5, 0, red)
	if painted(dc.Image(), 5, 5) {
		t.Error("zero radius painted the centre")
	}
}

func TestFillPolygonTriangle(t *testing.T) {
	dc := gg.NewContext(20, 20)
	fillPolygon(dc, []sociogram.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 0, Y: 20}}, red)
	img := dc.Image()

	if !painted(img, 3, 3) {
		t.Error("point inside triangle not filled")
	}
	if painted(img, 17, 17) {
		t.Error("point outside triangle filled")
	}
}

func TestStrokeQuadWidth(t *testing.T) {
	dc := gg.NewContext(50, 50)
	// A control point on the chord gives a straight stroke.
	strokeQuad(dc, sociogram.Point{X: 5, Y: 25}, sociogram.Point{X: 25, Y: 25}, sociogram.Point{X: 45, Y: 25}, 6, red)
	img := dc.Image()

	for _, y := range []int{23, 25, 27} {
		if !painted(img, 25, y) {
			t.Errorf("pixel (25,%d) not stroked", y)
		}
	}
	for _, y := range []int{19, 31} {
		if painted(img, 25, y) {
			t.Errorf("pixel (25,%d) outside stroke", y)
		}
	}
}

func TestStrokeQuadBends(t *testing.T) {
	dc := gg.NewContext(60, 60)
	strokeQuad(dc, sociogram.Point{X: 5, Y: 50}, sociogram.Point{X: 30, Y: 0}, sociogram.Point{X: 55, Y: 50}, 4, red)
	img := dc.Image()

	// The apex of the curve sits halfway to the control point.
	if !painted(img, 30, 25) {
		t.Error("curve apex not stroked")
	}
	if painted(img, 30, 49) {
		t.Error("straight chord stroked instead of the curve")
	}
}
