package render

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/ha1tch/sociogram/pkg/sociogram"
)

// fillCircle fills a disc centred on (cx, cy).
func fillCircle(dc *gg.Context, cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	dc.DrawCircle(cx, cy, r)
	dc.SetColor(c)
	dc.Fill()
}

// strokeQuad strokes the quadratic curve a -> b bent towards ctrl, with
// round caps.
func strokeQuad(dc *gg.Context, a, ctrl, b sociogram.Point, width float64, c color.Color) {
	dc.MoveTo(a.X, a.Y)
	dc.QuadraticTo(ctrl.X, ctrl.Y, b.X, b.Y)
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetColor(c)
	dc.Stroke()
}

// fillPolygon fills the closed polygon through pts.
func fillPolygon(dc *gg.Context, pts []sociogram.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.SetColor(c)
	dc.Fill()
}
