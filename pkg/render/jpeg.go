// Package render rasterises sociogram scenes.
//
// Output mirrors the interactive canvas: filled entity circles, bold labels
// with a white outline, and directed links with triangular arrowheads. The
// whole scene is drawn at 4x and downsampled for smooth edges.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/sociogram/pkg/sociogram"
)

// FileName is the name exported images are written under.
const FileName = "sociogram.jpg"

// ErrEmptyScene is returned when there is nothing to draw.
var ErrEmptyScene = errors.New("scene is empty - nothing to export")

// JPEGOptions configures JPEG export.
type JPEGOptions struct {
	Padding    int         // pixels of background around the content
	Quality    int         // JPEG quality, 1-100
	Scale      int         // supersampling factor
	Background color.Color // fill behind everything
	// Selected names an entity drawn with the selection style, usually the
	// pending link source.
	Selected string
}

// DefaultJPEGOptions returns full-quality export on a white background.
func DefaultJPEGOptions() JPEGOptions {
	return JPEGOptions{
		Padding:    50,
		Quality:    100,
		Scale:      4,
		Background: colorWhite,
	}
}

var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorBlack = color.RGBA{0, 0, 0, 255}
)

const outlineWidth = 2 // label outline in pixels

// renderContext maps scene coordinates onto the supersampled canvas.
type renderContext struct {
	dc    *gg.Context
	scale float64
	minX  float64 // scene x drawn at the left padding edge
	minY  float64
	pad   float64
	face  font.Face
}

// px converts a scene point to canvas pixels.
func (ctx *renderContext) px(p sociogram.Point) (float64, float64) {
	return (p.X - ctx.minX + ctx.pad) * ctx.scale, (p.Y - ctx.minY + ctx.pad) * ctx.scale
}

func newFace(sizePx float64) (font.Face, error) {
	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone, // supersampled instead
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

// EncodeJPEG renders s and writes it to w as a JPEG.
func EncodeJPEG(w io.Writer, s *sociogram.Scene, opts JPEGOptions) error {
	img, err := Rasterize(s, opts)
	if err != nil {
		return err
	}
	q := opts.Quality
	if q < 1 || q > 100 {
		q = 100
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
}

// ExportFile writes s as FileName inside dir and returns the full path.
func ExportFile(dir string, s *sociogram.Scene, opts JPEGOptions) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeJPEG(f, s, opts); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Rasterize draws s at its full extent and returns the downsampled image.
func Rasterize(s *sociogram.Scene, opts JPEGOptions) (*image.RGBA, error) {
	if s == nil || len(s.Entities) == 0 {
		return nil, ErrEmptyScene
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Background == nil {
		opts.Background = colorWhite
	}
	scale := float64(opts.Scale)

	// Measure at 1x so the extent is in scene pixels.
	measureFace, err := newFace(float64(s.FontSize()))
	if err != nil {
		return nil, err
	}
	minX, minY, maxX, maxY := sceneBounds(s, measureFace, opts.Selected)
	measureFace.Close()

	pad := float64(opts.Padding)
	width := int(math.Ceil(maxX-minX+2*pad)) + 1
	height := int(math.Ceil(maxY-minY+2*pad)) + 1

	face, err := newFace(float64(s.FontSize()) * scale)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	large := gg.NewContext(width*opts.Scale, height*opts.Scale)
	large.SetColor(opts.Background)
	large.Clear()
	large.SetFontFace(face)

	ctx := &renderContext{
		dc:    large,
		scale: scale,
		minX:  minX,
		minY:  minY,
		pad:   pad,
		face:  face,
	}

	// Links first so entities sit on top of their ends.
	for _, l := range s.Links {
		drawLink(ctx, s, l)
	}
	for _, e := range s.Entities {
		drawEntity(ctx, e, e.Name == opts.Selected)
	}
	// Labels last so no circle or arrow covers them.
	for _, e := range s.Entities {
		x, y := ctx.px(e.LabelPos())
		drawOutlinedText(ctx, x, y, e.Name)
	}

	final := image.NewRGBA(image.Rect(0, 0, width, height))
	src := large.Image()
	draw.CatmullRom.Scale(final, final.Bounds(), src, src.Bounds(), draw.Over, nil)
	return final, nil
}

// sceneBounds returns the extent of everything drawn, in scene pixels.
func sceneBounds(s *sociogram.Scene, face font.Face, selected string) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(x0, y0, x1, y1 float64) {
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}

	metrics := face.Metrics()
	ascent := float64(metrics.Ascent.Ceil())
	descent := float64(metrics.Descent.Ceil())

	for _, e := range s.Entities {
		r := e.Radius()
		if e.Name == selected {
			r += sociogram.SelectedBorderWidth / 2
		}
		grow(e.Pos.X-r, e.Pos.Y-r, e.Pos.X+r, e.Pos.Y+r)

		lp := e.LabelPos()
		half := float64(font.MeasureString(face, e.Name).Ceil())/2 + outlineWidth
		grow(lp.X-half, lp.Y-ascent/2-outlineWidth, lp.X+half, lp.Y+ascent/2+descent+outlineWidth)
	}
	for _, l := range s.Links {
		a, c, b, ok := s.LinkPath(l)
		if !ok {
			continue
		}
		// The curve's apex is halfway to the control point.
		apex := sociogram.QuadPoint(a, c, b, 0.5)
		for _, p := range []sociogram.Point{a, apex, b} {
			grow(p.X, p.Y, p.X, p.Y)
		}
	}
	return minX, minY, maxX, maxY
}

// drawEntity draws an entity as a filled circle.
func drawEntity(ctx *renderContext, e *sociogram.Entity, selected bool) {
	cx, cy := ctx.px(e.Pos)
	r := e.Radius() * ctx.scale
	if selected {
		bw := float64(sociogram.SelectedBorderWidth) * ctx.scale
		fillCircle(ctx.dc, cx, cy, r+bw/2, sociogram.RGBA(sociogram.SelectedBorder))
		fillCircle(ctx.dc, cx, cy, r-bw/2, sociogram.RGBA(sociogram.SelectedFill))
		return
	}
	fillCircle(ctx.dc, cx, cy, r, sociogram.RGBA(e.Style.Color))
}

// arrowSize returns the length and half-width of an arrowhead for a link of
// the given thickness, in scene pixels.
func arrowSize(thickness int) (length, halfWidth float64) {
	t := float64(thickness)
	return 6 + 2*t, 3 + t
}

// drawLink draws a link along its path with an arrowhead touching the
// target's boundary.
func drawLink(ctx *renderContext, s *sociogram.Scene, l *sociogram.Link) {
	a, c, b, ok := s.LinkPath(l)
	if !ok {
		return
	}
	col := sociogram.RGBA(l.Style.Color)
	thick := float64(l.Style.Thickness) * ctx.scale
	arrowLen, arrowHalf := arrowSize(l.Style.Thickness)
	arrowLen *= ctx.scale
	arrowHalf *= ctx.scale

	ax, ay := ctx.px(a)
	cx, cy := ctx.px(c)
	bx, by := ctx.px(b)

	// Tangent at the end of the curve points from the control point.
	tx, ty := bx-cx, by-cy
	tl := math.Hypot(tx, ty)
	if tl < 1 {
		return
	}
	tx, ty = tx/tl, ty/tl

	// Stop the shaft where the arrowhead begins.
	baseX, baseY := bx-tx*arrowLen, by-ty*arrowLen

	strokeQuad(ctx.dc,
		sociogram.Point{X: ax, Y: ay},
		sociogram.Point{X: cx, Y: cy},
		sociogram.Point{X: baseX, Y: baseY},
		thick, col)

	// Filled triangle: tip on the boundary, base across the shaft.
	nx, ny := -ty, tx
	fillPolygon(ctx.dc, []sociogram.Point{
		{X: bx, Y: by},
		{X: baseX + nx*arrowHalf, Y: baseY + ny*arrowHalf},
		{X: baseX - nx*arrowHalf, Y: baseY - ny*arrowHalf},
	}, col)
}

// drawOutlinedText draws text centred on (x, y) in black with a white
// outline.
func drawOutlinedText(ctx *renderContext, x, y float64, text string) {
	// Centre caps on y: the baseline sits roughly a third of the ascent below.
	ascent := ctx.face.Metrics().Ascent.Ceil()
	baseline := y + float64(ascent)*0.35

	ow := outlineWidth * ctx.scale
	ctx.dc.SetColor(colorWhite)
	for ring := 1.0; ring <= 2; ring++ {
		r := ow * ring / 2
		for k := 0; k < 12; k++ {
			angle := float64(k) * math.Pi / 6
			ctx.dc.DrawStringAnchored(text, x+math.Cos(angle)*r, baseline+math.Sin(angle)*r, 0.5, 0)
		}
	}

	ctx.dc.SetColor(colorBlack)
	ctx.dc.DrawStringAnchored(text, x, baseline, 0.5, 0)
}
