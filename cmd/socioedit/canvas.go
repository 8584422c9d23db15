package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/sociogram/internal/config"
	"github.com/ha1tch/sociogram/pkg/sociogram"
)

// Zoom limits
const (
	minZoom = 0.1
	maxZoom = 8.0
)

// viewport maps scene pixels onto terminal cells. The scene origin (the
// layout centre) sits in the middle of the canvas, shifted by the pan.
type viewport struct {
	cellW, cellH float64 // scene pixels per cell at zoom 1
	zoom         float64
	panX, panY   int // in cells
}

func newViewport(c config.EditorConfig) viewport {
	return viewport{
		cellW: float64(c.CellWidth),
		cellH: float64(c.CellHeight),
		zoom:  1,
	}
}

func (v viewport) origin(canvasW, canvasH int) (int, int) {
	return canvasW/2 + v.panX, canvasH/2 + v.panY
}

// toCell returns the cell containing scene point p.
func (v viewport) toCell(p sociogram.Point, canvasW, canvasH int) (int, int) {
	ox, oy := v.origin(canvasW, canvasH)
	return ox + int(math.Round(p.X*v.zoom/v.cellW)), oy + int(math.Round(p.Y*v.zoom/v.cellH))
}

// toScene returns the scene point at the centre of a cell.
func (v viewport) toScene(col, row, canvasW, canvasH int) sociogram.Point {
	ox, oy := v.origin(canvasW, canvasH)
	return sociogram.Point{
		X: float64(col-ox) * v.cellW / v.zoom,
		Y: float64(row-oy) * v.cellH / v.zoom,
	}
}

// slop is the hit-test tolerance: half a cell, in scene pixels.
func (v viewport) slop() float64 {
	return math.Max(v.cellW, v.cellH) / v.zoom / 2
}

func (v *viewport) zoomBy(f float64) {
	v.zoom = math.Max(minZoom, math.Min(maxZoom, v.zoom*f))
}

// fit centres the scene and picks the zoom that shows everything up to
// extentX/extentY scene pixels from the origin, keeping marginCols free on
// each side for labels.
func (v *viewport) fit(extentX, extentY float64, marginCols, canvasW, canvasH int) {
	v.panX, v.panY = 0, 0
	if extentX <= 0 || extentY <= 0 {
		v.zoom = 1
		return
	}
	cols := float64(canvasW/2 - marginCols - 1)
	rows := float64(canvasH/2 - 1)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	z := math.Min(cols*v.cellW/extentX, rows*v.cellH/extentY)
	v.zoom = math.Max(minZoom, math.Min(maxZoom, z))
}

// canvasSize returns the canvas area: everything left of the sidebar and
// above the help and status bars.
func (ed *Editor) canvasSize() (int, int) {
	w, h := ed.screen.Size()
	cw := w - ed.sidebarWidth
	if cw < 1 {
		cw = 1
	}
	ch := h - 2
	if ch < 1 {
		ch = 1
	}
	return cw, ch
}

func (ed *Editor) sceneAt(x, y int) sociogram.Point {
	cw, ch := ed.canvasSize()
	return ed.view.toScene(x, y, cw, ch)
}

func (ed *Editor) hitAt(x, y int) sociogram.Hit {
	return ed.session.Scene().HitTest(ed.sceneAt(x, y), ed.view.slop())
}

func (ed *Editor) cellOf(p sociogram.Point) (int, int) {
	cw, ch := ed.canvasSize()
	return ed.view.toCell(p, cw, ch)
}

// fitView zooms so the whole scene, labels included, is visible.
func (ed *Editor) fitView() {
	var ex, ey float64
	labelCols := 0
	for _, e := range ed.session.Scene().Entities {
		r := e.Radius()
		ex = math.Max(ex, math.Abs(e.Pos.X)+r)
		ey = math.Max(ey, math.Abs(e.Pos.Y)+r)
		lp := e.LabelPos()
		ex = math.Max(ex, math.Abs(lp.X))
		ey = math.Max(ey, math.Abs(lp.Y))
		if n := len([]rune(e.Name))/2 + 1; n > labelCols {
			labelCols = n
		}
	}
	cw, ch := ed.canvasSize()
	ed.view.fit(ex, ey, labelCols, cw, ch)
}

func (ed *Editor) panKey(k tcell.Key) {
	switch k {
	case tcell.KeyLeft:
		ed.view.panX += 4
	case tcell.KeyRight:
		ed.view.panX -= 4
	case tcell.KeyUp:
		ed.view.panY += 2
	case tcell.KeyDown:
		ed.view.panY -= 2
	}
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch ed.mode {
	case ModeHelp:
		if buttons&tcell.Button1 != 0 {
			ed.mode = ModeCanvas
		}
		return
	case ModeInput, ModeAlert:
		ed.releaseButtons()
		return
	}

	cw, ch := ed.canvasSize()
	inCanvas := x < cw && y < ch

	if buttons&tcell.WheelUp != 0 {
		if inCanvas {
			ed.view.zoomBy(1.25)
		} else if ed.sidebarScroll > 0 {
			ed.sidebarScroll = max(0, ed.sidebarScroll-3)
		}
		return
	}
	if buttons&tcell.WheelDown != 0 {
		if inCanvas {
			ed.view.zoomBy(0.8)
		} else {
			ed.scrollSidebar(3)
		}
		return
	}

	ed.handleLeftButton(x, y, buttons&tcell.Button1 != 0, ev.Modifiers(), inCanvas)
	ed.handleRightButton(x, y, buttons&tcell.Button2 != 0, inCanvas)
	ed.handleMiddleButton(x, y, buttons&tcell.Button3 != 0)
}

// handleLeftButton turns primary button presses into taps, entity moves and
// label drags.
func (ed *Editor) handleLeftButton(x, y int, pressed bool, mod tcell.ModMask, inCanvas bool) {
	switch {
	case pressed && !ed.leftMouseDown:
		ed.leftMouseDown = true
		ed.leftDownX, ed.leftDownY = x, y
		ed.leftMoved = false
		ed.leftDownAlt = false
		if !inCanvas {
			ed.leftDownHit = sociogram.Hit{}
			ed.clickSidebar(x, y)
			return
		}
		ed.leftDownHit = ed.hitAt(x, y)
		// Some terminals report Alt as Meta
		if mod&(tcell.ModAlt|tcell.ModMeta) != 0 && ed.leftDownHit.Kind == sociogram.HitEntity {
			ed.leftDownAlt = ed.session.BeginLabelDrag(ed.leftDownHit)
		}

	case pressed && ed.leftMouseDown:
		dragging := ed.session.Gesture().Dragging()
		if ed.leftDownHit.Kind == sociogram.HitNone && !dragging {
			return
		}
		if x == ed.leftDownX && y == ed.leftDownY && !ed.leftMoved {
			return
		}
		if !dragging && !ed.leftDownAlt {
			// Jitter within one cell is still a click
			if abs(x-ed.leftDownX) <= 1 && abs(y-ed.leftDownY) <= 1 {
				return
			}
			ed.leftMoved = true
			if !ed.session.BeginMove(ed.leftDownHit, ed.sceneAt(ed.leftDownX, ed.leftDownY)) {
				return
			}
		}
		ed.leftMoved = true
		ed.session.DragTo(ed.sceneAt(x, y))

	case !pressed && ed.leftMouseDown:
		ed.leftMouseDown = false
		if ed.session.Gesture().Dragging() {
			ed.session.EndDrag()
			return
		}
		if ed.leftMoved || ed.leftDownAlt || ed.leftDownX >= ed.canvasWidth() || ed.leftDownY >= ed.canvasHeight() {
			return
		}
		ed.focus = -1
		ed.tap(ed.leftDownHit)
	}
}

// releaseButtons forgets any press in progress. Modal prompts and alerts
// swallow the matching release, so entering one must reset tracking.
func (ed *Editor) releaseButtons() {
	if ed.session.Gesture().Dragging() {
		ed.session.EndDrag()
	}
	ed.leftMouseDown = false
	ed.leftMoved = false
	ed.leftDownAlt = false
	ed.leftDownHit = sociogram.Hit{}
	ed.rightMouseDown = false
	ed.middleMouseDown = false
}

func (ed *Editor) canvasWidth() int  { w, _ := ed.canvasSize(); return w }
func (ed *Editor) canvasHeight() int { _, h := ed.canvasSize(); return h }

// tap forwards a primary click to the session and reports what happened.
func (ed *Editor) tap(h sociogram.Hit) {
	before := len(ed.session.Scene().Links)
	ed.session.Tap(h)

	if len(ed.session.Scene().Links) > before {
		l := ed.session.Scene().Links[len(ed.session.Scene().Links)-1]
		ed.showMessage(fmt.Sprintf("Linked %s → %s", l.From, l.To), MsgSuccess)
		return
	}
	if src, ok := ed.session.Gesture().Pending(); ok {
		ed.showMessage("Link from "+src+": click the target", MsgInfo)
	}
}

func (ed *Editor) handleRightButton(x, y int, pressed bool, inCanvas bool) {
	if pressed {
		if !ed.rightMouseDown {
			ed.rightMouseDown = true
			ed.rightDownX, ed.rightDownY = x, y
			ed.rightDownHit = sociogram.Hit{}
			if inCanvas {
				ed.rightDownHit = ed.hitAt(x, y)
			}
		}
		return
	}
	if !ed.rightMouseDown {
		return
	}
	ed.rightMouseDown = false

	// Only a click (not moved much) counts
	dx := x - ed.rightDownX
	dy := y - ed.rightDownY
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return
	}
	if ed.rightDownX >= ed.canvasWidth() || ed.rightDownY >= ed.canvasHeight() {
		return
	}
	ed.focus = -1
	ed.session.ContextTap(ed.rightDownHit)
}

func (ed *Editor) handleMiddleButton(x, y int, pressed bool) {
	switch {
	case pressed && !ed.middleMouseDown:
		ed.middleMouseDown = true
		ed.middleDownX, ed.middleDownY = x, y
		ed.panStartX, ed.panStartY = ed.view.panX, ed.view.panY
	case pressed:
		ed.view.panX = ed.panStartX + x - ed.middleDownX
		ed.view.panY = ed.panStartY + y - ed.middleDownY
	default:
		ed.middleMouseDown = false
	}
}
