package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/sociogram/pkg/sociogram"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleMenuSel    = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleSidebar    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSidebarH   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSidebarDim = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgWarning = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray) // Help bar on default background
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert      = tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite)
	styleLabel      = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack).Bold(true)
)

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()

	ed.drawCanvas()
	ed.drawSidebar(w, h)

	switch ed.mode {
	case ModeInput:
		ed.drawInputBox(w, h)
	case ModeHelp:
		ed.drawHelp(w, h)
	case ModeAlert:
		ed.drawAlert(w, h)
	}

	ed.drawStatusBar(w, h)
}

// hexStyle returns a style with the given scene color as background and a
// readable foreground.
func hexStyle(hex string) tcell.Style {
	c := sociogram.RGBA(hex)
	fg := tcell.ColorWhite
	if cf, err := colorful.Hex(hex); err == nil {
		if l, _, _ := cf.Lab(); l > 0.6 {
			fg = tcell.ColorBlack
		}
	}
	return tcell.StyleDefault.
		Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
		Foreground(fg)
}

func fgStyle(hex string) tcell.Style {
	c := sociogram.RGBA(hex)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// setCanvasCell draws into the canvas area only.
func (ed *Editor) setCanvasCell(col, row int, r rune, style tcell.Style) {
	cw, ch := ed.canvasSize()
	if col < 0 || row < 0 || col >= cw || row >= ch {
		return
	}
	ed.screen.SetContent(col, row, r, nil, style)
}

func (ed *Editor) drawCanvas() {
	scene := ed.session.Scene()

	if len(scene.Entities) == 0 {
		cw, ch := ed.canvasSize()
		msg := "No entities. Enter names in the sidebar and press r to rebuild."
		ed.drawString(max(0, (cw-len(msg))/2), ch/2, truncate(msg, cw), styleSidebarDim)
		return
	}

	// Links under entities, arrowheads and labels on top
	for _, l := range scene.Links {
		ed.drawLinkPath(scene, l)
	}
	for _, e := range scene.Entities {
		ed.drawEntity(e)
	}
	for _, l := range scene.Links {
		ed.drawArrowHead(scene, l)
	}
	for _, e := range scene.Entities {
		col, row := ed.cellOf(e.LabelPos())
		name := []rune(e.Name)
		start := col - len(name)/2
		for i, r := range name {
			ed.setCanvasCell(start+i, row, r, styleLabel)
		}
	}
}

// linkRune picks a stroke glyph for a link thickness.
func linkRune(thickness int) rune {
	switch {
	case thickness >= 8:
		return '█'
	case thickness >= 5:
		return '●'
	case thickness >= 3:
		return '•'
	default:
		return '·'
	}
}

func (ed *Editor) drawLinkPath(scene *sociogram.Scene, l *sociogram.Link) {
	a, c, b, ok := scene.LinkPath(l)
	if !ok {
		return
	}
	ac, ar := ed.cellOf(a)
	bc, br := ed.cellOf(b)
	steps := 2*max(abs(bc-ac), abs(br-ar)) + 2

	style := fgStyle(l.Style.Color)
	r := linkRune(l.Style.Thickness)
	for i := 0; i <= steps; i++ {
		p := sociogram.QuadPoint(a, c, b, float64(i)/float64(steps))
		col, row := ed.cellOf(p)
		ed.setCanvasCell(col, row, r, style)
	}
}

var arrowRunes = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// arrowRune returns the arrow glyph closest to the screen direction (dx, dy),
// measured in cells with y pointing down.
func arrowRune(dx, dy float64) rune {
	idx := int(math.Round(math.Atan2(dy, dx) / (math.Pi / 4)))
	return arrowRunes[(idx%8+8)%8]
}

// drawArrowHead puts an arrow just outside the target's boundary.
func (ed *Editor) drawArrowHead(scene *sociogram.Scene, l *sociogram.Link) {
	_, c, b, ok := scene.LinkPath(l)
	if !ok {
		return
	}
	t := b.Sub(c)
	n := t.Len()
	if n == 0 {
		return
	}
	dir := t.Scale(1 / n)
	back := math.Max(ed.view.cellW, ed.view.cellH) / ed.view.zoom * 0.6
	tip := b.Sub(dir.Scale(back))
	col, row := ed.cellOf(tip)
	ed.setCanvasCell(col, row, arrowRune(dir.X/ed.view.cellW, dir.Y/ed.view.cellH), fgStyle(l.Style.Color).Bold(true))
}

// drawEntity fills every cell whose centre lies inside the entity's circle.
// The pending link source is drawn with the selection fill and border.
func (ed *Editor) drawEntity(e *sociogram.Entity) {
	cw, ch := ed.canvasSize()
	v := ed.view
	selected := ed.session.Selected(e.Name)

	r := e.Radius()
	fill := hexStyle(e.Style.Color)
	outer := r
	if selected {
		fill = hexStyle(sociogram.SelectedFill)
		outer = r + math.Max(sociogram.SelectedBorderWidth, v.cellW/v.zoom*0.75)
	}

	ccol, crow := v.toCell(e.Pos, cw, ch)
	spanC := int(math.Ceil(outer*v.zoom/v.cellW)) + 1
	spanR := int(math.Ceil(outer*v.zoom/v.cellH)) + 1
	for row := crow - spanR; row <= crow+spanR; row++ {
		for col := ccol - spanC; col <= ccol+spanC; col++ {
			d := v.toScene(col, row, cw, ch).Sub(e.Pos).Len()
			switch {
			case d <= r:
				ed.setCanvasCell(col, row, ' ', fill)
			case selected && d <= outer:
				ed.setCanvasCell(col, row, ' ', hexStyle(sociogram.SelectedBorder))
			}
		}
	}
	// Always visible, however far out we zoom
	ed.setCanvasCell(ccol, crow, ' ', fill)
}

func (ed *Editor) drawSidebar(w, h int) {
	divX := w - ed.sidebarWidth
	for y := 0; y < h-2; y++ {
		ed.screen.SetContent(divX, y, '│', nil, styleBorder)
	}

	x := divX + 2
	width := ed.sidebarWidth - 3
	put := func(line int, s string, style tcell.Style) {
		y := line - ed.sidebarScroll
		if y < 0 || y >= h-2 {
			return
		}
		ed.drawString(x, y, truncate(s, width), style)
	}

	put(0, "Sociogram", styleSidebarH)
	put(6, "Names", styleSidebarH)

	rows := ed.formRows()
	for i, row := range rows {
		style := styleSidebar
		if i == ed.focus {
			style = styleMenuSel
		}
		label := ed.fieldLabel(row)
		switch row.kind {
		case fieldCount, fieldFontSize, fieldRadius:
			put(row.line, fmt.Sprintf("%-*s◂ %s ▸", valueCol, label, ed.fieldValue(row)), style)
		case fieldName:
			put(row.line, label+" "+ed.fieldValue(row), style)
		default:
			put(row.line, label, style)
		}
	}

	line := rows[len(rows)-1].line + 2
	if ed.formNeedsRebuild() {
		put(line, "Form changed: press r", styleMsgWarning)
	}
	line += 2
	ed.drawInspector(line, put)
}

// drawInspector shows the open inline editor, or scene totals when none is
// open.
func (ed *Editor) drawInspector(line int, put func(int, string, tcell.Style)) {
	in := ed.session.Inspector()
	switch in.Kind() {
	case sociogram.InspectorEntity:
		st := in.EntityStyle()
		put(line, "Entity: "+in.Entity(), styleSidebarH)
		put(line+1, "Color  "+st.Color, styleSidebar)
		ed.drawSwatch(line+1, st.Color)
		put(line+2, fmt.Sprintf("Size   %d", st.Size), styleSidebar)
		put(line+4, "c:Color  <>:Size", styleSidebarDim)
		put(line+5, "Enter:Save  Esc:Close", styleSidebarDim)
	case sociogram.InspectorLink:
		st := in.LinkStyle()
		from, to := in.Link()
		put(line, "Link: "+from+" → "+to, styleSidebarH)
		put(line+1, "Color  "+st.Color, styleSidebar)
		ed.drawSwatch(line+1, st.Color)
		put(line+2, fmt.Sprintf("Width  %d", st.Thickness), styleSidebar)
		put(line+4, "c:Color  <>:Width  d:Delete", styleSidebarDim)
		put(line+5, "Enter:Save  Esc:Close", styleSidebarDim)
	default:
		scene := ed.session.Scene()
		put(line, fmt.Sprintf("Entities: %d  Links: %d", len(scene.Entities), len(scene.Links)), styleSidebarDim)
		if src, ok := ed.session.Gesture().Pending(); ok {
			put(line+1, "Linking from "+src, styleSidebar)
		}
	}
}

// drawSwatch paints a small color sample after a "Color  #rrggbb" row.
func (ed *Editor) drawSwatch(line int, hex string) {
	w, h := ed.screen.Size()
	y := line - ed.sidebarScroll
	if y < 0 || y >= h-2 {
		return
	}
	x := w - ed.sidebarWidth + 2 + len("Color  #rrggbb ")
	for i := 0; i < 3 && x+i < w; i++ {
		ed.screen.SetContent(x+i, y, ' ', nil, hexStyle(hex))
	}
}

// flashes reports whether messages of type t flash when shown.
func flashes(t MessageType) bool {
	switch t {
	case MsgError, MsgSuccess, MsgWarning:
		return true
	default:
		return false
	}
}

// flashInverted reports whether a flashing message is drawn inverted
// elapsed milliseconds after it was shown: normal, inverted, normal,
// inverted in 125ms phases, then normal.
func flashInverted(elapsed int64) bool {
	if elapsed < 0 || elapsed >= flashDuration {
		return false
	}
	phase := elapsed / 125
	return phase == 1 || phase == 3
}

func (ed *Editor) drawStatusBar(w, h int) {
	y := h - 1

	// Background
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	ed.drawString(1, y, fmt.Sprintf("zoom %.2f", ed.view.zoom), styleStatus)

	// Mode
	modeStr := ed.modeString()
	ed.drawString(w/2-len([]rune(modeStr))/2, y, modeStr, styleStatus)

	// Message
	if ed.message != "" {
		style := styleMsgInfo
		switch ed.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		case MsgWarning:
			style = styleMsgWarning
		}
		if flashes(ed.messageType) {
			if start := ed.messageFlashStart.Load(); start > 0 && flashInverted(time.Now().UnixMilli()-start) {
				style = style.Reverse(true)
			}
		}
		msg := truncate(ed.message, w/2)
		ed.drawString(w-len([]rune(msg))-2, y, msg, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	ed.drawString(1, y, truncate(ed.helpString(), w-2), styleHelp)
}

func (ed *Editor) drawInputBox(w, h int) {
	boxW := 50
	boxH := 3
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	ed.drawBox(boxX, boxY, boxW, boxH, styleInput)
	ed.drawString(boxX+2, boxY+1, ed.inputPrompt, styleInput)
	ed.drawString(boxX+2+len([]rune(ed.inputPrompt)), boxY+1, truncate(ed.inputBuffer, boxW-6-len(ed.inputPrompt))+"_", styleInput)
}

var helpLines = []string{
	"Canvas",
	"  click entity        start / finish a link",
	"  click link          edit link",
	"  right-click entity  edit entity",
	"  drag entity         move it",
	"  Alt+drag entity     move its label",
	"  click background    cancel",
	"  Shift+arrows        pan     +/- zoom   f fit",
	"",
	"Entity editor",
	"  c color  < > size  Enter save  Esc close",
	"Link editor",
	"  c color  < > width  d delete  Enter save  Esc close",
	"",
	"Form",
	"  Tab/Shift-Tab focus  ←/→ adjust  Enter edit",
	"",
	"r rebuild   x export   ? help   q quit",
}

func (ed *Editor) drawHelp(w, h int) {
	boxW := 60
	boxH := len(helpLines) + 4
	boxX := max(0, (w-boxW)/2)
	boxY := max(0, (h-boxH)/2)
	ed.drawTitledBox(boxX, boxY, boxW, boxH, "Help")
	for i, l := range helpLines {
		ed.drawString(boxX+2, boxY+2+i, truncate(l, boxW-4), styleSidebar)
	}
}

func (ed *Editor) drawAlert(w, h int) {
	boxW := max(40, len([]rune(ed.alert))+6)
	if boxW > w {
		boxW = w
	}
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	ed.drawBox(boxX, boxY, boxW, boxH, styleAlert)
	ed.drawString(boxX+2, boxY+1, truncate(ed.alert, boxW-4), styleAlert)
	ed.drawString(boxX+2, boxY+3, "Enter: OK", styleAlert)
}

// drawTitledBox draws a bordered box with optional title
func (ed *Editor) drawTitledBox(x, y, w, h int, title string) {
	ed.drawBox(x, y, w, h, styleDefault)
	if title != "" {
		titleX := x + (w-len(title)-2)/2
		ed.screen.SetContent(titleX, y, ' ', nil, styleBorder)
		ed.drawString(titleX+1, y, title, styleSidebarH)
		ed.screen.SetContent(titleX+1+len(title), y, ' ', nil, styleBorder)
	}
}

func (ed *Editor) drawBox(x, y, w, h int, style tcell.Style) {
	// Corners
	ed.screen.SetContent(x, y, '┌', nil, styleBorder)
	ed.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	ed.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	ed.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)

	// Horizontal borders
	for i := x + 1; i < x+w-1; i++ {
		ed.screen.SetContent(i, y, '─', nil, styleBorder)
		ed.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}

	// Vertical borders
	for i := y + 1; i < y+h-1; i++ {
		ed.screen.SetContent(x, i, '│', nil, styleBorder)
		ed.screen.SetContent(x+w-1, i, '│', nil, styleBorder)
	}

	// Fill
	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			ed.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (ed *Editor) drawString(x, y int, s string, style tcell.Style) {
	i := 0
	for _, r := range s {
		ed.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func (ed *Editor) modeString() string {
	switch ed.mode {
	case ModeInput:
		return "INPUT"
	case ModeHelp:
		return "HELP"
	case ModeAlert:
		return "ERROR"
	}
	g := ed.session.Gesture()
	switch g.Kind() {
	case sociogram.GestureLinkPending:
		return "LINK FROM " + g.Entity()
	case sociogram.GestureMove:
		return "MOVE"
	case sociogram.GestureLabelDrag:
		return "LABEL"
	}
	switch ed.session.Inspector().Kind() {
	case sociogram.InspectorEntity:
		return "EDIT ENTITY"
	case sociogram.InspectorLink:
		return "EDIT LINK"
	}
	return ""
}

func (ed *Editor) helpString() string {
	switch ed.mode {
	case ModeInput:
		return "Type text  Enter:Confirm  Esc:Cancel"
	case ModeHelp:
		return "Any key: close"
	case ModeAlert:
		return "Enter/Esc: dismiss"
	}
	switch ed.session.Inspector().Kind() {
	case sociogram.InspectorEntity:
		return "c:Color  <>:Size  Enter:Save  Esc:Close"
	case sociogram.InspectorLink:
		return "c:Color  <>:Width  d:Delete  Enter:Save  Esc:Close"
	}
	if ed.focus >= 0 {
		return "↑↓/Tab:Focus  ←→:Adjust  Enter:Edit  Esc:Canvas  r:Rebuild  x:Export"
	}
	return "Click:Link  Right-click:Edit  Alt+drag:Label  Tab:Form  r:Rebuild  x:Export  ?:Help  q:Quit"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		if maxLen < 0 {
			maxLen = 0
		}
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
