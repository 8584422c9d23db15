package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

type fieldKind int

const (
	fieldCount fieldKind = iota
	fieldFontSize
	fieldRadius
	fieldName
	fieldRebuild
	fieldExport
)

// formRow is one focusable sidebar row. line is relative to the top of the
// sidebar content, before scrolling.
type formRow struct {
	kind  fieldKind
	index int // name slot for fieldName
	line  int
}

// Sidebar column where numeric values start, relative to the content edge.
const valueCol = 12

// formRows lays out the sidebar form.
func (ed *Editor) formRows() []formRow {
	rows := []formRow{
		{kind: fieldCount, line: 2},
		{kind: fieldFontSize, line: 3},
		{kind: fieldRadius, line: 4},
	}
	line := 7 // below the "Names" heading
	for i := range ed.session.Form.Names {
		rows = append(rows, formRow{kind: fieldName, index: i, line: line})
		line++
	}
	line++
	rows = append(rows,
		formRow{kind: fieldRebuild, line: line},
		formRow{kind: fieldExport, line: line + 1},
	)
	return rows
}

func (ed *Editor) focusedRow() (formRow, bool) {
	rows := ed.formRows()
	if ed.focus < 0 || ed.focus >= len(rows) {
		return formRow{}, false
	}
	return rows[ed.focus], true
}

// moveFocus steps through the form rows; stepping past either end returns
// focus to the canvas.
func (ed *Editor) moveFocus(d int) {
	n := len(ed.formRows())
	switch {
	case ed.focus < 0 && d > 0:
		ed.focus = 0
	case ed.focus < 0:
		ed.focus = n - 1
	default:
		ed.focus += d
	}
	if ed.focus < 0 || ed.focus >= n {
		ed.focus = -1
		return
	}
	ed.ensureFocusVisible()
}

func (ed *Editor) ensureFocusVisible() {
	row, ok := ed.focusedRow()
	if !ok {
		return
	}
	_, h := ed.screen.Size()
	visible := h - 2
	if row.line < ed.sidebarScroll {
		ed.sidebarScroll = row.line
	} else if row.line-ed.sidebarScroll >= visible {
		ed.sidebarScroll = row.line - visible + 1
	}
}

func (ed *Editor) scrollSidebar(d int) {
	_, h := ed.screen.Size()
	rows := ed.formRows()
	last := rows[len(rows)-1].line + 8 // room for the inspector panel
	limit := max(0, last-(h-2)+1)
	ed.sidebarScroll = min(limit, max(0, ed.sidebarScroll+d))
}

// handleFormKey handles keys while a sidebar row has focus and reports
// whether the key was consumed.
func (ed *Editor) handleFormKey(ev *tcell.EventKey) bool {
	row, ok := ed.focusedRow()
	if !ok {
		ed.focus = -1
		return false
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		switch ev.Key() {
		case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown:
			return false // pan
		}
	}

	switch ev.Key() {
	case tcell.KeyUp:
		ed.moveFocus(-1)
	case tcell.KeyDown:
		ed.moveFocus(1)
	case tcell.KeyLeft:
		return ed.stepField(row, -1)
	case tcell.KeyRight:
		return ed.stepField(row, 1)
	case tcell.KeyEnter:
		ed.activate(row)
	case tcell.KeyEscape:
		ed.focus = -1
	default:
		return false
	}
	return true
}

// stepField nudges a numeric field and reports whether row is numeric.
func (ed *Editor) stepField(row formRow, dir int) bool {
	form := ed.session.Form
	switch row.kind {
	case fieldCount:
		form.SetCount(form.Count() + dir)
		ed.clampFocus()
	case fieldFontSize:
		ed.session.SetFontSize(form.FontSize + dir)
	case fieldRadius:
		form.SetRadius(form.Radius + 10*dir)
	default:
		return false
	}
	return true
}

// clampFocus keeps focus on a valid row after the name list shrinks.
func (ed *Editor) clampFocus() {
	if n := len(ed.formRows()); ed.focus >= n {
		ed.focus = n - 1
	}
}

// activate is Enter (or a click) on a row.
func (ed *Editor) activate(row formRow) {
	form := ed.session.Form
	switch row.kind {
	case fieldCount:
		ed.promptNumber("Count: ", form.Count(), func(n int) {
			form.SetCount(n)
			ed.clampFocus()
		})
	case fieldFontSize:
		ed.promptNumber("Font size: ", form.FontSize, func(n int) { ed.session.SetFontSize(n) })
	case fieldRadius:
		ed.promptNumber("Radius: ", form.Radius, func(n int) { form.SetRadius(n) })
	case fieldName:
		i := row.index
		ed.prompt(fmt.Sprintf("Name %d: ", i+1), form.Names[i], func(s string) {
			form.SetName(i, s)
		})
	case fieldRebuild:
		ed.rebuild()
	case fieldExport:
		ed.export()
	}
}

func (ed *Editor) promptNumber(label string, cur int, apply func(int)) {
	ed.prompt(label, strconv.Itoa(cur), func(s string) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			ed.showMessage(fmt.Sprintf("Not a number: %q", s), MsgError)
			return
		}
		apply(n)
	})
}

// clickSidebar focuses the row under (x, y). Clicking a numeric field's
// arrows steps it; clicking a name or button activates it.
func (ed *Editor) clickSidebar(x, y int) {
	w, h := ed.screen.Size()
	if y >= h-2 {
		return
	}
	line := y + ed.sidebarScroll
	for i, row := range ed.formRows() {
		if row.line != line {
			continue
		}
		ed.focus = i
		switch row.kind {
		case fieldCount, fieldFontSize, fieldRadius:
			decX := w - ed.sidebarWidth + 2 + valueCol
			incX := decX + 3 + len(ed.fieldValue(row))
			switch x {
			case decX:
				ed.stepField(row, -1)
			case incX:
				ed.stepField(row, 1)
			}
		default:
			ed.activate(row)
		}
		return
	}
}

func (ed *Editor) fieldLabel(row formRow) string {
	switch row.kind {
	case fieldCount:
		return "Count"
	case fieldFontSize:
		return "Font size"
	case fieldRadius:
		return "Radius"
	case fieldName:
		return fmt.Sprintf("%2d", row.index+1)
	case fieldRebuild:
		return "[ Rebuild ]"
	case fieldExport:
		return "[ Export ]"
	}
	return ""
}

func (ed *Editor) fieldValue(row formRow) string {
	form := ed.session.Form
	switch row.kind {
	case fieldCount:
		return strconv.Itoa(form.Count())
	case fieldFontSize:
		return strconv.Itoa(form.FontSize)
	case fieldRadius:
		return strconv.Itoa(form.Radius)
	case fieldName:
		return form.Names[row.index]
	}
	return ""
}

// formNeedsRebuild reports whether the form differs from the live scene in
// a way only a rebuild applies.
func (ed *Editor) formNeedsRebuild() bool {
	s := ed.session.Scene()
	if s.Radius() != ed.session.Form.Radius {
		return true
	}
	var names []string
	for _, n := range ed.session.Form.Names {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) != len(s.Entities) {
		return true
	}
	for i, e := range s.Entities {
		if e.Name != names[i] {
			return true
		}
	}
	return false
}
