package main

import (
	"fmt"

	"github.com/ha1tch/sociogram/pkg/sociogram"
)

func (ed *Editor) saveInspector() {
	in := ed.session.Inspector()
	switch in.Kind() {
	case sociogram.InspectorEntity:
		ed.session.SaveEntity()
		ed.showMessage("Saved style for "+in.Entity(), MsgSuccess)
	case sociogram.InspectorLink:
		from, to := in.Link()
		ed.session.SaveLink()
		ed.showMessage(fmt.Sprintf("Saved link %s → %s", from, to), MsgSuccess)
	}
}

func (ed *Editor) deleteLink() {
	from, to := ed.session.Inspector().Link()
	if ed.session.DeleteLink() {
		ed.showMessage(fmt.Sprintf("Deleted link %s → %s", from, to), MsgSuccess)
	}
}

// stepInspectorSize changes entity size by 5 or link width by 1.
func (ed *Editor) stepInspectorSize(dir int) {
	in := ed.session.Inspector()
	switch in.Kind() {
	case sociogram.InspectorEntity:
		ed.session.SetEntitySize(in.EntityStyle().Size + 5*dir)
	case sociogram.InspectorLink:
		ed.session.SetLinkThickness(in.LinkStyle().Thickness + dir)
	}
}

// promptColor asks for a new color for the open editor's target.
func (ed *Editor) promptColor() {
	in := ed.session.Inspector()
	var cur string
	switch in.Kind() {
	case sociogram.InspectorEntity:
		cur = in.EntityStyle().Color
	case sociogram.InspectorLink:
		cur = in.LinkStyle().Color
	default:
		return
	}
	ed.prompt("Color: ", cur, func(s string) {
		var err error
		switch in.Kind() {
		case sociogram.InspectorEntity:
			err = ed.session.SetEntityColor(s)
		case sociogram.InspectorLink:
			err = ed.session.SetLinkColor(s)
		}
		if err != nil {
			ed.showMessage(err.Error(), MsgError)
		}
	})
}
