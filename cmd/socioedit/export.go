package main

import (
	"os/exec"
	"runtime"

	"github.com/ha1tch/sociogram/pkg/render"
)

// export writes the live scene to sociogram.jpg in the export directory.
// The pending link source keeps its selection highlight in the image.
func (ed *Editor) export() {
	scene := ed.session.Scene()
	opts := render.DefaultJPEGOptions()
	if src, ok := ed.session.Gesture().Pending(); ok {
		opts.Selected = src
	}

	path, err := render.ExportFile(ed.cfg.Export.Dir, scene, opts)
	if err != nil {
		ed.logger.Error("export failed", "dir", ed.cfg.Export.Dir, "err", err)
		ed.showMessage("Export failed: "+err.Error(), MsgError)
		return
	}
	ed.lastExport = path
	ed.logger.Info("exported", "path", path, "entities", len(scene.Entities), "links", len(scene.Links))

	if ed.cfg.Export.OpenViewer && ed.openViewer != nil {
		if err := ed.openViewer(path); err != nil {
			ed.logger.Warn("viewer failed", "path", path, "err", err)
			ed.showMessage("Exported "+path+" (viewer failed: "+err.Error()+")", MsgWarning)
			return
		}
	}
	ed.showMessage("Exported "+path, MsgSuccess)
}

// openInViewer opens path with the system image viewer without waiting.
func openInViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default: // linux, etc
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
