// Command socioedit is a TUI editor for sociograms.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ha1tch/sociogram/internal/config"
	"github.com/ha1tch/sociogram/internal/logging"
	"github.com/ha1tch/sociogram/pkg/sociogram"
)

// Editor holds all editor state
type Editor struct {
	screen      tcell.Screen
	session     *sociogram.Session
	cfg         *config.Config
	logger      *log.Logger
	mode        Mode
	message     string
	messageType MessageType

	// Canvas viewport
	view viewport

	// Left-button press tracking
	leftMouseDown bool
	leftDownX     int
	leftDownY     int
	leftDownHit   sociogram.Hit
	leftDownAlt   bool
	leftMoved     bool

	// Right-button tracking
	rightMouseDown bool
	rightDownX     int
	rightDownY     int
	rightDownHit   sociogram.Hit

	// Middle-button tracking (canvas pan)
	middleMouseDown bool
	middleDownX     int
	middleDownY     int
	panStartX       int
	panStartY       int

	// Sidebar form
	sidebarWidth  int
	focus         int // index into formRows(), -1 = canvas
	sidebarScroll int

	// Input state
	inputBuffer string
	inputPrompt string
	inputAction func(string)

	// Modal alert text (duplicate names)
	alert string

	// Unix milliseconds when the current message was shown. Read by the
	// ticker goroutine.
	messageFlashStart atomic.Int64

	// Path of the last successful export
	lastExport string

	// Replaced in tests.
	openViewer func(path string) error
}

// Mode represents editor mode
type Mode int

const (
	ModeCanvas Mode = iota
	ModeInput       // text prompt (name or color)
	ModeHelp        // help overlay
	ModeAlert       // blocking error modal
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo    MessageType = iota // Informative, no flash
	MsgError                      // Errors, flash
	MsgSuccess                    // State changes, flash
	MsgWarning                    // Warnings, flash
)

const flashDuration = 500 // milliseconds

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath   string
		verbose   bool
		exportDir string
		open      bool
	)

	root := &cobra.Command{
		Use:          "socioedit",
		Short:        "Interactive sociogram editor",
		Long:         `socioedit places entities on a circle and lets you link them, restyle them and export the result as sociogram.jpg.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("export-dir") {
				cfg.Export.Dir = exportDir
			}
			if cmd.Flags().Changed("open") {
				cfg.Export.OpenViewer = open
			}

			level, err := logging.Level(cfg.Log.Level, verbose)
			if err != nil {
				return err
			}
			logFile, err := logging.OpenFile(cfg.LogPath())
			if err != nil {
				return err
			}
			defer logFile.Close()
			logger := logging.New(logFile, level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

			return runEditor(cmd.Context(), cfg)
		},
	}

	root.Flags().StringVarP(&cfgPath, "config", "c", config.Path(), "config file")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVarP(&exportDir, "export-dir", "o", "", "directory sociogram.jpg is written to")
	root.Flags().BoolVar(&open, "open", false, "open exported images in the system viewer")
	return root
}

func runEditor(ctx context.Context, cfg *config.Config) error {
	logger := logging.FromContext(ctx)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.Clear()
	defer screen.Fini()

	ed := newEditor(screen, cfg, logger)
	logger.Info("editor started", "export_dir", cfg.Export.Dir)
	ed.rebuild()
	ed.run()
	logger.Info("editor stopped")
	return nil
}

// newEditor builds an editor around a fresh session seeded from cfg.
func newEditor(screen tcell.Screen, cfg *config.Config, logger *log.Logger) *Editor {
	return &Editor{
		screen:       screen,
		session:      sociogram.NewSession(cfg.NewForm(), logger),
		cfg:          cfg,
		logger:       logger,
		mode:         ModeCanvas,
		view:         newViewport(cfg.Editor),
		sidebarWidth: cfg.Editor.SidebarWidth,
		focus:        -1,
		openViewer:   openInViewer,
	}
}

func (ed *Editor) run() {
	// Wake the loop while a message is flashing
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			start := ed.messageFlashStart.Load()
			if start == 0 {
				continue
			}
			elapsed := time.Now().UnixMilli() - start
			if elapsed >= 0 && elapsed < flashDuration+200 {
				ed.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return // screen finalised
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		case *tcell.EventInterrupt:
			// Refresh event for flash animation - just redraw
		}
	}
}

// handleKey dispatches a key event and reports whether the editor should quit.
func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	switch ed.mode {
	case ModeInput:
		return ed.handleInputKey(ev)
	case ModeHelp:
		ed.mode = ModeCanvas
		return false
	case ModeAlert:
		switch ev.Key() {
		case tcell.KeyEnter, tcell.KeyEscape:
			ed.alert = ""
			ed.mode = ModeCanvas
		}
		return false
	}

	// The open inline editor gets first pick.
	if ed.session.Inspector().Open() && ed.handleInspectorKey(ev) {
		return false
	}
	if ed.focus >= 0 && ed.handleFormKey(ev) {
		return false
	}
	return ed.handleCanvasKey(ev)
}

func (ed *Editor) handleCanvasKey(ev *tcell.EventKey) bool {
	mod := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyTab:
		ed.moveFocus(1)
		return false
	case tcell.KeyBacktab:
		ed.moveFocus(-1)
		return false
	case tcell.KeyEscape:
		ed.session.CancelGesture()
		ed.session.CloseInspector()
		ed.focus = -1
		return false
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown:
		if mod&tcell.ModShift != 0 || ed.focus < 0 {
			ed.panKey(ev.Key())
		}
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'r':
		ed.rebuild()
	case 'x':
		ed.export()
	case '?':
		ed.mode = ModeHelp
	case '+', '=':
		ed.view.zoomBy(1.25)
	case '-', '_':
		ed.view.zoomBy(0.8)
	case 'f':
		ed.fitView()
	}
	return false
}

// handleInspectorKey handles keys for the open entity or link editor and
// reports whether the key was consumed.
func (ed *Editor) handleInspectorKey(ev *tcell.EventKey) bool {
	in := ed.session.Inspector()
	switch ev.Key() {
	case tcell.KeyEnter:
		ed.saveInspector()
		return true
	case tcell.KeyEscape:
		ed.session.CloseInspector()
		return true
	case tcell.KeyDelete:
		if in.Kind() == sociogram.InspectorLink {
			ed.deleteLink()
			return true
		}
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'c':
		ed.promptColor()
	case '<', ',':
		ed.stepInspectorSize(-1)
	case '>', '.':
		ed.stepInspectorSize(1)
	case 'd':
		if in.Kind() != sociogram.InspectorLink {
			return false
		}
		ed.deleteLink()
	default:
		return false
	}
	return true
}

func (ed *Editor) handleInputKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ed.inputAction = nil
		ed.mode = ModeCanvas
	case tcell.KeyEnter:
		action := ed.inputAction
		buf := ed.inputBuffer
		ed.inputAction = nil
		ed.inputBuffer = ""
		ed.mode = ModeCanvas
		if action != nil {
			action(buf)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(ed.inputBuffer); len(r) > 0 {
			ed.inputBuffer = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		ed.inputBuffer += string(ev.Rune())
	}
	return false
}

// prompt opens the text input box.
func (ed *Editor) prompt(label, initial string, action func(string)) {
	ed.inputPrompt = label
	ed.inputBuffer = initial
	ed.inputAction = action
	ed.mode = ModeInput
	ed.releaseButtons()
}

// rebuild lays the form's names out again. A duplicate name opens the alert
// modal and changes nothing.
func (ed *Editor) rebuild() {
	err := ed.session.Rebuild()
	var dup *sociogram.DuplicateNameError
	switch {
	case errors.As(err, &dup):
		ed.alert = fmt.Sprintf("Duplicate name %q. Names must be unique.", dup.Name)
		ed.mode = ModeAlert
		ed.releaseButtons()
		return
	case err != nil:
		ed.showMessage("Rebuild failed: "+err.Error(), MsgError)
		return
	}
	ed.fitView()
	ed.showMessage(fmt.Sprintf("Rebuilt: %d entities", len(ed.session.Scene().Entities)), MsgSuccess)
}

func (ed *Editor) showMessage(msg string, msgType MessageType) {
	ed.message = msg
	ed.messageType = msgType
	ed.messageFlashStart.Store(time.Now().UnixMilli())
	// Trigger immediate refresh for flash animation
	if ed.screen != nil {
		ed.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}
