package sociogram

import (
	"io"

	"github.com/charmbracelet/log"
)

// Session owns the form, the style table, the live scene and the
// interaction state. Every method is meant to be called from a single
// event loop.
type Session struct {
	Form   *Form
	Styles *StyleTable

	scene     *Scene
	gesture   Gesture
	inspector Inspector
	gen       uint64
	logger    *log.Logger
}

// NewSession returns a session with an empty scene. A nil form gets
// defaults; a nil logger discards output.
func NewSession(form *Form, logger *log.Logger) *Session {
	if form == nil {
		form = NewForm()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		Form:   form,
		Styles: NewStyleTable(),
		scene:  NewScene(0, form.FontSize, form.Radius),
		logger: logger,
	}
}

// Scene returns the live scene. It is never nil.
func (s *Session) Scene() *Scene { return s.scene }

// Gesture returns the current pointer gesture.
func (s *Session) Gesture() Gesture { return s.gesture }

// Inspector returns the open inline editor.
func (s *Session) Inspector() Inspector { return s.inspector }

// Selected reports whether name is the pending link source.
func (s *Session) Selected(name string) bool {
	src, ok := s.gesture.Pending()
	return ok && src == name
}

// Rebuild replaces the scene with a fresh circular layout of the form's
// names. On a duplicate name it returns *DuplicateNameError and leaves the
// session untouched. Links, manual label offsets, the pending selection,
// the open editor and any drag are discarded; saved styles are reapplied.
func (s *Session) Rebuild() error {
	next, err := BuildScene(s.Form.Names, s.Styles, s.Form.FontSize, s.Form.Radius, s.gen+1)
	if err != nil {
		s.logger.Warn("rebuild rejected", "err", err)
		return err
	}
	s.gen++
	s.scene = next
	s.gesture = idleGesture()
	s.inspector = Inspector{}
	s.logger.Info("scene rebuilt", "gen", s.gen, "entities", len(next.Entities), "radius", next.Radius())
	return nil
}

// SetFontSize updates the form and re-places labels in the live scene.
func (s *Session) SetFontSize(px int) int {
	px = s.Form.SetFontSize(px)
	s.scene.SetFontSize(px)
	return px
}

func (s *Session) stale(h Hit) bool {
	if h.Gen != s.scene.gen {
		s.logger.Debug("ignoring stale hit", "hit_gen", h.Gen, "gen", s.scene.gen)
		return true
	}
	return false
}

func (s *Session) cancelPending() {
	if s.gesture.kind == GestureLinkPending {
		s.gesture = idleGesture()
	}
}

// Tap handles a primary click that did not turn into a drag.
//
// On an entity it drives the two-click link gesture: the first entity
// becomes the pending source, a second, different entity receives a link
// from it, and clicking the source again cancels. On a link it opens the
// link editor. On empty canvas it cancels the gesture and closes editors.
func (s *Session) Tap(h Hit) {
	if s.stale(h) {
		return
	}
	switch h.Kind {
	case HitEntity:
		s.inspector = Inspector{}
		if s.scene.Entity(h.Entity) == nil {
			return
		}
		src, ok := s.gesture.Pending()
		if !ok {
			s.gesture = linkPending(h.Entity)
			return
		}
		s.gesture = idleGesture()
		if src == h.Entity {
			return
		}
		if _, added, err := s.scene.AddLink(src, h.Entity, DefaultLinkStyle()); err != nil {
			s.logger.Warn("link not created", "from", src, "to", h.Entity, "err", err)
		} else if added {
			s.logger.Info("link created", "from", src, "to", h.Entity)
		}
	case HitLink:
		s.cancelPending()
		l := s.scene.Link(h.From, h.To)
		if l == nil {
			s.inspector = Inspector{}
			return
		}
		s.inspector = linkInspector(l)
	default:
		s.cancelPending()
		s.inspector = Inspector{}
	}
}

// ContextTap handles a secondary click. It always cancels a pending link
// source; on an entity it opens the entity editor.
func (s *Session) ContextTap(h Hit) {
	if s.stale(h) {
		return
	}
	s.cancelPending()
	if h.Kind != HitEntity {
		return
	}
	e := s.scene.Entity(h.Entity)
	if e == nil {
		return
	}
	s.inspector = entityInspector(e)
}

// BeginMove starts dragging the entity under h, grabbed at p.
// A pending link source is cancelled.
func (s *Session) BeginMove(h Hit, p Point) bool {
	if s.stale(h) || h.Kind != HitEntity || s.gesture.Dragging() {
		return false
	}
	e := s.scene.Entity(h.Entity)
	if e == nil {
		return false
	}
	s.gesture = moving(e.Name, p.Sub(e.Pos))
	return true
}

// BeginLabelDrag starts dragging the label of the entity under h.
// The entity itself stays put until EndDrag. A pending link source is
// cancelled.
func (s *Session) BeginLabelDrag(h Hit) bool {
	if s.stale(h) || h.Kind != HitEntity || s.gesture.Dragging() {
		return false
	}
	if s.scene.Entity(h.Entity) == nil {
		return false
	}
	s.gesture = labelDrag(h.Entity)
	return true
}

// DragTo applies pointer movement to the active drag and reports whether
// anything changed.
func (s *Session) DragTo(p Point) bool {
	e := s.scene.Entity(s.gesture.entity)
	if e == nil {
		return false
	}
	switch s.gesture.kind {
	case GestureMove:
		e.Pos = p.Sub(s.gesture.grab)
		return true
	case GestureLabelDrag:
		s.scene.SetLabelOffset(e, p.Sub(e.Pos))
		return true
	}
	return false
}

// EndDrag finishes a move or label drag.
func (s *Session) EndDrag() {
	if !s.gesture.Dragging() {
		return
	}
	if s.gesture.kind == GestureLabelDrag {
		if e := s.scene.Entity(s.gesture.entity); e != nil {
			off := e.LabelOffset()
			s.logger.Debug("label moved", "entity", e.Name, "dx", off.X, "dy", off.Y)
		}
	}
	s.gesture = idleGesture()
}

// CancelGesture drops any pending link source or drag.
func (s *Session) CancelGesture() {
	s.gesture = idleGesture()
}

// CloseInspector closes the open editor. Live edits stay on the scene but
// nothing is saved to the style table.
func (s *Session) CloseInspector() {
	s.inspector = Inspector{}
}

// SetEntityColor changes the entity editor's color and shows it live.
func (s *Session) SetEntityColor(c string) error {
	if s.inspector.kind != InspectorEntity {
		return nil
	}
	hex, err := ParseColor(c)
	if err != nil {
		return err
	}
	s.inspector.entityDft.Color = hex
	if e := s.scene.Entity(s.inspector.entity); e != nil {
		e.Style.Color = hex
	}
	return nil
}

// SetEntitySize changes the entity editor's size and shows it live.
func (s *Session) SetEntitySize(n int) int {
	if s.inspector.kind != InspectorEntity {
		return 0
	}
	n = clampInt(n, MinEntitySize, MaxEntitySize)
	s.inspector.entityDft.Size = n
	if e := s.scene.Entity(s.inspector.entity); e != nil {
		e.Style.Size = n
		s.scene.placeLabel(e)
	}
	return n
}

// SaveEntity applies the entity editor's draft, records it in the style
// table so it survives rebuilds, and closes the editor.
func (s *Session) SaveEntity() {
	if s.inspector.kind != InspectorEntity {
		return
	}
	name, st := s.inspector.entity, s.inspector.entityDft
	s.Styles.Set(name, st)
	if e := s.scene.Entity(name); e != nil {
		e.Style = st
	}
	s.scene.PlaceLabels()
	s.inspector = Inspector{}
	s.logger.Info("entity style saved", "entity", name, "color", st.Color, "size", st.Size)
}

func (s *Session) inspectedLink() *Link {
	if s.inspector.kind != InspectorLink {
		return nil
	}
	return s.scene.Link(s.inspector.from, s.inspector.to)
}

// SetLinkColor changes the link editor's color and shows it live.
func (s *Session) SetLinkColor(c string) error {
	if s.inspector.kind != InspectorLink {
		return nil
	}
	hex, err := ParseColor(c)
	if err != nil {
		return err
	}
	s.inspector.linkDft.Color = hex
	if l := s.inspectedLink(); l != nil {
		l.Style.Color = hex
	}
	return nil
}

// SetLinkThickness changes the link editor's thickness and shows it live.
func (s *Session) SetLinkThickness(n int) int {
	if s.inspector.kind != InspectorLink {
		return 0
	}
	n = clampInt(n, MinThickness, MaxThickness)
	s.inspector.linkDft.Thickness = n
	if l := s.inspectedLink(); l != nil {
		l.Style.Thickness = n
	}
	return n
}

// SaveLink applies the link editor's draft and closes the editor.
func (s *Session) SaveLink() {
	if l := s.inspectedLink(); l != nil {
		l.Style = s.inspector.linkDft
		s.logger.Debug("link style saved", "from", l.From, "to", l.To, "color", l.Style.Color, "thickness", l.Style.Thickness)
	}
	s.inspector = Inspector{}
}

// DeleteLink removes the link being edited and closes the editor.
func (s *Session) DeleteLink() bool {
	if s.inspector.kind != InspectorLink {
		return false
	}
	from, to := s.inspector.from, s.inspector.to
	removed := s.scene.RemoveLink(from, to)
	s.inspector = Inspector{}
	if removed {
		s.logger.Info("link deleted", "from", from, "to", to)
	}
	return removed
}
