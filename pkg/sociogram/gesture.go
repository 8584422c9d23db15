package sociogram

// GestureKind enumerates the pointer gestures a session can be in.
// Exactly one is active at a time, so a pending link source cannot
// coexist with a drag.
type GestureKind int

const (
	// GestureIdle: nothing in progress.
	GestureIdle GestureKind = iota
	// GestureLinkPending: one entity was clicked and waits for a link target.
	GestureLinkPending
	// GestureMove: an entity is being dragged to a new position.
	GestureMove
	// GestureLabelDrag: an entity's label is being dragged; the entity is pinned.
	GestureLabelDrag
)

func (k GestureKind) String() string {
	switch k {
	case GestureIdle:
		return "idle"
	case GestureLinkPending:
		return "link-pending"
	case GestureMove:
		return "move"
	case GestureLabelDrag:
		return "label-drag"
	}
	return "unknown"
}

// Gesture is the current gesture and the entity it concerns.
type Gesture struct {
	kind   GestureKind
	entity string
	grab   Point // pointer minus entity position at the start of a move
}

// Kind returns the gesture kind.
func (g Gesture) Kind() GestureKind { return g.kind }

// Entity returns the entity the gesture concerns; empty when idle.
func (g Gesture) Entity() string { return g.entity }

// Pending returns the pending link source, if any.
func (g Gesture) Pending() (string, bool) {
	if g.kind == GestureLinkPending {
		return g.entity, true
	}
	return "", false
}

// Dragging reports whether a move or label drag is in progress.
func (g Gesture) Dragging() bool {
	return g.kind == GestureMove || g.kind == GestureLabelDrag
}

func idleGesture() Gesture { return Gesture{} }

func linkPending(name string) Gesture {
	return Gesture{kind: GestureLinkPending, entity: name}
}

func moving(name string, grab Point) Gesture {
	return Gesture{kind: GestureMove, entity: name, grab: grab}
}

func labelDrag(name string) Gesture {
	return Gesture{kind: GestureLabelDrag, entity: name}
}
