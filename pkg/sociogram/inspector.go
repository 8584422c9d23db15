package sociogram

// InspectorKind enumerates the inline editors. At most one is open.
type InspectorKind int

const (
	InspectorNone InspectorKind = iota
	InspectorEntity
	InspectorLink
)

func (k InspectorKind) String() string {
	switch k {
	case InspectorNone:
		return "none"
	case InspectorEntity:
		return "entity"
	case InspectorLink:
		return "link"
	}
	return "unknown"
}

// Inspector is the open inline editor, its target and its draft values.
// The zero value is the closed editor.
type Inspector struct {
	kind      InspectorKind
	entity    string
	from, to  string
	entityDft EntityStyle
	linkDft   LinkStyle
}

// Kind returns which editor is open.
func (in Inspector) Kind() InspectorKind { return in.kind }

// Open reports whether any editor is open.
func (in Inspector) Open() bool { return in.kind != InspectorNone }

// Entity returns the target of the entity editor.
func (in Inspector) Entity() string { return in.entity }

// Link returns the target of the link editor.
func (in Inspector) Link() (from, to string) { return in.from, in.to }

// EntityStyle returns the entity editor's draft.
func (in Inspector) EntityStyle() EntityStyle { return in.entityDft }

// LinkStyle returns the link editor's draft.
func (in Inspector) LinkStyle() LinkStyle { return in.linkDft }

func entityInspector(e *Entity) Inspector {
	return Inspector{kind: InspectorEntity, entity: e.Name, entityDft: e.Style}
}

func linkInspector(l *Link) Inspector {
	return Inspector{kind: InspectorLink, from: l.From, to: l.To, linkDft: l.Style}
}
