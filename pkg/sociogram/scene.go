package sociogram

import (
	"math"
	"strings"
)

// Label placement and link routing constants, in pixels.
const (
	LabelMargin = 10
	// BowOffset is how far the control point of a curved link sits from the
	// straight line when a pair of entities is linked in both directions.
	BowOffset = 40
)

// Entity is a named, styled node placed on the layout circle.
type Entity struct {
	Name  string
	Style EntityStyle
	// Angle is the entity's direction from the layout centre in radians,
	// assigned at rebuild.
	Angle float64
	Pos   Point

	label  Point
	manual bool
}

// Radius returns half the entity's diameter.
func (e *Entity) Radius() float64 {
	return float64(e.Style.Size) / 2
}

// LabelOffset returns the label position relative to the entity centre.
func (e *Entity) LabelOffset() Point {
	return e.label
}

// LabelPos returns the label centre in scene coordinates.
func (e *Entity) LabelPos() Point {
	return e.Pos.Add(e.label)
}

// ManualLabel reports whether the label was dragged by hand.
func (e *Entity) ManualLabel() bool {
	return e.manual
}

// Link is a directed, styled edge between two entities.
type Link struct {
	From, To string
	Style    LinkStyle
}

// Scene is the laid-out diagram produced by a rebuild.
type Scene struct {
	Entities []*Entity
	Links    []*Link

	gen      uint64
	fontSize int
	radius   int
	byName   map[string]*Entity
}

// NewScene returns an empty scene.
func NewScene(gen uint64, fontSize, radius int) *Scene {
	return &Scene{
		gen:      gen,
		fontSize: fontSize,
		radius:   radius,
		byName:   make(map[string]*Entity),
	}
}

// Gen returns the rebuild generation that produced the scene.
func (s *Scene) Gen() uint64 { return s.gen }

// FontSize returns the label font size in pixels.
func (s *Scene) FontSize() int { return s.fontSize }

// Radius returns the layout radius in pixels.
func (s *Scene) Radius() int { return s.radius }

// Entity returns the entity with the given name, or nil.
func (s *Scene) Entity(name string) *Entity {
	return s.byName[name]
}

// Link returns the link from -> to, or nil.
func (s *Scene) Link(from, to string) *Link {
	for _, l := range s.Links {
		if l.From == from && l.To == to {
			return l
		}
	}
	return nil
}

// AddLink adds a directed link with the given style.
// It returns false without changes if the link already exists.
func (s *Scene) AddLink(from, to string, st LinkStyle) (*Link, bool, error) {
	if from == to {
		return nil, false, ErrSelfLink
	}
	if s.byName[from] == nil || s.byName[to] == nil {
		return nil, false, ErrUnknownEntity
	}
	if l := s.Link(from, to); l != nil {
		return l, false, nil
	}
	l := &Link{From: from, To: to, Style: st}
	s.Links = append(s.Links, l)
	return l, true, nil
}

// RemoveLink deletes the link from -> to and reports whether it existed.
func (s *Scene) RemoveLink(from, to string) bool {
	for i, l := range s.Links {
		if l.From == from && l.To == to {
			s.Links = append(s.Links[:i], s.Links[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) addEntity(e *Entity) {
	s.Entities = append(s.Entities, e)
	s.byName[e.Name] = e
}

// ValidateNames trims names, drops empty ones and rejects duplicates.
func ValidateNames(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, &DuplicateNameError{Name: name}
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

// CircleAngles returns n angles evenly spaced around a circle, starting at
// the top and running clockwise on screen. Angles are in (-π, π].
func CircleAngles(n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = normalizeAngle(-math.Pi/2 + 2*math.Pi*float64(i)/float64(n))
	}
	return angles
}

// BuildScene validates names and lays one entity per name on a circle of the
// given radius centred on the origin. Styles come from table, falling back to
// the default. A nil table means defaults for everyone.
func BuildScene(names []string, table *StyleTable, fontSize, radius int, gen uint64) (*Scene, error) {
	valid, err := ValidateNames(names)
	if err != nil {
		return nil, err
	}
	s := NewScene(gen, fontSize, radius)
	angles := CircleAngles(len(valid))
	for i, name := range valid {
		st := DefaultEntityStyle()
		if table != nil {
			st = table.StyleFor(name)
		}
		a := angles[i]
		s.addEntity(&Entity{
			Name:  name,
			Style: st,
			Angle: a,
			Pos:   Point{X: math.Cos(a) * float64(radius), Y: math.Sin(a) * float64(radius)},
		})
	}
	s.PlaceLabels()
	return s, nil
}

// LabelDistance returns how far an automatic label sits from the centre of
// an entity with the given diameter.
func LabelDistance(size, fontSize int) float64 {
	return float64(size)/2 + LabelMargin + float64(fontSize)/2
}

// PlaceLabels recomputes every automatic label offset.
func (s *Scene) PlaceLabels() {
	for _, e := range s.Entities {
		s.placeLabel(e)
	}
}

func (s *Scene) placeLabel(e *Entity) {
	if e.manual {
		return
	}
	d := LabelDistance(e.Style.Size, s.fontSize)
	e.label = Point{X: math.Cos(e.Angle) * d, Y: math.Sin(e.Angle) * d}
}

// SetFontSize changes the label font size and re-places automatic labels.
func (s *Scene) SetFontSize(px int) {
	s.fontSize = px
	s.PlaceLabels()
}

// SetLabelOffset pins an entity's label at off relative to its centre.
func (s *Scene) SetLabelOffset(e *Entity, off Point) {
	e.label = off
	e.manual = true
}

// LinkPath returns the curve a link is drawn along: it starts on the source
// boundary, ends on the target boundary and bends through ctrl. Links without
// a reverse partner are straight (ctrl is the midpoint).
func (s *Scene) LinkPath(l *Link) (start, ctrl, end Point, ok bool) {
	from, to := s.byName[l.From], s.byName[l.To]
	if from == nil || to == nil {
		return Point{}, Point{}, Point{}, false
	}
	d := to.Pos.Sub(from.Pos)
	dist := d.Len()
	if dist == 0 {
		return from.Pos, from.Pos, to.Pos, true
	}
	dir := d.Scale(1 / dist)
	perp := Point{X: -dir.Y, Y: dir.X}
	mid := from.Pos.Add(d.Scale(0.5))

	ctrl = mid
	if s.Link(l.To, l.From) != nil {
		ctrl = mid.Add(perp.Scale(BowOffset))
	}
	// Leave each circle along the direction of the control point.
	toCtrl := ctrl.Sub(from.Pos)
	start = from.Pos.Add(toCtrl.Scale(from.Radius() / toCtrl.Len()))
	fromCtrl := ctrl.Sub(to.Pos)
	end = to.Pos.Add(fromCtrl.Scale(to.Radius() / fromCtrl.Len()))
	return start, ctrl, end, true
}

// HitKind says what a hit test landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitEntity
	HitLink
)

// Hit is the result of a hit test against a particular scene generation.
type Hit struct {
	Kind   HitKind
	Gen    uint64
	Entity string
	From   string
	To     string
}

// HitTest returns what lies under p. Entities win over links; later
// entities win over earlier ones. slop widens every target by that many
// pixels.
func (s *Scene) HitTest(p Point, slop float64) Hit {
	for i := len(s.Entities) - 1; i >= 0; i-- {
		e := s.Entities[i]
		if p.Sub(e.Pos).Len() <= e.Radius()+slop {
			return Hit{Kind: HitEntity, Gen: s.gen, Entity: e.Name}
		}
	}
	const steps = 24
	for i := len(s.Links) - 1; i >= 0; i-- {
		l := s.Links[i]
		a, c, b, ok := s.LinkPath(l)
		if !ok {
			continue
		}
		reach := float64(l.Style.Thickness)/2 + slop
		prev := a
		for k := 1; k <= steps; k++ {
			q := QuadPoint(a, c, b, float64(k)/steps)
			if segmentDistance(p, prev, q) <= reach {
				return Hit{Kind: HitLink, Gen: s.gen, From: l.From, To: l.To}
			}
			prev = q
		}
	}
	return Hit{Kind: HitNone, Gen: s.gen}
}

// Background returns a hit on empty canvas for this scene.
func (s *Scene) Background() Hit {
	return Hit{Kind: HitNone, Gen: s.gen}
}
