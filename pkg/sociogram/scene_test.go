package sociogram

import (
	"errors"
	"math"
	"testing"
)

func TestValidateNames(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantDup string
	}{
		{"plain", []string{"A", "B"}, []string{"A", "B"}, ""},
		{"trims", []string{"  A ", "B\t"}, []string{"A", "B"}, ""},
		{"drops empty", []string{"A", "", "   ", "C"}, []string{"A", "C"}, ""},
		{"all empty", []string{"", " "}, []string{}, ""},
		{"duplicate", []string{"A", "A"}, nil, "A"},
		{"duplicate after trim", []string{"Bo", " Bo  "}, nil, "Bo"},
		{"first duplicate wins", []string{"x", "y", "y", "x"}, nil, "y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateNames(tt.in)
			if tt.wantDup != "" {
				var dup *DuplicateNameError
				if !errors.As(err, &dup) {
					t.Fatalf("err = %v, want *DuplicateNameError", err)
				}
				if dup.Name != tt.wantDup {
					t.Errorf("duplicate = %q, want %q", dup.Name, tt.wantDup)
				}
				if !errors.Is(err, ErrDuplicateName) {
					t.Error("errors.Is(err, ErrDuplicateName) = false")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCircleAnglesEvenlySpaced(t *testing.T) {
	for n := 1; n <= MaxCount; n++ {
		angles := CircleAngles(n)
		if len(angles) != n {
			t.Fatalf("n=%d: got %d angles", n, len(angles))
		}
		if math.Abs(angles[0]-(-math.Pi/2)) > 1e-9 {
			t.Errorf("n=%d: first angle = %.4f, want -π/2", n, angles[0])
		}
		step := 2 * math.Pi / float64(n)
		seen := make(map[int64]bool)
		for i, a := range angles {
			if a < -math.Pi-1e-9 || a > math.Pi+1e-9 {
				t.Errorf("n=%d: angle %d = %.4f out of [-π, π]", n, i, a)
			}
			key := int64(math.Round(a * 1e6))
			if seen[key] {
				t.Errorf("n=%d: angle %d duplicated", n, i)
			}
			seen[key] = true
			if i == 0 {
				continue
			}
			d := normalizeAngle(a - angles[i-1])
			if d < 0 {
				d += 2 * math.Pi
			}
			if math.Abs(d-step) > 1e-9 {
				t.Errorf("n=%d: gap %d = %.4f, want %.4f", n, i, d, step)
			}
		}
	}
}

func TestBuildScenePositions(t *testing.T) {
	names := []string{"A", "B", "C", "D"}
	s, err := BuildScene(names, nil, 14, 150, 1)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	if len(s.Entities) != len(names) {
		t.Fatalf("got %d entities, want %d", len(s.Entities), len(names))
	}
	for i, e := range s.Entities {
		if e.Name != names[i] {
			t.Errorf("entity %d = %q, want %q", i, e.Name, names[i])
		}
		if r := e.Pos.Len(); math.Abs(r-150) > 1e-9 {
			t.Errorf("%s at distance %.3f, want 150", e.Name, r)
		}
		if got := math.Atan2(e.Pos.Y, e.Pos.X); math.Abs(normalizeAngle(got-e.Angle)) > 1e-9 {
			t.Errorf("%s angle %.4f does not match position angle %.4f", e.Name, e.Angle, got)
		}
		if e.Style != DefaultEntityStyle() {
			t.Errorf("%s style = %+v, want default", e.Name, e.Style)
		}
	}
	// A is at the top, B to the right.
	if a := s.Entity("A"); math.Abs(a.Pos.X) > 1e-9 || math.Abs(a.Pos.Y+150) > 1e-9 {
		t.Errorf("A at %+v, want (0,-150)", a.Pos)
	}
	if b := s.Entity("B"); math.Abs(b.Pos.X-150) > 1e-9 {
		t.Errorf("B at %+v, want x=150", b.Pos)
	}
}

func TestBuildSceneUsesStyleTable(t *testing.T) {
	table := NewStyleTable()
	table.Set("B", EntityStyle{Color: "#112233", Size: 60})
	s, err := BuildScene([]string{"A", "B"}, table, 14, 100, 1)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	if got := s.Entity("B").Style; got != (EntityStyle{Color: "#112233", Size: 60}) {
		t.Errorf("B style = %+v", got)
	}
	if got := s.Entity("A").Style; got != DefaultEntityStyle() {
		t.Errorf("A style = %+v, want default", got)
	}
}

func TestLabelPlacement(t *testing.T) {
	s, err := BuildScene([]string{"A", "B", "C"}, nil, 14, 150, 1)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	for _, e := range s.Entities {
		want := LabelDistance(e.Style.Size, 14)
		off := e.LabelOffset()
		if math.Abs(off.Len()-want) > 1e-9 {
			t.Errorf("%s label distance %.3f, want %.3f", e.Name, off.Len(), want)
		}
		if math.Abs(normalizeAngle(math.Atan2(off.Y, off.X)-e.Angle)) > 1e-9 {
			t.Errorf("%s label not radial", e.Name)
		}
	}
	// size 40, margin 10, font 14 -> 20 + 10 + 7
	if got := LabelDistance(40, 14); got != 37 {
		t.Errorf("LabelDistance(40, 14) = %v, want 37", got)
	}
}

func TestFontSizeMovesAutomaticLabels(t *testing.T) {
	s, _ := BuildScene([]string{"A", "B", "C", "D", "E"}, nil, 14, 150, 1)
	angles := make(map[string]float64)
	for _, e := range s.Entities {
		angles[e.Name] = e.Angle
	}

	s.SetFontSize(30)

	for _, e := range s.Entities {
		if e.Angle != angles[e.Name] {
			t.Errorf("%s angle changed", e.Name)
		}
		want := LabelDistance(e.Style.Size, 30)
		if got := e.LabelOffset().Len(); math.Abs(got-want) > 1e-9 {
			t.Errorf("%s label distance %.3f, want %.3f", e.Name, got, want)
		}
	}
}

func TestManualLabelSurvivesFontSize(t *testing.T) {
	s, _ := BuildScene([]string{"A", "B"}, nil, 14, 150, 1)
	a := s.Entity("A")
	s.SetLabelOffset(a, Point{X: 5, Y: -70})
	s.SetFontSize(40)
	if got := a.LabelOffset(); got != (Point{X: 5, Y: -70}) {
		t.Errorf("manual offset = %+v, want {5 -70}", got)
	}
	if !a.ManualLabel() {
		t.Error("ManualLabel() = false")
	}
	if got := a.LabelPos(); got != a.Pos.Add(Point{X: 5, Y: -70}) {
		t.Errorf("LabelPos = %+v", got)
	}
}

func TestSceneLinks(t *testing.T) {
	s, _ := BuildScene([]string{"A", "B", "C"}, nil, 14, 150, 1)

	if _, added, err := s.AddLink("A", "B", DefaultLinkStyle()); err != nil || !added {
		t.Fatalf("AddLink(A,B) = %v, %v", added, err)
	}
	if _, added, _ := s.AddLink("A", "B", DefaultLinkStyle()); added {
		t.Error("second AddLink(A,B) should not add")
	}
	if _, added, _ := s.AddLink("B", "A", DefaultLinkStyle()); !added {
		t.Error("AddLink(B,A) is a different ordered pair and should add")
	}
	if _, _, err := s.AddLink("A", "A", DefaultLinkStyle()); !errors.Is(err, ErrSelfLink) {
		t.Errorf("self link err = %v, want ErrSelfLink", err)
	}
	if _, _, err := s.AddLink("A", "Z", DefaultLinkStyle()); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("unknown err = %v, want ErrUnknownEntity", err)
	}
	if len(s.Links) != 2 {
		t.Fatalf("got %d links, want 2", len(s.Links))
	}
	if !s.RemoveLink("A", "B") || s.RemoveLink("A", "B") {
		t.Error("RemoveLink should succeed once")
	}
	if s.Link("A", "B") != nil || s.Link("B", "A") == nil {
		t.Error("wrong link removed")
	}
}

func TestLinkPathBoundaries(t *testing.T) {
	s, _ := BuildScene([]string{"A", "B"}, nil, 14, 100, 1)
	l, _, _ := s.AddLink("A", "B", DefaultLinkStyle())
	a, b := s.Entity("A"), s.Entity("B")

	start, ctrl, end, ok := s.LinkPath(l)
	if !ok {
		t.Fatal("LinkPath not ok")
	}
	if d := start.Sub(a.Pos).Len(); math.Abs(d-a.Radius()) > 1e-9 {
		t.Errorf("start %.3f from source centre, want %.3f", d, a.Radius())
	}
	if d := end.Sub(b.Pos).Len(); math.Abs(d-b.Radius()) > 1e-9 {
		t.Errorf("end %.3f from target centre, want %.3f", d, b.Radius())
	}
	mid := a.Pos.Add(b.Pos).Scale(0.5)
	if ctrl.Sub(mid).Len() > 1e-9 {
		t.Errorf("single link should be straight, ctrl %+v mid %+v", ctrl, mid)
	}

	rev, _, _ := s.AddLink("B", "A", DefaultLinkStyle())
	_, c1, _, _ := s.LinkPath(l)
	_, c2, _, _ := s.LinkPath(rev)
	if math.Abs(c1.Sub(mid).Len()-BowOffset) > 1e-9 {
		t.Errorf("bidirectional ctrl offset %.3f, want %d", c1.Sub(mid).Len(), BowOffset)
	}
	if c1.Sub(c2).Len() < BowOffset {
		t.Error("reverse links should bow to opposite sides")
	}
}

func TestHitTest(t *testing.T) {
	s, _ := BuildScene([]string{"A", "B"}, nil, 14, 100, 7)
	s.AddLink("A", "B", DefaultLinkStyle())
	a, b := s.Entity("A"), s.Entity("B")

	if h := s.HitTest(a.Pos, 0); h.Kind != HitEntity || h.Entity != "A" || h.Gen != 7 {
		t.Errorf("hit on A = %+v", h)
	}
	if h := s.HitTest(a.Pos.Add(Point{X: 19}), 0); h.Kind != HitEntity {
		t.Errorf("inside radius should hit, got %+v", h)
	}
	mid := a.Pos.Add(b.Pos).Scale(0.5)
	if h := s.HitTest(mid, 1); h.Kind != HitLink || h.From != "A" || h.To != "B" {
		t.Errorf("hit on link midpoint = %+v", h)
	}
	if h := s.HitTest(Point{X: -400, Y: 400}, 1); h.Kind != HitNone || h.Gen != 7 {
		t.Errorf("far point = %+v, want background", h)
	}
}

func TestStyleTable(t *testing.T) {
	table := NewStyleTable()
	if _, ok := table.Lookup("x"); ok {
		t.Error("empty table should not find x")
	}
	if table.StyleFor("x") != DefaultEntityStyle() {
		t.Error("StyleFor should fall back to default")
	}
	table.Set("b", EntityStyle{Color: "#000000", Size: 10})
	table.Set("a", EntityStyle{Color: "#ffffff", Size: 20})
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	names := table.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v", names)
	}
}
