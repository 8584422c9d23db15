package sociogram

import (
	"errors"
	"strings"
	"testing"
)

// FuzzBuildScene checks that any name list either fails with a duplicate
// error or produces one entity per distinct trimmed, non-empty name.
func FuzzBuildScene(f *testing.F) {
	f.Add("A,B,C")
	f.Add("A,A")
	f.Add(" x , x")
	f.Add(",,,")
	f.Add("Ann,Bob,  ,Cid")

	f.Fuzz(func(t *testing.T, joined string) {
		names := strings.Split(joined, ",")
		if len(names) > MaxCount {
			names = names[:MaxCount]
		}
		s, err := BuildScene(names, nil, DefaultFontSize, DefaultRadius, 1)

		want := make(map[string]bool)
		dup := false
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if want[n] {
				dup = true
			}
			want[n] = true
		}

		if dup {
			if !errors.Is(err, ErrDuplicateName) {
				t.Fatalf("names %q: err = %v, want duplicate", names, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("names %q: unexpected error %v", names, err)
		}
		if len(s.Entities) != len(want) {
			t.Fatalf("names %q: %d entities, want %d", names, len(s.Entities), len(want))
		}
		for _, e := range s.Entities {
			if !want[e.Name] {
				t.Errorf("unexpected entity %q", e.Name)
			}
		}
	})
}
