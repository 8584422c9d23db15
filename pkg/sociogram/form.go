package sociogram

import "fmt"

// Input ranges accepted by the form and the inline editors.
const (
	MinCount      = 1
	MaxCount      = 20
	MinFontSize   = 8
	MaxFontSize   = 40
	MinRadius     = 50
	MaxRadius     = 500
	MinEntitySize = 10
	MaxEntitySize = 100
	MinThickness  = 1
	MaxThickness  = 15
)

// Form defaults.
const (
	DefaultCount    = 5
	DefaultFontSize = 14
	DefaultRadius   = 150
)

// Form holds the user-editable inputs a rebuild is computed from.
// Names are stored as typed; trimming happens at rebuild time.
type Form struct {
	Names    []string
	FontSize int
	Radius   int
}

// NewForm returns a form with DefaultCount placeholder names.
func NewForm() *Form {
	f := &Form{
		FontSize: DefaultFontSize,
		Radius:   DefaultRadius,
	}
	f.SetCount(DefaultCount)
	return f
}

// Placeholder returns the generated name for slot i (0-based).
func Placeholder(i int) string {
	return fmt.Sprintf("Node %d", i+1)
}

// Count returns the number of name slots.
func (f *Form) Count() int {
	return len(f.Names)
}

// SetCount resizes the name list, clamped to [MinCount, MaxCount].
// Empty slots, kept or new, are filled with their placeholder.
// It returns the count actually applied.
func (f *Form) SetCount(n int) int {
	n = clampInt(n, MinCount, MaxCount)
	names := make([]string, n)
	for i := range names {
		if i < len(f.Names) && f.Names[i] != "" {
			names[i] = f.Names[i]
		} else {
			names[i] = Placeholder(i)
		}
	}
	f.Names = names
	return n
}

// SetName stores the raw text for slot i. Out-of-range slots are ignored.
func (f *Form) SetName(i int, s string) bool {
	if i < 0 || i >= len(f.Names) {
		return false
	}
	f.Names[i] = s
	return true
}

// SetFontSize clamps and stores the label font size in pixels.
func (f *Form) SetFontSize(px int) int {
	f.FontSize = clampInt(px, MinFontSize, MaxFontSize)
	return f.FontSize
}

// SetRadius clamps and stores the layout radius in pixels.
func (f *Form) SetRadius(r int) int {
	f.Radius = clampInt(r, MinRadius, MaxRadius)
	return f.Radius
}

// Normalize clamps every field into range, as after loading from config.
func (f *Form) Normalize() {
	f.SetCount(len(f.Names))
	f.SetFontSize(f.FontSize)
	f.SetRadius(f.Radius)
}
