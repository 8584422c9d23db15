package sociogram

import "sort"

// Default colors, matching the editor's neutral gray palette.
const (
	DefaultEntityColor = "#6b7280"
	DefaultEntitySize  = 40
	DefaultLinkColor   = "#6b7280"
	DefaultThickness   = 3

	SelectedFill        = "#3b82f6"
	SelectedBorder      = "#60a5fa"
	SelectedBorderWidth = 4
)

// EntityStyle is the visual style of an entity. Size is the diameter in pixels.
type EntityStyle struct {
	Color string
	Size  int
}

// LinkStyle is the visual style of a link. Thickness is the stroke width in pixels.
type LinkStyle struct {
	Color     string
	Thickness int
}

// DefaultEntityStyle returns the style given to entities without an override.
func DefaultEntityStyle() EntityStyle {
	return EntityStyle{Color: DefaultEntityColor, Size: DefaultEntitySize}
}

// DefaultLinkStyle returns the style given to new links.
func DefaultLinkStyle() LinkStyle {
	return LinkStyle{Color: DefaultLinkColor, Thickness: DefaultThickness}
}

// StyleTable maps entity names to saved styles. Entries outlive rebuilds.
type StyleTable struct {
	styles map[string]EntityStyle
}

// NewStyleTable returns an empty table.
func NewStyleTable() *StyleTable {
	return &StyleTable{styles: make(map[string]EntityStyle)}
}

// Lookup returns the saved style for name, if any.
func (t *StyleTable) Lookup(name string) (EntityStyle, bool) {
	st, ok := t.styles[name]
	return st, ok
}

// StyleFor returns the saved style for name or the default style.
func (t *StyleTable) StyleFor(name string) EntityStyle {
	if st, ok := t.styles[name]; ok {
		return st
	}
	return DefaultEntityStyle()
}

// Set saves a style for name.
func (t *StyleTable) Set(name string, st EntityStyle) {
	t.styles[name] = st
}

// Len returns the number of saved styles.
func (t *StyleTable) Len() int {
	return len(t.styles)
}

// Names returns the names with saved styles in sorted order.
func (t *StyleTable) Names() []string {
	names := make([]string, 0, len(t.styles))
	for name := range t.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
