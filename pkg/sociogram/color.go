package sociogram

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor validates a hex color and returns it as lower-case #rrggbb.
// The leading '#' is optional and the short #rgb form is accepted.
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

// RGBA converts a hex color to an opaque color.RGBA.
// Unparseable input yields black.
func RGBA(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{0, 0, 0, 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}
