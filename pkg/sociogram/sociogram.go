// Package sociogram provides the editing model for sociogram diagrams:
// a set of named entities laid out on a circle, joined by directed links,
// with per-entity and per-link styling.
//
// All mutable state lives in a Session. The model performs no I/O and is
// driven synchronously by the caller's event loop.
package sociogram

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is matched by errors.Is for any *DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate entity name")
	// ErrInvalidColor is returned for colors that are not #rgb or #rrggbb.
	ErrInvalidColor = errors.New("invalid color")
	// ErrUnknownEntity is returned when a link names an entity that is not in the scene.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrSelfLink is returned when a link would connect an entity to itself.
	ErrSelfLink = errors.New("link source and target are the same entity")
)

// DuplicateNameError reports the first trimmed name that appears twice.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate entity name %q: names must be unique", e.Name)
}

// Is reports whether target is ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
