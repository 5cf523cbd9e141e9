package alignment

import "errors"

var (
	// ErrCornerOrder is returned when the rotated markers cannot be labelled
	// consistently left to right.
	ErrCornerOrder = errors.New("inconsistent corner order")
	// ErrNotRectangle is returned when the rectified markers are not an
	// axis-aligned rectangle.
	ErrNotRectangle = errors.New("markers do not form a rectangle")
	// ErrDegenerateEdge is returned when a bottom marker and its top marker
	// coincide, leaving no direction to straighten.
	ErrDegenerateEdge = errors.New("marker edge has zero length")
)
