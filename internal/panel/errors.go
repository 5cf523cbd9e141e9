package panel

import "errors"

var (
	// ErrEmptyArea is returned when the panel search collapses to nothing.
	ErrEmptyArea = errors.New("black area not found")
	// ErrAspectRatio is returned when the trimmed display is not five digits wide.
	ErrAspectRatio = errors.New("digit display has wrong aspect ratio")
)
