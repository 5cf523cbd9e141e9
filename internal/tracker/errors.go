package tracker

import "errors"

var (
	// ErrNotTimestamp is returned for image files whose name is not a unix
	// timestamp.
	ErrNotTimestamp = errors.New("image name is not a timestamp")
	// ErrBadRecord is returned when a strict record has a malformed line.
	ErrBadRecord = errors.New("malformed digit record")
)
