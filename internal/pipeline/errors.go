package pipeline

import "fmt"

// Stage names a step of the pipeline that can abort a run.
type Stage string

const (
	StageResize    Stage = "resize"
	StageMarkers   Stage = "markers"
	StagePairing   Stage = "pairing"
	StageRectify   Stage = "rectify"
	StageCorners   Stage = "corners"
	StageBlackArea Stage = "black-area"
	StageMargins   Stage = "margins"
	StageSegment   Stage = "segment"
)

// FatalError aborts a run. The Result returned alongside it still carries
// every step recorded before the failure.
type FatalError struct {
	Stage Stage
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
