// Package alignment rotates the photo so the marker quadrilateral becomes an
// upright rectangle and recovers where the markers land afterwards.
package alignment

import (
	"math"

	"tornado-tracker/pkg/geometry"
)

// MagicOffset is added to the measured rotation (degrees). The red and green
// markers are not placed exactly, so the measured angle comes up short.
const MagicOffset = 1.0

// Edge is one vertical side of the marker quadrilateral: a bottom (red)
// marker and the top (green) marker above it.
type Edge struct {
	Bottom, Top geometry.Point2D
}

// CCWAngle returns the counter-clockwise rotation in degrees that makes the
// edge point straight up. Image Y grows downward, so dy is negated.
func (e Edge) CCWAngle() float64 {
	dy := -(e.Top.Y - e.Bottom.Y)
	dx := e.Top.X - e.Bottom.X
	return 90 - geometry.Degrees(math.Atan2(dy, dx))
}

// Length returns the distance between the two markers.
func (e Edge) Length() float64 {
	return e.Bottom.Distance(e.Top)
}

// PairEdges matches the two bottom markers to the two top markers. b1 takes
// whichever top marker is closer; the other pair is what remains.
func PairEdges(b1, b2, t1, t2 geometry.Point2D) [2]Edge {
	if b1.Distance(t1) >= b1.Distance(t2) {
		b1, b2 = b2, b1
	}
	return [2]Edge{{Bottom: b1, Top: t1}, {Bottom: b2, Top: t2}}
}

// RotationAngle returns the circular mean of the two edge angles in degrees,
// without MagicOffset.
func RotationAngle(edges [2]Edge) float64 {
	return geometry.Degrees(geometry.AngleMean([]float64{
		geometry.Radians(edges[0].CCWAngle()),
		geometry.Radians(edges[1].CCWAngle()),
	}))
}
