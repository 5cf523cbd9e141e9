package alignment

import (
	"fmt"
	"image"
	"math"

	"tornado-tracker/pkg/geometry"
)

// Rotation is a counter-clockwise rotation about the centroid of a set of
// boundary points. The canvas is the bounding box of the boundary put
// through the sampling rotation, which for a tilted quadrilateral is wider
// than the straightened one and leaves a border around the markers.
type Rotation struct {
	// Degrees is the counter-clockwise angle applied.
	Degrees float64
	// Size is the output canvas.
	Size image.Point
	// Sample maps an output pixel to the input position it is read from.
	Sample geometry.AffineTransform
	// Forward maps an input point to its position on the output canvas.
	// It is the exact inverse of Sample.
	Forward geometry.AffineTransform
}

// NewRotation builds the rotation for ccwDegrees around boundary.
func NewRotation(ccwDegrees float64, boundary []geometry.Point2D) (Rotation, error) {
	if len(boundary) == 0 {
		return Rotation{}, fmt.Errorf("rotation: no boundary points")
	}
	rad := geometry.Radians(ccwDegrees)
	sample := geometry.Rotation(rad)

	rotated := make([]geometry.Point2D, len(boundary))
	for i, p := range boundary {
		rotated[i] = sample.Apply(p)
	}
	lo, hi := geometry.Bounds(rotated)
	w := int(math.Ceil(hi.X) - math.Floor(lo.X))
	h := int(math.Ceil(hi.Y) - math.Floor(lo.Y))

	// Centre the canvas on the boundary centroid.
	center := geometry.Centroid(boundary)
	mid := sample.Apply(geometry.Pt(float64(w)/2, float64(h)/2))
	sample = sample.Translate(center.X-mid.X, center.Y-mid.Y)

	forward, ok := sample.Inverse()
	if !ok {
		return Rotation{}, fmt.Errorf("rotation: singular transform")
	}
	return Rotation{
		Degrees: ccwDegrees,
		Size:    image.Pt(w, h),
		Sample:  sample,
		Forward: forward,
	}, nil
}

// Apply maps input points onto the output canvas.
func (r Rotation) Apply(points ...geometry.Point2D) []geometry.Point2D {
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		out[i] = r.Forward.Apply(p)
	}
	return out
}
