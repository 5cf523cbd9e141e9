// Package geometry provides the point and affine-transform arithmetic shared by
// the marker, alignment and panel stages.
package geometry

import (
	"image"
	"math"
)

// Point2D is an immutable 2D coordinate in image space (Y grows downward).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// FromImagePoint converts an integer pixel coordinate.
func FromImagePoint(p image.Point) Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	return p.Sub(other).Mag()
}

// Add returns p + other.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point multiplied by a scalar.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Mag returns the length of p treated as a vector.
func (p Point2D) Mag() float64 {
	return math.Hypot(p.X, p.Y)
}

// ImagePoint truncates toward zero, matching how pixel indices are derived
// from float coordinates elsewhere in the pipeline.
func (p Point2D) ImagePoint() image.Point {
	return image.Point{X: int(p.X), Y: int(p.Y)}
}

// Centroid returns the arithmetic mean of the points, or the zero point for
// an empty slice.
func Centroid(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	var sum Point2D
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Bounds returns the min and max corners of the axis-aligned box around points.
func Bounds(points []Point2D) (lo, hi Point2D) {
	if len(points) == 0 {
		return Point2D{}, Point2D{}
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Rotation returns a rotation about the origin. Positive radians turn the
// X axis toward the Y axis, which on screen (Y down) is clockwise.
func Rotation(radians float64) AffineTransform {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return AffineTransform{A: cos, B: -sin, C: sin, D: cos}
}

// Translate returns t followed by a shift of (dx, dy).
func (t AffineTransform) Translate(dx, dy float64) AffineTransform {
	t.TX += dx
	t.TY += dy
	return t
}

// Apply maps a point through the transform.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns t∘other: other is applied first.
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Inverse returns the inverse transform. ok is false for singular matrices.
func (t AffineTransform) Inverse() (inv AffineTransform, ok bool) {
	det := t.A*t.D - t.B*t.C
	if math.Abs(det) < 1e-12 {
		return AffineTransform{}, false
	}
	k := 1 / det
	return AffineTransform{
		A:  t.D * k,
		B:  -t.B * k,
		TX: (t.B*t.TY - t.D*t.TX) * k,
		C:  -t.C * k,
		D:  t.A * k,
		TY: (t.C*t.TX - t.A*t.TY) * k,
	}, true
}

// Matrix returns the transform as row-major 2x3 coefficients.
func (t AffineTransform) Matrix() [2][3]float64 {
	return [2][3]float64{
		{t.A, t.B, t.TX},
		{t.C, t.D, t.TY},
	}
}
