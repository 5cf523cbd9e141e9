package image

import (
	"image"
	"image/color"

	"tornado-tracker/pkg/geometry"

	"gocv.io/x/gocv"
)

// Annotator draws diagnostic overlays on a private copy of an image, so the
// buffer used for analysis is never touched.
type Annotator struct {
	mat gocv.Mat
}

// NewAnnotator copies img into a Mat for drawing.
func NewAnnotator(img *image.NRGBA) *Annotator {
	return &Annotator{mat: ToMat(img)}
}

// MarkPoint draws a circle of the given diameter centred on p, crossed by
// both diagonals of its bounding square.
func (a *Annotator) MarkPoint(p geometry.Point2D, c color.RGBA, size float64, stroke int) {
	half := size / 2
	tl := p.Add(geometry.Pt(-half, -half)).ImagePoint()
	br := p.Add(geometry.Pt(half, half)).ImagePoint()
	gocv.Circle(&a.mat, p.ImagePoint(), int(half), c, 1)
	gocv.Line(&a.mat, tl, br, c, stroke)
	gocv.Line(&a.mat, image.Pt(tl.X, br.Y), image.Pt(br.X, tl.Y), c, stroke)
}

// Line draws a segment between two points.
func (a *Annotator) Line(from, to geometry.Point2D, c color.RGBA, stroke int) {
	gocv.Line(&a.mat, from.ImagePoint(), to.ImagePoint(), c, stroke)
}

// HLine draws a full-width horizontal line at row y.
func (a *Annotator) HLine(y int, c color.RGBA, stroke int) {
	gocv.Line(&a.mat, image.Pt(0, y), image.Pt(a.mat.Cols()-1, y), c, stroke)
}

// VLine draws a full-height vertical line at column x.
func (a *Annotator) VLine(x int, c color.RGBA, stroke int) {
	gocv.Line(&a.mat, image.Pt(x, 0), image.Pt(x, a.mat.Rows()-1), c, stroke)
}

// Image returns the annotated result and releases the Mat. The Annotator
// must not be used afterwards.
func (a *Annotator) Image() *image.NRGBA {
	defer a.mat.Close()
	return FromMat(a.mat)
}
