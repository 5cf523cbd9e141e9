// Package pipelinetest draws synthetic counter photos for tests.
package pipelinetest

import (
	"image"
	"image/color"
	"math"

	"tornado-tracker/pkg/geometry"

	"github.com/disintegration/imaging"
)

var (
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.NRGBA{R: 255, A: 255}
	Green = color.NRGBA{G: 255, A: 255}
	// PanelGrey is used instead of black: pure black is within the
	// true-green tolerance.
	PanelGrey = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

// Scene layout of CounterPhoto on its 600x400 canvas.
var (
	PanelRect   = image.Rect(130, 125, 470, 275)
	BottomLeft  = image.Pt(100, 300)
	BottomRight = image.Pt(500, 300)
	TopLeft     = image.Pt(100, 100)
	TopRight    = image.Pt(500, 100)
)

// Glyph is a stroke path in a template's reference frame.
type Glyph struct {
	Path          []geometry.Point2D
	Width, Height float64
}

var (
	Seven = &Glyph{
		Path: []geometry.Point2D{
			geometry.Pt(30, 22), geometry.Pt(47, 24), geometry.Pt(48, 37), geometry.Pt(44, 50),
			geometry.Pt(42, 58), geometry.Pt(41, 66), geometry.Pt(38, 77),
		},
		Width: 72, Height: 111,
	}
	One = &Glyph{
		Path:  []geometry.Point2D{geometry.Pt(40, 25), geometry.Pt(40, 75)},
		Width: 74, Height: 113,
	}
)

// Fill paints r with c.
func Fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// CounterPhoto draws an upright counter: red markers at the bottom corners,
// green at the top, and a grey display whose five wheels show the given
// glyphs with a 2 px stroke. redBR moves the bottom-right marker; a nil
// glyph leaves its wheel blank.
func CounterPhoto(redBR image.Point, wheels ...*Glyph) *image.NRGBA {
	img := imaging.New(600, 400, White)
	square := func(c image.Point, col color.NRGBA) {
		Fill(img, image.Rect(c.X-8, c.Y-8, c.X+8, c.Y+8), col)
	}
	square(BottomLeft, Red)
	square(redBR, Red)
	square(TopLeft, Green)
	square(TopRight, Green)

	Fill(img, PanelRect, PanelGrey)

	// Wheel origins follow the display trim and slot spacing.
	for i, g := range wheels {
		if g == nil {
			continue
		}
		sx, sy := 153+int(float64(i)*59.34), 185
		pts := make([]geometry.Point2D, len(g.Path))
		for j, p := range g.Path {
			pts[j] = geometry.Pt(float64(sx)+p.X*38/g.Width, float64(sy)+p.Y*60/g.Height)
		}
		for y := sy; y < sy+60; y++ {
			for x := sx; x < sx+39; x++ {
				q := geometry.Pt(float64(x), float64(y))
				for k := 0; k+1 < len(pts); k++ {
					if segmentDistance(q, pts[k], pts[k+1]) <= 2 {
						img.SetNRGBA(x, y, White)
						break
					}
				}
			}
		}
	}
	return img
}

func segmentDistance(p, a, b geometry.Point2D) float64 {
	ab := b.Sub(a)
	l := ab.X*ab.X + ab.Y*ab.Y
	t := 0.0
	if l > 0 {
		t = math.Max(0, math.Min(1, ((p.X-a.X)*ab.X+(p.Y-a.Y)*ab.Y)/l))
	}
	return p.Distance(a.Add(ab.Scale(t)))
}
