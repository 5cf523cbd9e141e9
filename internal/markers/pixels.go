// Package markers finds the red and green fiducial squares on the counter:
// it matches marker-coloured pixels and groups them into spatial clusters.
package markers

import (
	"image"

	"tornado-tracker/pkg/colorutil"
	"tornado-tracker/pkg/geometry"
)

// Target is one colour a marker may take on in a photo, with the L1
// tolerance used to match it.
type Target struct {
	Name  string
	Color colorutil.RGB
	Delta int
}

// The counter carries red squares at the bottom corners and green squares at
// the top corners. Under flash they shift toward the camera variants.
var (
	RedTargets = []Target{
		{Name: "true red", Color: colorutil.RGB{R: 255, G: 0, B: 0}, Delta: 250},
		{Name: "camera red", Color: colorutil.RGB{R: 196, G: 75, B: 129}, Delta: 50},
	}
	GreenTargets = []Target{
		{Name: "true green", Color: colorutil.RGB{R: 0, G: 255, B: 0}, Delta: 270},
		{Name: "camera green", Color: colorutil.RGB{R: 80, G: 161, B: 168}, Delta: 50},
		{Name: "another green", Color: colorutil.RGB{R: 28, G: 133, B: 119}, Delta: 50},
	}
)

// FindPixels returns every pixel whose L1 RGB distance to target is strictly
// below delta, scanning column by column (x outer, y inner).
func FindPixels(img *image.NRGBA, target colorutil.RGB, delta int) []image.Point {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	tr, tg, tb := int(target.R), int(target.G), int(target.B)

	var out []image.Point
	for x := 0; x < w; x++ {
		i := x * 4
		for y := 0; y < h; y, i = y+1, i+img.Stride {
			p := img.Pix[i : i+3 : i+3]
			d := abs(int(p[0])-tr) + abs(int(p[1])-tg) + abs(int(p[2])-tb)
			if d < delta {
				out = append(out, image.Point{X: x + b.Min.X, Y: y + b.Min.Y})
			}
		}
	}
	return out
}

// FindClass unions the pixels matching any of targets. Order is first-seen:
// all matches of targets[0] in scan order, then new matches of targets[1],
// and so on.
func FindClass(img *image.NRGBA, targets []Target) []geometry.Point2D {
	seen := make(map[image.Point]struct{})
	var out []geometry.Point2D
	for _, t := range targets {
		for _, p := range FindPixels(img, t.Color, t.Delta) {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, geometry.FromImagePoint(p))
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
