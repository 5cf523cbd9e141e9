package image

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	montageGap   = 4
	montageLabel = 16
)

// Montage lays images out left to right on a grey strip and writes a label
// under each one. Missing labels are left blank.
func Montage(images []*image.NRGBA, labels []string) *image.NRGBA {
	w, h := 0, 0
	for _, img := range images {
		w += img.Bounds().Dx() + montageGap
		h = max(h, img.Bounds().Dy())
	}
	out := image.NewNRGBA(image.Rect(0, 0, w+montageGap, h+montageLabel+montageGap))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: color.NRGBA{R: 64, G: 64, B: 64, A: 255}}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	x := montageGap
	for i, img := range images {
		r := img.Bounds()
		draw.Draw(out, image.Rect(x, montageGap, x+r.Dx(), montageGap+r.Dy()), img, r.Min, draw.Src)
		if i < len(labels) {
			d.Dot = fixed.P(x, h+montageLabel)
			d.DrawString(labels[i])
		}
		x += r.Dx() + montageGap
	}
	return out
}
