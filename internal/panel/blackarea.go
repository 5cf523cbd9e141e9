// Package panel isolates the counter's black digit display on the rectified
// image and cuts it into binarized per-digit slots.
package panel

import (
	"fmt"
	"image"
	"math"

	"tornado-tracker/internal/alignment"
)

// edgeDropRatio is how far the line brightness must fall, relative to where
// a walk starts, before the walk is considered inside the black panel.
const edgeDropRatio = 0.75

// FindBlackArea starts from the inner box of the marker corners and walks
// each side inward, one row or column at a time, until the mean brightness of
// the whole line drops below 75% of its starting value.
//
// The walk assumes the start lies on the lighter bezel. If it already starts
// inside the black panel the edges run on and the box degenerates.
func FindBlackArea(img *image.NRGBA, c alignment.Corners) (image.Rectangle, error) {
	left := int(math.Max(c.TL.X, c.BL.X))
	right := int(math.Min(c.TR.X, c.BR.X))
	top := int(math.Max(c.TL.Y, c.TR.Y))
	bottom := int(math.Min(c.BL.Y, c.BR.Y))

	top = walk(img, top, 1, rowMean)
	bottom = walk(img, bottom, -1, rowMean)
	left = walk(img, left, 1, colMean)
	right = walk(img, right, -1, colMean)

	if top < 0 || top > bottom || left < 0 || left > right {
		return image.Rectangle{}, fmt.Errorf("%w: top=%d bottom=%d left=%d right=%d",
			ErrEmptyArea, top, bottom, left, right)
	}
	return image.Rect(left, top, right, bottom), nil
}

type lineMean func(img *image.NRGBA, i int) (mean, upper int)

func walk(img *image.NRGBA, i, step int, mean lineMean) int {
	_, upper := mean(img, 0)
	i = min(max(i, 0), upper)
	first, _ := mean(img, i)
	limit := edgeDropRatio * float64(first)
	for i >= 0 && i <= upper {
		if m, _ := mean(img, i); float64(m) < limit {
			break
		}
		i += step
	}
	return i
}

// rowMean returns the integer mean of R+G+B across row y, and the last valid
// row index.
func rowMean(img *image.NRGBA, y int) (int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0, -1
	}
	row := img.Pix[y*img.Stride : y*img.Stride+w*4]
	sum := 0
	for x := 0; x < w*4; x += 4 {
		sum += int(row[x]) + int(row[x+1]) + int(row[x+2])
	}
	return sum / w, h - 1
}

// colMean returns the integer mean of R+G+B down column x, and the last valid
// column index.
func colMean(img *image.NRGBA, x int) (int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0, -1
	}
	sum := 0
	for i := x * 4; i < h*img.Stride; i += img.Stride {
		sum += int(img.Pix[i]) + int(img.Pix[i+1]) + int(img.Pix[i+2])
	}
	return sum / h, w - 1
}
