package panel

import (
	"fmt"
	"image"

	trimage "tornado-tracker/internal/image"

	"github.com/disintegration/imaging"
)

// DigitCount is the number of wheels on the counter.
const DigitCount = 5

// Bezel insets around the digits inside the black panel, as fractions of
// the panel size. Tuned for this counter.
const (
	insetLeft   = 0.07
	insetRight  = 0.12
	insetTop    = 0.40
	insetBottom = 0.20
)

// Accepted width/height of the trimmed display.
const (
	MinAspect = 4.4
	MaxAspect = 4.8
)

const (
	digitWidthRatio = 0.14
	// WhitenessThreshold is the per-channel level a pixel must average to
	// count as foreground.
	WhitenessThreshold = 145
)

// TrimMargins crops the bezel margins away from the black panel.
func TrimMargins(img *image.NRGBA) *image.NRGBA {
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	left := int(insetLeft * w)
	right := int(w - insetRight*w)
	top := int(insetTop * h)
	bottom := int(h - insetBottom*h)
	return trimage.Crop(img, image.Rect(left, top, right, bottom))
}

// CheckAspect verifies the trimmed display has the shape of five digits.
func CheckAspect(img *image.NRGBA) error {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: trimmed display is %dx%d", ErrEmptyArea, w, h)
	}
	ratio := float64(w) / float64(h)
	if ratio < MinAspect || ratio > MaxAspect {
		return fmt.Errorf("%w: %.3f not in [%.1f, %.1f]", ErrAspectRatio, ratio, MinAspect, MaxAspect)
	}
	return nil
}

// SplitDigits cuts the display into DigitCount equal-width slots, left to
// right, with uniform spacing between them. Each slot is a private copy.
func SplitDigits(img *image.NRGBA) []*image.NRGBA {
	w := float64(img.Bounds().Dx())
	h := img.Bounds().Dy()
	digitWidth := digitWidthRatio * w
	spacing := (w - DigitCount*digitWidth) / (DigitCount - 1)

	slots := make([]*image.NRGBA, 0, DigitCount)
	left := 0.0
	for n := 0; n < DigitCount; n++ {
		right := left + digitWidth
		slot := trimage.Crop(img, image.Rect(int(left), 0, int(right), h))
		if slot.Bounds().Dx() != int(digitWidth) && slot.Bounds().Dx() > 0 {
			slot = imaging.Resize(slot, int(digitWidth), h, imaging.NearestNeighbor)
		}
		slots = append(slots, slot)
		left = right + spacing
	}
	return slots
}

// Binarize rewrites img in place to pure black and white: pixels whose
// R+G+B reaches 3×WhitenessThreshold become white, the rest black.
func Binarize(img *image.NRGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			var v uint8
			if int(row[x])+int(row[x+1])+int(row[x+2]) >= 3*WhitenessThreshold {
				v = 255
			}
			row[x], row[x+1], row[x+2], row[x+3] = v, v, v, 255
		}
	}
}
