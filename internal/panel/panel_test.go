package panel

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"tornado-tracker/internal/alignment"
	"tornado-tracker/pkg/geometry"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bezel = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	black = color.NRGBA{A: 255}
)

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func bezelCorners() alignment.Corners {
	return alignment.Corners{
		TL: geometry.Pt(20, 10), TR: geometry.Pt(180, 10),
		BL: geometry.Pt(20, 90), BR: geometry.Pt(180, 90),
	}
}

func TestFindBlackArea(t *testing.T) {
	img := imaging.New(200, 100, bezel)
	fill(img, image.Rect(40, 30, 160, 70), black)

	r, err := FindBlackArea(img, bezelCorners())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(40, 30, 159, 69), r)
}

func TestFindBlackAreaDegenerates(t *testing.T) {
	img := imaging.New(200, 100, black)
	_, err := FindBlackArea(img, bezelCorners())
	assert.ErrorIs(t, err, ErrEmptyArea)
}

func TestTrimMargins(t *testing.T) {
	img := imaging.New(100, 50, black)
	out := TrimMargins(img)
	assert.Equal(t, 81, out.Bounds().Dx())
	assert.Equal(t, 20, out.Bounds().Dy())
}

func TestCheckAspect(t *testing.T) {
	assert.NoError(t, CheckAspect(imaging.New(460, 100, black)))
	assert.NoError(t, CheckAspect(imaging.New(440, 100, black)))
	assert.ErrorIs(t, CheckAspect(imaging.New(400, 100, black)), ErrAspectRatio)
	assert.ErrorIs(t, CheckAspect(imaging.New(500, 100, black)), ErrAspectRatio)
	assert.ErrorIs(t, CheckAspect(&image.NRGBA{}), ErrEmptyArea)
}

func TestSplitDigits(t *testing.T) {
	img := imaging.New(460, 100, black)
	// Slot n starts at n*(64.4+34.5); mark the first column of each.
	for n := 0; n < DigitCount; n++ {
		x := int(float64(n) * (64.4 + 34.5))
		fill(img, image.Rect(x, 0, x+1, 100), bezel)
	}

	slots := SplitDigits(img)
	require.Len(t, slots, DigitCount)
	for n, s := range slots {
		assert.Equal(t, 64, s.Bounds().Dx(), "slot %d", n)
		assert.Equal(t, 100, s.Bounds().Dy(), "slot %d", n)
		assert.Equal(t, bezel, s.NRGBAAt(0, 50), "slot %d", n)
	}

	// Slots are copies.
	slots[0].SetNRGBA(10, 10, bezel)
	assert.Equal(t, black, img.NRGBAAt(10, 10))
}

func TestBinarize(t *testing.T) {
	img := imaging.New(3, 1, black)
	img.SetNRGBA(0, 0, color.NRGBA{R: 145, G: 145, B: 145, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 144, G: 145, B: 145, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 255, G: 10, B: 200, A: 255})

	Binarize(img)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, black, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(2, 0))
}
