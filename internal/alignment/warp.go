package alignment

import (
	"image"
	"image/color"

	trimage "tornado-tracker/internal/image"

	"gocv.io/x/gocv"
)

// WarpAffine renders img through r onto a new canvas of r.Size. Samples come
// from the nearest input pixel; anything outside the input is black.
func WarpAffine(img *image.NRGBA, r Rotation) *image.NRGBA {
	src := trimage.ToMat(img)
	defer src.Close()

	m := r.Forward.Matrix()
	transformMat := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer transformMat.Close()
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			transformMat.SetDoubleAt(row, col, m[row][col])
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpAffineWithParams(src, &dst, transformMat, r.Size,
		gocv.InterpolationNearestNeighbor, gocv.BorderConstant, color.RGBA{A: 255})

	return trimage.FromMat(dst)
}
