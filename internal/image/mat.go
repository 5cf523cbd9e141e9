package image

import (
	"image"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
)

// ToMat converts an NRGBA buffer to a BGR gocv.Mat. Caller closes the Mat.
func ToMat(img *image.NRGBA) gocv.Mat {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	forStripes(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := img.Pix[y*img.Stride:]
			for x := 0; x < w; x++ {
				i := x * 4
				mat.SetUCharAt(y, x*3+0, row[i+2])
				mat.SetUCharAt(y, x*3+1, row[i+1])
				mat.SetUCharAt(y, x*3+2, row[i+0])
			}
		}
	})
	return mat
}

// FromMat converts a BGR gocv.Mat back to an opaque NRGBA buffer.
func FromMat(mat gocv.Mat) *image.NRGBA {
	h, w := mat.Rows(), mat.Cols()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	forStripes(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := y * img.Stride
			for x := 0; x < w; x++ {
				p := off + x*4
				img.Pix[p+0] = mat.GetUCharAt(y, x*3+2)
				img.Pix[p+1] = mat.GetUCharAt(y, x*3+1)
				img.Pix[p+2] = mat.GetUCharAt(y, x*3+0)
				img.Pix[p+3] = 255
			}
		}
	})
	return img
}

// forStripes splits [0, rows) into one horizontal stripe per CPU.
func forStripes(rows int, fn func(y0, y1 int)) {
	workers := runtime.NumCPU()
	per := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < rows; start += per {
		end := min(start+per, rows)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(start, end)
	}
	wg.Wait()
}
