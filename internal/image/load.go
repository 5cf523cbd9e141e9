// Package image provides image loading, gocv conversion and the diagnostic
// drawing used to annotate pipeline steps.
package image

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff"
)

// ErrDecode is returned when the input cannot be decoded as an image.
var ErrDecode = errors.New("unreadable image")

// Load reads and decodes an image file into an NRGBA buffer.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return imaging.Clone(img), nil
}

// Decode decodes an image stream into an NRGBA buffer.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return imaging.Clone(img), nil
}

// Save encodes img to path; the format follows the extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Thumbnail scales img to the given width with nearest-neighbour sampling and
// returns the original-to-thumbnail ratio.
func Thumbnail(img *image.NRGBA, width int) (*image.NRGBA, float64) {
	b := img.Bounds()
	ratio := float64(b.Dx()) / float64(width)
	w := int(float64(b.Dx()) / ratio)
	h := int(float64(b.Dy()) / ratio)
	return imaging.Resize(img, w, h, imaging.NearestNeighbor), ratio
}

// Crop returns a copy of the rectangle r of img, rebased at the origin.
// Parts of r outside img are dropped.
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, r)
}

// Clone returns a deep copy of img.
func Clone(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// SupportedFormats returns the list of supported image extensions.
func SupportedFormats() []string {
	return []string{".jpg", ".jpeg", ".png", ".tiff", ".tif"}
}

// IsSupportedFormat checks if the given path has a supported image extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
