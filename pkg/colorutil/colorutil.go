// Package colorutil provides shared color helpers for marker detection and
// diagnostic overlays.
package colorutil

import "image/color"

// Overlay colors used on diagnostic images.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green  = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	Orange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// RGB is an 8-bit color without alpha.
type RGB struct {
	R, G, B uint8
}

// RGBA returns the opaque color.RGBA equivalent.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// L1 returns the Manhattan distance between c and (r, g, b).
func (c RGB) L1(r, g, b uint8) int {
	return absDiff(c.R, r) + absDiff(c.G, g) + absDiff(c.B, b)
}

// Sum returns r+g+b, the brightness measure used by the panel and digit stages.
func Sum(r, g, b uint8) int {
	return int(r) + int(g) + int(b)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
