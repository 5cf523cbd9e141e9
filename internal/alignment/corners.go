package alignment

import (
	"fmt"
	"math"

	"tornado-tracker/pkg/geometry"
)

// Corners holds the four marker positions on the rectified image.
type Corners struct {
	BL, BR, TL, TR geometry.Point2D
}

// LabelCorners orders the rotated edges left to right. e1 and e2 must come
// from the same Edge pairing, so swapping bottoms also swaps tops.
func LabelCorners(e1, e2 Edge) (Corners, error) {
	c := Corners{BL: e1.Bottom, BR: e2.Bottom, TL: e1.Top, TR: e2.Top}
	if c.BL.X > c.BR.X {
		if c.TL.X <= c.TR.X {
			return Corners{}, fmt.Errorf("%w: bottom pair reversed but top pair is not", ErrCornerOrder)
		}
		c.BL, c.BR = c.BR, c.BL
		c.TL, c.TR = c.TR, c.TL
	}
	return c, nil
}

// CheckRectangle verifies that the corners form an axis-aligned rectangle
// within 5% of the larger canvas dimension: opposite edges of equal length,
// vertical edges with no horizontal run, horizontal edges with no rise.
func CheckRectangle(c Corners, width, height int) error {
	threshold := 0.05 * float64(max(width, height))

	left := c.TL.Sub(c.BL)
	right := c.TR.Sub(c.BR)
	bottom := c.BR.Sub(c.BL)
	top := c.TR.Sub(c.TL)

	checks := []struct {
		name string
		v    float64
	}{
		{"vertical edge lengths differ", left.Mag() - right.Mag()},
		{"horizontal edge lengths differ", bottom.Mag() - top.Mag()},
		{"left edge slants", left.X},
		{"right edge slants", right.X},
		{"bottom edge slants", bottom.Y},
		{"top edge slants", top.Y},
	}
	for _, chk := range checks {
		if math.Abs(chk.v) > threshold {
			return fmt.Errorf("%w: %s by %.1fpx (limit %.1fpx)", ErrNotRectangle, chk.name, math.Abs(chk.v), threshold)
		}
	}
	return nil
}
