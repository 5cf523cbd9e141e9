package geometry

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// AngleMean returns the circular mean of angles in radians: the direction of
// the summed unit vectors. Arithmetic averaging would put the mean of 179°
// and -179° at 0°.
//
// The slice must be non-empty.
func AngleMean(angles []float64) float64 {
	return stat.CircularMean(angles, nil)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
