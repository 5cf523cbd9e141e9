package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleMeanZero(t *testing.T) {
	assert.InDelta(t, 0.0, AngleMean([]float64{0, 0}), 1e-12)
}

func TestAngleMeanRepeated(t *testing.T) {
	for _, deg := range []float64{-170, -45, 0, 12.5, 90, 179} {
		theta := Radians(deg)
		assert.InDelta(t, theta, AngleMean([]float64{theta, theta}), 1e-9, "theta=%v°", deg)
	}
}

func TestAngleMeanWrapsAroundPi(t *testing.T) {
	m := AngleMean([]float64{Radians(179), Radians(-179)})
	assert.InDelta(t, math.Pi, math.Abs(m), 1e-9)
}

func TestAngleMeanSmallSpread(t *testing.T) {
	m := AngleMean([]float64{Radians(10), Radians(20)})
	assert.InDelta(t, 15.0, Degrees(m), 1e-9)
}
