package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPointArithmetic(t *testing.T) {
	u := Pt(3, 4)
	v := Pt(1, 1)

	assert.Equal(t, Pt(4, 5), u.Add(v))
	assert.Equal(t, Pt(2, 3), u.Sub(v))
	assert.Equal(t, Pt(6, 8), u.Scale(2))
	assert.InDelta(t, 5.0, u.Mag(), 1e-12)
	assert.InDelta(t, math.Sqrt(13), u.Distance(v), 1e-12)
	assert.InDelta(t, 0.0, u.Distance(u), 1e-12)
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Point2D{Pt(0, 0), Pt(4, 0), Pt(4, 2), Pt(0, 2)})
	assert.Equal(t, Pt(2, 1), c)
	assert.Equal(t, Point2D{}, Centroid(nil))
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]Point2D{Pt(3, -1), Pt(-2, 5), Pt(0, 0)})
	assert.Equal(t, Pt(-2, -1), lo)
	assert.Equal(t, Pt(3, 5), hi)
}

func TestInverseMatchesDenseInverse(t *testing.T) {
	tr := Rotation(0.3).Translate(12.5, -7)

	inv, ok := tr.Inverse()
	require.True(t, ok)

	m := tr.Matrix()
	dense := mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		0, 0, 1,
	})
	var want mat.Dense
	require.NoError(t, want.Inverse(dense))

	got := inv.Matrix()
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, want.At(r, c), got[r][c], 1e-9, "coefficient %d,%d", r, c)
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	tr := Rotation(Radians(-17)).Translate(40, 90)
	inv, ok := tr.Inverse()
	require.True(t, ok)

	for _, p := range []Point2D{Pt(0, 0), Pt(1200, 80), Pt(-5, 700.25)} {
		back := inv.Apply(tr.Apply(p))
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}

	id := tr.Compose(inv)
	assert.InDelta(t, 1.0, id.A, 1e-12)
	assert.InDelta(t, 0.0, id.TX, 1e-9)
}

func TestInverseSingular(t *testing.T) {
	_, ok := AffineTransform{A: 1, B: 2, C: 2, D: 4}.Inverse()
	assert.False(t, ok)
}
