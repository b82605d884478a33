package align

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jigsaw-solver/pkg/geometry"
)

func horizontalLine(n int) []geometry.Point2D {
	pts := make([]geometry.Point2D, n)
	for i := range pts {
		pts[i] = geometry.Point2D{X: float64(i), Y: 0}
	}
	return pts
}

func TestLineAlignEmptyCurve(t *testing.T) {
	res := LineAlign(nil, 0)
	assert.Equal(t, geometry.IdentityRigid(), res.Transform)
}

func TestLineAlignAlreadyHorizontalToZero(t *testing.T) {
	curve := horizontalLine(5)
	res := LineAlign(curve, 0)
	require.Len(t, res.Curve, 5)
	for i, p := range res.Curve {
		assert.InDelta(t, curve[i].X, p.X, 1e-6)
		assert.InDelta(t, curve[i].Y, p.Y, 1e-6)
	}
}

func TestLineAlignRotatesChordToTargetAngle(t *testing.T) {
	curve := horizontalLine(5)
	res := LineAlign(curve, math.Pi/2)
	require.Len(t, res.Curve, 5)

	// Rotated 90 degrees about the origin: (x, 0) -> (0, x).
	last := res.Curve[len(res.Curve)-1]
	assert.InDelta(t, 0, last.X, 1e-6)
	assert.InDelta(t, 4, last.Y, 1e-6)

	first := res.Curve[0]
	assert.InDelta(t, 0, first.X, 1e-6)
	assert.InDelta(t, 0, first.Y, 1e-6)
}

func TestFitSlope(t *testing.T) {
	t.Run("perfect line", func(t *testing.T) {
		curve := []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 4}}
		m, ok := fitSlope(curve)
		require.True(t, ok)
		assert.InDelta(t, 2, m, 1e-9)
	})

	t.Run("degenerate vertical spread returns not ok", func(t *testing.T) {
		curve := []geometry.Point2D{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}
		_, ok := fitSlope(curve)
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := fitSlope(nil)
		assert.False(t, ok)
	})
}
