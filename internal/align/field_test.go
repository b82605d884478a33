package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"jigsaw-solver/pkg/geometry"
)

// pointField builds a rows x cols field with a single weighted point at
// (px, py) and zero everywhere else, avoiding the gocv.Mat dependency of
// BuildEdgeWeightField.
func pointField(rows, cols, px, py int, weight float64) *EdgeWeightField {
	w := make([]float64, rows*cols)
	w[py*cols+px] = weight
	return newField(rows, cols, w)
}

func TestWeightedCentroidIsolatedPoint(t *testing.T) {
	f := pointField(20, 20, 5, 5, 10)
	c, ok := f.WeightedCentroid(5, 5, 3)
	assert.True(t, ok)
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, 5, c.Y, 1e-9)
}

func TestWeightedCentroidEmptyWindowFails(t *testing.T) {
	f := pointField(20, 20, 5, 5, 10)
	_, ok := f.WeightedCentroid(15, 15, 2)
	assert.False(t, ok)
}

func TestWeightedCentroidOutOfBoundsFails(t *testing.T) {
	f := pointField(20, 20, 5, 5, 10)
	_, ok := f.WeightedCentroid(-10, -10, 2)
	assert.False(t, ok)
}

func TestWeightedCentroidAveragesTwoPoints(t *testing.T) {
	w := make([]float64, 20*20)
	w[5*20+2] = 1 // (x=2, y=5)
	w[5*20+8] = 1 // (x=8, y=5)
	f := newField(20, 20, w)
	c, ok := f.WeightedCentroid(5, 5, 10)
	assert.True(t, ok)
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, 5, c.Y, 1e-9)
}

func TestWeightAt(t *testing.T) {
	f := pointField(10, 10, 3, 4, 7)
	assert.InDelta(t, 7, f.WeightAt(geometry.Point2D{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 0, f.WeightAt(geometry.Point2D{X: 0, Y: 0}), 1e-9)
}

func TestWeightAtClampsOutOfBounds(t *testing.T) {
	f := pointField(10, 10, 9, 9, 5)
	assert.InDelta(t, 5, f.WeightAt(geometry.Point2D{X: 100, Y: 100}), 1e-9)
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 0, 10))
	assert.Equal(t, 10, clampInt(15, 0, 10))
	assert.Equal(t, 4, clampInt(4, 0, 10))
}

func TestRectSum(t *testing.T) {
	values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1} // 3x3 of all ones
	sat := prefixSum2D(values, 3, 3)
	assert.InDelta(t, 9, rectSum(sat, 0, 0, 3, 3), 1e-9)
	assert.InDelta(t, 4, rectSum(sat, 0, 0, 2, 2), 1e-9)
	assert.InDelta(t, 1, rectSum(sat, 1, 1, 2, 2), 1e-9)
}
