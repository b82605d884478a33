package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"jigsaw-solver/pkg/geometry"
)

func squareCurve(side int) []geometry.Point2D {
	var pts []geometry.Point2D
	for i := 0; i < side; i++ {
		pts = append(pts, geometry.Point2D{X: float64(i), Y: 0})
	}
	for i := 0; i < side; i++ {
		pts = append(pts, geometry.Point2D{X: float64(side), Y: float64(i)})
	}
	for i := 0; i < side; i++ {
		pts = append(pts, geometry.Point2D{X: float64(side - i), Y: float64(side)})
	}
	for i := 0; i < side; i++ {
		pts = append(pts, geometry.Point2D{X: 0, Y: float64(side - i)})
	}
	return pts
}

func TestFindCornersFewerThanFourCandidates(t *testing.T) {
	curve := squareCurve(10)
	_, ok := FindCorners(curve, []int{0, 1, 2})
	assert.False(t, ok)
}

func TestFindCornersExactlyFourCandidatesIsForced(t *testing.T) {
	curve := squareCurve(10)
	candidates := []int{0, 10, 20, 30}
	corners, ok := FindCorners(curve, candidates)
	assert.True(t, ok)
	assert.ElementsMatch(t, candidates, corners[:])
}

func TestMaxOfAndSumOf(t *testing.T) {
	v := [4]float64{1, 5, 3, 2}
	assert.Equal(t, 5.0, maxOf(v))
	assert.Equal(t, 11.0, sumOf(v))
}
