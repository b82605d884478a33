package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jigsaw-solver/pkg/geometry"
)

func TestTranslateCurve(t *testing.T) {
	curve := []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}}
	out := translateCurve(curve, 2, -3)
	assert.Equal(t, []geometry.Point2D{{X: 2, Y: -3}, {X: 3, Y: -2}}, out)
}

func TestScoreAgainstField(t *testing.T) {
	f := pointField(20, 20, 5, 5, 10)
	onPoint := []geometry.Point2D{{X: 5, Y: 5}}
	offPoint := []geometry.Point2D{{X: 0, Y: 0}}
	assert.Greater(t, scoreAgainstField(onPoint, f), scoreAgainstField(offPoint, f))
}

// horizontalStripField builds a field with strong edge weight along row y,
// zero elsewhere, so refinement has an unambiguous target to pull toward.
func horizontalStripField(rows, cols, y int) *EdgeWeightField {
	w := make([]float64, rows*cols)
	for x := 0; x < cols; x++ {
		w[y*cols+x] = 1
	}
	return newField(rows, cols, w)
}

func TestRefinePatternPullsCurveTowardStrongEdge(t *testing.T) {
	field := horizontalStripField(40, 40, 10)
	curve := make([]geometry.Point2D, 10)
	for i := range curve {
		curve[i] = geometry.Point2D{X: float64(i * 3), Y: 20} // well off the strip
	}

	refined, score := refinePattern(curve, field)
	require.Len(t, refined, len(curve))
	assert.Greater(t, score, 0.0)

	var meanY float64
	for _, p := range refined {
		meanY += p.Y
	}
	meanY /= float64(len(refined))
	assert.Less(t, meanY, 20.0) // pulled up toward y=10
}

func TestPatternAlignEmptyShape(t *testing.T) {
	field := horizontalStripField(20, 20, 10)
	out := PatternAlign(nil, field, geometry.Point2D{})
	assert.Nil(t, out)
}

func TestPatternAlignFindsStrip(t *testing.T) {
	field := horizontalStripField(60, 60, 30)
	// A short horizontal segment, centered near the origin in its local
	// frame, seeded close enough (within refineStartRadius) for the
	// first refinement pass to see the strip.
	shape := []geometry.Point2D{{X: -5, Y: 0}, {X: 0, Y: 0}, {X: 5, Y: 0}}
	seedCenter := geometry.Point2D{X: 30, Y: 20}

	out := PatternAlign(shape, field, seedCenter)
	require.Len(t, out, len(shape))
	assert.Greater(t, scoreAgainstField(out, field), scoreAgainstField(
		translateCurve(shape, seedCenter.X, seedCenter.Y), field))
}
