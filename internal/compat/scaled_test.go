package compat

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jigsaw-solver/internal/piece"
	"jigsaw-solver/pkg/geometry"
)

func TestBuildScaledEdgeProducesEveryResolutionLevel(t *testing.T) {
	s := piece.NewStore()
	curve := straightCurve(30)
	col := solidColors(30, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	flat := []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}}

	s.AddPiece("a.jpg", 0, geometry.PointInt{}, [4][]geometry.Point2D{curve, flat, flat, flat}, [4]piece.EdgeType{piece.Outdent, piece.Flat, piece.Flat, piece.Flat})
	s.Edge(piece.EdgeID(0)).Colors = col

	se := BuildScaledEdge(s, piece.EdgeID(0))
	for lvl := 0; lvl < ResolutionDepth; lvl++ {
		assert.GreaterOrEqual(t, len(se.Curves[lvl]), 2)
		assert.Len(t, se.Colors[lvl], len(se.Curves[lvl]))
	}
	// Resolution shrinks (or stays at the floor of 2) as level increases.
	assert.GreaterOrEqual(t, len(se.Curves[0]), len(se.Curves[ResolutionDepth-1]))
}

func TestResampleColors(t *testing.T) {
	t.Run("empty colors still returns n entries", func(t *testing.T) {
		out := resampleColors(nil, 5)
		assert.Len(t, out, 5)
	})

	t.Run("endpoints are preserved", func(t *testing.T) {
		colors := []color.RGBA{{R: 1}, {R: 2}, {R: 3}, {R: 4}, {R: 5}}
		out := resampleColors(colors, 3)
		require.Len(t, out, 3)
		assert.Equal(t, colors[0], out[0])
		assert.Equal(t, colors[len(colors)-1], out[len(out)-1])
	})

	t.Run("n=1 does not divide by zero", func(t *testing.T) {
		colors := []color.RGBA{{R: 1}, {R: 2}}
		out := resampleColors(colors, 1)
		require.Len(t, out, 1)
	})
}

func TestMaxHelper(t *testing.T) {
	assert.Equal(t, 5, max(5, 3))
	assert.Equal(t, 5, max(3, 5))
	assert.Equal(t, 4, max(4, 4))
}
