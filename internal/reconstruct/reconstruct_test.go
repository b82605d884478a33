package reconstruct

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jigsaw-solver/internal/config"
	"jigsaw-solver/pkg/geometry"
)

func TestRunRejectsMismatchedImageCounts(t *testing.T) {
	_, err := Run([]string{"a.png", "b.png"}, []string{"a_back.png"}, 100, config.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputMismatch))
}

func TestRunReportsUnreadableImage(t *testing.T) {
	_, err := Run([]string{"/nonexistent/front.png"}, []string{"/nonexistent/back.png"}, 100, config.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadableImage))
}

func TestMirrorAboutCentroid(t *testing.T) {
	t.Run("mirrors a simple triangle about its own centroid", func(t *testing.T) {
		curve := []geometry.Point2D{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}
		mirrored := mirrorAboutCentroid(curve)
		require.Len(t, mirrored, 3)

		c := geometry.Centroid(curve)
		for i, p := range mirrored {
			assert.InDelta(t, 2*c.X-curve[i].X, p.X, 1e-9)
			assert.InDelta(t, curve[i].Y, p.Y, 1e-9)
		}
	})

	t.Run("symmetric curve maps onto itself with its points exchanged", func(t *testing.T) {
		curve := []geometry.Point2D{{X: -1, Y: 0}, {X: 1, Y: 0}}
		mirrored := mirrorAboutCentroid(curve)
		assert.InDelta(t, curve[1].X, mirrored[0].X, 1e-9)
		assert.InDelta(t, curve[0].X, mirrored[1].X, 1e-9)
	})
}
