package rasterimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestOtsuIterativeThreshold exercises the histogram-only math of the
// threshold picker directly, sidestepping the gocv.Mat dependency the rest
// of this package carries.
func TestOtsuIterativeThreshold(t *testing.T) {
	t.Run("empty histogram falls back to midpoint", func(t *testing.T) {
		var hist [256]int
		assert.Equal(t, uint8(128), OtsuIterativeThreshold(hist))
	})

	t.Run("bimodal histogram lands between the two clusters", func(t *testing.T) {
		var hist [256]int
		hist[10] = 100
		hist[250] = 100
		th := OtsuIterativeThreshold(hist)
		assert.Greater(t, th, uint8(10))
		assert.Less(t, th, uint8(250))
	})

	t.Run("single-valued histogram converges to that value", func(t *testing.T) {
		var hist [256]int
		hist[77] = 500
		assert.Equal(t, uint8(77), OtsuIterativeThreshold(hist))
	})

	t.Run("result is always clamped to a valid byte", func(t *testing.T) {
		var hist [256]int
		hist[0] = 1
		hist[255] = 1
		th := OtsuIterativeThreshold(hist)
		assert.GreaterOrEqual(t, th, uint8(0))
		assert.LessOrEqual(t, th, uint8(255))
	})
}
