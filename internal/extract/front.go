package extract

import (
	"math"

	"jigsaw-solver/internal/config"
	"jigsaw-solver/internal/rasterimg"
	"jigsaw-solver/pkg/geometry"
)

// colorDistance is the Euclidean distance between two BGR pixels, used for
// the background-fuzz foreground test (spec §4.2).
func colorDistance(a, b rasterimgColor) float64 {
	dr := float64(a.r) - float64(b.r)
	dg := float64(a.g) - float64(b.g)
	db := float64(a.b) - float64(b.b)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

type rasterimgColor struct{ r, g, b uint8 }

func colorAt(img rasterimg.Image, x, y int) rasterimgColor {
	c := img.At(x, y)
	return rasterimgColor{r: c.R, g: c.G, b: c.B}
}

// ForegroundMask binarizes the front image relative to the background
// color sampled at (20, 20), with the given fuzz tolerance.
func ForegroundMask(img rasterimg.Image, fuzz int) []bool {
	rows, cols := img.Rows(), img.Cols()
	bg := colorAt(img, 20, 20)

	mask := make([]bool, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			mask[y*cols+x] = colorDistance(colorAt(img, x, y), bg) > float64(fuzz)
		}
	}
	return mask
}

// RefineCenters runs K-means over the foreground pixels of img, starting
// from the given initial centers (typically the back-side shape
// centroids, in input order — spec §9 assumes front/back correspondence is
// preserved by nearest-start-seed clustering). Iterates until the
// mean-squared centroid movement drops below cfg.AvgReclusterChange.
//
// spec §9 flags the source's convergence predicate as an apparent bug
// (looping *while below* the threshold instead of *while above* it); this
// implementation uses the corrected semantics: continue while movement is
// still large, stop once it is small.
func RefineCenters(img rasterimg.Image, initial []geometry.Point2D, cfg config.Params) []geometry.Point2D {
	rows, cols := img.Rows(), img.Cols()
	mask := ForegroundMask(img, cfg.ColorFuzz)

	centers := make([]geometry.Point2D, len(initial))
	copy(centers, initial)
	if len(centers) == 0 {
		return centers
	}

	const maxIterations = 200
	for iter := 0; iter < maxIterations; iter++ {
		sums := make([]geometry.Point2D, len(centers))
		counts := make([]int, len(centers))

		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				if !mask[y*cols+x] {
					continue
				}
				p := geometry.Point2D{X: float64(x), Y: float64(y)}
				best, bestDist := 0, math.Inf(1)
				for i, c := range centers {
					d := p.Distance(c)
					if d < bestDist {
						bestDist = d
						best = i
					}
				}
				sums[best] = sums[best].Add(p)
				counts[best]++
			}
		}

		var squaredMovement float64
		next := make([]geometry.Point2D, len(centers))
		for i := range centers {
			if counts[i] == 0 {
				// Empty cluster: fall back to the last known good center
				// (spec §7: numerical edge cases fall back to the previous value).
				next[i] = centers[i]
				continue
			}
			next[i] = sums[i].Scale(1.0 / float64(counts[i]))
			squaredMovement += next[i].Distance(centers[i]) * next[i].Distance(centers[i])
		}

		centers = next
		meanSquaredMovement := squaredMovement / float64(len(centers))
		if meanSquaredMovement < cfg.AvgReclusterChange {
			break
		}
	}

	return centers
}
