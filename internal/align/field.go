// Package align implements the pattern-align optimizer (spec §4.3), the
// shape aligner (spec §4.6), and lineAlign, the three curve-registration
// routines the rest of the pipeline builds on.
package align

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"jigsaw-solver/pkg/geometry"
)

// EdgeWeightField is a 2-D summed-area table over an edge-response image,
// permitting O(1) queries of the weighted centroid of edge response in any
// axis-aligned square window (spec §4.3 "preparation").
type EdgeWeightField struct {
	rows, cols int
	w          []float64 // raw weights, row-major, for scoring
	satW       [][]float64
	satWX      [][]float64
	satWY      [][]float64
}

// BuildEdgeWeightField runs the preparation pass: denoise twice, compute
// gradient-magnitude edge response, convert to a weight field, and build
// its summed-area tables.
func BuildEdgeWeightField(mat gocv.Mat) *EdgeWeightField {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	denoised := gray.Clone()
	defer denoised.Close()
	for i := 0; i < 2; i++ {
		tmp := gocv.NewMat()
		gocv.MedianBlur(denoised, &tmp, 5)
		denoised.Close()
		denoised = tmp
	}

	gx := gocv.NewMat()
	defer gx.Close()
	gy := gocv.NewMat()
	defer gy.Close()
	gocv.Sobel(denoised, &gx, gocv.MatTypeCV32F, 1, 0, 3, 1, 0, gocv.BorderDefault)
	gocv.Sobel(denoised, &gy, gocv.MatTypeCV32F, 0, 1, 3, 1, 0, gocv.BorderDefault)

	rows, cols := denoised.Rows(), denoised.Cols()
	w := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			vx := float64(gx.GetFloatAt(y, x))
			vy := float64(gy.GetFloatAt(y, x))
			w[y*cols+x] = math.Sqrt(vx*vx + vy*vy)
		}
	}

	return newField(rows, cols, w)
}

func newField(rows, cols int, w []float64) *EdgeWeightField {
	f := &EdgeWeightField{rows: rows, cols: cols, w: w}

	wx := make([]float64, rows*cols)
	wy := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := w[y*cols+x]
			wx[y*cols+x] = v * float64(x)
			wy[y*cols+x] = v * float64(y)
		}
	}

	f.satW = prefixSum2D(w, rows, cols)
	f.satWX = prefixSum2D(wx, rows, cols)
	f.satWY = prefixSum2D(wy, rows, cols)
	return f
}

// prefixSum2D builds an (rows+1)x(cols+1) 2-D prefix-sum table from a
// row-major rows*cols array of values.
func prefixSum2D(values []float64, rows, cols int) [][]float64 {
	sat := make([][]float64, rows+1)
	for i := range sat {
		sat[i] = make([]float64, cols+1)
	}
	for y := 0; y < rows; y++ {
		rowSum := 0.0
		for x := 0; x < cols; x++ {
			rowSum += values[y*cols+x]
			sat[y+1][x+1] = sat[y][x+1] + rowSum
		}
	}
	return sat
}

func rectSum(sat [][]float64, x0, y0, x1, y1 int) float64 {
	return sat[y1][x1] - sat[y0][x1] - sat[y1][x0] + sat[y0][x0]
}

// WeightedCentroid returns the weighted centroid of edge response within
// the axis-aligned square [cx-radius, cx+radius] x [cy-radius, cy+radius].
// ok is false when the window carries no edge weight (spec §7: fall back
// to the caller's previous point).
func (f *EdgeWeightField) WeightedCentroid(cx, cy, radius int) (geometry.Point2D, bool) {
	x0 := clampInt(cx-radius, 0, f.cols)
	x1 := clampInt(cx+radius+1, 0, f.cols)
	y0 := clampInt(cy-radius, 0, f.rows)
	y1 := clampInt(cy+radius+1, 0, f.rows)
	if x0 >= x1 || y0 >= y1 {
		return geometry.Point2D{}, false
	}

	sumW := rectSum(f.satW, x0, y0, x1, y1)
	if sumW <= 1e-9 {
		return geometry.Point2D{}, false
	}
	sumWX := rectSum(f.satWX, x0, y0, x1, y1)
	sumWY := rectSum(f.satWY, x0, y0, x1, y1)
	return geometry.Point2D{X: sumWX / sumW, Y: sumWY / sumW}, true
}

// WeightAt returns the raw edge weight at the pixel nearest p, used to
// score candidate alignments.
func (f *EdgeWeightField) WeightAt(p geometry.Point2D) float64 {
	x := clampInt(int(p.X+0.5), 0, f.cols-1)
	y := clampInt(int(p.Y+0.5), 0, f.rows-1)
	if f.cols == 0 || f.rows == 0 {
		return 0
	}
	return f.w[y*f.cols+x]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// bounds returns a rectangle covering the full field, for callers that
// need to clip curve points before sampling.
func (f *EdgeWeightField) bounds() image.Rectangle {
	return image.Rect(0, 0, f.cols, f.rows)
}
