// Package extract implements the back-side shape extractor (spec §4.1) and
// the front-side object detector (spec §4.2): the two leaf stages that turn
// raw scans into piece centers and silhouette curves.
package extract

import (
	"sort"

	"jigsaw-solver/internal/config"
	"jigsaw-solver/internal/morph"
	"jigsaw-solver/internal/pipeline"
	"jigsaw-solver/internal/rasterimg"
	"jigsaw-solver/pkg/geometry"
)

// Shape is one connected component traced from a back-side scan: a closed,
// counter-clockwise curve plus its polygon area.
type Shape struct {
	Curve  []geometry.Point2D
	Area   float64
	Center geometry.Point2D
}

const borderPad = 2

// BackShapes runs the full back-side extraction pipeline (spec §4.1):
// grayscale, Otsu-style threshold, morphological smoothing, border pad,
// per-component boundary trace, and small-component rejection.
func BackShapes(img rasterimg.Image, cfg config.Params) []Shape {
	gray := rasterimg.GrayscaleMax(img)
	defer gray.Close()

	hist := rasterimg.Histogram256(gray)
	t := rasterimg.OtsuIterativeThreshold(hist)

	mask := rasterimg.Threshold(gray, t)
	defer mask.Close()

	smoothed := morph.Smooth(mask.Mat, 2)
	defer smoothed.Close()

	padded := rasterimg.PadBorder(rasterimg.Image{Mat: smoothed}, borderPad)
	defer padded.Close()

	shapes := traceAllComponents(padded)

	if len(shapes) == 0 {
		return nil
	}

	maxArea := shapes[0].Area
	for _, s := range shapes {
		if s.Area > maxArea {
			maxArea = s.Area
		}
	}

	kept := shapes[:0]
	for _, s := range shapes {
		if s.Area >= maxArea*cfg.MinMaxPieceSizeRatio {
			kept = append(kept, s)
		}
	}
	return kept
}

// traceAllComponents finds and traces every white connected component in a
// padded binary mask, translating curves back into un-padded coordinates.
func traceAllComponents(padded rasterimg.Image) []Shape {
	work := padded.Clone()
	defer work.Close()

	var shapes []Shape
	rows, cols := work.Rows(), work.Cols()

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if !rasterimg.IsWhite(work, x, y) {
				continue
			}

			curve := traceCrackBoundary(work, x, y)
			rasterimg.FloodFillMask(work, x, y, 0)

			if len(curve) < 3 {
				continue
			}

			area := geometry.SignedArea(curve)
			if area < 0 {
				reverse(curve)
				area = -area
			}

			translated := make([]geometry.Point2D, len(curve))
			for i, p := range curve {
				translated[i] = geometry.Point2D{X: p.X - borderPad, Y: p.Y - borderPad}
			}

			shapes = append(shapes, Shape{
				Curve:  translated,
				Area:   area,
				Center: geometry.PolygonCentroid(translated),
			})
		}
	}

	sort.Slice(shapes, func(i, j int) bool { return shapes[i].Area > shapes[j].Area })
	return shapes
}

// crackDirections are the 4 unit steps a crack-following walk can take, in
// the same East/South/West/North order as the original extractor's
// direction table.
var crackDirections = [4][2]int{
	{1, 0}, {0, 1}, {-1, 0}, {0, -1},
}

// isShapePixel reports whether the 2x2 block of pixels whose shared corner
// is the crack vertex (x, y) — i.e. pixels (x-1,y-1), (x,y-1), (x-1,y),
// (x,y) — contains at least one foreground pixel. A crack vertex is "on"
// the component's boundary exactly when this holds.
func isShapePixel(mask rasterimg.Image, x, y int) bool {
	return rasterimg.IsWhite(mask, x-1, y-1) ||
		rasterimg.IsWhite(mask, x, y-1) ||
		rasterimg.IsWhite(mask, x-1, y) ||
		rasterimg.IsWhite(mask, x, y)
}

// traceCrackBoundary traces the outer boundary of the white component
// containing (startX, startY) by walking the crack lattice between pixels
// (spec §4.1 step 5): at each vertex, rotate the direction of travel +90°
// from the previous step, then rotate back -90° one step at a time until
// the cell ahead is a shape pixel, and advance into it. startX, startY must
// already be a shape-pixel vertex (true of any pixel found by a foreground
// raster scan).
func traceCrackBoundary(mask rasterimg.Image, startX, startY int) []geometry.Point2D {
	dir := 2 // matches the original extractor's initial "west" heading.
	x, y := startX, startY

	var boundary []geometry.Point2D
	const maxSteps = 1 << 20
	for step := 0; step < maxSteps; step++ {
		boundary = append(boundary, geometry.Point2D{X: float64(x), Y: float64(y)})

		dir = (dir + 1) % 4
		for !isShapePixel(mask, x+crackDirections[dir][0], y+crackDirections[dir][1]) {
			dir = (dir + 3) % 4
		}
		x += crackDirections[dir][0]
		y += crackDirections[dir][1]

		if x == startX && y == startY {
			break
		}
	}

	return boundary
}

func reverse(curve []geometry.Point2D) {
	for i, j := 0, len(curve)-1; i < j; i, j = i+1, j-1 {
		curve[i], curve[j] = curve[j], curve[i]
	}
}

// BackShapesParallel runs BackShapes over many images using a worker pool,
// one task per image (spec §5 region (a)).
func BackShapesParallel(images []rasterimg.Image, cfg config.Params) [][]Shape {
	results := make([][]Shape, len(images))
	pool := pipeline.New(cfg.NumThreads)
	pool.Map(len(images), func(i int) {
		results[i] = BackShapes(images[i], cfg)
	})
	return results
}
