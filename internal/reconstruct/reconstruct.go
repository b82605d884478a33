// Package reconstruct wires the full pipeline (extraction through
// layout/render) into the single entry point the CLI driver calls, the
// way the teacher's internal/alignment ties together its own multi-stage
// import pipeline.
package reconstruct

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"jigsaw-solver/internal/align"
	"jigsaw-solver/internal/compat"
	"jigsaw-solver/internal/config"
	"jigsaw-solver/internal/extract"
	"jigsaw-solver/internal/layout"
	"jigsaw-solver/internal/pipeline"
	"jigsaw-solver/internal/piece"
	"jigsaw-solver/internal/rasterimg"
	"jigsaw-solver/internal/solve"
	"jigsaw-solver/pkg/geometry"
)

// Sentinel error kinds (spec §7). The CLI driver maps these to exit codes
// with errors.Is.
var (
	ErrInputMismatch  = errors.New("front/back image count mismatch")
	ErrUnreadableImage = errors.New("could not read image")
	ErrFrameInfeasible = errors.New("no valid rectangular frame found")
)

// Result is the outcome of a full reconstruction run.
type Result struct {
	Store  *piece.Store
	Layout *solve.PuzzleLayout
	Pose   *layout.GeometricLayout
	Image  rasterimg.Image
}

// Run loads every front/back scan pair, extracts pieces, solves the frame
// and interior, computes the geometric layout, and renders the final
// composite (spec §1 "Overview" end-to-end pipeline).
func Run(frontPaths, backPaths []string, maxFrameAttempts int, cfg config.Params) (*Result, error) {
	if len(frontPaths) != len(backPaths) {
		return nil, fmt.Errorf("%d front images, %d back images: %w", len(frontPaths), len(backPaths), ErrInputMismatch)
	}

	fronts := make([]rasterimg.Image, len(frontPaths))
	backs := make([]rasterimg.Image, len(backPaths))
	for i := range frontPaths {
		f, err := rasterimg.Load(frontPaths[i])
		if err != nil {
			return nil, fmt.Errorf("front image %s: %w: %v", frontPaths[i], ErrUnreadableImage, err)
		}
		fronts[i] = f
		b, err := rasterimg.Load(backPaths[i])
		if err != nil {
			return nil, fmt.Errorf("back image %s: %w: %v", backPaths[i], ErrUnreadableImage, err)
		}
		backs[i] = b
	}
	defer func() {
		for _, im := range fronts {
			im.Close()
		}
		for _, im := range backs {
			im.Close()
		}
	}()

	store := piece.NewStore()
	extractPairs(store, frontPaths, fronts, backs, cfg)

	table := compat.Build(store, cfg)

	frameLayout, interior, ok := solve.SolveFrame(store, table, maxFrameAttempts)
	if !ok {
		return nil, ErrFrameInfeasible
	}

	solve.SolveInterior(store, table, frameLayout, interior)

	pose, err := layout.Compute(store, frameLayout)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	rendered, err := layout.Render(store, pose, cfg)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Result{Store: store, Layout: frameLayout, Pose: pose, Image: rendered}, nil
}

// extractPairs runs back-side extraction, front-side pattern-alignment,
// and piece/edge extraction for every scan pair, in parallel across pairs
// (spec §5 region (a)). Pairs that yield zero components are skipped with
// a warning (spec §7 ExtractionEmpty) rather than aborting the run.
func extractPairs(store *piece.Store, frontPaths []string, fronts, backs []rasterimg.Image, cfg config.Params) {
	type pairPieces struct {
		curves      [][]geometry.Point2D
		sourceImage string
	}
	results := make([]pairPieces, len(fronts))

	pool := pipeline.New(cfg.NumThreads)
	pool.Map(len(fronts), func(i int) {
		backShapes := extract.BackShapes(backs[i], cfg)
		if len(backShapes) == 0 {
			log.Printf("reconstruct: pair %d (%s): no components found, skipping", i, frontPaths[i])
			return
		}

		initial := make([]geometry.Point2D, len(backShapes))
		for j, s := range backShapes {
			initial[j] = s.Center
		}
		centers := extract.RefineCenters(fronts[i], initial, cfg)

		field := align.BuildEdgeWeightField(fronts[i].Mat)

		curves := make([][]geometry.Point2D, len(backShapes))
		for j, s := range backShapes {
			mirrored := mirrorAboutCentroid(s.Curve)
			curves[j] = align.PatternAlign(mirrored, field, centers[j])
		}

		results[i] = pairPieces{curves: curves, sourceImage: frontPaths[i]}
	})

	for i, r := range results {
		if len(r.curves) == 0 {
			continue
		}
		img := fronts[i]
		sampler := func(p geometry.Point2D) color.RGBA {
			x, y := int(p.X+0.5), int(p.Y+0.5)
			if x < 0 || x >= img.Cols() || y < 0 || y >= img.Rows() {
				return color.RGBA{}
			}
			return img.At(x, y)
		}
		for _, curve := range r.curves {
			piece.Extract(store, r.sourceImage, i, curve, sampler, float64(cfg.EdgeToColorDistance))
		}
	}
}

// mirrorAboutCentroid flips a curve horizontally about its own centroid,
// turning a back-side silhouette into the orientation it would have if
// viewed from the front (spec §4.3: "a known back-side (mirror-flipped)
// shape").
func mirrorAboutCentroid(curve []geometry.Point2D) []geometry.Point2D {
	c := geometry.Centroid(curve)
	out := make([]geometry.Point2D, len(curve))
	for i, p := range curve {
		out[i] = geometry.Point2D{X: 2*c.X - p.X, Y: p.Y}
	}
	return out
}
