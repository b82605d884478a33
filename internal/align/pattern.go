package align

import (
	"math"

	"jigsaw-solver/pkg/geometry"
)

// startingRotations is the number of evenly-spaced angles (in [0, 2*pi))
// tried as a starting point for pattern-align (spec §4.3: "72 starting
// rotations", i.e. every 5 degrees).
const startingRotations = 72

// refineIterationCount is the number of shrinking-radius refinement passes run
// from each starting rotation.
const refineIterationCount = 10

// refineStartRadius is the sampling radius used on the first refinement
// iteration; it shrinks by one pixel per iteration.
const refineStartRadius = 15

// perturbOffsets defines the post-refinement position search:
// offsets of 0, +-3, +-6 pixels in x and y.
var perturbOffsets = []int{-6, -3, 0, 3, 6}

// PatternAlign finds the rigid transform placing a known back-side
// silhouette (already mirrored to front-side orientation) onto the edge
// response of the front scan, starting from a roughly-known center (spec
// §4.3). It returns the transformed curve.
//
// shape is given in its own local coordinate frame, centered near the
// origin; detectedCenter is the approximate front-image position (typically
// from RefineCenters).
func PatternAlign(shape []geometry.Point2D, field *EdgeWeightField, detectedCenter geometry.Point2D) []geometry.Point2D {
	if len(shape) == 0 {
		return nil
	}

	centroid := geometry.Centroid(shape)
	relative := make([]geometry.Point2D, len(shape))
	for i, p := range shape {
		relative[i] = geometry.Point2D{X: p.X - centroid.X, Y: p.Y - centroid.Y}
	}

	var bestCurve []geometry.Point2D
	bestScore := math.Inf(-1)

	for k := 0; k < startingRotations; k++ {
		angle := 2 * math.Pi * float64(k) / startingRotations
		seed := geometry.RigidTransform{Angle: angle, TX: detectedCenter.X, TY: detectedCenter.Y}
		start := seed.ApplyAll(relative)

		refined, score := refinePattern(start, field)
		if score > bestScore {
			bestScore = score
			bestCurve = refined
		}
	}

	for _, dx := range perturbOffsets {
		for _, dy := range perturbOffsets {
			if dx == 0 && dy == 0 {
				continue
			}
			perturbed := translateCurve(bestCurve, float64(dx), float64(dy))
			refined, score := refinePattern(perturbed, field)
			if score > bestScore {
				bestScore = score
				bestCurve = refined
			}
		}
	}

	return bestCurve
}

// refinePattern runs the shrinking-radius refinement loop: at each
// iteration, every curve point is pulled toward the weighted centroid of
// edge response in its neighborhood, and the optimal rigid transform from
// the current curve to those targets is applied.
func refinePattern(curve []geometry.Point2D, field *EdgeWeightField) ([]geometry.Point2D, float64) {
	current := append([]geometry.Point2D{}, curve...)

	for iter := 0; iter < refineIterationCount; iter++ {
		radius := refineStartRadius - iter
		if radius < 1 {
			radius = 1
		}

		target := make([]geometry.Point2D, len(current))
		for i, p := range current {
			if c, ok := field.WeightedCentroid(int(p.X+0.5), int(p.Y+0.5), radius); ok {
				target[i] = c
			} else {
				// spec §7: no edge response in window, fall back to the
				// point's previous position.
				target[i] = p
			}
		}

		t := geometry.OptimalRigid(current, target)
		current = t.ApplyAll(current)
	}

	return current, scoreAgainstField(current, field)
}

// scoreAgainstField sums the raw edge weight sampled at every curve point:
// higher means the curve sits on strong image edges.
func scoreAgainstField(curve []geometry.Point2D, field *EdgeWeightField) float64 {
	var total float64
	for _, p := range curve {
		total += field.WeightAt(p)
	}
	return total
}

func translateCurve(curve []geometry.Point2D, dx, dy float64) []geometry.Point2D {
	out := make([]geometry.Point2D, len(curve))
	for i, p := range curve {
		out[i] = geometry.Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}
