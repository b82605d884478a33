// Package classify finds corners on a piece silhouette and types the four
// resulting edges (spec §4.4): FLAT, INDENT, or OUTDENT.
package classify

import (
	"jigsaw-solver/pkg/geometry"
)

// curvatureBlurSigma is the Gaussian blur applied to the raw turning-angle
// signal before searching for corners; it suppresses boundary-tracing
// jitter without washing out genuine tab/blank bumps.
const curvatureBlurSigma = 10

// cornerSearchRadius and cornerMinFraction bound the local-maxima search
// for corner candidates on the curvature signature.
const (
	cornerSearchRadius = 10
	cornerMinFraction  = 0.25
)

// CurvatureSignature computes a per-point turning-angle signal for a
// closed curve: the change in tangent direction at each vertex, smoothed
// with a Gaussian. The curve is tripled end-to-end before differencing
// (spec: "tripled-curve trick") so that phase unwrapping sees a
// continuous signal across the curve's start/end seam; only the middle
// copy is kept.
func CurvatureSignature(curve []geometry.Point2D) []float64 {
	n := len(curve)
	if n < 3 {
		return make([]float64, n)
	}

	tripled := make([]geometry.Point2D, 0, 3*n)
	tripled = append(tripled, curve...)
	tripled = append(tripled, curve...)
	tripled = append(tripled, curve...)

	tangents := geometry.TangentAngles(tripled)
	unwrapped := geometry.UnwrapAngles(tangents)

	// Difference and blur the full tripled array first, and only then trim
	// to the middle third. Slicing to the middle copy before differencing
	// would make the last vertex's turning angle wrap cyclically back to
	// the slice's own start instead of continuing into copy 3, a spurious
	// ~2*pi jump at the seam.
	turningFull := geometry.FirstDifference(unwrapped)
	blurredFull := geometry.CircularConvolve(turningFull, geometry.GaussianKernel1D(curvatureBlurSigma))

	// turningFull[k] is the turning angle at tripled vertex k+1, so
	// turningFull[n-1+i] is the turning angle at curve[i] in the middle copy;
	// keep exactly n of them, one per curve vertex.
	return append([]float64{}, blurredFull[n-1:2*n-1]...)
}

// CornerCandidates returns curve indices that are local maxima of the
// (blurred) curvature signature, restricted to at least cornerMinFraction of the
// strongest peak (spec §4.4 step 2).
func CornerCandidates(signature []float64) []int {
	return geometry.LocalMaximaCyclic(signature, cornerSearchRadius, cornerMinFraction)
}

// cyclicSegment returns the points of curve from index from to index to
// inclusive, wrapping around the end of the slice when to < from.
func cyclicSegment(curve []geometry.Point2D, from, to int) []geometry.Point2D {
	n := len(curve)
	if from <= to {
		out := make([]geometry.Point2D, to-from+1)
		copy(out, curve[from:to+1])
		return out
	}
	out := make([]geometry.Point2D, 0, n-from+to+1)
	out = append(out, curve[from:]...)
	out = append(out, curve[:to+1]...)
	return out
}

// cyclicSlice is cyclicSegment's analogue for a parallel []float64 signal
// (e.g. a curvature signature indexed the same way as its curve).
func cyclicSlice(signal []float64, from, to int) []float64 {
	n := len(signal)
	if from <= to {
		out := make([]float64, to-from+1)
		copy(out, signal[from:to+1])
		return out
	}
	out := make([]float64, 0, n-from+to+1)
	out = append(out, signal[from:]...)
	out = append(out, signal[:to+1]...)
	return out
}
