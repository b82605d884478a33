package align

import (
	"math"

	"jigsaw-solver/pkg/geometry"
)

// lineAlignIterations bounds the self-projection refinement pass.
const lineAlignIterations = 5

// lineAlignAngleTol stops refinement early once the residual slope's
// angle is negligible.
const lineAlignAngleTol = 1e-6

// LineAlignResult is the outcome of aligning an open curve to a target
// line direction.
type LineAlignResult struct {
	Transform geometry.RigidTransform
	Curve     []geometry.Point2D
}

// LineAlign rotates and translates an open curve (typically a flat frame
// edge) so that its chord lies along targetAngle: first it rotates the
// chord from endpoint to endpoint onto the x-axis, then it iteratively
// refines by least-squares fitting a line through all curve points and
// removing the residual slope ("self-projection fit"), and finally it
// rotates the whole result onto targetAngle.
func LineAlign(curve []geometry.Point2D, targetAngle float64) LineAlignResult {
	n := len(curve)
	if n == 0 {
		return LineAlignResult{Transform: geometry.IdentityRigid()}
	}

	chordAngle := math.Atan2(curve[n-1].Y-curve[0].Y, curve[n-1].X-curve[0].X)
	rot := geometry.RigidTransform{Angle: -chordAngle}
	rotatedStart := rot.Apply(curve[0])
	seed := geometry.RigidTransform{Angle: -chordAngle, TX: -rotatedStart.X, TY: -rotatedStart.Y}

	total := seed
	current := seed.ApplyAll(curve)

	for iter := 0; iter < lineAlignIterations; iter++ {
		m, ok := fitSlope(current)
		if !ok {
			break
		}
		angle := math.Atan(m)
		if math.Abs(angle) < lineAlignAngleTol {
			break
		}
		step := geometry.RigidTransform{Angle: -angle}
		total = total.Compose(step)
		current = step.ApplyAll(current)
	}

	final := geometry.RigidTransform{Angle: targetAngle}
	total = total.Compose(final)
	current = final.ApplyAll(current)

	return LineAlignResult{Transform: total, Curve: current}
}

// fitSlope performs ordinary least-squares regression y = m*x + b over the
// curve's points, returning m. ok is false for a degenerate (zero x-spread)
// curve.
func fitSlope(curve []geometry.Point2D) (float64, bool) {
	n := float64(len(curve))
	if n == 0 {
		return 0, false
	}

	var sumX, sumY float64
	for _, p := range curve {
		sumX += p.X
		sumY += p.Y
	}
	meanX, meanY := sumX/n, sumY/n

	var num, den float64
	for _, p := range curve {
		dx := p.X - meanX
		dy := p.Y - meanY
		num += dx * dy
		den += dx * dx
	}
	if den < 1e-9 {
		return 0, false
	}
	return num / den, true
}
