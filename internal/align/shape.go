package align

import (
	"jigsaw-solver/pkg/geometry"
)

// pairSearchWindow is the +/-5 index window searched for the nearest
// corresponding point each refinement iteration (spec §4.6).
const pairSearchWindow = 5

// shapeAlignMaxIterations bounds the refine loop; convergence (an
// incremental transform within tolerance of identity) usually arrives
// well before this.
const shapeAlignMaxIterations = 50

const (
	convergeAngleTol = 1e-5
	convergeTransTol = 1e-3
)

// ShapeAlignResult is the outcome of aligning two open curves: a rigid
// transform mapping c2 onto c1, plus the bidirectional point pairing
// (spec §3 data model: ShapeAlign).
type ShapeAlignResult struct {
	Transform geometry.RigidTransform // maps c2 onto c1
	Pairs12   []int                   // for each c1[i], the paired index into c2
	Pairs21   []int                   // for each c2[j], the paired index into c1
}

// ShapeAlign computes the rigid transform mapping curve c2 onto curve c1,
// plus a bidirectional point correspondence, by seeding from the curve
// endpoints and then alternating nearest-point pairing with rigid
// re-fitting until the incremental transform is the identity (spec §4.6).
// Both curves are assumed to have been resampled to the same point count
// and walked in opposite directions, so that c1[0] corresponds to c2's last
// point.
func ShapeAlign(c1, c2 []geometry.Point2D) ShapeAlignResult {
	n := len(c1)
	if n == 0 || len(c2) != n {
		return ShapeAlignResult{Transform: geometry.IdentityRigid()}
	}

	// Seed: fit the rigid transform from the two curves' endpoints alone
	// (c1[0]<->c2[n-1], c1[n-1]<->c2[0]).
	seedSrc := []geometry.Point2D{c2[n-1], c2[0]}
	seedDst := []geometry.Point2D{c1[0], c1[n-1]}
	t := geometry.OptimalRigid(seedSrc, seedDst)

	return shapeAlignFrom(c1, c2, t, identityPairs(n), identityPairs(n))
}

// ShapeAlignFrom resumes the iterative refinement from a previously
// computed alignment, instead of seeding from the curve endpoints (spec
// §4.7 step 3: "rescale the saved pair mappings to the higher-resolution
// sizes and resume shapeAlign from them").
func ShapeAlignFrom(c1, c2 []geometry.Point2D, seed ShapeAlignResult) ShapeAlignResult {
	n := len(c1)
	if n == 0 || len(c2) != n {
		return ShapeAlignResult{Transform: geometry.IdentityRigid()}
	}
	pairs12, pairs21 := seed.Pairs12, seed.Pairs21
	if len(pairs12) != n {
		pairs12 = identityPairs(n)
	}
	if len(pairs21) != n {
		pairs21 = identityPairs(n)
	}
	return shapeAlignFrom(c1, c2, seed.Transform, pairs12, pairs21)
}

func shapeAlignFrom(c1, c2 []geometry.Point2D, t geometry.RigidTransform, pairs12, pairs21 []int) ShapeAlignResult {
	n := len(c1)
	for iter := 0; iter < shapeAlignMaxIterations; iter++ {
		c2p := t.ApplyAll(c2)
		c1p := t.Inverse().ApplyAll(c1)

		newPairs12 := nearestInWindow(c1, c2p, pairs12, pairSearchWindow)
		newPairs21 := nearestInWindow(c2, c1p, pairs21, pairSearchWindow)

		m := 2 * n
		src := make([]geometry.Point2D, 0, m)
		dst := make([]geometry.Point2D, 0, m)
		for i, j := range newPairs12 {
			src = append(src, c2[j])
			dst = append(dst, c1[i])
		}
		for j, i := range newPairs21 {
			src = append(src, c2[j])
			dst = append(dst, c1[i])
		}
		newT := geometry.OptimalRigid(src, dst)

		incremental := t.Inverse().Compose(newT)
		t = newT
		pairs12 = newPairs12
		pairs21 = newPairs21

		if incremental.IsNearIdentity(convergeAngleTol, convergeTransTol) {
			break
		}
	}

	return ShapeAlignResult{Transform: t, Pairs12: pairs12, Pairs21: pairs21}
}

func identityPairs(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// nearestInWindow finds, for each point in from, the nearest point in to
// within a +/-window index range of its previous pairing.
func nearestInWindow(from, to []geometry.Point2D, prevPairs []int, window int) []int {
	n := len(to)
	out := make([]int, len(from))
	for i, p := range from {
		center := prevPairs[i]
		lo, hi := center-window, center+window
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		best := lo
		bestDist := p.Distance(to[lo])
		for j := lo + 1; j <= hi; j++ {
			d := p.Distance(to[j])
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		out[i] = best
	}
	return out
}
