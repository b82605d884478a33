package classify

import (
	"math"

	"jigsaw-solver/pkg/geometry"
)

// FindCorners chooses the 4 curve indices, among the candidates, that best
// behave as a piece's corners (spec §4.4 step 4): precompute, for every
// ordered pair of candidates, the best of the three edge-type scores for
// the sub-curve running between them, then search every 4-combination for
// the one minimizing maxScore+sumScore over its four consecutive
// (cyclic) pairs. Returned indices are in ascending (curve-order)
// position.
func FindCorners(curve []geometry.Point2D, candidates []int) ([4]int, bool) {
	n := len(candidates)
	if n < 4 {
		return [4]int{}, false
	}

	signature := CurvatureSignature(curve)
	scoreTable := make([][]float64, n)
	for i := range scoreTable {
		scoreTable[i] = make([]float64, n)
		for j := range scoreTable[i] {
			if i == j {
				continue
			}
			scoreTable[i][j] = ClassifyEdge(curve, signature, candidates[i], candidates[j]).MinScore()
		}
	}

	best := [4]int{}
	bestObjective := math.Inf(1)
	found := false

	for a := 0; a < n-3; a++ {
		for b := a + 1; b < n-2; b++ {
			for c := b + 1; c < n-1; c++ {
				for d := c + 1; d < n; d++ {
					pairs := [4]float64{
						scoreTable[a][b],
						scoreTable[b][c],
						scoreTable[c][d],
						scoreTable[d][a],
					}
					objective := maxOf(pairs) + sumOf(pairs)
					if objective < bestObjective {
						bestObjective = objective
						best = [4]int{candidates[a], candidates[b], candidates[c], candidates[d]}
						found = true
					}
				}
			}
		}
	}

	return best, found
}

func maxOf(v [4]float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func sumOf(v [4]float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}
