// Package matching solves the min-cost perfect bipartite matching used to
// pair piece edges, and its k-best (Murty) extension used to search for a
// valid frame cycle (spec §4.8).
package matching

// infCost stands in for +Inf on forbidden/forced-out edges. A finite
// sentinel, rather than math.Inf, keeps the potential-update arithmetic in
// MinCostPerfectMatching well-defined (Inf minus Inf is NaN).
const infCost = 1e15

// IsInfeasible reports whether a matched edge cost represents a forbidden
// (never-to-be-used) pairing.
func IsInfeasible(cost float64) bool { return cost >= infCost }

// IsInfeasibleSentinel returns a cost value that marks an edge as
// forbidden, for callers building their own cost matrices (e.g. the frame
// solver forbidding a piece from following itself in the cycle).
func IsInfeasibleSentinel() float64 { return infCost }

// MinCostPerfectMatching finds a minimum-cost perfect matching on a square
// N×N cost matrix by the successive-shortest-augmenting-path method with
// vertex potentials (spec §4.8: the dense specialization of "Dijkstra with
// reduced costs on the residual graph" — the bipartite graph here is
// complete, so the shortest-path relaxation is a full column scan at every
// step and a `container/heap` priority queue, as used for the sparse graph
// search in the teacher's `trace.FindPathOnSkeleton`, buys nothing).
// perm[i] is the column matched to row i. ok is false if flow could not
// saturate (spec's MatchingFailed) — every row still gets a (possibly
// infeasible, cost >= infCost) column so callers can treat the result
// uniformly.
func MinCostPerfectMatching(cost [][]float64) (perm []int, totalCost float64, ok bool) {
	n := len(cost)
	if n == 0 {
		return nil, 0, true
	}

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	matchedRow := make([]int, n+1) // matchedRow[j]: 1-based row assigned to column j; 0 = free
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		matchedRow[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		for j := range minv {
			minv[j] = infCost * float64(n+1)
		}
		used := make([]bool, n+1)

		for {
			used[j0] = true
			i0 := matchedRow[j0]
			delta := infCost * float64(n+1)
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[matchedRow[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if matchedRow[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			matchedRow[j0] = matchedRow[j1]
			j0 = j1
		}
	}

	perm = make([]int, n)
	ok = true
	for j := 1; j <= n; j++ {
		if matchedRow[j] > 0 {
			row := matchedRow[j] - 1
			col := j - 1
			perm[row] = col
			c := cost[row][col]
			totalCost += c
			if IsInfeasible(c) {
				ok = false
			}
		}
	}
	return perm, totalCost, ok
}
