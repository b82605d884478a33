package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinCostPerfectMatching(t *testing.T) {
	t.Run("empty matrix", func(t *testing.T) {
		perm, cost, ok := MinCostPerfectMatching(nil)
		assert.Nil(t, perm)
		assert.Zero(t, cost)
		assert.True(t, ok)
	})

	t.Run("trivial diagonal optimum", func(t *testing.T) {
		cost := [][]float64{
			{1, 9, 9},
			{9, 1, 9},
			{9, 9, 1},
		}
		perm, total, ok := MinCostPerfectMatching(cost)
		require.True(t, ok)
		assert.Equal(t, []int{0, 1, 2}, perm)
		assert.InDelta(t, 3, total, 1e-9)
	})

	t.Run("keeps the cheaper diagonal matching", func(t *testing.T) {
		cost := [][]float64{
			{1, 2},
			{2, 1},
		}
		perm, total, ok := MinCostPerfectMatching(cost)
		require.True(t, ok)
		assert.Equal(t, []int{0, 1}, perm)
		assert.InDelta(t, 2, total, 1e-9)
	})

	t.Run("optimal cost is at most every other permutation's cost", func(t *testing.T) {
		cost := [][]float64{
			{4, 1, 3},
			{2, 0, 5},
			{3, 2, 2},
		}
		_, total, ok := MinCostPerfectMatching(cost)
		require.True(t, ok)

		best := total
		for _, perm := range permutations([]int{0, 1, 2}) {
			var sum float64
			for row, col := range perm {
				sum += cost[row][col]
			}
			assert.LessOrEqual(t, best, sum+1e-9)
		}
	})

	t.Run("infeasible diagonal reports not ok", func(t *testing.T) {
		cost := [][]float64{
			{IsInfeasibleSentinel(), 1},
			{1, IsInfeasibleSentinel()},
		}
		_, _, ok := MinCostPerfectMatching(cost)
		assert.False(t, ok)
	})
}

func TestIsInfeasible(t *testing.T) {
	assert.True(t, IsInfeasible(IsInfeasibleSentinel()))
	assert.False(t, IsInfeasible(5))
}

// permutations returns every permutation of xs (small inputs only, used to
// brute-force-check optimality in tests).
func permutations(xs []int) [][]int {
	if len(xs) <= 1 {
		out := make([]int, len(xs))
		copy(out, xs)
		return [][]int{out}
	}
	var out [][]int
	for i := range xs {
		rest := make([]int, 0, len(xs)-1)
		rest = append(rest, xs[:i]...)
		rest = append(rest, xs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]int{xs[i]}, p...))
		}
	}
	return out
}
