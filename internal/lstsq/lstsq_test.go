package lstsq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEquation(t *testing.T) {
	eq := NewEquation(5, struct {
		Var   int
		Coeff float64
	}{Var: 0, Coeff: 1}, struct {
		Var   int
		Coeff float64
	}{Var: 1, Coeff: -1})

	assert.Equal(t, 5.0, eq.RHS)
	assert.Equal(t, 1.0, eq.Terms[0])
	assert.Equal(t, -1.0, eq.Terms[1])
}

func TestSystemAddAnchor(t *testing.T) {
	s := &System{NumVars: 1}
	s.Add(0, -1, 3)
	require.Len(t, s.Equations, 1)
	assert.Equal(t, 1.0, s.Equations[0].Terms[0])
	_, hasB := s.Equations[0].Terms[-1]
	assert.False(t, hasB)
	assert.Equal(t, 3.0, s.Equations[0].RHS)
}

func TestSystemAddPairwise(t *testing.T) {
	s := &System{NumVars: 2}
	s.Add(1, 0, 4)
	eq := s.Equations[0]
	assert.Equal(t, 1.0, eq.Terms[1])
	assert.Equal(t, -1.0, eq.Terms[0])
	assert.Equal(t, 4.0, eq.RHS)
}

func TestSystemSolveEmpty(t *testing.T) {
	t.Run("zero variables", func(t *testing.T) {
		s := &System{NumVars: 0}
		x, err := s.Solve()
		require.NoError(t, err)
		assert.Nil(t, x)
	})

	t.Run("no equations", func(t *testing.T) {
		s := &System{NumVars: 3}
		x, err := s.Solve()
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, x)
	})
}

func TestSystemSolveExactChain(t *testing.T) {
	// x0 = 10, x1 - x0 = 2, x2 - x1 = 3  =>  x = [10, 12, 15]
	s := &System{NumVars: 3}
	s.Add(0, -1, 10)
	s.Add(1, 0, 2)
	s.Add(2, 1, 3)

	x, err := s.Solve()
	require.NoError(t, err)
	require.Len(t, x, 3)
	assert.InDelta(t, 10, x[0], 1e-9)
	assert.InDelta(t, 12, x[1], 1e-9)
	assert.InDelta(t, 15, x[2], 1e-9)
}

func TestSystemSolveOverdeterminedAverages(t *testing.T) {
	// Two independent anchors on the same variable average out.
	s := &System{NumVars: 1}
	s.Add(0, -1, 4)
	s.Add(0, -1, 6)

	x, err := s.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 5, x[0], 1e-9)
}
