// Package lstsq adapts the linear least-squares capability the layout
// computer treats as an external collaborator (spec §6): given a sparse
// M*N coefficient system and an M-vector of targets, return the N-vector
// minimizing the squared residual. Implemented with gonum's QR
// decomposition, the same solver the teacher's alignment package uses to
// fit affine transforms (internal/alignment/transform.go).
package lstsq

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Equation is one row of the system: sum_j Coeffs[j]*x[vars[j]] = RHS.
// Using a sparse row representation (variable index -> coefficient) keeps
// the builder side simple since most rows touch only 1-2 variables
// (pairwise pose differences, or a single anchored variable).
type Equation struct {
	Terms map[int]float64
	RHS   float64
}

// NewEquation builds an equation with the given variable/coefficient pairs.
func NewEquation(rhs float64, terms ...struct {
	Var   int
	Coeff float64
}) Equation {
	eq := Equation{Terms: make(map[int]float64, len(terms)), RHS: rhs}
	for _, t := range terms {
		eq.Terms[t.Var] += t.Coeff
	}
	return eq
}

// System is an over-determined linear system over numVars unknowns.
type System struct {
	NumVars   int
	Equations []Equation
}

// Add appends an equation relating variable a and variable b:
// x[a] - x[b] = rhs. Pass b = -1 for an anchor equation x[a] = rhs.
func (s *System) Add(a, b int, rhs float64) {
	eq := Equation{Terms: map[int]float64{a: 1}, RHS: rhs}
	if b >= 0 {
		eq.Terms[b] -= 1
	}
	s.Equations = append(s.Equations, eq)
}

// Solve finds the least-squares solution x minimizing ||Ax-b||^2 via QR
// decomposition of the dense system (dense is acceptable: puzzle variable
// counts are in the hundreds to low thousands).
func (s *System) Solve() ([]float64, error) {
	if s.NumVars == 0 {
		return nil, nil
	}
	m := len(s.Equations)
	if m == 0 {
		return make([]float64, s.NumVars), nil
	}

	a := mat.NewDense(m, s.NumVars, nil)
	b := mat.NewVecDense(m, nil)
	for i, eq := range s.Equations {
		for v, coeff := range eq.Terms {
			a.Set(i, v, coeff)
		}
		b.SetVec(i, eq.RHS)
	}

	var qr mat.QR
	qr.Factorize(a)

	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	out := make([]float64, s.NumVars)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}
