package solve

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jigsaw-solver/internal/compat"
	"jigsaw-solver/internal/config"
	"jigsaw-solver/internal/piece"
	"jigsaw-solver/pkg/geometry"
)

func TestFilledNeighborCount(t *testing.T) {
	layout := NewPuzzleLayout(3, 3)
	layout.Cells[0][1] = Cell{Filled: true}
	layout.Cells[1][0] = Cell{Filled: true}

	assert.Equal(t, 2, filledNeighborCount(layout, 1, 1))
	assert.Equal(t, 0, filledNeighborCount(layout, 2, 2))
}

func TestNeighborDeltasClipsToBounds(t *testing.T) {
	d := neighborDeltas(0, 0, 3, 3)
	require.Len(t, d, 2) // only East and South in-bounds from the corner
	dirs := map[int]bool{}
	for _, nd := range d {
		dirs[nd.dir] = true
	}
	assert.True(t, dirs[East])
	assert.True(t, dirs[South])
}

func TestCandidateCellsPrefersMoreFilledNeighbors(t *testing.T) {
	layout := NewPuzzleLayout(3, 3)
	// Fill three of (1,1)'s four neighbors; (1,1) ends up with 3 filled
	// neighbors, everything else has at most 2.
	layout.Cells[0][1] = Cell{Filled: true}
	layout.Cells[1][0] = Cell{Filled: true}
	layout.Cells[1][2] = Cell{Filled: true}

	cells := candidateCells(layout)
	require.Len(t, cells, 1)
	assert.Equal(t, [2]int{1, 1}, cells[0])
}

func TestCandidateCellsRelaxesFloorWhenNoneMeetIt(t *testing.T) {
	// An empty 3x3 grid: every empty cell has 0 filled neighbors, below
	// the default floor of 2, so the floor relaxes down to 0 and every
	// cell qualifies.
	layout := NewPuzzleLayout(3, 3)
	cells := candidateCells(layout)
	assert.Len(t, cells, 9)
}

func addSimplePiece(s *piece.Store, types [4]piece.EdgeType, curve []geometry.Point2D, col []color.RGBA) piece.ID {
	var curves [4][]geometry.Point2D
	for i := range curves {
		curves[i] = curve
	}
	id, edges := s.AddPiece("t.jpg", 0, geometry.PointInt{}, curves, types)
	for _, e := range edges {
		s.Edges[e].Colors = col
	}
	return id
}

func TestSolveInteriorFillsEveryCellExactlyOnce(t *testing.T) {
	s := piece.NewStore()
	curve := make([]geometry.Point2D, 10)
	for i := range curve {
		curve[i] = geometry.Point2D{X: float64(i), Y: 0}
	}
	col := make([]color.RGBA, 10)
	for i := range col {
		col[i] = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	}

	pieceA := addSimplePiece(s, [4]piece.EdgeType{piece.Indent, piece.Outdent, piece.Indent, piece.Outdent}, curve, col)
	pieceB := addSimplePiece(s, [4]piece.EdgeType{piece.Outdent, piece.Indent, piece.Outdent, piece.Indent}, curve, col)

	layout := NewPuzzleLayout(2, 1)
	pA := s.Piece(pieceA)
	layout.Cells[0][0] = Cell{Filled: true, Piece: pieceA, NorthEdge: pA.Edges[0]}

	table := compat.Build(s, config.Default())
	SolveInterior(s, table, layout, []piece.ID{pieceB})

	assert.True(t, layout.Cells[0][1].Filled)
	assert.Equal(t, pieceB, layout.Cells[0][1].Piece)
}
