package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jigsaw-solver/internal/piece"
)

func TestNewPuzzleLayoutAllocatesEmptyGrid(t *testing.T) {
	pl := NewPuzzleLayout(3, 2)
	assert.Equal(t, 3, pl.W)
	assert.Equal(t, 2, pl.H)
	require.Len(t, pl.Cells, 2)
	for _, row := range pl.Cells {
		require.Len(t, row, 3)
		for _, c := range row {
			assert.False(t, c.Filled)
		}
	}
}

func TestEdgeFacingWalksClockwiseFromNorth(t *testing.T) {
	s := piece.NewStore()
	_, edges := addCornerPiece(s, [4]piece.EdgeType{piece.Outdent, piece.Indent, piece.Outdent, piece.Indent})
	cell := Cell{Filled: true, NorthEdge: edges[0]}

	assert.Equal(t, edges[0], EdgeFacing(s, cell, North))
	assert.Equal(t, edges[1], EdgeFacing(s, cell, East))
	assert.Equal(t, edges[2], EdgeFacing(s, cell, South))
	assert.Equal(t, edges[3], EdgeFacing(s, cell, West))
}

func TestWalkPrevReversesNext(t *testing.T) {
	s := piece.NewStore()
	_, edges := addCornerPiece(s, [4]piece.EdgeType{piece.Outdent, piece.Indent, piece.Outdent, piece.Indent})

	assert.Equal(t, edges[3], walkPrev(s, edges[0], 1))
	assert.Equal(t, edges[2], walkPrev(s, edges[0], 2))
	assert.Equal(t, edges[0], walkPrev(s, edges[0], 4))
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, South, opposite(North))
	assert.Equal(t, North, opposite(South))
	assert.Equal(t, West, opposite(East))
	assert.Equal(t, East, opposite(West))
}
