package piece

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"jigsaw-solver/pkg/geometry"
)

func addTestPiece(s *Store, types [4]EdgeType) (ID, [4]EdgeID) {
	var curves [4][]geometry.Point2D
	return s.AddPiece("test.jpg", 0, geometry.PointInt{X: 0, Y: 0}, curves, types)
}

func TestAddPieceCyclicEdgeConsistency(t *testing.T) {
	s := NewStore()
	_, edges := addTestPiece(s, [4]EdgeType{Flat, Indent, Outdent, Flat})

	for _, e := range edges {
		edge := s.Edge(e)
		next := s.Edge(edge.Next)
		prev := s.Edge(edge.Prev)
		assert.Equal(t, e, next.Prev, "edge.Next.Prev must point back to edge")
		assert.Equal(t, e, prev.Next, "edge.Prev.Next must point back to edge")
		assert.Equal(t, edge.Piece, next.Piece)
		assert.Equal(t, edge.Piece, prev.Piece)
	}
}

func TestAddPieceDenseIDs(t *testing.T) {
	s := NewStore()
	p0, e0 := addTestPiece(s, [4]EdgeType{Flat, Flat, Indent, Outdent})
	p1, e1 := addTestPiece(s, [4]EdgeType{Indent, Outdent, Indent, Outdent})

	assert.Equal(t, ID(0), p0)
	assert.Equal(t, ID(1), p1)
	assert.Equal(t, [4]EdgeID{0, 1, 2, 3}, e0)
	assert.Equal(t, [4]EdgeID{4, 5, 6, 7}, e1)
	assert.Equal(t, 2, s.NumPieces())
	assert.Equal(t, 8, s.NumEdges())
}

func TestEdgeTypeOpposite(t *testing.T) {
	assert.Equal(t, Indent, Outdent.Opposite())
	assert.Equal(t, Outdent, Indent.Opposite())
	assert.Equal(t, Flat, Flat.Opposite())
}

func TestFrameEdgesInterior(t *testing.T) {
	s := NewStore()
	p, _ := addTestPiece(s, [4]EdgeType{Indent, Outdent, Indent, Outdent})
	_, _, ok := s.FrameEdges(p)
	assert.False(t, ok)
	assert.False(t, s.IsCorner(p))
}

func TestFrameEdgesEdgePiece(t *testing.T) {
	s := NewStore()
	// Single flat edge at index 0: in=Prev(3), out=Next(1).
	p, edges := addTestPiece(s, [4]EdgeType{Flat, Indent, Outdent, Indent})
	in, out, ok := s.FrameEdges(p)
	assert.True(t, ok)
	assert.Equal(t, edges[3], in)
	assert.Equal(t, edges[1], out)
	assert.False(t, s.IsCorner(p))
}

func TestFrameEdgesCornerPiece(t *testing.T) {
	s := NewStore()
	// Two adjacent flats at indices 0 and 1: in=Prev(3), out=Next(2), and
	// out.Next must equal in since the flats are skipped entirely.
	p, edges := addTestPiece(s, [4]EdgeType{Flat, Flat, Indent, Outdent})
	in, out, ok := s.FrameEdges(p)
	assert.True(t, ok)
	assert.Equal(t, edges[3], in)
	assert.Equal(t, edges[2], out)
	assert.True(t, s.IsCorner(p))
}
