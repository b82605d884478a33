// Package piece defines the Piece/Edge data model produced by extraction
// and consumed read-only by every later stage (spec §3).
package piece

import (
	"image/color"

	"jigsaw-solver/pkg/geometry"
)

// ID identifies a Piece within a Store.
type ID int

// EdgeID identifies an Edge within a Store.
type EdgeID int

// EdgeType classifies an edge's silhouette.
type EdgeType int

const (
	Outdent EdgeType = -1
	Flat    EdgeType = 0
	Indent  EdgeType = 1
)

func (t EdgeType) String() string {
	switch t {
	case Outdent:
		return "OUTDENT"
	case Flat:
		return "FLAT"
	case Indent:
		return "INDENT"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the type that mates with t (OUTDENT<->INDENT, FLAT has
// no mate).
func (t EdgeType) Opposite() EdgeType {
	return -t
}

// Edge is one side of a piece: immutable after extraction. Prev/Next are
// cyclic references to the other edges of the same piece (spec design
// note: dense integer ids over pointer cycles).
type Edge struct {
	ID      EdgeID
	Piece   ID
	Prev    EdgeID
	Next    EdgeID
	Type    EdgeType
	Curve   []geometry.Point2D // piece-local coordinates, relative to piece center
	Colors  []color.RGBA       // one sample per curve point, from the eroded-curve colour signature
}

// Piece is immutable after extraction.
type Piece struct {
	ID          ID
	SourceImage string
	SourcePair  int // index of the originating front/back scan pair
	Center      geometry.PointInt
	Edges       [4]EdgeID // clockwise order
}

// Store owns all Piece and Edge records produced by extraction, allocating
// dense ids from two monotonically increasing counters (spec design note:
// no process-global mutable state — the counters live on the Store).
type Store struct {
	Pieces []Piece
	Edges  []Edge

	nextPiece ID
	nextEdge  EdgeID
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Edge returns the edge record for id.
func (s *Store) Edge(id EdgeID) *Edge {
	return &s.Edges[id]
}

// Piece returns the piece record for id.
func (s *Store) Piece(id ID) *Piece {
	return &s.Pieces[id]
}

// AddPiece allocates a new piece id and four edge ids, wires the edges'
// cyclic prev/next and piece back-reference, and returns the new piece id
// plus the four allocated edge ids in clockwise order.
func (s *Store) AddPiece(sourceImage string, sourcePair int, center geometry.PointInt, edgeCurves [4][]geometry.Point2D, edgeTypes [4]EdgeType) (ID, [4]EdgeID) {
	pieceID := s.nextPiece
	s.nextPiece++

	var edgeIDs [4]EdgeID
	base := s.nextEdge
	for i := 0; i < 4; i++ {
		edgeIDs[i] = base + EdgeID(i)
	}
	s.nextEdge += 4

	for i := 0; i < 4; i++ {
		s.Edges = append(s.Edges, Edge{
			ID:    edgeIDs[i],
			Piece: pieceID,
			Prev:  edgeIDs[(i+3)%4],
			Next:  edgeIDs[(i+1)%4],
			Type:  edgeTypes[i],
			Curve: edgeCurves[i],
		})
	}

	s.Pieces = append(s.Pieces, Piece{
		ID:          pieceID,
		SourceImage: sourceImage,
		SourcePair:  sourcePair,
		Center:      center,
		Edges:       edgeIDs,
	})

	return pieceID, edgeIDs
}

// NumEdges returns the total number of edges allocated.
func (s *Store) NumEdges() int { return len(s.Edges) }

// NumPieces returns the total number of pieces allocated.
func (s *Store) NumPieces() int { return len(s.Pieces) }

// FrameEdges returns the (inEdge, outEdge) pair of non-FLAT edges adjacent
// to a FLAT edge, for pieces that lie on the puzzle boundary (spec §4.9).
// ok is false for interior pieces (no FLAT edge at all).
func (s *Store) FrameEdges(p ID) (inEdge, outEdge EdgeID, ok bool) {
	piece := s.Piece(p)
	for _, e := range piece.Edges {
		if s.Edge(e).Type != Flat {
			continue
		}
		flat := e
		// inEdge is the edge before the (run of) flat edges, outEdge the
		// edge after. Corner pieces have two adjacent flats; walk past them.
		prev := s.Edge(flat).Prev
		for s.Edge(prev).Type == Flat {
			prev = s.Edge(prev).Prev
		}
		next := s.Edge(flat).Next
		for s.Edge(next).Type == Flat {
			next = s.Edge(next).Next
		}
		return prev, next, true
	}
	return 0, 0, false
}

// IsCorner reports whether piece p is a frame corner: two consecutive FLAT
// edges leave only inEdge and outEdge, which are then themselves adjacent
// with nothing else between them going forward (outEdge.Next == inEdge).
func (s *Store) IsCorner(p ID) bool {
	in, out, ok := s.FrameEdges(p)
	if !ok {
		return false
	}
	return s.Edge(out).Next == in
}
