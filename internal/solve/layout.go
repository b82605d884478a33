// Package solve assembles a PuzzleLayout: first the frame (spec §4.9),
// then the interior (spec §4.10).
package solve

import "jigsaw-solver/internal/piece"

// Direction indices into a piece's cyclic edge list, clockwise starting at
// whichever edge is currently stored as a cell's north-facing edge.
const (
	North = 0
	East  = 1
	South = 2
	West  = 3
)

// Cell is one square of a PuzzleLayout: empty, or a piece placed with a
// given rotation recorded as which of its edges currently faces north
// (spec §3 data model: PuzzleLayout).
type Cell struct {
	Filled    bool
	Piece     piece.ID
	NorthEdge piece.EdgeID
}

// PuzzleLayout is the W x H grid of placed pieces.
type PuzzleLayout struct {
	W, H  int
	Cells [][]Cell // Cells[y][x]
}

// NewPuzzleLayout allocates an empty W x H grid.
func NewPuzzleLayout(w, h int) *PuzzleLayout {
	cells := make([][]Cell, h)
	for y := range cells {
		cells[y] = make([]Cell, w)
	}
	return &PuzzleLayout{W: w, H: h, Cells: cells}
}

// EdgeFacing returns the edge of the piece in cell (x,y) that faces dir
// (North/East/South/West), given the cell's recorded north edge. Clockwise
// piece edge order means facing direction d is d steps clockwise (Next)
// from the north edge.
func EdgeFacing(store *piece.Store, cell Cell, dir int) piece.EdgeID {
	e := cell.NorthEdge
	for i := 0; i < dir; i++ {
		e = store.Edge(e).Next
	}
	return e
}

// walkPrev returns the edge reached by applying Prev to e, steps times.
func walkPrev(store *piece.Store, e piece.EdgeID, steps int) piece.EdgeID {
	for i := 0; i < steps; i++ {
		e = store.Edge(e).Prev
	}
	return e
}

// opposite returns the direction facing the opposite way (North<->South,
// East<->West).
func opposite(dir int) int { return (dir + 2) % 4 }
