package solve

import (
	"math"

	"jigsaw-solver/internal/compat"
	"jigsaw-solver/internal/piece"
)

// neighborCountFloors lists the minimum number of filled neighbors a
// candidate empty cell must have before it is considered, falling back to a
// lower floor only when no cell meets a higher one (spec §9 Open Question:
// the source sets this floor at 2, but a sparsely filled board can leave cells
// with only 1 or 0 filled neighbors, so the floor relaxes downward rather
// than stalling).
var neighborCountFloors = []int{2, 1, 0}

// SolveInterior greedily fills every empty cell of layout from the pool
// of interior pieces, picking at each step the candidate cell, piece, and
// rotation that best matches its already-filled neighbors, then disabling
// the consumed edges (spec §4.10). Mutates layout and table in place.
func SolveInterior(store *piece.Store, table *compat.Table, layout *PuzzleLayout, pieces []piece.ID) {
	remaining := append([]piece.ID(nil), pieces...)

	for len(remaining) > 0 {
		cells := candidateCells(layout)
		if len(cells) == 0 {
			break
		}

		bestScore := math.Inf(1)
		bestCell := [2]int{}
		bestPieceIdx := -1
		bestRotation := 0
		bestFound := false

		for _, c := range cells {
			for pi, p := range remaining {
				for rot := 0; rot < 4; rot++ {
					s := scoreCandidate(store, table, layout, c[0], c[1], p, rot)
					if s < bestScore {
						bestScore = s
						bestCell = c
						bestPieceIdx = pi
						bestRotation = rot
						bestFound = true
					}
				}
			}
		}
		if !bestFound {
			break
		}

		x, y := bestCell[0], bestCell[1]
		p := store.Piece(remaining[bestPieceIdx])
		north := p.Edges[bestRotation]
		layout.Cells[y][x] = Cell{Filled: true, Piece: remaining[bestPieceIdx], NorthEdge: north}

		disableCellEdges(store, table, layout, x, y)

		remaining = append(remaining[:bestPieceIdx], remaining[bestPieceIdx+1:]...)
	}
}

// candidateCells finds empty cells with the maximum filled-neighbor count,
// relaxing the floor only if no cell clears a higher one (spec §4.10
// step 1).
func candidateCells(layout *PuzzleLayout) [][2]int {
	type scored struct {
		x, y, n int
	}
	var empties []scored
	for y := 0; y < layout.H; y++ {
		for x := 0; x < layout.W; x++ {
			if layout.Cells[y][x].Filled {
				continue
			}
			empties = append(empties, scored{x, y, filledNeighborCount(layout, x, y)})
		}
	}
	if len(empties) == 0 {
		return nil
	}

	maxN := 0
	for _, e := range empties {
		if e.n > maxN {
			maxN = e.n
		}
	}
	for _, floor := range neighborCountFloors {
		if maxN < floor {
			continue
		}
		var out [][2]int
		for _, e := range empties {
			if e.n == maxN {
				out = append(out, [2]int{e.x, e.y})
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	var out [][2]int
	for _, e := range empties {
		if e.n == maxN {
			out = append(out, [2]int{e.x, e.y})
		}
	}
	return out
}

func filledNeighborCount(layout *PuzzleLayout, x, y int) int {
	n := 0
	for _, d := range neighborDeltas(x, y, layout.W, layout.H) {
		if layout.Cells[d.y][d.x].Filled {
			n++
		}
	}
	return n
}

type neighborDelta struct {
	x, y, dir int
}

// neighborDeltas returns the in-bounds 4-neighbors of (x,y) tagged with
// the direction from (x,y) toward each.
func neighborDeltas(x, y, w, h int) []neighborDelta {
	var out []neighborDelta
	if y > 0 {
		out = append(out, neighborDelta{x, y - 1, North})
	}
	if x < w-1 {
		out = append(out, neighborDelta{x + 1, y, East})
	}
	if y < h-1 {
		out = append(out, neighborDelta{x, y + 1, South})
	}
	if x > 0 {
		out = append(out, neighborDelta{x - 1, y, West})
	}
	return out
}

// scoreCandidate sums table.Score between each filled neighbor's
// cell-facing edge and the candidate piece's corresponding edge, for the
// piece placed at rotation rot (its Edges[rot] made the north edge) (spec
// §4.10 step 2).
func scoreCandidate(store *piece.Store, table *compat.Table, layout *PuzzleLayout, x, y int, p piece.ID, rot int) float64 {
	pc := store.Piece(p)
	north := pc.Edges[rot]
	cand := Cell{Filled: true, Piece: p, NorthEdge: north}

	total := 0.0
	for _, d := range neighborDeltas(x, y, layout.W, layout.H) {
		neighbor := layout.Cells[d.y][d.x]
		if !neighbor.Filled {
			continue
		}
		neighborEdge := EdgeFacing(store, neighbor, opposite(d.dir))
		candEdge := EdgeFacing(store, cand, d.dir)
		total += table.Score(neighborEdge, candEdge)
	}
	return total
}

// disableCellEdges disables the 4 edges of the piece just placed at
// (x,y), plus the 4 edges of its filled neighbors that now face it (spec
// §4.10 step 3: both the consumed piece's own edges and the adjacent
// edges they were just matched against drop out of further consideration).
func disableCellEdges(store *piece.Store, table *compat.Table, layout *PuzzleLayout, x, y int) {
	cell := layout.Cells[y][x]
	for dir := 0; dir < 4; dir++ {
		table.Disable(EdgeFacing(store, cell, dir))
	}
	for _, d := range neighborDeltas(x, y, layout.W, layout.H) {
		neighbor := layout.Cells[d.y][d.x]
		if neighbor.Filled {
			table.Disable(EdgeFacing(store, neighbor, opposite(d.dir)))
		}
	}
}
