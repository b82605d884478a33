package solve

import (
	"jigsaw-solver/internal/compat"
	"jigsaw-solver/internal/matching"
	"jigsaw-solver/internal/piece"
)

// frameMember is one frame piece's identity and its two non-FLAT edges
// adjacent to its FLAT run (spec §4.9).
type frameMember struct {
	pieceID piece.ID
	inEdge  piece.EdgeID
	outEdge piece.EdgeID
}

// framePieces collects every piece with at least one FLAT edge.
func framePieces(store *piece.Store) []frameMember {
	var out []frameMember
	for p := piece.ID(0); int(p) < store.NumPieces(); p++ {
		in, out2, ok := store.FrameEdges(p)
		if !ok {
			continue
		}
		out = append(out, frameMember{pieceID: p, inEdge: in, outEdge: out2})
	}
	return out
}

// SolveFrame finds a valid rectangular frame cycle and returns a
// PuzzleLayout with only its perimeter cells filled, plus the list of
// interior pieces (every piece not used in the frame) for the interior
// solver (spec §4.9). ok is false if k-best search exhausts finite
// options without a valid rectangle (spec's FrameInfeasible).
func SolveFrame(store *piece.Store, table *compat.Table, maxAttempts int) (*PuzzleLayout, []piece.ID, bool) {
	frame := framePieces(store)
	n := len(frame)
	if n < 4 {
		return nil, nil, false
	}

	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			if i == j {
				cost[i][j] = matching.IsInfeasibleSentinel()
				continue
			}
			cost[i][j] = table.Score(frame[i].outEdge, frame[j].inEdge)
		}
	}

	kbest := matching.NewKBest(cost)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		perm, _, feasible, more := kbest.Next()
		if !more {
			break
		}
		if !feasible {
			continue
		}

		cycle := traceCycle(perm)
		if len(cycle) != n {
			continue
		}
		layout, interior, ok := buildFrameLayout(store, frame, cycle)
		if ok {
			for _, m := range frame {
				table.Disable(m.inEdge)
				table.Disable(m.outEdge)
			}
			return layout, interior, true
		}
	}
	return nil, nil, false
}

// traceCycle follows perm starting at index 0 until it returns to 0,
// collecting the frame indices visited in order (spec §4.9: "extract the
// cycle containing index 0").
func traceCycle(perm []int) []int {
	cycle := []int{0}
	cur := perm[0]
	for cur != 0 {
		cycle = append(cycle, cur)
		if len(cycle) > len(perm) {
			return nil // malformed permutation, not a simple cycle
		}
		cur = perm[cur]
	}
	return cycle
}

// buildFrameLayout validates that cycle traces a rectangle (opposite
// sides equal length, corner count exactly 4) and, if so, places every
// frame piece around the perimeter, rotated so its FLAT edge(s) face
// outward (spec §4.9).
func buildFrameLayout(store *piece.Store, frame []frameMember, cycle []int) (*PuzzleLayout, []piece.ID, bool) {
	n := len(cycle)

	var cornerPos []int
	for i, fi := range cycle {
		if store.IsCorner(frame[fi].pieceID) {
			cornerPos = append(cornerPos, i)
		}
	}
	if len(cornerPos) != 4 {
		return nil, nil, false
	}

	rotated := make([]int, n)
	for i := range rotated {
		rotated[i] = cycle[(cornerPos[0]+i)%n]
	}
	var cornerIdx [4]int
	for k, cp := range cornerPos {
		cornerIdx[k] = (cp - cornerPos[0] + n) % n
	}

	side := [4]int{
		cornerIdx[1] - cornerIdx[0],
		cornerIdx[2] - cornerIdx[1],
		cornerIdx[3] - cornerIdx[2],
		n - cornerIdx[3],
	}
	if side[0] != side[2] || side[1] != side[3] {
		return nil, nil, false
	}
	for _, s := range side {
		if s < 1 {
			return nil, nil, false
		}
	}

	w := side[0] + 1
	h := side[1] + 1
	layout := NewPuzzleLayout(w, h)

	placeSide := func(startCoordX, startCoordY, dx, dy, dir, start, length int) {
		x, y := startCoordX, startCoordY
		for i := 0; i < length; i++ {
			fi := rotated[(start+i)%n]
			m := frame[fi]
			flat, wantDir := m.flatEdgeFor(store, dir)
			north := walkPrev(store, flat, wantDir)
			layout.Cells[y][x] = Cell{Filled: true, Piece: m.pieceID, NorthEdge: north}
			x += dx
			y += dy
		}
	}

	placeSide(0, 0, 1, 0, North, 0, side[0])
	placeSide(w-1, 0, 0, 1, East, cornerIdx[1], side[1])
	placeSide(w-1, h-1, -1, 0, South, cornerIdx[2], side[2])
	placeSide(0, h-1, 0, -1, West, cornerIdx[3], side[3])

	usedPieces := make(map[piece.ID]bool, n)
	for _, fi := range rotated {
		usedPieces[frame[fi].pieceID] = true
	}
	var interior []piece.ID
	for p := piece.ID(0); int(p) < store.NumPieces(); p++ {
		if !usedPieces[p] {
			interior = append(interior, p)
		}
	}

	return layout, interior, true
}

// flatEdgeFor returns the FLAT edge to use as the walkPrev reference for
// this frame member, and the direction it should end up facing. Straight
// pieces have one FLAT edge facing dir (the current side's outward
// direction) directly. Corner pieces have two consecutive FLAT edges
// (flatA.Next == flatB): flatA belongs to the *previous* side's outward
// direction (dir-1 mod 4), flatB to dir; using flatA with dir-1 and then
// walkPrev(flatA, dir-1) places flatA correctly, which in turn (since
// flatB = Next(flatA)) puts flatB exactly one step clockwise, i.e. at dir
// — both flats land in their correct outward slots in one placement.
func (m frameMember) flatEdgeFor(store *piece.Store, dir int) (piece.EdgeID, int) {
	p := store.Piece(m.pieceID)
	var flats []piece.EdgeID
	for _, e := range p.Edges {
		if store.Edge(e).Type == piece.Flat {
			flats = append(flats, e)
		}
	}
	if len(flats) == 1 {
		return flats[0], dir
	}
	for _, f := range flats {
		if store.Edge(store.Edge(f).Next).Type == piece.Flat {
			return f, (dir + 3) % 4
		}
	}
	return flats[0], dir
}
