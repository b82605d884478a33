// Package layout computes the final per-piece rigid pose for every placed
// piece and composites the assembled image (spec §4.11).
package layout

import (
	"math"

	"jigsaw-solver/internal/align"
	"jigsaw-solver/internal/lstsq"
	"jigsaw-solver/internal/piece"
	"jigsaw-solver/internal/solve"
	"jigsaw-solver/pkg/geometry"
)

// GeometricLayout is the final per-piece pose and overall canvas size
// (spec §3 data model).
type GeometricLayout struct {
	Width, Height float64
	Poses         map[piece.ID]geometry.RigidTransform
}

// targetAngle is the canvas-frame angle (radians) a FLAT edge facing dir
// should end up at: North=0, East=90deg, South=180deg, West=270deg,
// clockwise, matching the solve package's direction convention.
func targetAngle(dir int) float64 {
	return float64(dir) * math.Pi / 2
}

// Compute solves the rotation, x, and y least-squares systems described
// in spec §4.11 and returns the resulting per-piece poses plus the
// overall canvas size.
func Compute(store *piece.Store, pl *solve.PuzzleLayout) (*GeometricLayout, error) {
	n := store.NumPieces()

	baseRot := computeBaseRotations(store, pl)

	rotSys := &lstsq.System{NumVars: n}
	xSys := &lstsq.System{NumVars: n + 1} // n = virtual frame-width variable
	ySys := &lstsq.System{NumVars: n + 1} // n = virtual frame-height variable
	frameXVar, frameYVar := n, n

	addInterPieceDeps(store, pl, baseRot, rotSys, xSys, ySys)
	addFrameDeps(store, pl, rotSys, xSys, ySys, frameXVar, frameYVar)

	rot, err := rotSys.Solve()
	if err != nil {
		return nil, err
	}
	xs, err := xSys.Solve()
	if err != nil {
		return nil, err
	}
	ys, err := ySys.Solve()
	if err != nil {
		return nil, err
	}

	gl := &GeometricLayout{
		Width:  xs[frameXVar],
		Height: ys[frameYVar],
		Poses:  make(map[piece.ID]geometry.RigidTransform, n),
	}
	for p := piece.ID(0); int(p) < n; p++ {
		gl.Poses[p] = geometry.RigidTransform{Angle: rot[p], TX: xs[p], TY: ys[p]}
	}
	return gl, nil
}

// computeBaseRotations roughly aligns every placed piece by lineAlign on
// its north edge against angle 0, used only to linearize the
// rotation-entangled translation dependencies below (spec §4.11
// "Protocol").
func computeBaseRotations(store *piece.Store, pl *solve.PuzzleLayout) map[piece.ID]float64 {
	out := make(map[piece.ID]float64)
	for y := 0; y < pl.H; y++ {
		for x := 0; x < pl.W; x++ {
			cell := pl.Cells[y][x]
			if !cell.Filled {
				continue
			}
			curve := store.Edge(cell.NorthEdge).Curve
			fit := align.LineAlign(curve, 0)
			out[cell.Piece] = fit.Transform.Angle
		}
	}
	return out
}

// addInterPieceDeps adds one equation set per adjacent pair of filled
// cells: shapeAlign of the two abutting edges gives the relative rigid
// transform T, contributing pose(p2) = pose(p1) . T (spec §4.11 para 1).
// The rotation equation is exact; the translation equations are
// linearized using the already-computed base rotation of p1 in place of
// its (still unknown) exact rotation, per the spec's baseRotation
// protocol.
func addInterPieceDeps(store *piece.Store, pl *solve.PuzzleLayout, baseRot map[piece.ID]float64, rotSys, xSys, ySys *lstsq.System) {
	add := func(c1, c2 solve.Cell, dir1, dir2 int) {
		e1 := solve.EdgeFacing(store, c1, dir1)
		e2 := solve.EdgeFacing(store, c2, dir2)
		fit := align.ShapeAlign(store.Edge(e1).Curve, store.Edge(e2).Curve)

		p1, p2 := int(c1.Piece), int(c2.Piece)
		rotSys.Add(p2, p1, fit.Transform.Angle)

		r := baseRot[c1.Piece]
		cos, sin := math.Cos(r), math.Sin(r)
		dx := cos*fit.Transform.TX - sin*fit.Transform.TY
		dy := sin*fit.Transform.TX + cos*fit.Transform.TY
		xSys.Add(p2, p1, dx)
		ySys.Add(p2, p1, dy)
	}

	for y := 0; y < pl.H; y++ {
		for x := 0; x < pl.W; x++ {
			cell := pl.Cells[y][x]
			if !cell.Filled {
				continue
			}
			if x+1 < pl.W && pl.Cells[y][x+1].Filled {
				add(cell, pl.Cells[y][x+1], solve.East, solve.West)
			}
			if y+1 < pl.H && pl.Cells[y+1][x].Filled {
				add(cell, pl.Cells[y+1][x], solve.South, solve.North)
			}
		}
	}
}

// addFrameDeps adds, for every placed piece sitting on a border of the
// layout, a rotation anchor (lineAlign of its outward FLAT edge to the
// side's target angle) and a translation anchor: left/top sides anchor
// directly to 0, right/bottom sides anchor against a shared virtual
// "frame" variable (spec §4.11 para 2-3), which doubles as the solved
// canvas width/height.
func addFrameDeps(store *piece.Store, pl *solve.PuzzleLayout, rotSys, xSys, ySys *lstsq.System, frameXVar, frameYVar int) {
	touch := func(cell solve.Cell, dir int) {
		edge := solve.EdgeFacing(store, cell, dir)
		fit := align.LineAlign(store.Edge(edge).Curve, targetAngle(dir))
		p := int(cell.Piece)
		rotSys.Add(p, -1, fit.Transform.Angle)

		switch dir {
		case solve.North:
			ySys.Add(p, -1, 0)
		case solve.West:
			xSys.Add(p, -1, 0)
		case solve.East:
			xSys.Add(p, frameXVar, 0)
		case solve.South:
			ySys.Add(p, frameYVar, 0)
		}
	}

	for y := 0; y < pl.H; y++ {
		for x := 0; x < pl.W; x++ {
			cell := pl.Cells[y][x]
			if !cell.Filled {
				continue
			}
			if y == 0 {
				touch(cell, solve.North)
			}
			if y == pl.H-1 {
				touch(cell, solve.South)
			}
			if x == 0 {
				touch(cell, solve.West)
			}
			if x == pl.W-1 {
				touch(cell, solve.East)
			}
		}
	}
}
