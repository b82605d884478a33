package compat

import (
	"math"
	"sort"

	"jigsaw-solver/internal/align"
	"jigsaw-solver/internal/config"
	"jigsaw-solver/internal/pipeline"
	"jigsaw-solver/internal/piece"
	"jigsaw-solver/pkg/geometry"
)

// partner is one candidate match for a row's edge, carrying the shape-align
// fit and pairing inherited across resolution levels (spec §4.7 step 3:
// "rescale the saved pair mappings to the higher-resolution sizes and
// resume shapeAlign from them").
type partner struct {
	edge  piece.EdgeID
	score Score
	fit   align.ShapeAlignResult
}

// Row holds one edge's surviving candidate partners after the full
// multi-resolution build, plus its per-channel best (lowest) scores.
type Row struct {
	partners map[piece.EdgeID]Score
	best     Score
	disabled bool
}

// Table is the full pairwise edge-compatibility table (spec §3 data model:
// CompatibilityTable).
type Table struct {
	store   *piece.Store
	params  config.Params
	rows    []Row
	scaled  []ScaledEdge
}

// Build constructs the compatibility table for every edge in store (spec
// §4.7). It is safe to parallelize row-by-row (spec §5): each row index is
// written independently.
func Build(store *piece.Store, params config.Params) *Table {
	t := &Table{
		store:  store,
		params: params,
		rows:   make([]Row, store.NumEdges()),
		scaled: make([]ScaledEdge, store.NumEdges()),
	}
	for i := range t.scaled {
		t.scaled[i] = BuildScaledEdge(store, piece.EdgeID(i))
	}
	pool := pipeline.New(params.NumThreads)
	pool.Map(len(t.rows), func(i int) {
		t.rows[i] = t.buildRow(piece.EdgeID(i))
	})
	return t
}

// buildRow runs the candidate-filter + progressive-pruning pipeline for one
// edge (spec §4.7 steps 1-3).
func (t *Table) buildRow(e piece.EdgeID) Row {
	candidates := t.candidatesFor(e)
	k := len(candidates)
	if k == 0 {
		return Row{partners: map[piece.EdgeID]Score{}, best: infScore()}
	}

	keepFraction := math.Pow(float64(k)/float64(t.params.BaseSize), -1.0/float64(ResolutionDepth))

	partners := make([]partner, len(candidates))
	for i, c := range candidates {
		partners[i] = partner{edge: c}
	}

	for level := 0; level < ResolutionDepth; level++ {
		for i := range partners {
			p := &partners[i]
			if level == 0 {
				p.fit = align.ShapeAlign(t.scaled[e].Curves[0], t.scaled[p.edge].Curves[0])
			} else {
				p.fit = rescaleFit(p.fit, len(t.scaled[e].Curves[level]), len(t.scaled[p.edge].Curves[level]))
				p.fit = refitFrom(t.scaled[e].Curves[level], t.scaled[p.edge].Curves[level], p.fit)
			}
			p.score = scoreAt(t.scaled[e], t.scaled[p.edge], level, p.fit)
		}

		sort.Slice(partners, func(i, j int) bool { return partners[i].score.Shape < partners[j].score.Shape })

		keep := int(float64(k) * math.Pow(keepFraction, float64(level+1)))
		if keep < 1 {
			keep = 1
		}
		if keep > len(partners) {
			keep = len(partners)
		}
		partners = partners[:keep]
	}

	row := Row{partners: make(map[piece.EdgeID]Score, len(partners)), best: infScore()}
	for _, p := range partners {
		row.partners[p.edge] = p.score
		row.best = minScore(row.best, p.score)
	}
	return row
}

// candidatesFor builds the filtered candidate set for edge e (spec §4.7
// step 1): a different piece, the opposite edge type, and a matching
// flat-neighbor pattern (whether the previous/next edge of each is FLAT
// agrees on both sides).
func (t *Table) candidatesFor(e piece.EdgeID) []piece.EdgeID {
	edge := t.store.Edge(e)
	if edge.Type == piece.Flat {
		return nil
	}
	want := edge.Type.Opposite()
	prevFlat := t.store.Edge(edge.Prev).Type == piece.Flat
	nextFlat := t.store.Edge(edge.Next).Type == piece.Flat

	var out []piece.EdgeID
	for i := range t.store.Edges {
		cand := piece.EdgeID(i)
		c := t.store.Edge(cand)
		if c.Piece == edge.Piece || c.Type != want {
			continue
		}
		cPrevFlat := t.store.Edge(c.Prev).Type == piece.Flat
		cNextFlat := t.store.Edge(c.Next).Type == piece.Flat
		if cPrevFlat != nextFlat || cNextFlat != prevFlat {
			continue
		}
		out = append(out, cand)
	}
	return out
}

// Disable removes edge e from consideration: its row is cleared and it is
// dropped from every other row's partner set (spec §4.10 step 3, §5: called
// only from the single-threaded frame and interior solvers; the rows are
// updated one after another).
func (t *Table) Disable(e piece.EdgeID) {
	t.rows[e].disabled = true
	t.rows[e].partners = map[piece.EdgeID]Score{}
	t.rows[e].best = infScore()
	for i := range t.rows {
		if _, ok := t.rows[i].partners[e]; !ok {
			continue
		}
		delete(t.rows[i].partners, e)
		t.rows[i].best = infScore()
		for _, s := range t.rows[i].partners {
			t.rows[i].best = minScore(t.rows[i].best, s)
		}
	}
}

// queryScore returns row e's combined weighted score against f, or +Inf
// if f is not (or no longer) among e's surviving partners (spec §4.7
// step 5).
func (t *Table) queryScore(e, f piece.EdgeID) float64 {
	row := t.rows[e]
	if row.disabled {
		return math.Inf(1)
	}
	s, ok := row.partners[f]
	if !ok {
		return math.Inf(1)
	}
	w := t.params.Weights
	total := 0.0
	total += w.Shape * (1 - ratio(row.best.Shape, s.Shape))
	total += w.Hue * (1 - ratio(row.best.H, s.H))
	total += w.Sat * (1 - ratio(row.best.S, s.S))
	total += w.Lum * (1 - ratio(row.best.L, s.L))
	return total
}

// Score is the public, symmetric compatibility score between edges e and f
// (spec §4.7 step 5: "score(e, f) = row[e].score(f) + row[f].score(e)").
// table.score(e, e) is always +Inf (spec §8 invariant).
func (t *Table) Score(e, f piece.EdgeID) float64 {
	if e == f {
		return math.Inf(1)
	}
	return t.queryScore(e, f) + t.queryScore(f, e)
}

// rescaleFit remaps a ShapeAlignResult's pairings from the point counts
// they were computed at onto new point counts, proportionally by index
// (spec §4.7 step 3: "rescale the saved pair mappings to the
// higher-resolution sizes").
func rescaleFit(fit align.ShapeAlignResult, newN1, newN2 int) align.ShapeAlignResult {
	oldN1, oldN2 := len(fit.Pairs12), len(fit.Pairs21)
	out := align.ShapeAlignResult{Transform: fit.Transform}
	if oldN1 > 0 {
		out.Pairs12 = rescaleIndices(fit.Pairs12, oldN2, newN1, newN2)
	}
	if oldN2 > 0 {
		out.Pairs21 = rescaleIndices(fit.Pairs21, oldN1, newN2, newN1)
	}
	return out
}

// rescaleIndices proportionally remaps a slice of pairs (length oldLen,
// indexing into a partner of size oldPartnerLen) onto a new slice of
// length newLen, indexing into a partner of size newPartnerLen.
func rescaleIndices(pairs []int, oldPartnerLen, newLen, newPartnerLen int) []int {
	oldLen := len(pairs)
	out := make([]int, newLen)
	for i := range out {
		srcIdx := i * (oldLen - 1) / max(newLen-1, 1)
		if oldLen == 1 {
			srcIdx = 0
		}
		j := pairs[srcIdx]
		scaled := j
		if oldPartnerLen > 1 {
			scaled = j * (newPartnerLen - 1) / (oldPartnerLen - 1)
		}
		if scaled >= newPartnerLen {
			scaled = newPartnerLen - 1
		}
		if scaled < 0 {
			scaled = 0
		}
		out[i] = scaled
	}
	return out
}

// refitFrom resumes shapeAlign's iterative refinement from a rescaled seed.
func refitFrom(c1, c2 []geometry.Point2D, seed align.ShapeAlignResult) align.ShapeAlignResult {
	return align.ShapeAlignFrom(c1, c2, seed)
}

func ratio(best, actual float64) float64 {
	if actual <= 1e-12 {
		if best <= 1e-12 {
			return 1
		}
		return 0
	}
	return best / actual
}

func infScore() Score {
	inf := math.Inf(1)
	return Score{Shape: inf, H: inf, S: inf, L: inf}
}

func minScore(a, b Score) Score {
	return Score{
		Shape: math.Min(a.Shape, b.Shape),
		H:     math.Min(a.H, b.H),
		S:     math.Min(a.S, b.S),
		L:     math.Min(a.L, b.L),
	}
}
