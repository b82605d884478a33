package classify

import (
	"math"

	"jigsaw-solver/pkg/geometry"
)

// flatScoreThreshold: an edge whose FlatScore is at or below this is FLAT
// outright, regardless of how the other two scores compare (spec §4.4
// step 3: "If FlatScore <= 10, type is FLAT").
const flatScoreThreshold = 10

// minEdgeSize is the minimum chord length, in pixels, below which
// IndentScore/OutdentScore are not attempted (spec glossary MIN_EDGE_SIZE).
const minEdgeSize = 30

// EdgeType classifies one edge's silhouette. Values line up numerically
// with piece.EdgeType (OUTDENT=-1, FLAT=0, INDENT=1) so callers can convert
// with a plain type cast instead of this package importing piece (which
// would create an import cycle, since piece's extractor imports classify).
type EdgeType int

const (
	Outdent EdgeType = -1
	Flat    EdgeType = 0
	Indent  EdgeType = 1
)

// EdgeScore holds the three competing measurements used to type one edge
// (spec §4.4 step 3).
type EdgeScore struct {
	Flat    float64
	Indent  float64
	Outdent float64
}

// MinScore returns the lowest of the three scores, used as the combined
// "how good a corner pair is this" measurement in the 4-combination search.
func (s EdgeScore) MinScore() float64 {
	m := s.Flat
	if s.Indent < m {
		m = s.Indent
	}
	if s.Outdent < m {
		m = s.Outdent
	}
	return m
}

// Best returns the edge type with the lowest (best) score, subject to the
// FlatScore override.
func (s EdgeScore) Best() EdgeType {
	if s.Flat <= flatScoreThreshold {
		return Flat
	}
	switch {
	case s.Flat <= s.Indent && s.Flat <= s.Outdent:
		return Flat
	case s.Indent <= s.Outdent:
		return Indent
	default:
		return Outdent
	}
}

// ClassifyEdge scores and types the sub-curve running from corner a to
// corner b (inclusive, in curve order), given the full curve and its
// curvature signature.
func ClassifyEdge(curve []geometry.Point2D, signature []float64, a, b int) EdgeScore {
	segment := cyclicSegment(curve, a, b)
	sigSegment := cyclicSlice(signature, a, b)

	flat := flatScore(segment)
	score := EdgeScore{
		Flat:    flat,
		Indent:  indentScore(segment, sigSegment, flat),
		Outdent: outdentScore(segment, sigSegment, flat),
	}
	return score
}

// flatScore is the maximum perpendicular distance of any segment point
// from the chord connecting its endpoints.
func flatScore(segment []geometry.Point2D) float64 {
	if len(segment) < 2 {
		return 0
	}
	start, end := segment[0], segment[len(segment)-1]
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return 0
	}
	nx, ny := -dy/length, dx/length

	var maxAbs float64
	for _, p := range segment {
		vx, vy := p.X-start.X, p.Y-start.Y
		d := math.Abs(vx*nx + vy*ny)
		if d > maxAbs {
			maxAbs = d
		}
	}
	return maxAbs
}

// indentScore implements spec §4.4 step 3's IndentScore: for edges long
// enough to plausibly carry a tab or blank, find the longest contiguous
// run of positive curvature (a convex bump), widen it out to the
// enclosing local minima of the signature (the bump's natural footprint),
// cut those points out, and score the flatness of what's left. A segment
// too short, or with no positive run at all, scores +Inf.
func indentScore(segment []geometry.Point2D, signature []float64, chordFlat float64) float64 {
	if chordLength(segment) < minEdgeSize {
		return math.Inf(1)
	}
	lo, hi, ok := longestPositiveRun(signature)
	if !ok {
		return math.Inf(1)
	}
	lo, hi = widenToLocalMinima(signature, lo, hi)
	remainder := cutRange(segment, lo, hi)
	if len(remainder) < 2 {
		return chordFlat
	}
	return flatScore(remainder)
}

// outdentScore is indentScore run against the vertically-mirrored curve
// (and its correspondingly negated curvature signature), so that a
// concave bump — which reads as a negative-curvature run in the original
// orientation — is found by the same positive-run search.
func outdentScore(segment []geometry.Point2D, signature []float64, chordFlat float64) float64 {
	mirrored := make([]geometry.Point2D, len(segment))
	for i, p := range segment {
		mirrored[i] = geometry.Point2D{X: p.X, Y: -p.Y}
	}
	negated := make([]float64, len(signature))
	for i, v := range signature {
		negated[i] = -v
	}
	return indentScore(mirrored, negated, chordFlat)
}

func chordLength(segment []geometry.Point2D) float64 {
	if len(segment) < 2 {
		return 0
	}
	start, end := segment[0], segment[len(segment)-1]
	return math.Hypot(end.X-start.X, end.Y-start.Y)
}

// longestPositiveRun finds the longest contiguous run of strictly
// positive values in signature.
func longestPositiveRun(signature []float64) (lo, hi int, ok bool) {
	bestLo, bestHi, bestLen := -1, -1, 0
	i := 0
	for i < len(signature) {
		if signature[i] <= 0 {
			i++
			continue
		}
		j := i
		for j < len(signature) && signature[j] > 0 {
			j++
		}
		if j-i > bestLen {
			bestLen = j - i
			bestLo, bestHi = i, j-1
		}
		i = j
	}
	if bestLen == 0 {
		return 0, 0, false
	}
	return bestLo, bestHi, true
}

// widenToLocalMinima extends [lo, hi] outward in each direction until it
// reaches an enclosing local minimum of signature, capturing the bump's
// full footprint down to its baseline crossings.
func widenToLocalMinima(signature []float64, lo, hi int) (int, int) {
	n := len(signature)
	for lo > 0 && signature[lo-1] < signature[lo] {
		lo--
	}
	for hi < n-1 && signature[hi+1] < signature[hi] {
		hi++
	}
	return lo, hi
}

// cutRange removes points [lo, hi] from segment, joining what remains.
func cutRange(segment []geometry.Point2D, lo, hi int) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(segment)-(hi-lo+1))
	out = append(out, segment[:lo]...)
	if hi+1 < len(segment) {
		out = append(out, segment[hi+1:]...)
	}
	return out
}
