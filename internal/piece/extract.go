package piece

import (
	"image/color"
	"math"

	"jigsaw-solver/internal/classify"
	"jigsaw-solver/pkg/geometry"
)

// ColorSampler returns the color at an absolute image coordinate, used to
// pick up a piece's edge-colour signature.
type ColorSampler func(p geometry.Point2D) color.RGBA

// Extract builds a Piece and its four Edges from one piece's optimized
// silhouette curve (spec §4.5): it finds the four corners via the
// curvature signature, classifies the resulting edges, and samples each
// edge's colour a fixed distance inward from the silhouette so that the
// colour signature isn't contaminated by scanner edge artifacts.
//
// erodeDistance is the inward sampling offset in pixels
// (config.Params.EdgeToColorDistance). ok is false when four well-formed
// corners cannot be found.
func Extract(store *Store, sourceImage string, sourcePair int, curve []geometry.Point2D, sampler ColorSampler, erodeDistance float64) (ID, bool) {
	if len(curve) < 8 {
		return 0, false
	}

	signature := classify.CurvatureSignature(curve)
	candidates := classify.CornerCandidates(signature)
	corners, ok := classify.FindCorners(curve, candidates)
	if !ok {
		return 0, false
	}

	cornerPts := [4]geometry.Point2D{
		curve[corners[0]], curve[corners[1]], curve[corners[2]], curve[corners[3]],
	}
	center := geometry.Centroid(cornerPts[:])

	var edgeCurves [4][]geometry.Point2D
	var edgeTypes [4]EdgeType
	var edgeColors [4][]color.RGBA

	for i := 0; i < 4; i++ {
		segment := cyclicSegment(curve, corners[i], corners[(i+1)%4])

		score := classify.ClassifyEdge(curve, signature, corners[i], corners[(i+1)%4])
		edgeTypes[i] = EdgeType(score.Best())

		local := make([]geometry.Point2D, len(segment))
		colors := make([]color.RGBA, len(segment))
		for j, p := range segment {
			local[j] = geometry.Point2D{X: p.X - center.X, Y: p.Y - center.Y}
			colors[j] = sampler(erodeTowardCenter(p, center, erodeDistance))
		}
		edgeCurves[i] = local
		edgeColors[i] = colors
	}

	id, edgeIDs := store.AddPiece(sourceImage, sourcePair, geometry.PointInt{X: int(center.X + 0.5), Y: int(center.Y + 0.5)}, edgeCurves, edgeTypes)
	for i, eid := range edgeIDs {
		store.Edge(eid).Colors = edgeColors[i]
	}
	return id, true
}

// cyclicSegment returns the points of curve from index `from` to index `to`
// inclusive, wrapping around the end of the slice when to < from.
func cyclicSegment(curve []geometry.Point2D, from, to int) []geometry.Point2D {
	n := len(curve)
	if from <= to {
		out := make([]geometry.Point2D, to-from+1)
		copy(out, curve[from:to+1])
		return out
	}
	out := make([]geometry.Point2D, 0, n-from+to+1)
	out = append(out, curve[from:]...)
	out = append(out, curve[:to+1]...)
	return out
}

// erodeTowardCenter nudges p a fixed distance toward center, so the colour
// sample is taken just inside the silhouette rather than on its boundary.
func erodeTowardCenter(p, center geometry.Point2D, distance float64) geometry.Point2D {
	dx, dy := center.X-p.X, center.Y-p.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq < 1e-12 {
		return p
	}
	inv := distance / math.Sqrt(lengthSq)
	return geometry.Point2D{X: p.X + dx*inv, Y: p.Y + dy*inv}
}
