// Package compat builds the pairwise edge-compatibility table (spec §4.7):
// for every candidate partner of every edge, a multi-resolution shape+colour
// score, pruned progressively as resolution increases.
package compat

import (
	"image/color"

	"jigsaw-solver/internal/align"
	"jigsaw-solver/internal/piece"
	"jigsaw-solver/pkg/colorutil"
	"jigsaw-solver/pkg/geometry"
)

// ResolutionDepth is the number of progressively coarser versions of each
// edge used for pruning (spec glossary RESOLUTION_DEPTH).
const ResolutionDepth = 3

// resolutionScales holds the per-level resample scale, 1 at full
// resolution and shrinking by a third each level (spec §4.7).
var resolutionScales = [ResolutionDepth]float64{1, 1 - 1.0/3, 1 - 2.0/3}

// ScaledEdge holds RESOLUTION_DEPTH resampled versions of one edge's
// curve and colour sequence, level 0 at full resolution.
type ScaledEdge struct {
	EdgeID piece.EdgeID
	Curves [ResolutionDepth][]geometry.Point2D
	Colors [ResolutionDepth][]color.RGBA
}

// BuildScaledEdge resamples an edge's curve and colours at every
// resolution level.
func BuildScaledEdge(store *piece.Store, id piece.EdgeID) ScaledEdge {
	e := store.Edge(id)
	fullN := len(e.Curve)

	se := ScaledEdge{EdgeID: id}
	for lvl, scale := range resolutionScales {
		n := int(float64(fullN)*scale + 0.5)
		if n < 2 {
			n = 2
		}
		se.Curves[lvl] = geometry.ResamplePath(e.Curve, n)
		se.Colors[lvl] = resampleColors(e.Colors, n)
	}
	return se
}

// resampleColors nearest-neighbor resamples a colour sequence to n entries,
// matching the index proportions of ResamplePath's arc-length resampling
// closely enough for the colour channel's score purposes.
func resampleColors(colors []color.RGBA, n int) []color.RGBA {
	if len(colors) == 0 {
		return make([]color.RGBA, n)
	}
	out := make([]color.RGBA, n)
	for i := range out {
		src := i * (len(colors) - 1) / max(n-1, 1)
		out[i] = colors[src]
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Score is one candidate partner's multi-channel comparison (spec §4.7
// step 4).
type Score struct {
	Shape float64
	H     float64
	S     float64
	L     float64
}

// scoreAt computes the Score between two scaled edges at the given
// resolution level, using a shape-align pairing: the shape component is
// the mean of squared point-to-paired-point distances in both directions
// (spec §4.7 step 4).
func scoreAt(a, b ScaledEdge, level int, fit align.ShapeAlignResult) Score {
	ca, cb := a.Curves[level], b.Curves[level]
	cbAligned := fit.Transform.ApplyAll(cb)
	caInTarget := fit.Transform.Inverse().ApplyAll(ca)

	var shapeSum float64
	count := 0
	for i, p := range ca {
		j := fit.Pairs12[i]
		d := p.Distance(cbAligned[j])
		shapeSum += d * d
		count++
	}
	for j, q := range cb {
		i := fit.Pairs21[j]
		d := q.Distance(caInTarget[i])
		shapeSum += d * d
		count++
	}

	colorsA, colorsB := a.Colors[level], b.Colors[level]
	var hSum, sSum, lSum float64
	hn := 0
	for i := range colorsA {
		if i >= len(colorsB) {
			break
		}
		ha := colorutil.RGBToHSL(float64(colorsA[i].R), float64(colorsA[i].G), float64(colorsA[i].B))
		hb := colorutil.RGBToHSL(float64(colorsB[i].R), float64(colorsB[i].G), float64(colorsB[i].B))
		hSum += colorutil.HueDistance(ha.H, hb.H)
		sSum += (ha.S - hb.S) * (ha.S - hb.S)
		lSum += (ha.L - hb.L) * (ha.L - hb.L)
		hn++
	}
	if hn == 0 {
		hn = 1
	}

	return Score{
		Shape: shapeSum / float64(count),
		H:     hSum / float64(hn),
		S:     sSum / float64(hn),
		L:     lSum / float64(hn),
	}
}
