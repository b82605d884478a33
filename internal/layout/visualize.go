package layout

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"jigsaw-solver/internal/config"
	"jigsaw-solver/internal/morph"
	"jigsaw-solver/internal/piece"
	"jigsaw-solver/internal/rasterimg"
	"jigsaw-solver/pkg/geometry"
)

// Render composites every placed piece onto a black canvas at its solved
// pose, cropping each piece from its original source scan by its own
// silhouette mask (spec §4.11 final step / §6 output artifact).
func Render(store *piece.Store, gl *GeometricLayout, cfg config.Params) (rasterimg.Image, error) {
	frame := cfg.VisualizationFrame
	width := int(math.Round(gl.Width)) + 2*frame
	height := int(math.Round(gl.Height)) + 2*frame
	canvas := rasterimg.Image{Mat: gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)}

	sources := make(map[string]rasterimg.Image)
	defer func() {
		for _, im := range sources {
			im.Close()
		}
	}()

	for p := piece.ID(0); int(p) < store.NumPieces(); p++ {
		pose, ok := gl.Poses[p]
		if !ok {
			continue
		}
		if err := compositePiece(store, p, pose, cfg, sources, canvas, frame); err != nil {
			return rasterimg.Image{}, err
		}
	}

	return canvas, nil
}

// localSilhouette concatenates a piece's 4 edge curves (already in
// piece-local coordinates, spec §3) into one closed polygon, dropping each
// edge's duplicated leading point (shared with the previous edge's trailing
// point) and the last edge's trailing point (shared with the first edge's
// leading point).
func localSilhouette(store *piece.Store, p piece.ID) []geometry.Point2D {
	pc := store.Piece(p)
	var pts []geometry.Point2D
	for i, e := range pc.Edges {
		curve := store.Edge(e).Curve
		if i > 0 && len(curve) > 0 {
			curve = curve[1:]
		}
		if i == len(pc.Edges)-1 && len(curve) > 0 {
			curve = curve[:len(curve)-1]
		}
		pts = append(pts, curve...)
	}
	return pts
}

// compositePiece crops p's source image at its local silhouette's bounding
// box, masks out everything but the silhouette, rotates the result by the
// solved pose angle, and copies it onto canvas at the pose's translation
// (offset by frame), without overwriting pixels of pieces already placed
// there that the mask doesn't cover.
func compositePiece(store *piece.Store, p piece.ID, pose geometry.RigidTransform, cfg config.Params, sources map[string]rasterimg.Image, canvas rasterimg.Image, frame int) error {
	pc := store.Piece(p)
	src, ok := sources[pc.SourceImage]
	if !ok {
		loaded, err := rasterimg.Load(pc.SourceImage)
		if err != nil {
			return fmt.Errorf("layout: load source %s: %w", pc.SourceImage, err)
		}
		sources[pc.SourceImage] = loaded
		src = loaded
	}

	local := localSilhouette(store, p)
	if len(local) == 0 {
		return nil
	}
	bbox := geometry.BoundingBox(local)
	w := int(math.Ceil(bbox.Width))
	h := int(math.Ceil(bbox.Height))
	if w <= 0 || h <= 0 {
		return nil
	}

	srcX := pc.Center.X + int(math.Round(bbox.X))
	srcY := pc.Center.Y + int(math.Round(bbox.Y))
	srcRect := image.Rect(srcX, srcY, srcX+w, srcY+h).Intersect(image.Rect(0, 0, src.Cols(), src.Rows()))
	if srcRect.Empty() {
		return nil
	}
	crop := src.Mat.Region(srcRect)
	defer crop.Close()

	// local is relative to bbox.X/Y (= srcRect.Min - piece center, before the
	// intersect clip); shift by the clip's own offset so the polygon lines up
	// with crop, which starts at srcRect.Min, not at the unclipped bbox origin.
	clipOffX := srcRect.Min.X - srcX
	clipOffY := srcRect.Min.Y - srcY
	mask := gocv.NewMatWithSize(srcRect.Dy(), srcRect.Dx(), gocv.MatTypeCV8U)
	defer mask.Close()
	poly := make([]image.Point, len(local))
	for i, pt := range local {
		poly[i] = image.Pt(
			int(math.Round(pt.X-bbox.X))-clipOffX,
			int(math.Round(pt.Y-bbox.Y))-clipOffY,
		)
	}
	pv := gocv.NewPointVectorFromPoints(poly)
	defer pv.Close()
	pvs := gocv.NewPointsVector()
	defer pvs.Close()
	pvs.Append(pv)
	gocv.DrawContours(&mask, pvs, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	maskEroded := mask
	if cfg.VisualizationErode > 0 {
		maskEroded = morph.Erode(mask, cfg.VisualizationErode)
		defer maskEroded.Close()
	}

	masked := gocv.NewMat()
	defer masked.Close()
	crop.CopyToWithMask(&masked, maskEroded)

	degrees := pose.Angle * 180 / math.Pi
	rotated := rasterimg.Rotate(rasterimg.Image{Mat: masked}, degrees)
	defer rotated.Close()
	rotatedMask := rasterimg.Rotate(rasterimg.Image{Mat: maskEroded}, degrees)
	defer rotatedMask.Close()

	cx := int(math.Round(pose.TX)) + frame
	cy := int(math.Round(pose.TY)) + frame
	dstX := cx - rotated.Cols()/2
	dstY := cy - rotated.Rows()/2

	dstRect := image.Rect(dstX, dstY, dstX+rotated.Cols(), dstY+rotated.Rows())
	canvasRect := image.Rect(0, 0, canvas.Cols(), canvas.Rows())
	clipped := dstRect.Intersect(canvasRect)
	if clipped.Empty() {
		return nil
	}

	srcOffX := clipped.Min.X - dstRect.Min.X
	srcOffY := clipped.Min.Y - dstRect.Min.Y
	srcClip := image.Rect(srcOffX, srcOffY, srcOffX+clipped.Dx(), srcOffY+clipped.Dy())

	rotatedRegion := rotated.Mat.Region(srcClip)
	defer rotatedRegion.Close()
	rotatedMaskRegion := rotatedMask.Mat.Region(srcClip)
	defer rotatedMaskRegion.Close()
	canvasRegion := canvas.Mat.Region(clipped)
	defer canvasRegion.Close()

	rotatedRegion.CopyToWithMask(&canvasRegion, rotatedMaskRegion)
	return nil
}
