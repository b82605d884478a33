// Package rasterimg adapts the raster-image capability the reconstruction
// pipeline treats as an external collaborator (spec §1, §6): load/save,
// threshold, blur, morphological convolution, flood-fill, rotate,
// compositing, and colour-space queries. It is a thin layer over
// gocv.io/x/gocv, in the same spirit as the teacher's internal/image
// package wraps stdlib image decoding.
package rasterimg

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// Image wraps a gocv.Mat (BGR, 8-bit per channel) as the handle the rest of
// the pipeline operates on.
type Image struct {
	Mat gocv.Mat
}

// Load reads an image file (PNG, JPEG, or TIFF) into an Image.
func Load(path string) (Image, error) {
	if strings.HasSuffix(strings.ToLower(path), ".tif") || strings.HasSuffix(strings.ToLower(path), ".tiff") {
		return loadViaStdlib(path)
	}
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		return loadViaStdlib(path)
	}
	return Image{Mat: mat}, nil
}

// loadViaStdlib decodes formats gocv.IMRead cannot (e.g. TIFF, via
// golang.org/x/image/tiff's registered decoder) and converts to a Mat.
func loadViaStdlib(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Image{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromStdImage(img), nil
}

// FromStdImage converts a stdlib image.Image into a BGR Image.
func FromStdImage(img image.Image) Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			base := x * 3
			mat.SetUCharAt(y, base+0, uint8(b>>8))
			mat.SetUCharAt(y, base+1, uint8(g>>8))
			mat.SetUCharAt(y, base+2, uint8(r>>8))
		}
	}
	return Image{Mat: mat}
}

// Save writes the image to path; format is chosen by extension.
func (im Image) Save(path string) error {
	if !gocv.IMWrite(path, im.Mat) {
		return fmt.Errorf("write %s: failed", path)
	}
	return nil
}

// Close releases the underlying Mat.
func (im Image) Close() error {
	return im.Mat.Close()
}

// Rows returns the image height in pixels.
func (im Image) Rows() int { return im.Mat.Rows() }

// Cols returns the image width in pixels.
func (im Image) Cols() int { return im.Mat.Cols() }

// At returns the BGR color at pixel (x, y).
func (im Image) At(x, y int) color.RGBA {
	v := im.Mat.GetVecbAt(y, x)
	return color.RGBA{R: v[2], G: v[1], B: v[0], A: 255}
}

// Clone returns a deep copy.
func (im Image) Clone() Image {
	return Image{Mat: im.Mat.Clone()}
}

// NewBlank allocates a zeroed single-channel 8-bit mask of the given size.
func NewBlank(rows, cols int) Image {
	return Image{Mat: gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)}
}
