package rasterimg

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// GrayscaleMax converts a BGR image to single-channel grayscale using the
// spec's exact rule (per-pixel max(R,G,B)), which differs from the luma
// weighting gocv.CvtColor(ColorBGRToGray) applies and so cannot be
// delegated to it.
func GrayscaleMax(im Image) Image {
	rows, cols := im.Rows(), im.Cols()
	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := im.Mat.GetVecbAt(y, x)
			m := v[0]
			if v[1] > m {
				m = v[1]
			}
			if v[2] > m {
				m = v[2]
			}
			out.SetUCharAt(y, x, m)
		}
	}
	return Image{Mat: out}
}

// Histogram256 computes the 256-bin intensity histogram of a single-channel
// 8-bit image.
func Histogram256(gray Image) [256]int {
	var hist [256]int
	rows, cols := gray.Rows(), gray.Cols()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			hist[gray.Mat.GetUCharAt(y, x)]++
		}
	}
	return hist
}

// OtsuIterativeThreshold chooses a binarization threshold by refining the
// weighted mean of the histogram five times: t' = (mean_below + mean_above) / 2
// (spec §4.1 step 2).
func OtsuIterativeThreshold(hist [256]int) uint8 {
	var totalWeight, totalSum float64
	for v, count := range hist {
		totalWeight += float64(count)
		totalSum += float64(v) * float64(count)
	}
	if totalWeight == 0 {
		return 128
	}

	t := totalSum / totalWeight

	for iter := 0; iter < 5; iter++ {
		var belowSum, belowWeight, aboveSum, aboveWeight float64
		for v, count := range hist {
			if count == 0 {
				continue
			}
			if float64(v) <= t {
				belowSum += float64(v) * float64(count)
				belowWeight += float64(count)
			} else {
				aboveSum += float64(v) * float64(count)
				aboveWeight += float64(count)
			}
		}
		var meanBelow, meanAbove float64
		if belowWeight > 0 {
			meanBelow = belowSum / belowWeight
		} else {
			meanBelow = t
		}
		if aboveWeight > 0 {
			meanAbove = aboveSum / aboveWeight
		} else {
			meanAbove = t
		}
		t = (meanBelow + meanAbove) / 2
	}

	if t < 0 {
		t = 0
	}
	if t > 255 {
		t = 255
	}
	return uint8(t)
}

// Threshold binarizes a single-channel image: pixels > t become 255, else 0.
func Threshold(gray Image, t uint8) Image {
	dst := gocv.NewMat()
	gocv.Threshold(gray.Mat, &dst, float32(t), 255, gocv.ThresholdBinary)
	return Image{Mat: dst}
}

// ThresholdFraction binarizes relative to a fraction in [0,1] of the 0-255
// range, matching the image-library contract's "threshold at a fraction"
// operation.
func ThresholdFraction(gray Image, fraction float64) Image {
	return Threshold(gray, uint8(fraction*255))
}

// PadBorder pads a mask with a black border of the given width so that
// connected components cannot touch the image frame (spec §4.1 step 4).
func PadBorder(mask Image, width int) Image {
	dst := gocv.NewMat()
	gocv.CopyMakeBorder(mask.Mat, &dst, width, width, width, width, gocv.BorderConstant, color.RGBA{})
	return Image{Mat: dst}
}

// GaussianBlur blurs a single or multi-channel image with the given sigma.
func GaussianBlur(im Image, sigma float64) Image {
	dst := gocv.NewMat()
	radius := int(math.Ceil(3*sigma))*2 + 1
	gocv.GaussianBlur(im.Mat, &dst, image.Point{X: radius, Y: radius}, sigma, sigma, gocv.BorderDefault)
	return Image{Mat: dst}
}

// Rotate rotates an image about its center by degrees (any angle, not just
// multiples of 90), preserving image dimensions.
func Rotate(im Image, degrees float64) Image {
	center := image.Point{X: im.Cols() / 2, Y: im.Rows() / 2}
	rotMat := gocv.GetRotationMatrix2D(center, degrees, 1.0)
	defer rotMat.Close()

	dst := gocv.NewMat()
	gocv.WarpAffineWithParams(im.Mat, &dst, rotMat, image.Point{X: im.Cols(), Y: im.Rows()},
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{})
	return Image{Mat: dst}
}

// CompositeOp selects how two images are combined in Composite.
type CompositeOp int

const (
	CompositeMultiply CompositeOp = iota
	CompositeAdd
)

// Composite combines two equally-sized images with the given pixel
// operator.
func Composite(a, b Image, op CompositeOp) Image {
	dst := gocv.NewMat()
	switch op {
	case CompositeMultiply:
		gocv.Multiply(a.Mat, b.Mat, &dst)
	case CompositeAdd:
		gocv.Add(a.Mat, b.Mat, &dst)
	}
	return Image{Mat: dst}
}

// FloodFillMask performs a 4-connected flood fill on a binary mask starting
// at (x, y), painting matching pixels to fillValue in place; nothing is
// returned. Grounded on the teacher's hand-rolled
// stack-based FloodFillDetect (component/detect.go) rather than gocv's
// flood-fill binding, since the algorithm here operates on a strict binary
// predicate (white/non-white) rather than a colour-tolerance window.
func FloodFillMask(mask Image, x, y int, fillValue uint8) {
	rows, cols := mask.Rows(), mask.Cols()
	if x < 0 || x >= cols || y < 0 || y >= rows {
		return
	}
	if mask.Mat.GetUCharAt(y, x) == 0 {
		return
	}

	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= cols || p.Y < 0 || p.Y >= rows {
			continue
		}
		if mask.Mat.GetUCharAt(p.Y, p.X) == 0 {
			continue
		}

		mask.Mat.SetUCharAt(p.Y, p.X, fillValue)

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
}

// IsWhite reports whether the mask pixel at (x, y) is foreground, treating
// out-of-bounds as background.
func IsWhite(mask Image, x, y int) bool {
	if x < 0 || x >= mask.Cols() || y < 0 || y >= mask.Rows() {
		return false
	}
	return mask.Mat.GetUCharAt(y, x) > 0
}
