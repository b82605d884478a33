// Package morph provides binary morphological operations on mask images,
// built on top of gocv's structuring-element convolutions.
package morph

import (
	"image"

	"gocv.io/x/gocv"
)

// Kernel builds a square structuring element of the given radius (side
// length 2*radius+1), matching the kernels the teacher's trace package
// builds for mask cleanup.
func Kernel(radius int) gocv.Mat {
	side := 2*radius + 1
	return gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: side, Y: side})
}

// Erode shrinks white regions of a binary mask by radius pixels.
func Erode(mask gocv.Mat, radius int) gocv.Mat {
	kernel := Kernel(radius)
	defer kernel.Close()
	dst := gocv.NewMat()
	gocv.Erode(mask, &dst, kernel)
	return dst
}

// Dilate grows white regions of a binary mask by radius pixels.
func Dilate(mask gocv.Mat, radius int) gocv.Mat {
	kernel := Kernel(radius)
	defer kernel.Close()
	dst := gocv.NewMat()
	gocv.Dilate(mask, &dst, kernel)
	return dst
}

// Open erodes then dilates, removing small protrusions and noise specks.
func Open(mask gocv.Mat, radius int) gocv.Mat {
	eroded := Erode(mask, radius)
	defer eroded.Close()
	return Dilate(eroded, radius)
}

// Close dilates then erodes, filling small gaps and holes.
func Close(mask gocv.Mat, radius int) gocv.Mat {
	dilated := Dilate(mask, radius)
	defer dilated.Close()
	return Erode(dilated, radius)
}

// Smooth applies an open followed by a close at the given radius, the
// noise-suppression step used by the back-side shape extractor (spec
// §4.1 step 3).
func Smooth(mask gocv.Mat, radius int) gocv.Mat {
	opened := Open(mask, radius)
	defer opened.Close()
	return Close(opened, radius)
}
