// Package colorutil provides shared color utilities for the reconstruction
// pipeline: colour-space conversion and the circular hue distance used by
// the edge compatibility scorer.
package colorutil

import (
	"image/color"
	"math"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}

// HSL holds a colour in the hue/saturation/luminosity space the
// compatibility scorer's H/S/L channels operate on. Hue is normalized to
// [0,1) (a full turn), saturation and luminosity to [0,1].
type HSL struct {
	H, S, L float64
}

// RGBToHSL converts RGB (0-255) to normalized HSL.
func RGBToHSL(r, g, b float64) HSL {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l}
	}

	diff := maxC - minC
	var s float64
	if l > 0.5 {
		s = diff / (2 - maxC - minC)
	} else {
		s = diff / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = math.Mod((g-b)/diff, 6)
	case g:
		h = (b-r)/diff + 2
	default:
		h = (r-g)/diff + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}

	return HSL{H: h / 360, S: s, L: l}
}

// HueDistance returns the circular distance between two normalized hues:
// min(|a-b|, 1-|a-b|), so that hue 0.99 and hue 0.01 are judged close.
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 0.5 {
		d = 1 - d
	}
	return d
}
