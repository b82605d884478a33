package geometry

import "math"

// SignedArea computes the signed area of a closed polygon using the
// shoelace formula. Positive for counter-clockwise vertex order.
func SignedArea(polygon []Point2D) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return sum / 2
}

// PolygonCentroid computes the area-weighted centroid of a closed polygon.
// Falls back to the point-average Centroid for degenerate (near-zero-area)
// polygons.
func PolygonCentroid(polygon []Point2D) Point2D {
	n := len(polygon)
	area := SignedArea(polygon)
	if n < 3 || math.Abs(area) < 1e-9 {
		return Centroid(polygon)
	}

	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
		cx += (polygon[i].X + polygon[j].X) * cross
		cy += (polygon[i].Y + polygon[j].Y) * cross
	}
	factor := 1.0 / (6 * area)
	return Point2D{X: cx * factor, Y: cy * factor}
}

// ResamplePath resamples an open polyline to n evenly-spaced points along
// its arc length (linear interpolation between original vertices).
func ResamplePath(path []Point2D, n int) []Point2D {
	if n <= 0 {
		return nil
	}
	if len(path) == 0 {
		return make([]Point2D, n)
	}
	if len(path) == 1 || n == 1 {
		out := make([]Point2D, n)
		for i := range out {
			out[i] = path[0]
		}
		return out
	}

	cum := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cum[i] = cum[i-1] + path[i-1].Distance(path[i])
	}
	total := cum[len(cum)-1]

	out := make([]Point2D, n)
	if total == 0 {
		for i := range out {
			out[i] = path[0]
		}
		return out
	}

	seg := 0
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n-1)
		for seg < len(cum)-2 && cum[seg+1] < target {
			seg++
		}
		segLen := cum[seg+1] - cum[seg]
		var t float64
		if segLen > 0 {
			t = (target - cum[seg]) / segLen
		}
		a, b := path[seg], path[seg+1]
		out[i] = Point2D{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
	}
	return out
}

// ResampleCyclic resamples a closed curve (implicit edge from last point
// back to first) to n evenly-spaced points.
func ResampleCyclic(curve []Point2D, n int) []Point2D {
	if len(curve) == 0 {
		return ResamplePath(curve, n)
	}
	closed := append(append([]Point2D{}, curve...), curve[0])
	full := ResamplePath(closed, n+1)
	return full[:n]
}

// GaussianKernel1D builds a normalized 1-D Gaussian kernel with the given
// standard deviation, truncated at +/-3*sigma.
func GaussianKernel1D(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// CircularConvolve convolves a cyclic signal with a kernel, wrapping at the
// boundary. Used to Gaussian-blur curvature signatures, which are
// naturally periodic for closed curves.
func CircularConvolve(signal, kernel []float64) []float64 {
	n := len(signal)
	if n == 0 {
		return nil
	}
	radius := len(kernel) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for k := 0; k < len(kernel); k++ {
			idx := ((i+k-radius)%n + n) % n
			acc += signal[idx] * kernel[k]
		}
		out[i] = acc
	}
	return out
}

// LocalMaximaCyclic finds indices that are the maximum value within
// +/-radius of themselves on a cyclic signal, restricted to values at
// least minFraction of the global maximum.
func LocalMaximaCyclic(signal []float64, radius int, minFraction float64) []int {
	n := len(signal)
	if n == 0 {
		return nil
	}

	globalMax := signal[0]
	for _, v := range signal {
		if v > globalMax {
			globalMax = v
		}
	}
	threshold := globalMax * minFraction

	var maxima []int
	for i := 0; i < n; i++ {
		if signal[i] < threshold {
			continue
		}
		isMax := true
		for d := -radius; d <= radius; d++ {
			if d == 0 {
				continue
			}
			j := ((i+d)%n + n) % n
			if signal[j] > signal[i] {
				isMax = false
				break
			}
		}
		if isMax {
			maxima = append(maxima, i)
		}
	}
	return maxima
}

// UnwrapAngles returns a copy of angles with 2*pi jumps removed, matching
// the usual phase-unwrapping rule: each step is adjusted to lie within
// (-pi, pi] of the previous value.
func UnwrapAngles(angles []float64) []float64 {
	if len(angles) == 0 {
		return nil
	}
	out := make([]float64, len(angles))
	out[0] = angles[0]
	for i := 1; i < len(angles); i++ {
		delta := angles[i] - angles[i-1]
		for delta > math.Pi {
			delta -= 2 * math.Pi
		}
		for delta <= -math.Pi {
			delta += 2 * math.Pi
		}
		out[i] = out[i-1] + delta
	}
	return out
}

// TangentAngles computes the per-segment tangent angle of an open
// polyline: angle[i] is the direction from point i to point i+1. The
// result has len(path)-1 entries.
func TangentAngles(path []Point2D) []float64 {
	if len(path) < 2 {
		return nil
	}
	out := make([]float64, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		dx := path[i+1].X - path[i].X
		dy := path[i+1].Y - path[i].Y
		out[i] = math.Atan2(dy, dx)
	}
	return out
}

// FirstDifference computes the discrete first derivative of a cyclic
// signal: out[i] = signal[(i+1)%n] - signal[i].
func FirstDifference(signal []float64) []float64 {
	n := len(signal)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = signal[(i+1)%n] - signal[i]
	}
	return out
}
