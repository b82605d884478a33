package geometry

import "math"

// RigidTransform is a rotation followed by a translation: no scale, no
// shear. It is the transform family used throughout shape alignment,
// where curves must be compared without distortion.
type RigidTransform struct {
	Angle float64 // radians
	TX    float64
	TY    float64
}

// IdentityRigid returns the identity rigid transform.
func IdentityRigid() RigidTransform {
	return RigidTransform{}
}

// Apply maps a point through the transform: rotate about the origin, then
// translate.
func (t RigidTransform) Apply(p Point2D) Point2D {
	cos, sin := math.Cos(t.Angle), math.Sin(t.Angle)
	return Point2D{
		X: cos*p.X - sin*p.Y + t.TX,
		Y: sin*p.X + cos*p.Y + t.TY,
	}
}

// ApplyAll maps every point in curve through the transform.
func (t RigidTransform) ApplyAll(curve []Point2D) []Point2D {
	out := make([]Point2D, len(curve))
	for i, p := range curve {
		out[i] = t.Apply(p)
	}
	return out
}

// Compose returns the transform equivalent to applying t first, then other:
// other.Apply(t.Apply(p)).
func (t RigidTransform) Compose(other RigidTransform) RigidTransform {
	p := other.Apply(Point2D{X: t.TX, Y: t.TY})
	return RigidTransform{
		Angle: normalizeAngle(t.Angle + other.Angle),
		TX:    p.X,
		TY:    p.Y,
	}
}

// Inverse returns the transform that undoes t.
func (t RigidTransform) Inverse() RigidTransform {
	cos, sin := math.Cos(-t.Angle), math.Sin(-t.Angle)
	return RigidTransform{
		Angle: -t.Angle,
		TX:    -(cos*t.TX - sin*t.TY),
		TY:    -(sin*t.TX + cos*t.TY),
	}
}

// ToAffine expresses the rigid transform as a general AffineTransform, for
// handoff to raster operations (warping, compositing) that expect one.
func (t RigidTransform) ToAffine() AffineTransform {
	cos, sin := math.Cos(t.Angle), math.Sin(t.Angle)
	return AffineTransform{
		A: cos, B: -sin, TX: t.TX,
		C: sin, D: cos, TY: t.TY,
	}
}

// IsNearIdentity reports whether the transform is within the given
// rotation (radians) and translation (same units as TX/TY) tolerances of
// the identity. Used by iterative alignment loops as a convergence test.
func (t RigidTransform) IsNearIdentity(angleTol, transTol float64) bool {
	return math.Abs(normalizeAngle(t.Angle)) < angleTol &&
		math.Abs(t.TX) < transTol && math.Abs(t.TY) < transTol
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// OptimalRigid computes the rigid transform minimizing
// sum_i ||T(src[i]) - dst[i]||^2 via the Schwartz-Sharir mean-phase
// construction: treat each point pair as a complex number, average the
// ratio of centered vectors, and read off rotation/translation from its
// argument and centroid offset.
func OptimalRigid(src, dst []Point2D) RigidTransform {
	n := len(src)
	if n == 0 || len(dst) != n {
		return IdentityRigid()
	}

	srcC := Centroid(src)
	dstC := Centroid(dst)

	var sumRe, sumIm float64
	for i := 0; i < n; i++ {
		sx, sy := src[i].X-srcC.X, src[i].Y-srcC.Y
		dx, dy := dst[i].X-dstC.X, dst[i].Y-dstC.Y
		// (dx + i dy) * conj(sx + i sy)
		sumRe += dx*sx + dy*sy
		sumIm += dy*sx - dx*sy
	}

	angle := math.Atan2(sumIm, sumRe)
	cos, sin := math.Cos(angle), math.Sin(angle)

	// T(src) = R*src + t must map srcC -> dstC
	tx := dstC.X - (cos*srcC.X - sin*srcC.Y)
	ty := dstC.Y - (sin*srcC.X + cos*srcC.Y)

	return RigidTransform{Angle: angle, TX: tx, TY: ty}
}
