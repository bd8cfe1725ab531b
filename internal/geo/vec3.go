package geo

import "math"

// Vec3 is a three dimensional vector with float64 components. It is used for
// positions, velocities, forces and moments throughout the solver.
type Vec3 struct {
	X, Y, Z float64
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float64 { return v.Dot(v) }

func (v Vec3) Length() float64 { return math.Sqrt(v.LengthSquared()) }

// Normalize returns the unit vector in the direction of v. A zero vector
// propagates NaN components per IEEE semantics, matching the solver's
// NaN-permissive treatment of degenerate input.
func (v Vec3) Normalize() Vec3 { return v.Scale(1.0 / v.Length()) }

// Project returns the vector projection of v onto o.
func (v Vec3) Project(o Vec3) Vec3 {
	n := o.Normalize()
	return n.Scale(v.Dot(n))
}

// ProjectOnPlane removes the component of v along the plane normal.
func (v Vec3) ProjectOnPlane(normal Vec3) Vec3 { return v.Sub(v.Project(normal)) }

// AngleBetween returns the unsigned angle between v and o in radians.
func (v Vec3) AngleBetween(o Vec3) float64 {
	cos := v.Dot(o) / (v.Length() * o.Length())
	// Guard rounding before acos.
	if cos > 1.0 {
		cos = 1.0
	} else if cos < -1.0 {
		cos = -1.0
	}
	return math.Acos(cos)
}

// SignedAngleBetween returns the angle from v to o about the given axis, with
// right handed positive rotation.
func (v Vec3) SignedAngleBetween(o, axis Vec3) float64 {
	angle := v.AngleBetween(o)
	if v.Dot(o.Cross(axis)) > 0 {
		return angle
	}
	return -angle
}

// RotateAroundAxis rotates v by angle radians around the given axis using the
// Rodrigues rotation formula. The axis is normalized internally.
func (v Vec3) RotateAroundAxis(angle float64, axis Vec3) Vec3 {
	k := axis.Normalize()
	sin, cos := math.Sincos(angle)

	term1 := v.Scale(cos)
	term2 := k.Cross(v).Scale(sin)
	term3 := k.Scale(k.Dot(v) * (1.0 - cos))

	return term1.Add(term2).Add(term3)
}

// IsFinite reports whether all components are finite numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
