// Package wind models the onset flow field: a constant velocity, typically
// from vessel motion, plus a reference wind scaled by a height profile.
package wind

import (
	"math"

	"github.com/sondreal/liftline/internal/geo"
)

// ShearKind selects how the wind varies with height.
type ShearKind int

const (
	// ShearNone keeps the reference wind constant at all heights.
	ShearNone ShearKind = iota
	// ShearPower scales the wind with (height/reference)^exponent.
	ShearPower
	// ShearLogarithmic scales with the log-law boundary layer profile.
	ShearLogarithmic
)

func (k ShearKind) String() string {
	switch k {
	case ShearNone:
		return "none"
	case ShearPower:
		return "power"
	case ShearLogarithmic:
		return "logarithmic"
	default:
		return "unknown"
	}
}

// Shear is a height variation profile for the reference wind.
type Shear struct {
	Kind ShearKind
	// ReferenceHeight is where the profile factor equals one.
	ReferenceHeight float64
	// Exponent is the power-law exponent, used by ShearPower.
	Exponent float64
	// SurfaceRoughness is the log-law roughness length, used by
	// ShearLogarithmic.
	SurfaceRoughness float64
}

// DefaultShear is the power profile often used for open water.
func DefaultShear() Shear {
	return Shear{Kind: ShearPower, ReferenceHeight: 10.0, Exponent: 1.0 / 9.0}
}

// Factor returns the wind speed multiplier at a height above the surface.
func (s Shear) Factor(height float64) float64 {
	switch s.Kind {
	case ShearPower:
		if s.Exponent <= 0 {
			return 1.0
		}
		return math.Pow(height/s.ReferenceHeight, s.Exponent)
	case ShearLogarithmic:
		if s.SurfaceRoughness <= 0 {
			return 1.0
		}
		return math.Log(height/s.SurfaceRoughness) / math.Log(s.ReferenceHeight/s.SurfaceRoughness)
	default:
		return 1.0
	}
}

// Environment is the complete onset flow model.
type Environment struct {
	// ConstantVelocity is position independent, typically apparent flow
	// from the vessel speed.
	ConstantVelocity geo.Vec3
	// ReferenceWind is the true wind at the shear reference height.
	ReferenceWind geo.Vec3
	Shear         Shear
	// UpDirection defines height; defaults to +Z via NewEnvironment.
	UpDirection geo.Vec3
	// WaterPlaneHeight offsets where the wind profile starts.
	WaterPlaneHeight float64
}

// NewEnvironment returns a uniform environment with the given velocities and
// no shear.
func NewEnvironment(constant, referenceWind geo.Vec3) Environment {
	return Environment{
		ConstantVelocity: constant,
		ReferenceWind:    referenceWind,
		UpDirection:      geo.Vec3{Z: 1},
	}
}

// VelocityAt returns the onset velocity at a location. Below the water plane
// the reference wind contributes nothing.
func (e Environment) VelocityAt(location geo.Vec3) geo.Vec3 {
	height := location.Dot(e.UpDirection) - e.WaterPlaneHeight
	if height <= 0 {
		return e.ConstantVelocity
	}
	return e.ConstantVelocity.Add(e.ReferenceWind.Scale(e.Shear.Factor(height)))
}

// VelocitiesAt evaluates the environment at each point.
func (e Environment) VelocitiesAt(points []geo.Vec3) []geo.Vec3 {
	out := make([]geo.Vec3, len(points))
	for i, p := range points {
		out[i] = e.VelocityAt(p)
	}
	return out
}
