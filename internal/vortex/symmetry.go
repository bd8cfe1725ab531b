package vortex

import (
	"fmt"

	"github.com/sondreal/liftline/internal/geo"
)

// Symmetry models a rigid reflective boundary (for example the water surface)
// by evaluating every kernel twice, once at the real control point and once at
// its mirror image, and recombining with axis-specific sign rules. Mirroring
// reverses the velocity component along the mirrored axis and keeps the
// others.
type Symmetry int

const (
	NoSymmetry Symmetry = iota
	SymmetryX
	SymmetryY
	SymmetryZ
)

func (s Symmetry) String() string {
	switch s {
	case NoSymmetry:
		return "none"
	case SymmetryX:
		return "x"
	case SymmetryY:
		return "y"
	case SymmetryZ:
		return "z"
	default:
		return fmt.Sprintf("Symmetry(%d)", int(s))
	}
}

func (s Symmetry) validate() error {
	if s < NoSymmetry || s > SymmetryZ {
		return fmt.Errorf("vortex: unknown symmetry condition %d", int(s))
	}
	return nil
}

// Enabled reports whether a mirror plane is active.
func (s Symmetry) Enabled() bool { return s != NoSymmetry }

// MirrorPoint returns the image of the point across the symmetry plane. For
// NoSymmetry the point itself is returned; callers guard with Enabled.
func (s Symmetry) MirrorPoint(p geo.Vec3) geo.Vec3 {
	switch s {
	case SymmetryX:
		return geo.Vec3{X: -p.X, Y: p.Y, Z: p.Z}
	case SymmetryY:
		return geo.Vec3{X: p.X, Y: -p.Y, Z: p.Z}
	case SymmetryZ:
		return geo.Vec3{X: p.X, Y: p.Y, Z: -p.Z}
	default:
		return p
	}
}

// CombineVelocity recombines a velocity evaluated at the real point (u) with
// one evaluated at the mirrored point (um).
func (s Symmetry) CombineVelocity(u, um geo.Vec3) geo.Vec3 {
	switch s {
	case SymmetryX:
		return geo.Vec3{X: u.X - um.X, Y: u.Y + um.Y, Z: u.Z + um.Z}
	case SymmetryY:
		return geo.Vec3{X: u.X + um.X, Y: u.Y - um.Y, Z: u.Z + um.Z}
	case SymmetryZ:
		return geo.Vec3{X: u.X + um.X, Y: u.Y + um.Y, Z: u.Z - um.Z}
	default:
		return u
	}
}
