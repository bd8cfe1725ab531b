// Package motion supplies rigid-body motion state for the lifting surfaces.
// Only the resulting velocity at a point crosses into the solver; raw motion
// state stays here.
package motion

import (
	"github.com/sondreal/liftline/internal/geo"
)

// RigidBody describes the instantaneous motion of the structure carrying
// the wings.
type RigidBody struct {
	// Translation of the body origin.
	Translation geo.Vec3
	// LinearVelocity of the body origin.
	LinearVelocity geo.Vec3
	// AngularVelocity about the rotation center.
	AngularVelocity geo.Vec3
	// RotationCenter in global coordinates.
	RotationCenter geo.Vec3
}

// VelocityAt returns the structure velocity at a global point: linear
// velocity plus the angular contribution omega cross r.
func (b RigidBody) VelocityAt(point geo.Vec3) geo.Vec3 {
	arm := point.Sub(b.RotationCenter)
	return b.LinearVelocity.Add(b.AngularVelocity.Cross(arm))
}

// ApparentFlowAt is the flow a point on the structure experiences from its
// own motion, the negative of the structure velocity.
func (b RigidBody) ApparentFlowAt(point geo.Vec3) geo.Vec3 {
	return b.VelocityAt(point).Neg()
}

// ApparentFlowsAt evaluates ApparentFlowAt for each point.
func (b RigidBody) ApparentFlowsAt(points []geo.Vec3) []geo.Vec3 {
	out := make([]geo.Vec3, len(points))
	for i, p := range points {
		out[i] = b.ApparentFlowAt(p)
	}
	return out
}
