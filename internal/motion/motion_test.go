package motion

import (
	"testing"

	"github.com/sondreal/liftline/internal/geo"
)

func TestVelocityAtLinearOnly(t *testing.T) {
	body := RigidBody{LinearVelocity: geo.NewVec3(2, 0, 0)}

	for _, p := range []geo.Vec3{{}, {X: 5, Y: -3, Z: 10}} {
		if v := body.VelocityAt(p); v != body.LinearVelocity {
			t.Errorf("point %+v: got %+v", p, v)
		}
	}
}

func TestVelocityAtRotation(t *testing.T) {
	// One radian per second about +z through the origin.
	body := RigidBody{AngularVelocity: geo.NewVec3(0, 0, 1)}

	v := body.VelocityAt(geo.NewVec3(1, 0, 0))
	if want := geo.NewVec3(0, 1, 0); v.Sub(want).Length() > 1e-12 {
		t.Errorf("omega cross r: got %+v, want %+v", v, want)
	}

	// On the rotation axis there is no angular contribution.
	if v := body.VelocityAt(geo.NewVec3(0, 0, 7)); v.Length() != 0 {
		t.Errorf("on-axis point should not move, got %+v", v)
	}
}

func TestVelocityAtOffsetRotationCenter(t *testing.T) {
	body := RigidBody{
		AngularVelocity: geo.NewVec3(0, 0, 2),
		RotationCenter:  geo.NewVec3(10, 0, 0),
	}

	v := body.VelocityAt(geo.NewVec3(11, 0, 0))
	if want := geo.NewVec3(0, 2, 0); v.Sub(want).Length() > 1e-12 {
		t.Errorf("arm from the rotation center: got %+v, want %+v", v, want)
	}
	if v := body.VelocityAt(body.RotationCenter); v.Length() != 0 {
		t.Errorf("rotation center should not move, got %+v", v)
	}
}

func TestApparentFlow(t *testing.T) {
	body := RigidBody{
		LinearVelocity:  geo.NewVec3(3, 0, 0),
		AngularVelocity: geo.NewVec3(0, 0, 1),
	}

	p := geo.NewVec3(0, 2, 0)
	structure := body.VelocityAt(p)
	apparent := body.ApparentFlowAt(p)
	if apparent.Add(structure).Length() > 1e-12 {
		t.Errorf("apparent flow should oppose the structure velocity: %+v vs %+v", apparent, structure)
	}

	points := []geo.Vec3{p, {X: 1}, {Z: 4}}
	flows := body.ApparentFlowsAt(points)
	for i, f := range flows {
		if f != body.ApparentFlowAt(points[i]) {
			t.Errorf("point %d: batch and single evaluation differ", i)
		}
	}
}
