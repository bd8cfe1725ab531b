package lineforce

import (
	"math"
	"testing"

	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/section"
)

// testWingModel is a single vertical wing: span along z, chord along x.
func testWingModel(t *testing.T, nrSegments int) *Model {
	t.Helper()

	wing, err := WingBuilder{
		Root:        geo.NewVec3(0, 0, 0),
		SpanVector:  geo.NewVec3(0, 0, 10),
		ChordVector: geo.NewVec3(1, 0, 0),
		NrSegments:  nrSegments,
		Section:     section.NewFoil(),
	}.Build()
	if err != nil {
		t.Fatalf("wing: %v", err)
	}

	m := New(DefaultDensity)
	if err := m.AddWing(wing); err != nil {
		t.Fatalf("add wing: %v", err)
	}
	return m
}

func uniformVelocity(n int, v geo.Vec3) []geo.Vec3 {
	out := make([]geo.Vec3, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestNonDimSpanRange(t *testing.T) {
	m := testWingModel(t, 10)
	span := m.NonDimSpan()

	if len(span) != 10 {
		t.Fatalf("expected 10 positions, got %d", len(span))
	}
	// Control points sit at segment midpoints, so the first is at
	// -0.5 + half a segment and the distribution is antisymmetric.
	if math.Abs(span[0]-(-0.45)) > 1e-12 {
		t.Errorf("first position: %g", span[0])
	}
	if math.Abs(span[9]-0.45) > 1e-12 {
		t.Errorf("last position: %g", span[9])
	}
	for i := range span {
		if math.Abs(span[i]+span[len(span)-1-i]) > 1e-12 {
			t.Errorf("positions not antisymmetric: %g vs %g", span[i], span[len(span)-1-i])
		}
	}
}

func TestSpanPointsCount(t *testing.T) {
	m := testWingModel(t, 5)
	points := m.SpanPoints()
	if len(points) != 6 {
		t.Fatalf("expected 6 span points for 5 segments, got %d", len(points))
	}
	if m.NrSpanPoints() != len(points) {
		t.Errorf("NrSpanPoints %d disagrees with SpanPoints length %d", m.NrSpanPoints(), len(points))
	}
	if points[0].Sub(geo.NewVec3(0, 0, 0)).Length() > 1e-14 {
		t.Errorf("first span point: %+v", points[0])
	}
	if points[5].Sub(geo.NewVec3(0, 0, 10)).Length() > 1e-14 {
		t.Errorf("last span point: %+v", points[5])
	}
}

func TestAnglesOfAttack(t *testing.T) {
	m := testWingModel(t, 4)

	// Flow along the chord: zero angle.
	angles := m.AnglesOfAttack(uniformVelocity(4, geo.NewVec3(10, 0, 0)))
	for i, a := range angles {
		if math.Abs(a) > 1e-12 {
			t.Errorf("segment %d: expected zero angle, got %g", i, a)
		}
	}

	// Zero velocity: zero angle, not NaN.
	angles = m.AnglesOfAttack(uniformVelocity(4, geo.Vec3{}))
	for i, a := range angles {
		if a != 0 {
			t.Errorf("segment %d: zero velocity should give zero angle, got %g", i, a)
		}
	}

	// A 45 degree inflow about the span axis.
	angles = m.AnglesOfAttack(uniformVelocity(4, geo.NewVec3(1, -1, 0)))
	for i, a := range angles {
		if math.Abs(a-math.Pi/4) > 1e-12 {
			t.Errorf("segment %d: expected pi/4, got %g", i, a)
		}
	}
}

func TestWingAngleRotation(t *testing.T) {
	m := testWingModel(t, 4)

	// Rotating the wing by an angle shifts every angle of attack by the
	// same amount for a fixed inflow.
	base := m.AnglesOfAttack(uniformVelocity(4, geo.NewVec3(10, 0, 0)))

	m.LocalWingAngles[0] = 0.1
	rotated := m.AnglesOfAttack(uniformVelocity(4, geo.NewVec3(10, 0, 0)))

	for i := range base {
		if math.Abs((rotated[i]-base[i])-0.1) > 1e-12 {
			t.Errorf("segment %d: rotation did not shift the angle: %g -> %g", i, base[i], rotated[i])
		}
	}
}

func TestCirculationRawKuttaJoukowski(t *testing.T) {
	m := testWingModel(t, 4)
	speed := 8.0

	velocity := uniformVelocity(4, geo.NewVec3(speed, -speed*math.Tan(0.05), 0))
	angles := m.AnglesOfAttack(velocity)
	cl := m.LiftCoefficients(velocity)
	strength := m.CirculationRaw(velocity)

	for i := range strength {
		chord := 1.0
		expected := 0.5 * cl[i] * velocity[i].Length() * chord
		if math.Abs(strength[i]-expected) > 1e-12 {
			t.Errorf("segment %d: expected %g, got %g", i, expected, strength[i])
		}
		if angles[i] <= 0 || strength[i] <= 0 {
			t.Errorf("segment %d: positive angle should give positive circulation", i)
		}
	}
}

func TestSectionalForcesDirection(t *testing.T) {
	m := testWingModel(t, 4)

	velocity := uniformVelocity(4, geo.NewVec3(10, 0, 0))
	strength := []float64{2, 2, 2, 2}

	forces := m.SectionalForces(strength, velocity)
	for i, f := range forces {
		// v x s = (10,0,0) x (0,0,2.5) points along -y; the default foil
		// has no drag at zero angle.
		expected := geo.NewVec3(0, -10*2.5, 0).Scale(m.Density * 2)
		if f.Sub(expected).Length() > 1e-9 {
			t.Errorf("segment %d: expected %+v, got %+v", i, expected, f)
		}
	}

	total := m.TotalForce(strength, velocity)
	expectedTotal := geo.NewVec3(0, -4*10*2.5*m.Density*2, 0)
	if total.Sub(expectedTotal).Length() > 1e-9 {
		t.Errorf("total force: expected %+v, got %+v", expectedTotal, total)
	}
}

func TestIntegratedMomentsArm(t *testing.T) {
	m := testWingModel(t, 2)

	velocity := uniformVelocity(2, geo.NewVec3(10, 0, 0))
	strength := []float64{1, 1}

	// Forces act at the control points (z=2.5 and z=7.5); about the origin
	// the moment of a -y force at height z is along +z cross... checked
	// directly against the definition.
	moments := m.IntegratedMoments(strength, velocity, geo.Vec3{})
	forces := m.SectionalForces(strength, velocity)
	ctrl := m.CtrlPoints()

	expected := ctrl[0].Cross(forces[0]).Add(ctrl[1].Cross(forces[1]))
	if moments[0].Sub(expected).Length() > 1e-9 {
		t.Errorf("moment: expected %+v, got %+v", expected, moments[0])
	}
}

func TestRemoveSpanVelocity(t *testing.T) {
	m := testWingModel(t, 2)

	velocity := uniformVelocity(2, geo.NewVec3(3, 4, 5))
	cleaned := m.RemoveSpanVelocity(velocity)

	for i, v := range cleaned {
		if math.Abs(v.Z) > 1e-12 {
			t.Errorf("segment %d: span component not removed: %+v", i, v)
		}
		if math.Abs(v.X-3) > 1e-12 || math.Abs(v.Y-4) > 1e-12 {
			t.Errorf("segment %d: in-plane components changed: %+v", i, v)
		}
	}
}

func TestSpanPointValues(t *testing.T) {
	m := testWingModel(t, 3)

	ctrl := []geo.Vec3{
		geo.NewVec3(1, 0, 0),
		geo.NewVec3(3, 0, 0),
		geo.NewVec3(5, 0, 0),
	}
	out := m.SpanPointValues(ctrl)

	if len(out) != 4 {
		t.Fatalf("expected 4 span point values, got %d", len(out))
	}
	expected := []float64{1, 2, 4, 5}
	for i := range out {
		if math.Abs(out[i].X-expected[i]) > 1e-12 {
			t.Errorf("point %d: expected %g, got %g", i, expected[i], out[i].X)
		}
	}
}

func TestTwoWingIndexing(t *testing.T) {
	m := testWingModel(t, 3)

	second, err := WingBuilder{
		Root:        geo.NewVec3(20, 0, 0),
		SpanVector:  geo.NewVec3(0, 0, 10),
		ChordVector: geo.NewVec3(1, 0, 0),
		NrSegments:  2,
		Section:     section.NewFoil(),
	}.Build()
	if err != nil {
		t.Fatalf("wing: %v", err)
	}
	if err := m.AddWing(second); err != nil {
		t.Fatalf("add wing: %v", err)
	}

	if m.NrWings() != 2 || m.NrSpanLines() != 5 {
		t.Fatalf("unexpected counts: %d wings, %d lines", m.NrWings(), m.NrSpanLines())
	}
	for i := 0; i < 3; i++ {
		if m.WingIndexOf(i) != 0 {
			t.Errorf("line %d should belong to wing 0", i)
		}
	}
	for i := 3; i < 5; i++ {
		if m.WingIndexOf(i) != 1 {
			t.Errorf("line %d should belong to wing 1", i)
		}
	}
	if m.NrSpanPoints() != 7 {
		t.Errorf("expected 7 span points (4+3), got %d", m.NrSpanPoints())
	}
}
