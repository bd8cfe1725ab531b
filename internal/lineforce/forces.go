package lineforce

import (
	"github.com/sondreal/liftline/internal/geo"
)

// SectionalForces returns the force on each span line: the circulatory part
// rho * strength * (velocity x spanVector) plus sectional drag along the
// local velocity direction. The span vector carries the segment length, so
// the result is a force, not a force per unit span.
func (m *Model) SectionalForces(strength []float64, velocity []geo.Vec3) []geo.Vec3 {
	m.mustMatchCount(len(strength), "strength")
	m.mustMatchCount(len(velocity), "velocity")

	lines := m.SpanLines()
	angles := m.AnglesOfAttack(velocity)

	out := make([]geo.Vec3, m.NrSpanLines())
	for i := range out {
		span := lines[i].RelativeVector()
		circulatory := velocity[i].Cross(span).Scale(m.Density * strength[i])

		speed := velocity[i].Length()
		chordLength := m.ChordVectorsLocal[i].Length()
		cd := m.SectionOf(i).DragCoefficient(angles[i], chordLength, speed)
		drag := velocity[i].Scale(0.5 * m.Density * cd * chordLength * span.Length() * speed)

		out[i] = circulatory.Add(drag)
	}
	return out
}

// IntegratedForces sums the sectional forces per wing.
func (m *Model) IntegratedForces(strength []float64, velocity []geo.Vec3) []geo.Vec3 {
	sectional := m.SectionalForces(strength, velocity)

	out := make([]geo.Vec3, m.NrWings())
	for wing, r := range m.WingRanges {
		for i := r.Start; i < r.End; i++ {
			out[wing] = out[wing].Add(sectional[i])
		}
	}
	return out
}

// IntegratedMoments sums the sectional moments per wing about the reference
// point, with each sectional force acting at its control point.
func (m *Model) IntegratedMoments(strength []float64, velocity []geo.Vec3, reference geo.Vec3) []geo.Vec3 {
	sectional := m.SectionalForces(strength, velocity)
	ctrlPoints := m.CtrlPoints()

	out := make([]geo.Vec3, m.NrWings())
	for wing, r := range m.WingRanges {
		for i := r.Start; i < r.End; i++ {
			arm := ctrlPoints[i].Sub(reference)
			out[wing] = out[wing].Add(arm.Cross(sectional[i]))
		}
	}
	return out
}

// TotalForce sums the integrated wing forces.
func (m *Model) TotalForce(strength []float64, velocity []geo.Vec3) geo.Vec3 {
	var total geo.Vec3
	for _, f := range m.IntegratedForces(strength, velocity) {
		total = total.Add(f)
	}
	return total
}
