package vortex

import "github.com/sondreal/liftline/internal/geo"

// The methods below are the symmetry-aware entry points used by the wake
// models. Each evaluates the underlying kernel once, or twice when a mirror
// plane is active, and recombines with the symmetry sign rules.

// LineVelocity returns the unit-strength induced velocity of a single vortex
// line segment, including the mirror image contribution when symmetry is
// enabled. The core length is resolved from the model's specification and the
// segment length.
func (m *Model) LineVelocity(start, end, ctrlPoint geo.Vec3) geo.Vec3 {
	core := m.CoreLength.Absolute(end.Sub(start).Length())

	u := LineInducedVelocity(start, end, ctrlPoint, core, m.ClosenessError)
	if !m.Symmetry.Enabled() {
		return u
	}

	um := LineInducedVelocity(start, end, m.Symmetry.MirrorPoint(ctrlPoint), core, m.ClosenessError)
	return m.Symmetry.CombineVelocity(u, um)
}

// HorseshoeVelocity returns the unit-strength induced velocity of a horseshoe
// vortex spanning the given segment with trailing legs along wakeVector.
func (m *Model) HorseshoeVelocity(start, end, wakeVector, ctrlPoint geo.Vec3) geo.Vec3 {
	h := NewHorseshoe(start, end, wakeVector, m.CoreLength)

	u := h.UnitVelocity(ctrlPoint, m.ClosenessError)
	if !m.Symmetry.Enabled() {
		return u
	}

	um := h.UnitVelocity(m.Symmetry.MirrorPoint(ctrlPoint), m.ClosenessError)
	return m.Symmetry.CombineVelocity(u, um)
}

// PanelVelocity returns the unit-strength induced velocity of a wake panel,
// with the near/far-field switch applied independently for the real and the
// mirrored evaluation point.
func (m *Model) PanelVelocity(p *Panel, ctrlPoint geo.Vec3) geo.Vec3 {
	u := p.UnitVelocity(ctrlPoint, m.ClosenessError)
	if !m.Symmetry.Enabled() {
		return u
	}

	um := p.UnitVelocity(m.Symmetry.MirrorPoint(ctrlPoint), m.ClosenessError)
	return m.Symmetry.CombineVelocity(u, um)
}
