package vortex

import "github.com/sondreal/liftline/internal/geo"

// Horseshoe is a bound vortex segment with two trailing legs extending along a
// wake vector, modeling one span segment with a steady, semi-infinite wake.
// The leg near the bound start runs from far downstream toward the start, the
// leg at the bound end runs from the end downstream, so the circulation sign
// convention matches a Panel with corners [start, end, end+wake, start+wake].
type Horseshoe struct {
	Start      geo.Vec3
	End        geo.Vec3
	WakeVector geo.Vec3

	coreLengths [3]float64
}

// NewHorseshoe builds a horseshoe and resolves the per-segment viscous-core
// lengths from the kernel core specification.
func NewHorseshoe(start, end, wakeVector geo.Vec3, core CoreLength) Horseshoe {
	h := Horseshoe{Start: start, End: end, WakeVector: wakeVector}

	boundLength := end.Sub(start).Length()
	legLength := wakeVector.Length()

	h.coreLengths[0] = core.Absolute(legLength)
	h.coreLengths[1] = core.Absolute(boundLength)
	h.coreLengths[2] = core.Absolute(legLength)

	return h
}

// UnitVelocity sums the three segment contributions with unit strength.
func (h *Horseshoe) UnitVelocity(ctrlPoint geo.Vec3, closenessError float64) geo.Vec3 {
	startLegFar := h.Start.Add(h.WakeVector)
	endLegFar := h.End.Add(h.WakeVector)

	u := LineInducedVelocity(startLegFar, h.Start, ctrlPoint, h.coreLengths[0], closenessError)
	u = u.Add(LineInducedVelocity(h.Start, h.End, ctrlPoint, h.coreLengths[1], closenessError))
	u = u.Add(LineInducedVelocity(h.End, endLegFar, ctrlPoint, h.coreLengths[2], closenessError))

	return u
}
