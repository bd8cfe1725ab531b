package wake

import (
	"github.com/sondreal/liftline/internal/compute"
	"github.com/sondreal/liftline/internal/geo"
)

// minPointsPerTask bounds how finely the induced velocity evaluation is
// split across workers.
const minPointsPerTask = 8

// InducedVelocities evaluates the induced velocity from the whole wake at
// the given points. The wake state is not modified; calling twice with the
// same inputs returns identical results.
func (w *Wake) InducedVelocities(points []geo.Vec3) []geo.Vec3 {
	switch w.Kind {
	case Steady:
		return w.horseshoeVelocities(points)
	default:
		return w.panelVelocities(points, 0, w.panels.Rows(), false)
	}
}

// InducedVelocitiesFromFirstPanels evaluates only the panels bound to the
// wing, whose strengths change during solving.
func (w *Wake) InducedVelocitiesFromFirstPanels(points []geo.Vec3) []geo.Vec3 {
	switch w.Kind {
	case Steady:
		return w.horseshoeVelocities(points)
	default:
		return w.panelVelocities(points, 0, 1, w.Settings.NeglectSelfInduced)
	}
}

// InducedVelocitiesFromFreeWake evaluates everything except the first panel
// row. These contributions stay fixed while the circulation is solved. A
// steady wake has no free part.
func (w *Wake) InducedVelocitiesFromFreeWake(points []geo.Vec3) []geo.Vec3 {
	switch w.Kind {
	case Steady:
		return make([]geo.Vec3, len(points))
	default:
		return w.panelVelocities(points, 1, w.panels.Rows(), w.Settings.NeglectSelfInduced)
	}
}

// UnitVelocityFromBoundElement returns the induced velocity at a point from
// the wing-bound wake element at the given span index, with unit strength.
// Used to assemble the frozen-wake operator.
func (w *Wake) UnitVelocityFromBoundElement(spanIndex int, point geo.Vec3) geo.Vec3 {
	switch w.Kind {
	case Steady:
		h := w.horseshoes[spanIndex]
		return w.Model.HorseshoeVelocity(h.Start, h.End, h.WakeVector, point)
	default:
		panel := &w.panelGeometry[w.panels.Index(0, spanIndex)]
		return w.Model.PanelVelocity(panel, point)
	}
}

// SetWingStrength updates the circulation of the wing-bound wake elements.
// Called every solver iteration.
func (w *Wake) SetWingStrength(strength []float64) {
	switch w.Kind {
	case Steady:
		copy(w.steadyStrength, strength)
	default:
		for col := 0; col < w.panels.Width(); col++ {
			w.strengths[w.panels.Index(0, col)] = strength[col]
		}
	}
}

// horseshoeVelocities sums the horseshoe contributions at each point.
func (w *Wake) horseshoeVelocities(points []geo.Vec3) []geo.Vec3 {
	out := make([]geo.Vec3, len(points))
	compute.ParallelFor(len(points), minPointsPerTask, func(start, end int) {
		for p := start; p < end; p++ {
			var sum geo.Vec3
			for i, h := range w.horseshoes {
				if w.steadyStrength[i] == 0 {
					continue
				}
				u := w.Model.HorseshoeVelocity(h.Start, h.End, h.WakeVector, points[p])
				sum = sum.Add(u.Scale(w.steadyStrength[i]))
			}
			out[p] = sum
		}
	})
	return out
}

// panelVelocities sums the panel contributions over the logical row range
// [rowStart, rowEnd). With selfExclusion the points are assumed to be the
// wing control points in span order, and contributions from a point's own
// wing are skipped.
func (w *Wake) panelVelocities(points []geo.Vec3, rowStart, rowEnd int, selfExclusion bool) []geo.Vec3 {
	width := w.panels.Width()

	out := make([]geo.Vec3, len(points))
	compute.ParallelFor(len(points), minPointsPerTask, func(start, end int) {
		for p := start; p < end; p++ {
			var pointWing int
			if selfExclusion {
				pointWing = w.wingIndexOf(p)
			}

			var sum geo.Vec3
			for row := rowStart; row < rowEnd; row++ {
				for col := 0; col < width; col++ {
					if selfExclusion && w.wingIndexOf(col) == pointWing {
						continue
					}
					i := w.panels.Index(row, col)
					if w.strengths[i] == 0 {
						continue
					}
					u := w.Model.PanelVelocity(&w.panelGeometry[i], points[p])
					sum = sum.Add(u.Scale(w.strengths[i]))
				}
			}
			out[p] = sum
		}
	})
	return out
}
