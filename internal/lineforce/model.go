// Package lineforce represents lifting surfaces as ordered sets of span line
// segments with chord vectors and sectional aerodynamic models. It holds the
// geometry queries, the angle-of-attack and circulation computations, and the
// corrections (tip loss, smoothing, prescribed shape) used by the circulation
// solver.
package lineforce

import (
	"fmt"
	"math"

	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/section"
)

// IndexRange is a contiguous half-open range of span line indices belonging
// to one wing.
type IndexRange struct {
	Start int
	End   int
}

func (r IndexRange) Contains(i int) bool { return i >= r.Start && i < r.End }
func (r IndexRange) Len() int            { return r.End - r.Start }

// Wing is the input needed to add one lifting surface to a model.
type Wing struct {
	SpanLines    []geo.SpanLine
	ChordVectors []geo.Vec3
	Section      section.Model
}

// Model is a collection of wings discretized into span lines. Span lines are
// stored in insertion order; that order is the solve and assembly order, and
// each wing occupies a contiguous index range.
type Model struct {
	SpanLinesLocal    []geo.SpanLine
	ChordVectorsLocal []geo.Vec3
	Sections          []section.Model
	WingRanges        []IndexRange

	// Translation moves the whole model from local to global coordinates.
	Translation geo.Vec3
	// LocalWingAngles rotate each wing around its own span axis, used to
	// trim wing sails against changing apparent wind between time steps.
	LocalWingAngles []float64

	// Density is the fluid density used in force calculations.
	Density float64

	// Corrections applied to the circulation targets during solving.
	TipLoss    *TipLoss
	Smoothing  *CirculationSmoothing
	Prescribed *PrescribedShape
	// EllipticEnds replaces the outermost strengths of each wing with an
	// elliptic extrapolation, taming the end-segment overshoot of coarse
	// discretizations.
	EllipticEnds bool
}

const DefaultDensity = 1.225

// New returns an empty model; add lifting surfaces with AddWing.
func New(density float64) *Model {
	return &Model{Density: density}
}

// AddWing appends a wing's span lines, chord vectors and section model. The
// wing must have one chord vector per span line.
func (m *Model) AddWing(w Wing) error {
	if len(w.SpanLines) == 0 {
		return fmt.Errorf("lineforce: wing with no span lines")
	}
	if len(w.ChordVectors) != len(w.SpanLines) {
		return fmt.Errorf("lineforce: %d chord vectors for %d span lines",
			len(w.ChordVectors), len(w.SpanLines))
	}
	if w.Section == nil {
		return fmt.Errorf("lineforce: wing without a section model")
	}

	start := 0
	if len(m.WingRanges) > 0 {
		start = m.WingRanges[len(m.WingRanges)-1].End
	}

	m.WingRanges = append(m.WingRanges, IndexRange{Start: start, End: start + len(w.SpanLines)})
	m.SpanLinesLocal = append(m.SpanLinesLocal, w.SpanLines...)
	m.ChordVectorsLocal = append(m.ChordVectorsLocal, w.ChordVectors...)
	m.Sections = append(m.Sections, w.Section)
	m.LocalWingAngles = append(m.LocalWingAngles, 0.0)

	return nil
}

func (m *Model) NrWings() int     { return len(m.WingRanges) }
func (m *Model) NrSpanLines() int { return len(m.SpanLinesLocal) }

// WingIndexOf returns the wing that owns the global span line index.
func (m *Model) WingIndexOf(globalIndex int) int {
	for wing, r := range m.WingRanges {
		if r.Contains(globalIndex) {
			return wing
		}
	}
	panic(fmt.Sprintf("lineforce: span line index %d outside every wing", globalIndex))
}

// SectionOf returns the section model of the wing owning the global index.
func (m *Model) SectionOf(globalIndex int) section.Model {
	return m.Sections[m.WingIndexOf(globalIndex)]
}

// wingRotationAxis is the span direction of the wing's first span line.
func (m *Model) wingRotationAxis(wing int) geo.Vec3 {
	return m.SpanLinesLocal[m.WingRanges[wing].Start].RelativeVector()
}

// SpanLines returns the span lines in global coordinates, with the local wing
// angles and the model translation applied.
func (m *Model) SpanLines() []geo.SpanLine {
	out := make([]geo.SpanLine, m.NrSpanLines())
	for i, line := range m.SpanLinesLocal {
		wing := m.WingIndexOf(i)
		angle := m.LocalWingAngles[wing]
		if angle != 0 {
			line = line.RotateAroundAxis(angle, m.wingRotationAxis(wing))
		}
		out[i] = line.Translate(m.Translation)
	}
	return out
}

// ChordVectors returns the chord vectors in global coordinates.
func (m *Model) ChordVectors() []geo.Vec3 {
	out := make([]geo.Vec3, m.NrSpanLines())
	for i, chord := range m.ChordVectorsLocal {
		wing := m.WingIndexOf(i)
		angle := m.LocalWingAngles[wing]
		if angle != 0 {
			chord = chord.RotateAroundAxis(angle, m.wingRotationAxis(wing))
		}
		out[i] = chord
	}
	return out
}

// CtrlPoints returns the control point (midpoint) of every span line in
// global coordinates.
func (m *Model) CtrlPoints() []geo.Vec3 {
	lines := m.SpanLines()
	out := make([]geo.Vec3, len(lines))
	for i, line := range lines {
		out[i] = line.CtrlPoint()
	}
	return out
}

// SpanPoints returns the segment boundary points per wing: for a wing with n
// span lines it contributes n+1 points (all start points plus the final end
// point). This is the spanwise point row a wake grid attaches to.
func (m *Model) SpanPoints() []geo.Vec3 {
	lines := m.SpanLines()
	var out []geo.Vec3
	for _, r := range m.WingRanges {
		for i := r.Start; i < r.End; i++ {
			out = append(out, lines[i].Start)
		}
		out = append(out, lines[r.End-1].End)
	}
	return out
}

// NrSpanPoints is the length of SpanPoints without building it.
func (m *Model) NrSpanPoints() int {
	return m.NrSpanLines() + m.NrWings()
}

// NonDimSpan returns the non-dimensional span position of every control
// point, from -0.5 at a wing's first end to +0.5 at its last, measured along
// the accumulated segment lengths of that wing.
func (m *Model) NonDimSpan() []float64 {
	out := make([]float64, m.NrSpanLines())
	for _, r := range m.WingRanges {
		total := 0.0
		for i := r.Start; i < r.End; i++ {
			total += m.SpanLinesLocal[i].Length()
		}

		accumulated := 0.0
		for i := r.Start; i < r.End; i++ {
			length := m.SpanLinesLocal[i].Length()
			mid := accumulated + 0.5*length
			out[i] = mid/total - 0.5
			accumulated += length
		}
	}
	return out
}

// RemoveSpanVelocity removes the component along the span direction from each
// control point velocity. Spanwise flow carries no sectional lift.
func (m *Model) RemoveSpanVelocity(velocity []geo.Vec3) []geo.Vec3 {
	m.mustMatchCount(len(velocity), "velocity")
	lines := m.SpanLines()

	out := make([]geo.Vec3, len(velocity))
	for i, v := range velocity {
		out[i] = v.Sub(v.Project(lines[i].RelativeVector()))
	}
	return out
}

// AnglesOfAttack returns the signed angle from the local velocity to the
// chord vector about the span axis, positive nose-up, one per control point.
// Zero velocity yields a zero angle.
func (m *Model) AnglesOfAttack(velocity []geo.Vec3) []float64 {
	m.mustMatchCount(len(velocity), "velocity")

	lines := m.SpanLines()
	chords := m.ChordVectors()

	out := make([]float64, len(velocity))
	for i, v := range velocity {
		if v.Length() > math.SmallestNonzeroFloat64 {
			out[i] = v.SignedAngleBetween(chords[i], lines[i].Direction())
		}
	}
	return out
}

// LiftCoefficients evaluates the sectional models at the current angles of
// attack.
func (m *Model) LiftCoefficients(velocity []geo.Vec3) []float64 {
	angles := m.AnglesOfAttack(velocity)

	out := make([]float64, m.NrSpanLines())
	for i := range out {
		chordLength := m.ChordVectorsLocal[i].Length()
		out[i] = m.SectionOf(i).LiftCoefficient(angles[i], chordLength, velocity[i].Length())
	}
	return out
}

// CirculationRaw inverts the Kutta-Joukowski theorem per span line:
// strength = 0.5 * Cl * |velocity| * chord. The sign convention follows the
// chord vector orientation through the angle of attack.
func (m *Model) CirculationRaw(velocity []geo.Vec3) []float64 {
	cl := m.LiftCoefficients(velocity)

	out := make([]float64, m.NrSpanLines())
	for i := range out {
		out[i] = 0.5 * cl[i] * velocity[i].Length() * m.ChordVectorsLocal[i].Length()
	}
	return out
}

// TargetCirculation is the circulation estimate handed to the solver's
// damping step: the raw Kutta-Joukowski inversion with the configured
// corrections applied. Corrections participate in the fixed-point iteration
// rather than post-processing a converged answer.
func (m *Model) TargetCirculation(velocity []geo.Vec3) []float64 {
	var strength []float64
	if m.Prescribed != nil {
		strength = m.prescribedCirculation(velocity)
	} else {
		strength = m.CirculationRaw(velocity)
	}

	if m.TipLoss != nil {
		strength = m.TipLoss.Apply(m.NonDimSpan(), strength)
	}
	if m.Smoothing != nil {
		strength = m.Smoothing.Apply(m, velocity, strength)
	}
	if m.EllipticEnds {
		strength = m.EllipticEndCorrection(strength)
	}
	return strength
}

// SpanPointValues maps per-control-point vectors onto the segment boundary
// points per wing: interior points average their two neighbours, wing ends
// take the adjacent control point value. Used when transferring shedding
// vectors from control points to the wake point row.
func (m *Model) SpanPointValues(ctrlValues []geo.Vec3) []geo.Vec3 {
	m.mustMatchCount(len(ctrlValues), "ctrl values")

	out := make([]geo.Vec3, 0, m.NrSpanPoints())
	for _, r := range m.WingRanges {
		out = append(out, ctrlValues[r.Start])
		for i := r.Start + 1; i < r.End; i++ {
			out = append(out, ctrlValues[i-1].Add(ctrlValues[i]).Scale(0.5))
		}
		out = append(out, ctrlValues[r.End-1])
	}
	return out
}

// wingAveragedValues returns the mean of the values over each wing range.
func (m *Model) wingAveragedValues(values []float64) []float64 {
	out := make([]float64, m.NrWings())
	for wing, r := range m.WingRanges {
		sum := 0.0
		for i := r.Start; i < r.End; i++ {
			sum += values[i]
		}
		out[wing] = sum / float64(r.Len())
	}
	return out
}

// mustMatchCount enforces the index alignment invariant between per-segment
// slices and the span line ordering. A mismatch is a programmer error.
func (m *Model) mustMatchCount(n int, what string) {
	if n != m.NrSpanLines() {
		panic(fmt.Sprintf("lineforce: %s length %d does not match %d span lines",
			what, n, m.NrSpanLines()))
	}
}
