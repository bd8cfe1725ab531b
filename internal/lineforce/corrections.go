package lineforce

import (
	"math"

	"github.com/sondreal/liftline/internal/geo"
)

// TipLoss reduces the circulation towards the wing ends with a smooth power
// law of the non-dimensional span position. Purely a function of position, no
// state.
type TipLoss struct {
	OuterPower      float64
	InnerPower      float64
	MaxValue        float64
	MinValue        float64
	CorrectBothEnds bool
}

// DefaultTipLoss tapers from 1 at mid span to 0 at both tips.
func DefaultTipLoss() *TipLoss {
	return &TipLoss{
		OuterPower:      0.5,
		InnerPower:      2.0,
		MaxValue:        1.0,
		MinValue:        0.0,
		CorrectBothEnds: true,
	}
}

// Value returns the correction factor at a non-dimensional span position in
// [-0.5, 0.5]. With CorrectBothEnds the factor is MaxValue at mid span and
// MinValue at both tips. Without it the span is remapped so only the last end
// is corrected, for wings mounted on a wall or deck at the first end.
func (t *TipLoss) Value(nonDimSpan float64) float64 {
	var x float64
	if t.CorrectBothEnds {
		x = math.Abs(nonDimSpan)
	} else {
		x = math.Abs((nonDimSpan + 0.5) / 2.0)
	}

	f := math.Pow(1.0-math.Pow(2.0*x, t.InnerPower), t.OuterPower)

	return t.MaxValue*f + (1.0-f)*t.MinValue
}

// Apply multiplies each strength by the correction factor at its span
// position.
func (t *TipLoss) Apply(nonDimSpan, strength []float64) []float64 {
	out := make([]float64, len(strength))
	for i := range strength {
		out[i] = strength[i] * t.Value(nonDimSpan[i])
	}
	return out
}

// ZeroEnds selects which wing ends a prescribed circulation shape forces to
// zero.
type ZeroEnds int

const (
	ZeroEndsBoth ZeroEnds = iota
	ZeroEndsFirst
	ZeroEndsLast
)

func (z ZeroEnds) String() string {
	switch z {
	case ZeroEndsBoth:
		return "both"
	case ZeroEndsFirst:
		return "first"
	case ZeroEndsLast:
		return "last"
	default:
		return "unknown"
	}
}

// PrescribedShape forces the circulation distribution to a fixed parametric
// shape, scaled to match the characteristic magnitude of the raw solved
// circulation. Used as a stabilizing fallback for configurations where the
// raw solution is ill conditioned, such as rotor sails.
type PrescribedShape struct {
	InnerPower float64
	OuterPower float64
	Ends       ZeroEnds
}

// DefaultPrescribedShape is the elliptic-like default shape.
func DefaultPrescribedShape() *PrescribedShape {
	return &PrescribedShape{InnerPower: 2.0, OuterPower: 0.5, Ends: ZeroEndsBoth}
}

// effectiveSpan remaps the span coordinate so only the selected ends reach
// the zero of the shape function.
func (p *PrescribedShape) effectiveSpan(nonDimSpan float64) float64 {
	switch p.Ends {
	case ZeroEndsFirst:
		return (nonDimSpan - 0.5) / 2.0
	case ZeroEndsLast:
		return (nonDimSpan + 0.5) / 2.0
	default:
		return nonDimSpan
	}
}

// Value evaluates the shape at a non-dimensional span position. Outside
// [-0.5, 0.5] the shape is zero.
func (p *PrescribedShape) Value(nonDimSpan float64) float64 {
	x := p.effectiveSpan(nonDimSpan)
	if math.Abs(x) >= 0.5 {
		return 0.0
	}
	return math.Pow(1.0-math.Pow(2.0*math.Abs(x), p.InnerPower), p.OuterPower)
}

// prescribedCirculation replaces the raw circulation with the prescribed
// shape scaled by the wing-averaged raw circulation, computed from
// wing-averaged velocities so local noise does not enter the scale.
func (m *Model) prescribedCirculation(velocity []geo.Vec3) []float64 {
	m.mustMatchCount(len(velocity), "velocity")

	averagedVelocity := make([]geo.Vec3, m.NrWings())
	for wing, r := range m.WingRanges {
		var sum geo.Vec3
		for i := r.Start; i < r.End; i++ {
			sum = sum.Add(velocity[i])
		}
		averagedVelocity[wing] = sum.Scale(1.0 / float64(r.Len()))
	}

	effectiveVelocity := make([]geo.Vec3, m.NrSpanLines())
	for i := range effectiveVelocity {
		effectiveVelocity[i] = averagedVelocity[m.WingIndexOf(i)]
	}

	raw := m.CirculationRaw(effectiveVelocity)
	scale := m.wingAveragedValues(raw)
	span := m.NonDimSpan()

	out := make([]float64, m.NrSpanLines())
	for i := range out {
		out[i] = scale[m.WingIndexOf(i)] * m.Prescribed.Value(span[i])
	}
	return out
}

// EllipticEndCorrection replaces the two outermost strength values of each
// wing with values extrapolated from their neighbours under an elliptic
// distribution assumption. Handles noisy end values while leaving the
// interior untouched.
func (m *Model) EllipticEndCorrection(strength []float64) []float64 {
	m.mustMatchCount(len(strength), "strength")

	span := m.NonDimSpan()
	out := make([]float64, len(strength))
	copy(out, strength)

	elliptic := func(peak, s float64) float64 {
		return peak * math.Sqrt(1.0-(2.0*s)*(2.0*s))
	}

	for _, r := range m.WingRanges {
		if r.Len() < 3 {
			continue
		}
		first, last := r.Start, r.End-1

		peak := strength[first+1] / elliptic(1.0, span[first+1])
		out[first] = elliptic(peak, span[first])

		peak = strength[last-1] / elliptic(1.0, span[last-1])
		out[last] = elliptic(peak, span[last])
	}
	return out
}
