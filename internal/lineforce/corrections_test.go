package lineforce

import (
	"math"
	"testing"

	"github.com/sondreal/liftline/internal/geo"
)

func TestTipLossBothEnds(t *testing.T) {
	tl := DefaultTipLoss()

	if v := tl.Value(0); math.Abs(v-1.0) > 1e-12 {
		t.Errorf("mid span: expected 1, got %g", v)
	}
	if v := tl.Value(0.5); math.Abs(v) > 1e-12 {
		t.Errorf("last tip: expected 0, got %g", v)
	}
	if v := tl.Value(-0.5); math.Abs(v) > 1e-12 {
		t.Errorf("first tip: expected 0, got %g", v)
	}

	// Symmetric and monotonically decreasing outward.
	prev := tl.Value(0)
	for _, s := range []float64{0.1, 0.2, 0.3, 0.4, 0.49} {
		v := tl.Value(s)
		if math.Abs(v-tl.Value(-s)) > 1e-12 {
			t.Errorf("tip loss not symmetric at %g", s)
		}
		if v >= prev {
			t.Errorf("tip loss not decreasing outward at %g: %g >= %g", s, v, prev)
		}
		prev = v
	}
}

func TestTipLossSingleEnd(t *testing.T) {
	tl := DefaultTipLoss()
	tl.CorrectBothEnds = false

	// The first end carries the full maximum (a wing rooted on a deck),
	// only the free end tapers to the minimum.
	if v := tl.Value(-0.5); math.Abs(v-tl.MaxValue) > 1e-12 {
		t.Errorf("rooted end: expected %g, got %g", tl.MaxValue, v)
	}
	if v := tl.Value(0.5); math.Abs(v-tl.MinValue) > 1e-12 {
		t.Errorf("free end: expected %g, got %g", tl.MinValue, v)
	}
	if v := tl.Value(0); v <= tl.Value(0.5) || v >= tl.Value(-0.5) {
		t.Errorf("mid span value %g outside the taper", v)
	}
}

func TestTipLossMinMaxRange(t *testing.T) {
	tl := &TipLoss{OuterPower: 0.5, InnerPower: 2.0, MaxValue: 1.0, MinValue: 0.3, CorrectBothEnds: true}

	if v := tl.Value(0.5); math.Abs(v-0.3) > 1e-12 {
		t.Errorf("tip should reach the minimum value: %g", v)
	}
	if v := tl.Value(0); math.Abs(v-1.0) > 1e-12 {
		t.Errorf("mid span should reach the maximum value: %g", v)
	}
}

func TestPrescribedShapeEnds(t *testing.T) {
	both := DefaultPrescribedShape()
	if v := both.Value(0); math.Abs(v-1.0) > 1e-12 {
		t.Errorf("mid span: expected 1, got %g", v)
	}
	if v := both.Value(0.5); v != 0 {
		t.Errorf("last end: expected 0, got %g", v)
	}
	if v := both.Value(-0.5); v != 0 {
		t.Errorf("first end: expected 0, got %g", v)
	}
	if v := both.Value(0.7); v != 0 {
		t.Errorf("outside the span: expected 0, got %g", v)
	}

	first := &PrescribedShape{InnerPower: 2.0, OuterPower: 0.5, Ends: ZeroEndsFirst}
	if v := first.Value(-0.5); v != 0 {
		t.Errorf("zeroed first end: got %g", v)
	}
	if v := first.Value(0.5); v <= 0.5 {
		t.Errorf("free last end should stay high, got %g", v)
	}

	last := &PrescribedShape{InnerPower: 2.0, OuterPower: 0.5, Ends: ZeroEndsLast}
	if v := last.Value(0.5); v != 0 {
		t.Errorf("zeroed last end: got %g", v)
	}
	if v := last.Value(-0.5); v <= 0.5 {
		t.Errorf("free first end should stay high, got %g", v)
	}
}

func TestPrescribedCirculationScaling(t *testing.T) {
	m := testWingModel(t, 8)
	m.Prescribed = DefaultPrescribedShape()

	velocity := uniformVelocity(8, geo.NewVec3(10, -1, 0))
	strength := m.TargetCirculation(velocity)

	raw := m.CirculationRaw(velocity)
	mean := 0.0
	for _, s := range raw {
		mean += s
	}
	mean /= float64(len(raw))

	span := m.NonDimSpan()
	for i := range strength {
		expected := mean * m.Prescribed.Value(span[i])
		if math.Abs(strength[i]-expected) > 1e-9 {
			t.Errorf("segment %d: expected %g, got %g", i, expected, strength[i])
		}
	}
}

func TestEllipticEndCorrection(t *testing.T) {
	m := testWingModel(t, 8)
	span := m.NonDimSpan()

	// An exactly elliptic distribution is a fixed point of the correction.
	strength := make([]float64, 8)
	for i := range strength {
		strength[i] = 3.0 * math.Sqrt(1.0-4.0*span[i]*span[i])
	}

	corrected := m.EllipticEndCorrection(strength)
	for i := range corrected {
		if math.Abs(corrected[i]-strength[i]) > 1e-9 {
			t.Errorf("segment %d: elliptic input changed: %g -> %g", i, strength[i], corrected[i])
		}
	}

	// Noisy end values get replaced, the interior stays put.
	noisy := append([]float64(nil), strength...)
	noisy[0] = 100.0
	noisy[7] = -50.0
	fixed := m.EllipticEndCorrection(noisy)

	if math.Abs(fixed[0]-strength[0]) > 1e-9 {
		t.Errorf("first end not repaired: %g", fixed[0])
	}
	if math.Abs(fixed[7]-strength[7]) > 1e-9 {
		t.Errorf("last end not repaired: %g", fixed[7])
	}
	for i := 1; i < 7; i++ {
		if fixed[i] != noisy[i] {
			t.Errorf("interior value %d changed", i)
		}
	}
}

func TestEllipticEndCorrectionSkipsShortWings(t *testing.T) {
	m := testWingModel(t, 2)
	strength := []float64{1.5, 2.5}
	out := m.EllipticEndCorrection(strength)
	for i := range out {
		if out[i] != strength[i] {
			t.Errorf("wing with two segments should pass through unchanged")
		}
	}
}
