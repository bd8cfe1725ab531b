package lineforce

import (
	"math"
	"testing"

	"github.com/sondreal/liftline/internal/geo"
)

func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return out
}

func TestGaussianSmoothingPreservesConstant(t *testing.T) {
	g := GaussianSmoothing{
		SmoothingLength: 0.2,
		EndConditions:   [2]EndCondition{EndExtended, EndExtended},
	}

	x := linspace(0, 1, 21)
	y := make([]float64, len(x))
	for i := range y {
		y[i] = 3.5
	}

	out := g.Smooth(x, y)
	for i := range out {
		if math.Abs(out[i]-3.5) > 1e-12 {
			t.Errorf("constant data should be unchanged with extended ends, got %g at %d", out[i], i)
		}
	}
}

func TestGaussianSmoothingReducesNoise(t *testing.T) {
	g := GaussianSmoothing{
		SmoothingLength: 0.1,
		EndConditions:   [2]EndCondition{EndMirrored, EndMirrored},
	}

	x := linspace(0, 1, 41)
	y := make([]float64, len(x))
	for i := range y {
		noise := 0.3
		if i%2 == 0 {
			noise = -0.3
		}
		y[i] = 2.0 + noise
	}

	out := g.Smooth(x, y)

	// The alternating noise should be nearly gone in the interior.
	for i := 5; i < len(out)-5; i++ {
		if math.Abs(out[i]-2.0) > 0.02 {
			t.Errorf("noise not smoothed at %d: %g", i, out[i])
		}
	}
}

func TestGaussianSmoothingZeroEndsPullTowardZero(t *testing.T) {
	g := GaussianSmoothing{
		SmoothingLength: 0.15,
		EndConditions:   [2]EndCondition{EndZero, EndZero},
	}

	x := linspace(0, 1, 21)
	y := make([]float64, len(x))
	for i := range y {
		y[i] = 1.0
	}

	out := g.Smooth(x, y)

	if out[0] >= 0.99 {
		t.Errorf("zero padding should pull the first value down, got %g", out[0])
	}
	if out[len(out)-1] >= 0.99 {
		t.Errorf("zero padding should pull the last value down, got %g", out[len(out)-1])
	}
	mid := out[len(out)/2]
	if math.Abs(mid-1.0) > 0.05 {
		t.Errorf("the middle should stay near 1, got %g", mid)
	}
}

func TestGaussianSmoothingDegenerateInput(t *testing.T) {
	g := GaussianSmoothing{SmoothingLength: 0.1}

	out := g.Smooth([]float64{1.0}, []float64{42.0})
	if len(out) != 1 || out[0] != 42.0 {
		t.Errorf("single sample should pass through, got %v", out)
	}

	g.SmoothingLength = 0
	out = g.Smooth([]float64{0, 1}, []float64{1, 2})
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("zero smoothing length should pass through, got %v", out)
	}
}

func TestCirculationSmoothingPerWing(t *testing.T) {
	m := testWingModel(t, 10)
	m.Smoothing = DefaultCirculationSmoothing()

	velocity := uniformVelocity(10, geo.NewVec3(10, -1, 0))

	raw := m.CirculationRaw(velocity)
	smoothed := m.TargetCirculation(velocity)

	if len(smoothed) != len(raw) {
		t.Fatalf("length mismatch: %d vs %d", len(smoothed), len(raw))
	}

	// Raw circulation is uniform here; with zero end conditions the
	// smoothed distribution must taper at the ends and stay below the
	// uniform level everywhere.
	if smoothed[0] >= raw[0] || smoothed[len(smoothed)-1] >= raw[len(raw)-1] {
		t.Errorf("ends should taper: %g, %g vs raw %g", smoothed[0], smoothed[len(smoothed)-1], raw[0])
	}
	mid := len(smoothed) / 2
	if smoothed[mid] > raw[mid] {
		t.Errorf("interior should not exceed the raw level: %g > %g", smoothed[mid], raw[mid])
	}
	if smoothed[mid] < 0.8*raw[mid] {
		t.Errorf("interior should stay close to the raw level: %g vs %g", smoothed[mid], raw[mid])
	}
}

func TestCirculationSmoothingSubtractPrescribedPreservesBaseline(t *testing.T) {
	m := testWingModel(t, 12)
	m.Prescribed = DefaultPrescribedShape()
	m.Smoothing = &CirculationSmoothing{
		SmoothingLengthFactor: 0.1,
		EndConditions:         [2]EndCondition{EndZero, EndZero},
		SubtractPrescribed:    DefaultPrescribedShape(),
	}

	velocity := uniformVelocity(12, geo.NewVec3(10, -1, 0))

	// With the prescribed distribution active the strength equals the
	// baseline, the residual is zero, and smoothing must return the
	// baseline exactly.
	strength := m.TargetCirculation(velocity)

	m.Smoothing = nil
	baseline := m.TargetCirculation(velocity)

	for i := range strength {
		if math.Abs(strength[i]-baseline[i]) > 1e-9 {
			t.Errorf("segment %d: baseline not preserved: %g vs %g", i, strength[i], baseline[i])
		}
	}
}
