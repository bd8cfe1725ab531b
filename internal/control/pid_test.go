package control

import (
	"math"
	"testing"
)

func TestPIDProportional(t *testing.T) {
	pid := NewPID(2.0, 0, 0, 1.0, -10, 10)

	if out := pid.Step(0.1, 0.0); math.Abs(out-2.0) > 1e-12 {
		t.Errorf("expected Kp times error, got %g", out)
	}
	if out := pid.Step(0.1, 1.0); math.Abs(out) > 1e-12 {
		t.Errorf("expected zero signal at the set point, got %g", out)
	}
	if out := pid.Step(0.1, 1.5); math.Abs(out+1.0) > 1e-12 {
		t.Errorf("overshoot should give a negative signal, got %g", out)
	}
}

func TestPIDReverseErrorSign(t *testing.T) {
	pid := NewPID(2.0, 0, 0, 1.0, -10, 10)
	pid.ReverseErrorSign = true

	if out := pid.Step(0.1, 0.0); math.Abs(out+2.0) > 1e-12 {
		t.Errorf("expected the flipped signal, got %g", out)
	}
}

func TestPIDIntegralAccumulates(t *testing.T) {
	pid := NewPID(0, 1.0, 0, 1.0, -10, 10)

	first := pid.Step(1.0, 0.0)
	second := pid.Step(1.0, 0.0)
	if math.Abs(first-1.0) > 1e-12 || math.Abs(second-2.0) > 1e-12 {
		t.Errorf("integral should accumulate: %g then %g", first, second)
	}
}

func TestPIDDerivative(t *testing.T) {
	pid := NewPID(0, 0, 1.0, 0.0, -10, 10)

	// The first step seeds the previous error, so the derivative is zero.
	if out := pid.Step(0.5, 1.0); math.Abs(out) > 1e-12 {
		t.Errorf("first step derivative should be zero, got %g", out)
	}
	// Error went from -1 to -3 in half a second.
	if out := pid.Step(0.5, 3.0); math.Abs(out+4.0) > 1e-12 {
		t.Errorf("expected derivative -4, got %g", out)
	}
}

func TestPIDOutputClamping(t *testing.T) {
	pid := NewPID(100.0, 0, 0, 1.0, -0.5, 0.5)

	if out := pid.Step(0.1, 0.0); out != 0.5 {
		t.Errorf("expected the upper clamp, got %g", out)
	}
	if out := pid.Step(0.1, 2.0); out != -0.5 {
		t.Errorf("expected the lower clamp, got %g", out)
	}
}

func TestPIDAntiWindup(t *testing.T) {
	pid := NewPID(0, 1.0, 0, 1.0, -0.5, 0.5)

	// Saturate for a while; the integral must not run away.
	for i := 0; i < 50; i++ {
		if out := pid.Step(1.0, 0.0); out > 0.5 {
			t.Fatalf("step %d: output above the clamp: %g", i, out)
		}
	}

	// Once the measurement reaches the set point the output falls back to
	// the held integral, not some accumulated excess.
	if out := pid.Step(1.0, 1.0); out > 0.5 {
		t.Errorf("wound-up integral leaked through: %g", out)
	}
}

func TestWingAnglePerWing(t *testing.T) {
	c := NewWingAngle(2, 2.0, 0, 0, 0.1, -1.5, 1.5)

	if c.NrWings() != 2 {
		t.Fatalf("expected 2 wings, got %d", c.NrWings())
	}

	commands := c.Step(0.1, []float64{0.1, 0.3})
	if math.Abs(commands[0]) > 1e-12 {
		t.Errorf("wing at the set point should get no command, got %g", commands[0])
	}
	if commands[1] >= 0 {
		t.Errorf("wing above the set point should be driven down, got %g", commands[1])
	}
	if commands[1] < -1.5 {
		t.Errorf("command beyond the angle limit: %g", commands[1])
	}
}
