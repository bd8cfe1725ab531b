// Package control holds the wing-angle controllers. Controllers consume the
// solved angles of attack from the previous step and return wing angle
// commands for the next one, so the coupling is one step delayed and never
// enters the solver loop.
package control

// PID is a basic proportional-integral-derivative controller with output
// clamping and anti-windup.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	SetPoint float64
	MinValue float64
	MaxValue float64
	// ReverseErrorSign flips the error, for plants where a positive
	// command decreases the measurement.
	ReverseErrorSign bool

	integral float64
	prevErr  float64
	first    bool
}

func NewPID(kp, ki, kd, setPoint, minValue, maxValue float64) *PID {
	return &PID{
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		SetPoint: setPoint,
		MinValue: minValue,
		MaxValue: maxValue,
		first:    true,
	}
}

// Step advances the controller one time step with a new measurement and
// returns the clamped control signal.
func (p *PID) Step(dt, measurement float64) float64 {
	err := p.SetPoint - measurement
	if p.ReverseErrorSign {
		err = -err
	}

	if p.first {
		p.prevErr = err
		p.first = false
	}

	derivative := (err - p.prevErr) / dt

	p.integral += p.Ki * err * dt
	if p.integral > p.MaxValue {
		p.integral = p.MaxValue
	} else if p.integral < p.MinValue {
		p.integral = p.MinValue
	}

	signal := p.Kp*err + p.Kd*derivative + p.integral

	out := signal
	if signal > p.MaxValue {
		out = p.MaxValue
	} else if signal < p.MinValue {
		out = p.MinValue
	}
	if out != signal {
		p.integral -= signal - out
	}

	p.prevErr = err
	return out
}
