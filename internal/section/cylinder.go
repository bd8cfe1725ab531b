package section

import "math"

// RotatingCylinder models the section of a rotor sail (Flettner rotor). Lift
// and drag coefficients come from interpolation tables indexed by the spin
// ratio: the cylinder surface speed divided by the freestream speed. The
// default tables are from two dimensional CFD simulations of a smooth
// cylinder.
type RotatingCylinder struct {
	// RevolutionsPerSecond is the rotor speed; its sign sets the lift
	// direction through the Magnus effect.
	RevolutionsPerSecond float64

	SpinRatioData []float64
	ClData        []float64
	CdData        []float64
	// WakeAngleData optionally deflects the shed wake as a function of spin
	// ratio, in radians. Nil means no deflection.
	WakeAngleData []float64
}

func NewRotatingCylinder(revolutionsPerSecond float64) *RotatingCylinder {
	return &RotatingCylinder{
		RevolutionsPerSecond: revolutionsPerSecond,
		SpinRatioData:        []float64{0.0, 0.5, 1.0, 2.0, 3.0, 4.0, 5.0, 6.0, 8.0},
		ClData:               []float64{0.0, 1.22, 2.56, 5.93, 9.10, 10.77, 12.80, 13.71, 16.90},
		CdData:               []float64{0.457, 0.411, 0.296, 0.093, 0.066, 0.042, 0.064, 0.05, 0.076},
	}
}

// SpinRatio is the ratio of the cylinder surface velocity to the freestream
// speed. The chord length of a cylinder section is its diameter.
func (c *RotatingCylinder) SpinRatio(diameter, speed float64) float64 {
	tangential := math.Pi * diameter * c.RevolutionsPerSecond
	return -tangential / speed
}

// LiftCoefficient ignores the angle of attack: a spinning cylinder has no
// chordwise orientation, only a spin-dependent Magnus lift.
func (c *RotatingCylinder) LiftCoefficient(_, chordLength, speed float64) float64 {
	ratio := c.SpinRatio(chordLength, speed)
	cl := linearInterpolate(math.Abs(ratio), c.SpinRatioData, c.ClData)
	return cl * sign(ratio)
}

func (c *RotatingCylinder) DragCoefficient(_, chordLength, speed float64) float64 {
	ratio := c.SpinRatio(chordLength, speed)
	return linearInterpolate(math.Abs(ratio), c.SpinRatioData, c.CdData)
}

// FlowSeparation is always one: the wake behind a cylinder follows the local
// velocity direction rather than a chord direction.
func (c *RotatingCylinder) FlowSeparation(_ float64) float64 { return 1.0 }

func (c *RotatingCylinder) WakeAngle(chordLength, speed float64) float64 {
	if c.WakeAngleData == nil {
		return 0
	}
	ratio := c.SpinRatio(chordLength, speed)
	magnitude := linearInterpolate(math.Abs(ratio), c.SpinRatioData, c.WakeAngleData)
	return -magnitude * sign(ratio)
}

// linearInterpolate evaluates a piecewise-linear table, clamping outside the
// data range.
func linearInterpolate(x float64, xs, ys []float64) float64 {
	if len(xs) == 0 || len(xs) != len(ys) {
		return 0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}
	for i := 1; i < len(xs); i++ {
		if x <= xs[i] {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[len(ys)-1]
}
