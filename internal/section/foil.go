package section

import "math"

// Foil is a parametric model of a foil profile. Below stall the lift is a
// polynomial in the angle of attack (mostly linear, with an optional
// high-order term) and the drag a second-order polynomial. Above stall both
// become harmonic functions adjusted by their post-stall maxima. The two
// regimes are blended with a sigmoid centered on the stall angle, which keeps
// the curves smooth through stall; smoothness matters when the model is used
// inside an iterative circulation solve.
type Foil struct {
	// ClZeroAngle is the lift coefficient at zero angle of attack, non-zero
	// for cambered or flapped profiles.
	ClZeroAngle float64
	// ClInitialSlope is the lift slope at small angles, 2*pi for a thin foil.
	ClInitialSlope float64
	// ClHighOrderFactor and ClHighOrderPower optionally shape the lift curve
	// close to stall. Zero disables the term.
	ClHighOrderFactor float64
	ClHighOrderPower  float64
	// ClMaxAfterStall scales the harmonic post-stall lift.
	ClMaxAfterStall float64

	CdZeroAngle         float64
	CdSecondOrderFactor float64
	CdMaxAfterStall     float64
	CdPowerAfterStall   float64

	// MeanPositiveStallAngle and MeanNegativeStallAngle are the transition
	// centers for the two signs of the angle of attack, in radians.
	MeanPositiveStallAngle float64
	MeanNegativeStallAngle float64
	// StallRange is the width of the pre/post-stall transition.
	StallRange float64
}

// NewFoil returns a symmetric thin-foil model with typical defaults: lift
// slope 2*pi, stall at 20 degrees over a 6 degree transition.
func NewFoil() *Foil {
	return &Foil{
		ClInitialSlope:         2.0 * math.Pi,
		ClMaxAfterStall:        1.0,
		CdMaxAfterStall:        1.0,
		CdPowerAfterStall:      1.6,
		MeanPositiveStallAngle: 20.0 * math.Pi / 180.0,
		MeanNegativeStallAngle: 20.0 * math.Pi / 180.0,
		StallRange:             6.0 * math.Pi / 180.0,
	}
}

func (f *Foil) LiftCoefficient(angleOfAttack, _, _ float64) float64 {
	preStall := f.liftPreStall(angleOfAttack)
	postStall := f.ClMaxAfterStall * math.Sin(2.0*wrappedStallAngle(angleOfAttack))

	return f.blendStall(angleOfAttack, preStall, postStall)
}

func (f *Foil) DragCoefficient(angleOfAttack, _, _ float64) float64 {
	preStall := f.CdZeroAngle + f.CdSecondOrderFactor*angleOfAttack*angleOfAttack
	postStall := f.CdMaxAfterStall *
		math.Pow(math.Abs(math.Sin(wrappedStallAngle(angleOfAttack))), f.CdPowerAfterStall)

	return f.blendStall(angleOfAttack, preStall, postStall)
}

// FlowSeparation is the sigmoid stall fraction itself: fully attached flow
// well below stall, fully separated well above.
func (f *Foil) FlowSeparation(angleOfAttack float64) float64 {
	center := math.Abs(f.MeanPositiveStallAngle)
	if angleOfAttack < 0 {
		center = math.Abs(f.MeanNegativeStallAngle)
	}
	return sigmoidZeroToOne(math.Abs(angleOfAttack), center, f.StallRange)
}

func (f *Foil) WakeAngle(_, _ float64) float64 { return 0 }

func (f *Foil) liftPreStall(angleOfAttack float64) float64 {
	highOrder := 0.0
	if f.ClHighOrderPower > 0 {
		highOrder = math.Pow(math.Abs(angleOfAttack), f.ClHighOrderPower) * sign(angleOfAttack)
	}

	return f.ClZeroAngle + f.ClInitialSlope*angleOfAttack + f.ClHighOrderFactor*highOrder
}

func (f *Foil) blendStall(angleOfAttack, preStall, postStall float64) float64 {
	s := f.FlowSeparation(angleOfAttack)
	return preStall*(1.0-s) + postStall*s
}

// wrappedStallAngle folds the angle of attack into [-pi, pi] preserving sign,
// so the harmonic post-stall curves stay periodic for spinning geometries.
func wrappedStallAngle(angleOfAttack float64) float64 {
	effective := math.Abs(angleOfAttack)
	for effective > math.Pi {
		effective -= math.Pi
	}
	return effective * sign(angleOfAttack)
}

// sigmoidZeroToOne rises smoothly from 0 to 1 around center over a width of
// about one range, with value 0.5 at the center.
func sigmoidZeroToOne(x, center, width float64) float64 {
	if width <= 0 {
		if x >= center {
			return 1.0
		}
		return 0.0
	}
	return 1.0 / (1.0 + math.Exp(-4.0*(x-center)/width))
}

func sign(x float64) float64 {
	if x < 0 {
		return -1.0
	}
	return 1.0
}
