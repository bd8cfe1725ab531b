// Package section holds two dimensional aerodynamic models of wing sections.
// A section model maps flow conditions at a control point to lift and drag
// coefficients; the lifting-line solver inverts the lift coefficient into a
// circulation strength via the Kutta-Joukowski theorem.
package section

// Model is the sectional aerodynamic model consumed by the line force model.
// The angle of attack is in radians; chordLength and speed are only used by
// section types whose coefficients depend on the flow magnitude (rotating
// cylinders), foil-like sections ignore them.
type Model interface {
	LiftCoefficient(angleOfAttack, chordLength, speed float64) float64
	DragCoefficient(angleOfAttack, chordLength, speed float64) float64
	// FlowSeparation returns the fraction of separated flow in [0, 1],
	// used to steer the shedding direction of dynamic wakes.
	FlowSeparation(angleOfAttack float64) float64
	// WakeAngle is the rotation of the shed wake around the span axis, only
	// non-zero for sections with deflected wakes (spinning cylinders).
	WakeAngle(chordLength, speed float64) float64
}
