// Package vortex implements the induced-velocity singularity kernels for
// lifting-line simulations: straight vortex line segments, horseshoe vortices
// and quadrilateral vortex panels, with viscous-core regularization, a
// far-field point-doublet approximation and optional mirror symmetry.
//
// The line kernel follows the formulation in the VSAERO user manual
// (https://ntrs.nasa.gov/api/citations/19900004884/downloads/19900004884.pdf).
package vortex

import (
	"math"

	"github.com/sondreal/liftline/internal/geo"
)

const fourPiInverse = 1.0 / (4.0 * math.Pi)

// LineInducedVelocity returns the velocity induced at ctrlPoint by a straight
// vortex line segment of unit strength from start to end.
//
// When the denominator of the kernel falls below closenessError the control
// point lies on the extension of the line and the induced velocity is defined
// as zero. A non-zero coreLength applies the viscous-core factor
// d²/√(L⁴+d⁴), with d the distance from the control point to the segment.
func LineInducedVelocity(start, end, ctrlPoint geo.Vec3, coreLength, closenessError float64) geo.Vec3 {
	r1 := ctrlPoint.Sub(start)
	r2 := ctrlPoint.Sub(end)

	r1LengthSq := r1.LengthSquared()
	r2LengthSq := r2.LengthSquared()
	r1Length := math.Sqrt(r1LengthSq)
	r2Length := math.Sqrt(r2LengthSq)

	r1r2 := r1Length * r2Length

	denominator := r1r2 * (r1r2 + r1.Dot(r2))

	if math.Abs(denominator) <= closenessError {
		return geo.Vec3{}
	}

	coreTerm := 1.0
	if coreLength != 0 {
		coreTerm = viscousCoreTerm(start, end, ctrlPoint, coreLength, r1LengthSq, r2LengthSq)
	}

	k := (r1Length + r2Length) / denominator

	return r1.Cross(r2).Scale(k * fourPiInverse * coreTerm)
}

// normalDistanceSquared returns the squared distance from the control point to
// the line segment. Beyond the segment's extent the distance to the nearest
// endpoint is used instead of the perpendicular distance.
func normalDistanceSquared(start, end, ctrlPoint geo.Vec3, r1LengthSq, r2LengthSq float64) float64 {
	relLine := end.Sub(start)
	relPoint := ctrlPoint.Sub(start)

	lineLengthSq := relLine.LengthSquared()
	lineLength := math.Sqrt(lineLengthSq)
	lineDirection := relLine.Scale(1.0 / lineLength)

	parallelDistance := relPoint.Dot(lineDirection)

	switch {
	case parallelDistance < 0:
		return r1LengthSq
	case parallelDistance > lineLength:
		return r2LengthSq
	default:
		return relPoint.LengthSquared() - parallelDistance*parallelDistance
	}
}

// viscousCoreTerm regularizes the near-field singularity. Based on the
// expressions in J. T. Reid (2020), "A general approach to lifting-line
// theory, applied to wings with sweep".
func viscousCoreTerm(start, end, ctrlPoint geo.Vec3, coreLength, r1LengthSq, r2LengthSq float64) float64 {
	distanceSq := normalDistanceSquared(start, end, ctrlPoint, r1LengthSq, r2LengthSq)

	denominator := math.Sqrt(coreLength*coreLength*coreLength*coreLength + distanceSq*distanceSq)
	if denominator > 0 {
		return distanceSq / denominator
	}
	return 0
}
