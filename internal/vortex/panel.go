package vortex

import (
	"fmt"
	"math"

	"github.com/sondreal/liftline/internal/geo"
)

// Panel is a quadrilateral vortex ring representing one cell of a discretized
// wake sheet. Corner order is [start, end, end+downstream, start+downstream],
// so the first edge is the bound (spanwise) edge and the ring circulates with
// the strength sign convention of the bound vortex.
type Panel struct {
	Points [4]geo.Vec3

	center             geo.Vec3
	normal             geo.Vec3
	farFieldLengthSq   float64
	coreLength         float64
	pointDoubletFactor float64
}

// MakePanel builds a panel without validating its geometry. It is meant for
// the wake advection hot path, where the corner points come from geometry that
// was validated when the wake was built. farFieldRatio and coreLength are
// resolved values: the ratio from the kernel model, the core length absolute.
func MakePanel(points [4]geo.Vec3, farFieldRatio, coreLength float64) Panel {
	center := points[0].Add(points[1]).Add(points[2]).Add(points[3]).Scale(0.25)

	area := quadrilateralArea(points)
	normal := quadrilateralNormal(points)

	boundLength := points[1].Sub(points[0]).Length()
	streamLength := points[2].Sub(points[1]).Length()
	representativeLength := math.Max(boundLength, streamLength)

	farField := representativeLength * farFieldRatio

	return Panel{
		Points:             points,
		center:             center,
		normal:             normal,
		farFieldLengthSq:   farField * farField,
		coreLength:         coreLength,
		pointDoubletFactor: area * fourPiInverse,
	}
}

// NewPanel builds a panel and validates that it has positive, finite area.
func NewPanel(points [4]geo.Vec3, farFieldRatio, coreLength float64) (Panel, error) {
	area := quadrilateralArea(points)
	if !(area > 0) || math.IsInf(area, 0) {
		return Panel{}, fmt.Errorf("vortex: panel with non-positive area %g", area)
	}
	return MakePanel(points, farFieldRatio, coreLength), nil
}

func (p *Panel) Center() geo.Vec3 { return p.center }
func (p *Panel) Normal() geo.Vec3 { return p.normal }

// Area returns the panel area derived from its diagonals.
func (p *Panel) Area() float64 { return p.pointDoubletFactor / fourPiInverse }

// NeedsFullComputation reports whether the control point is close enough that
// the four-edge sum is required instead of the point-doublet approximation.
func (p *Panel) NeedsFullComputation(ctrlPoint geo.Vec3) bool {
	return ctrlPoint.Sub(p.center).LengthSquared() <= p.farFieldLengthSq
}

// UnitVelocity returns the velocity induced at ctrlPoint by the panel with
// unit strength, switching between the edge sum and the point doublet based
// on distance. Symmetry is handled by the kernel Model, not here.
func (p *Panel) UnitVelocity(ctrlPoint geo.Vec3, closenessError float64) geo.Vec3 {
	if p.NeedsFullComputation(ctrlPoint) {
		return p.EdgeSumVelocity(ctrlPoint, closenessError)
	}
	return p.PointDoubletVelocity(ctrlPoint)
}

// EdgeSumVelocity sums the four edge segment contributions with unit strength.
func (p *Panel) EdgeSumVelocity(ctrlPoint geo.Vec3, closenessError float64) geo.Vec3 {
	var u geo.Vec3
	for i := 0; i < 4; i++ {
		start := p.Points[i]
		end := p.Points[(i+1)%4]
		u = u.Add(LineInducedVelocity(start, end, ctrlPoint, p.coreLength, closenessError))
	}
	return u
}

// PointDoubletVelocity is the far-field approximation of the panel as a point
// doublet located at the panel center, per the VSAERO manual, page 38.
func (p *Panel) PointDoubletVelocity(ctrlPoint geo.Vec3) geo.Vec3 {
	translated := ctrlPoint.Sub(p.center)

	distanceSq := translated.LengthSquared()
	distancePow5 := distanceSq * distanceSq * math.Sqrt(distanceSq)

	normalHeight := translated.Dot(p.normal)

	numerator := translated.Scale(3.0 * normalHeight).Sub(p.normal.Scale(distanceSq))

	return numerator.Scale(p.pointDoubletFactor / distancePow5)
}

// quadrilateralArea is half the magnitude of the diagonal cross product.
func quadrilateralArea(points [4]geo.Vec3) float64 {
	d1 := points[2].Sub(points[0])
	d2 := points[3].Sub(points[1])
	return 0.5 * d1.Cross(d2).Length()
}

func quadrilateralNormal(points [4]geo.Vec3) geo.Vec3 {
	d1 := points[2].Sub(points[0])
	d2 := points[3].Sub(points[1])
	return d1.Cross(d2).Normalize()
}
