package geo

import "fmt"

// LineCoordinates are the coordinates of a point expressed in the local
// span-chord-thickness frame of a span line.
type LineCoordinates struct {
	Chord     float64
	Thickness float64
	Span      float64
}

// SpanLine is a single line segment of a wing span. The midpoint of the
// segment is the control point where velocities and angles of attack are
// evaluated.
type SpanLine struct {
	Start Vec3
	End   Vec3
}

// NewSpanLine builds a span line from its endpoints. A degenerate segment
// (coincident endpoints) is a construction error, not a recoverable one.
func NewSpanLine(start, end Vec3) (SpanLine, error) {
	line := SpanLine{Start: start, End: end}
	if line.Length() <= 0 {
		return SpanLine{}, fmt.Errorf("geo: degenerate span line with zero length at %v", start)
	}
	return line, nil
}

func (l SpanLine) RelativeVector() Vec3 { return l.End.Sub(l.Start) }

func (l SpanLine) Length() float64 { return l.RelativeVector().Length() }

func (l SpanLine) Direction() Vec3 { return l.RelativeVector().Normalize() }

// CtrlPoint returns the midpoint of the segment.
func (l SpanLine) CtrlPoint() Vec3 { return l.Start.Add(l.End).Scale(0.5) }

func (l SpanLine) Translate(t Vec3) SpanLine {
	return SpanLine{Start: l.Start.Add(t), End: l.End.Add(t)}
}

func (l SpanLine) RotateAroundAxis(angle float64, axis Vec3) SpanLine {
	return SpanLine{
		Start: l.Start.RotateAroundAxis(angle, axis),
		End:   l.End.RotateAroundAxis(angle, axis),
	}
}

// Distance returns the distance from the point to the segment, clamped to the
// nearest endpoint when the point lies beyond the segment's extent.
func (l SpanLine) Distance(point Vec3) float64 {
	rel := l.RelativeVector()
	startToPoint := point.Sub(l.Start)
	endToPoint := point.Sub(l.End)

	if startToPoint.Dot(rel) <= 0 {
		return startToPoint.Length()
	}
	if endToPoint.Dot(rel) >= 0 {
		return endToPoint.Length()
	}
	return rel.Cross(startToPoint).Length() / rel.Length()
}

// Coordinates maps a point into the span-chord-thickness frame defined by the
// segment and the supplied chord vector. The thickness direction is normal to
// both the span and chord directions.
func (l SpanLine) Coordinates(point, chordVector Vec3) LineCoordinates {
	translated := point.Sub(l.CtrlPoint())

	spanDir := l.Direction()
	chordDir := chordVector.Normalize()
	thicknessDir := spanDir.Cross(chordDir)

	return LineCoordinates{
		Chord:     translated.Dot(chordDir),
		Thickness: translated.Dot(thicknessDir),
		Span:      translated.Dot(spanDir),
	}
}
