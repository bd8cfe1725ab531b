package lineforce

import (
	"fmt"

	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/section"
)

// WingBuilder produces the span lines and chord vectors for a straight wing
// discretized into equal segments. The wing runs from Root along SpanVector;
// every segment carries ChordVector.
type WingBuilder struct {
	Root        geo.Vec3
	SpanVector  geo.Vec3
	ChordVector geo.Vec3
	NrSegments  int
	Section     section.Model
}

// Build returns the wing ready for Model.AddWing.
func (b WingBuilder) Build() (Wing, error) {
	if b.NrSegments < 1 {
		return Wing{}, fmt.Errorf("lineforce: wing needs at least one segment, got %d", b.NrSegments)
	}
	if b.Section == nil {
		return Wing{}, fmt.Errorf("lineforce: wing builder without a section model")
	}

	step := b.SpanVector.Scale(1.0 / float64(b.NrSegments))

	spanLines := make([]geo.SpanLine, b.NrSegments)
	chords := make([]geo.Vec3, b.NrSegments)
	for i := range spanLines {
		start := b.Root.Add(step.Scale(float64(i)))
		line, err := geo.NewSpanLine(start, start.Add(step))
		if err != nil {
			return Wing{}, err
		}
		spanLines[i] = line
		chords[i] = b.ChordVector
	}

	return Wing{SpanLines: spanLines, ChordVectors: chords, Section: b.Section}, nil
}
