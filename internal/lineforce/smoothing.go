package lineforce

import (
	"math"

	"github.com/sondreal/liftline/internal/geo"
)

// EndCondition decides how smoothing pads data beyond a wing end.
type EndCondition int

const (
	// EndZero pads with zeros, for ends where the circulation must vanish.
	EndZero EndCondition = iota
	// EndExtended repeats the end value, for ends against a wall or deck.
	EndExtended
	// EndMirrored reflects the interior values across the end.
	EndMirrored
)

func (e EndCondition) String() string {
	switch e {
	case EndZero:
		return "zero"
	case EndExtended:
		return "extended"
	case EndMirrored:
		return "mirrored"
	default:
		return "unknown"
	}
}

// GaussianSmoothing applies 1D Gaussian kernel smoothing to sampled values.
type GaussianSmoothing struct {
	// SmoothingLength is the standard deviation of the kernel, in the same
	// unit as the x coordinates.
	SmoothingLength float64
	// EndConditions for the start and end of the data.
	EndConditions [2]EndCondition
}

// endInsertions is the number of padding samples per end, enough to cover
// four smoothing lengths at the local sample spacing.
func (g *GaussianSmoothing) endInsertions(x []float64) int {
	if len(x) < 2 {
		return 1
	}
	dx := math.Abs(x[1] - x[0])
	n := int(math.Ceil(4.0 * g.SmoothingLength / dx))
	if n < 1 {
		n = 1
	}
	if n > len(x) {
		n = len(x)
	}
	return n
}

func (g *GaussianSmoothing) padded(x, y []float64) (xMod, yMod []float64) {
	n := g.endInsertions(x)
	total := len(x) + 2*n

	xMod = make([]float64, 0, total)
	yMod = make([]float64, 0, total)

	dxStart := x[1] - x[0]
	for i := n; i >= 1; i-- {
		xMod = append(xMod, x[0]-float64(i)*dxStart)
		yMod = append(yMod, endValue(g.EndConditions[0], y, i, false))
	}

	xMod = append(xMod, x...)
	yMod = append(yMod, y...)

	last := len(x) - 1
	dxEnd := x[last] - x[last-1]
	for i := 1; i <= n; i++ {
		xMod = append(xMod, x[last]+float64(i)*dxEnd)
		yMod = append(yMod, endValue(g.EndConditions[1], y, i, true))
	}
	return xMod, yMod
}

func endValue(cond EndCondition, y []float64, offset int, atEnd bool) float64 {
	switch cond {
	case EndExtended:
		if atEnd {
			return y[len(y)-1]
		}
		return y[0]
	case EndMirrored:
		idx := offset
		if idx >= len(y) {
			idx = len(y) - 1
		}
		if atEnd {
			return y[len(y)-1-idx]
		}
		return y[idx]
	default:
		return 0.0
	}
}

// Smooth returns the kernel-smoothed values at the original x positions. The
// input slices must have equal length of at least two.
func (g *GaussianSmoothing) Smooth(x, y []float64) []float64 {
	if len(x) != len(y) {
		panic("lineforce: smoothing input length mismatch")
	}
	if len(y) < 2 || g.SmoothingLength <= 0 {
		out := make([]float64, len(y))
		copy(out, y)
		return out
	}

	xMod, yMod := g.padded(x, y)

	out := make([]float64, len(y))
	for i0 := range y {
		kernelSum := 0.0
		productSum := 0.0
		for i := range xMod {
			d := xMod[i] - x[i0]
			k := math.Exp(-d * d / (2.0 * g.SmoothingLength * g.SmoothingLength))
			kernelSum += k
			productSum += yMod[i] * k
		}
		out[i0] = productSum / kernelSum
	}
	return out
}

// CirculationSmoothing smooths the circulation distribution along each wing
// independently with a Gaussian kernel. The smoothing length is a factor of
// the wing span. Optionally a prescribed baseline shape is subtracted before
// smoothing and added back after, so only the residual noise is smoothed and
// the expected end shape is preserved.
type CirculationSmoothing struct {
	SmoothingLengthFactor float64
	EndConditions         [2]EndCondition
	SubtractPrescribed    *PrescribedShape
}

// DefaultCirculationSmoothing smooths over a tenth of the span with zero
// circulation at both ends.
func DefaultCirculationSmoothing() *CirculationSmoothing {
	return &CirculationSmoothing{
		SmoothingLengthFactor: 0.1,
		EndConditions:         [2]EndCondition{EndZero, EndZero},
	}
}

// Apply smooths the strength distribution per wing of the model.
func (c *CirculationSmoothing) Apply(m *Model, velocity []geo.Vec3, strength []float64) []float64 {
	span := m.NonDimSpan()

	baseline := make([]float64, len(strength))
	if c.SubtractPrescribed != nil {
		prescribed := m.Prescribed
		m.Prescribed = c.SubtractPrescribed
		baseline = m.prescribedCirculation(velocity)
		m.Prescribed = prescribed
	}

	out := make([]float64, len(strength))
	for _, r := range m.WingRanges {
		wingSpan := 0.0
		for i := r.Start; i < r.End; i++ {
			wingSpan += m.SpanLinesLocal[i].Length()
		}

		x := make([]float64, r.Len())
		y := make([]float64, r.Len())
		for i := r.Start; i < r.End; i++ {
			x[i-r.Start] = span[i] * wingSpan
			y[i-r.Start] = strength[i] - baseline[i]
		}

		smoothing := GaussianSmoothing{
			SmoothingLength: c.SmoothingLengthFactor * wingSpan,
			EndConditions:   c.EndConditions,
		}
		smoothed := smoothing.Smooth(x, y)

		for i := r.Start; i < r.End; i++ {
			out[i] = smoothed[i-r.Start] + baseline[i]
		}
	}
	return out
}
