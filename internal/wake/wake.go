// Package wake implements the wake models behind lifting surfaces: a steady
// model with one horseshoe vortex per span line, and a dynamic model with a
// streamwise grid of advected wake points forming vortex panels. Both expose
// induced velocity evaluation and a frozen-wake decomposition used by the
// circulation solver.
package wake

import (
	"fmt"
	"math"

	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/lineforce"
	"github.com/sondreal/liftline/internal/vortex"
)

// Kind selects the wake variant.
type Kind int

const (
	// Steady models the wake as one horseshoe vortex per span line with
	// long trailing legs, rebuilt from the wing geometry on demand.
	Steady Kind = iota
	// Dynamic models the wake as a structured grid of advected points
	// whose panels keep the circulation they were shed with.
	Dynamic
)

func (k Kind) String() string {
	switch k {
	case Steady:
		return "steady"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Settings controls the behavior of a dynamic wake.
type Settings struct {
	// FirstPanelRelativeLength is the streamwise length of the first wake
	// panel relative to the local chord length.
	FirstPanelRelativeLength float64
	// LastPanelRelativeLength stretches the final panel row, relative to
	// the local chord length.
	LastPanelRelativeLength float64
	// UseChordDirection blends the shedding direction between the local
	// velocity and the chord direction based on flow separation.
	UseChordDirection bool
	// StrengthDampingFactor reduces panel strength as it convects
	// downstream, in [0, 1).
	StrengthDampingFactor float64
	// ShapeDampingFactor blends freshly advected point positions with the
	// previous ones. Zero means a freely moving wake.
	ShapeDampingFactor float64
	// InducedVelocityEndRow limits how many point rows receive induced
	// velocities during advection. Rows beyond it move with the
	// freestream only. Negative means all rows.
	InducedVelocityEndRow int
	// NeglectSelfInduced drops contributions from a wing's own wake, for
	// cases where self-induction is accounted for externally.
	NeglectSelfInduced bool
}

// Wake is a tagged union over the wake variants. The zero value is not
// usable; build one with Builder or SteadyBuilder.
type Wake struct {
	Kind  Kind
	Model vortex.Model

	wingRanges []lineforce.IndexRange
	nrLines    int

	// Steady state: one horseshoe per span line, rebuilt on synchronize.
	horseshoes     []vortex.Horseshoe
	steadyStrength []float64
	wakeLength     float64

	// Dynamic state: the point and panel grids.
	Settings       Settings
	points         grid
	panels         grid
	wakePoints     []geo.Vec3
	pointVelocity  []geo.Vec3
	strengths      []float64
	panelGeometry  []vortex.Panel
	coreLengths    []float64
	stepsCompleted int

	representativeChord float64
}

// Builder assembles a dynamic wake for a line force model.
type Builder struct {
	NrPanelsPerLine          int
	CoreLength               vortex.CoreLength
	FarFieldRatio            float64
	Symmetry                 vortex.Symmetry
	FirstPanelRelativeLength float64
	LastPanelRelativeLength  float64
	UseChordDirection        bool
	StrengthDampingFactor    float64
	ShapeDampingFactor       float64
	// RatioAffectedByInduced is the fraction of the wake rows that get
	// induced velocities during advection, in [0, 1].
	RatioAffectedByInduced float64
	NeglectSelfInduced     bool
	// InitialRelativeWakeLength is the wake length used to seed the grid
	// before the first time step, relative to the mean chord.
	InitialRelativeWakeLength float64
}

// DefaultBuilder mirrors the usual starting point for wing sail simulations.
func DefaultBuilder() Builder {
	return Builder{
		NrPanelsPerLine:           100,
		CoreLength:                vortex.DefaultCoreLength(),
		FarFieldRatio:             vortex.DefaultFarFieldRatio,
		FirstPanelRelativeLength:  0.75,
		LastPanelRelativeLength:   25.0,
		InitialRelativeWakeLength: 100.0,
	}
}

// Build creates the dynamic wake grid and seeds its shape from the model's
// mean chord direction.
func (b Builder) Build(model *lineforce.Model) (*Wake, error) {
	if b.NrPanelsPerLine < 1 {
		return nil, fmt.Errorf("wake: need at least one panel row, got %d", b.NrPanelsPerLine)
	}

	vm, err := vortex.NewModel(b.CoreLength, math.SmallestNonzeroFloat64, b.FarFieldRatio, b.Symmetry)
	if err != nil {
		return nil, err
	}

	nrLines := model.NrSpanLines()
	pointRows := b.NrPanelsPerLine + 1

	w := &Wake{
		Kind:       Dynamic,
		Model:      vm,
		wingRanges: append([]lineforce.IndexRange(nil), model.WingRanges...),
		nrLines:    nrLines,
		Settings: Settings{
			FirstPanelRelativeLength: b.FirstPanelRelativeLength,
			LastPanelRelativeLength:  b.LastPanelRelativeLength,
			UseChordDirection:        b.UseChordDirection,
			StrengthDampingFactor:    b.StrengthDampingFactor,
			ShapeDampingFactor:       b.ShapeDampingFactor,
			InducedVelocityEndRow:    b.inducedVelocityEndRow(),
			NeglectSelfInduced:       b.NeglectSelfInduced,
		},
		points:              newGrid(pointRows, model.NrSpanPoints()),
		panels:              newGrid(b.NrPanelsPerLine, nrLines),
		representativeChord: meanChordLength(model),
	}

	w.wakePoints = make([]geo.Vec3, w.points.NrElements())
	w.pointVelocity = make([]geo.Vec3, w.points.NrElements())
	w.strengths = make([]float64, w.panels.NrElements())
	w.panelGeometry = make([]vortex.Panel, w.panels.NrElements())
	w.coreLengths = b.panelCoreLengths(model, w.panels)

	spanPoints := model.SpanPoints()
	for row := 0; row < pointRows; row++ {
		for col, p := range spanPoints {
			w.wakePoints[w.points.Index(row, col)] = p
		}
	}

	w.initializeFromChord(model, b.InitialRelativeWakeLength)

	return w, nil
}

// inducedVelocityEndRow converts the affected-wake ratio into a row count.
func (b Builder) inducedVelocityEndRow() int {
	if b.RatioAffectedByInduced >= 1.0 {
		return -1
	}
	return int(math.Ceil(b.RatioAffectedByInduced * float64(b.NrPanelsPerLine)))
}

// panelCoreLengths resolves the viscous core length per panel from the span
// line lengths. Indexed by logical panel position, independent of the grid
// rotation.
func (b Builder) panelCoreLengths(model *lineforce.Model, panels grid) []float64 {
	lines := model.SpanLines()

	out := make([]float64, panels.NrElements())
	for row := 0; row < panels.Rows(); row++ {
		for col := 0; col < panels.Width(); col++ {
			out[row*panels.Width()+col] = b.CoreLength.Absolute(lines[col].Length())
		}
	}
	return out
}

// SteadyBuilder assembles a steady horseshoe wake.
type SteadyBuilder struct {
	// WakeLengthFactor scales the trailing leg length relative to the
	// mean chord length.
	WakeLengthFactor float64
	CoreLength       vortex.CoreLength
	Symmetry         vortex.Symmetry
}

// DefaultSteadyBuilder trails the horseshoes one hundred chord lengths.
func DefaultSteadyBuilder() SteadyBuilder {
	return SteadyBuilder{
		WakeLengthFactor: 100.0,
		CoreLength:       vortex.DefaultCoreLength(),
	}
}

// Build creates the steady wake. The horseshoes are laid out on the first
// call to Synchronize.
func (b SteadyBuilder) Build(model *lineforce.Model) (*Wake, error) {
	if b.WakeLengthFactor <= 0 {
		return nil, fmt.Errorf("wake: wake length factor must be positive, got %v", b.WakeLengthFactor)
	}

	vm, err := vortex.NewModel(b.CoreLength, math.SmallestNonzeroFloat64, math.Inf(1), b.Symmetry)
	if err != nil {
		return nil, err
	}

	w := &Wake{
		Kind:                Steady,
		Model:               vm,
		wingRanges:          append([]lineforce.IndexRange(nil), model.WingRanges...),
		nrLines:             model.NrSpanLines(),
		horseshoes:          make([]vortex.Horseshoe, model.NrSpanLines()),
		steadyStrength:      make([]float64, model.NrSpanLines()),
		representativeChord: meanChordLength(model),
	}
	w.wakeLength = b.WakeLengthFactor * w.representativeChord

	return w, nil
}

func meanChordLength(model *lineforce.Model) float64 {
	chords := model.ChordVectors()
	sum := 0.0
	for _, c := range chords {
		sum += c.Length()
	}
	return sum / float64(len(chords))
}

// NrLines is the number of bound span lines the wake is attached to.
func (w *Wake) NrLines() int { return w.nrLines }

// wingIndexOf returns the wing owning a span-wise line index.
func (w *Wake) wingIndexOf(spanIndex int) int {
	for wing, r := range w.wingRanges {
		if r.Contains(spanIndex) {
			return wing
		}
	}
	panic(fmt.Sprintf("wake: span index %d outside every wing", spanIndex))
}

// pointColumn returns the wake point column for a panel column: span points
// include one extra point per wing, so panel columns shift by the wing index.
func (w *Wake) pointColumn(panelCol int) int {
	return panelCol + w.wingIndexOf(panelCol)
}

// panelCorners returns the four wake points of a panel in bound-edge-first
// order: the row closer to the wing comes first, matching the corner
// convention of vortex.Panel.
func (w *Wake) panelCorners(row, col int) [4]geo.Vec3 {
	pc := w.pointColumn(col)
	return [4]geo.Vec3{
		w.wakePoints[w.points.Index(row, pc)],
		w.wakePoints[w.points.Index(row, pc+1)],
		w.wakePoints[w.points.Index(row+1, pc+1)],
		w.wakePoints[w.points.Index(row+1, pc)],
	}
}

// updatePanelGeometry rebuilds the cached panel data from the wake points.
func (w *Wake) updatePanelGeometry() {
	width := w.panels.Width()
	for row := 0; row < w.panels.Rows(); row++ {
		for col := 0; col < width; col++ {
			core := w.coreLengths[row*width+col]
			w.panelGeometry[w.panels.Index(row, col)] =
				vortex.MakePanel(w.panelCorners(row, col), w.Model.FarFieldRatio, core)
		}
	}
}
