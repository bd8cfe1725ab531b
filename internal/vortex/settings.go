package vortex

import (
	"fmt"
	"math"
)

// CoreMode selects how the viscous-core regularization length is specified.
// The variant set is closed; all dispatch happens by switch.
type CoreMode int

const (
	// CoreRelative interprets the core length value as a fraction of the
	// vortex segment length.
	CoreRelative CoreMode = iota
	// CoreAbsolute interprets the value as an absolute length.
	CoreAbsolute
	// CoreNone disables viscous-core regularization.
	CoreNone
)

func (m CoreMode) String() string {
	switch m {
	case CoreRelative:
		return "relative"
	case CoreAbsolute:
		return "absolute"
	case CoreNone:
		return "none"
	default:
		return fmt.Sprintf("CoreMode(%d)", int(m))
	}
}

// CoreLength is the viscous-core specification for a kernel model.
type CoreLength struct {
	Mode  CoreMode
	Value float64
}

// DefaultCoreLength is a core length of 10% of the segment length.
func DefaultCoreLength() CoreLength {
	return CoreLength{Mode: CoreRelative, Value: 0.1}
}

// Absolute resolves the specification to an absolute length for a segment of
// the given length.
func (c CoreLength) Absolute(segmentLength float64) float64 {
	switch c.Mode {
	case CoreRelative:
		return c.Value * segmentLength
	case CoreAbsolute:
		return c.Value
	case CoreNone:
		return 0
	default:
		return 0
	}
}

func (c CoreLength) validate() error {
	switch c.Mode {
	case CoreRelative, CoreAbsolute:
		if c.Value < 0 {
			return fmt.Errorf("vortex: negative viscous core length %g", c.Value)
		}
		return nil
	case CoreNone:
		return nil
	default:
		return fmt.Errorf("vortex: unknown viscous core mode %d", int(c.Mode))
	}
}

// Model holds the configuration for induced-velocity evaluations. It is built
// once per simulation and read-only while solving.
type Model struct {
	// CoreLength regularizes the near-field singularity of every segment.
	CoreLength CoreLength
	// ClosenessError is the kernel-denominator magnitude below which the
	// induced velocity is defined as zero.
	ClosenessError float64
	// FarFieldRatio is the distance-to-panel-size ratio above which a panel
	// is evaluated as a point doublet instead of four edge segments.
	FarFieldRatio float64
	// Symmetry optionally mirrors every evaluation across a coordinate plane.
	Symmetry Symmetry
}

// DefaultFarFieldRatio is the panel distance/size ratio at which the
// point-doublet approximation agrees with the edge sum to within about 2%.
const DefaultFarFieldRatio = 5.0

// DefaultModel returns a kernel model with the default core length, far-field
// ratio and no symmetry plane.
func DefaultModel() Model {
	return Model{
		CoreLength:     DefaultCoreLength(),
		ClosenessError: math.SmallestNonzeroFloat64,
		FarFieldRatio:  DefaultFarFieldRatio,
	}
}

// NewModel validates the configuration. Invalid settings are configuration
// errors surfaced here, never during evaluation.
func NewModel(core CoreLength, closenessError, farFieldRatio float64, symmetry Symmetry) (Model, error) {
	if err := core.validate(); err != nil {
		return Model{}, err
	}
	if closenessError < 0 {
		return Model{}, fmt.Errorf("vortex: negative closeness error %g", closenessError)
	}
	if farFieldRatio <= 0 {
		return Model{}, fmt.Errorf("vortex: far field ratio must be positive, got %g", farFieldRatio)
	}
	if err := symmetry.validate(); err != nil {
		return Model{}, err
	}
	return Model{
		CoreLength:     core,
		ClosenessError: closenessError,
		FarFieldRatio:  farFieldRatio,
		Symmetry:       symmetry,
	}, nil
}
