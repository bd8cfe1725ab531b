package config

import (
	"fmt"

	"github.com/sondreal/liftline/internal/control"
	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/lineforce"
	"github.com/sondreal/liftline/internal/section"
	"github.com/sondreal/liftline/internal/sim"
	"github.com/sondreal/liftline/internal/solver"
	"github.com/sondreal/liftline/internal/vortex"
	"github.com/sondreal/liftline/internal/wake"
	"github.com/sondreal/liftline/internal/wind"
)

func vec3(v [3]float64) geo.Vec3 {
	return geo.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// BuildModel assembles the line force model from the wing definitions.
func (c *Config) BuildModel() (*lineforce.Model, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	model := lineforce.New(c.Density)

	for i, wc := range c.Wings {
		sec, err := wc.Section.build()
		if err != nil {
			return nil, fmt.Errorf("config: wing %d: %w", i, err)
		}

		wing, err := lineforce.WingBuilder{
			Root:        vec3(wc.Root),
			SpanVector:  vec3(wc.Span),
			ChordVector: vec3(wc.Chord),
			NrSegments:  wc.NrSegments,
			Section:     sec,
		}.Build()
		if err != nil {
			return nil, fmt.Errorf("config: wing %d: %w", i, err)
		}

		if err := model.AddWing(wing); err != nil {
			return nil, fmt.Errorf("config: wing %d: %w", i, err)
		}
	}

	c.applyCorrections(model)

	return model, nil
}

func (s SectionConfig) build() (section.Model, error) {
	switch s.Type {
	case "", "foil":
		f := section.NewFoil()
		if s.ClZeroAngle != 0 {
			f.ClZeroAngle = s.ClZeroAngle
		}
		if s.ClInitialSlope != 0 {
			f.ClInitialSlope = s.ClInitialSlope
		}
		if s.ClMaxAfterStall != 0 {
			f.ClMaxAfterStall = s.ClMaxAfterStall
		}
		if s.StallAngle != 0 {
			f.MeanPositiveStallAngle = s.StallAngle
			f.MeanNegativeStallAngle = s.StallAngle
		}
		if s.StallRange != 0 {
			f.StallRange = s.StallRange
		}
		if s.CdZeroAngle != 0 {
			f.CdZeroAngle = s.CdZeroAngle
		}
		return f, nil
	case "cylinder":
		return section.NewRotatingCylinder(s.RevolutionsPerSec), nil
	default:
		return nil, fmt.Errorf("unknown section type %q", s.Type)
	}
}

func (c *Config) applyCorrections(model *lineforce.Model) {
	if tc := c.Corrections.TipLoss; tc != nil {
		tl := lineforce.DefaultTipLoss()
		if tc.InnerPower != 0 {
			tl.InnerPower = tc.InnerPower
		}
		if tc.OuterPower != 0 {
			tl.OuterPower = tc.OuterPower
		}
		if tc.MaxValue != 0 {
			tl.MaxValue = tc.MaxValue
		}
		tl.MinValue = tc.MinValue
		tl.CorrectBothEnds = tc.CorrectBothEnds
		model.TipLoss = tl
	}

	if pc := c.Corrections.Prescribed; pc != nil {
		ps := lineforce.DefaultPrescribedShape()
		if pc.InnerPower != 0 {
			ps.InnerPower = pc.InnerPower
		}
		if pc.OuterPower != 0 {
			ps.OuterPower = pc.OuterPower
		}
		switch pc.ZeroEnds {
		case "", "both":
			ps.Ends = lineforce.ZeroEndsBoth
		case "first":
			ps.Ends = lineforce.ZeroEndsFirst
		case "last":
			ps.Ends = lineforce.ZeroEndsLast
		}
		model.Prescribed = ps
	}

	model.EllipticEnds = c.Corrections.EllipticEnds

	if sc := c.Corrections.Smoothing; sc != nil {
		cs := lineforce.DefaultCirculationSmoothing()
		if sc.LengthFactor != 0 {
			cs.SmoothingLengthFactor = sc.LengthFactor
		}
		if sc.SubtractPrescribed {
			cs.SubtractPrescribed = lineforce.DefaultPrescribedShape()
		}
		model.Smoothing = cs
	}
}

func (w WakeConfig) coreLength() (vortex.CoreLength, error) {
	switch w.CoreMode {
	case "", "relative":
		value := w.CoreValue
		if value == 0 {
			value = 0.1
		}
		return vortex.CoreLength{Mode: vortex.CoreRelative, Value: value}, nil
	case "absolute":
		return vortex.CoreLength{Mode: vortex.CoreAbsolute, Value: w.CoreValue}, nil
	case "none":
		return vortex.CoreLength{Mode: vortex.CoreNone}, nil
	default:
		return vortex.CoreLength{}, fmt.Errorf("config: unknown core mode %q", w.CoreMode)
	}
}

func (w WakeConfig) symmetry() (vortex.Symmetry, error) {
	switch w.Symmetry {
	case "", "none":
		return vortex.NoSymmetry, nil
	case "x":
		return vortex.SymmetryX, nil
	case "y":
		return vortex.SymmetryY, nil
	case "z":
		return vortex.SymmetryZ, nil
	default:
		return vortex.NoSymmetry, fmt.Errorf("config: unknown symmetry %q", w.Symmetry)
	}
}

// BuildWake assembles the wake model for a built line force model.
func (c *Config) BuildWake(model *lineforce.Model) (*wake.Wake, error) {
	core, err := c.Wake.coreLength()
	if err != nil {
		return nil, err
	}
	symmetry, err := c.Wake.symmetry()
	if err != nil {
		return nil, err
	}

	switch c.Wake.Type {
	case "steady":
		b := wake.DefaultSteadyBuilder()
		if c.Wake.WakeLengthFactor != 0 {
			b.WakeLengthFactor = c.Wake.WakeLengthFactor
		}
		b.CoreLength = core
		b.Symmetry = symmetry
		return b.Build(model)
	case "", "dynamic":
		b := wake.DefaultBuilder()
		if c.Wake.NrPanelsPerLine != 0 {
			b.NrPanelsPerLine = c.Wake.NrPanelsPerLine
		}
		if c.Wake.FarFieldRatio != 0 {
			b.FarFieldRatio = c.Wake.FarFieldRatio
		}
		if c.Wake.FirstPanelRelativeLength != 0 {
			b.FirstPanelRelativeLength = c.Wake.FirstPanelRelativeLength
		}
		if c.Wake.LastPanelRelativeLength != 0 {
			b.LastPanelRelativeLength = c.Wake.LastPanelRelativeLength
		}
		b.CoreLength = core
		b.Symmetry = symmetry
		b.UseChordDirection = c.Wake.UseChordDirection
		b.StrengthDampingFactor = c.Wake.StrengthDampingFactor
		b.ShapeDampingFactor = c.Wake.ShapeDampingFactor
		b.RatioAffectedByInduced = c.Wake.RatioAffectedByInduced
		b.NeglectSelfInduced = c.Wake.NeglectSelfInduced
		return b.Build(model)
	default:
		return nil, fmt.Errorf("config: unknown wake type %q", c.Wake.Type)
	}
}

// BuildSolverSettings maps the solver section onto solver.Settings.
func (c *Config) BuildSolverSettings() solver.Settings {
	s := solver.DefaultSettings()
	if c.Solver.MaxIterations != 0 {
		s.MaxIterations = c.Solver.MaxIterations
	}
	if c.Solver.DampingFactor != 0 {
		s.DampingFactor = c.Solver.DampingFactor
	}
	if c.Solver.AllowedError != 0 {
		s.AllowedError = c.Solver.AllowedError
	}
	if c.Solver.MinimumSuccesses != 0 {
		s.MinimumSuccesses = c.Solver.MinimumSuccesses
	}
	return s
}

// BuildWind maps the wind section onto a wind environment.
func (c *Config) BuildWind() (wind.Environment, error) {
	env := wind.NewEnvironment(vec3(c.Wind.Constant), vec3(c.Wind.Reference))

	shear := wind.Shear{
		ReferenceHeight:  c.Wind.ReferenceHeight,
		Exponent:         c.Wind.Exponent,
		SurfaceRoughness: c.Wind.SurfaceRoughness,
	}
	if shear.ReferenceHeight == 0 {
		shear.ReferenceHeight = 10.0
	}

	switch c.Wind.Shear {
	case "", "none":
		shear.Kind = wind.ShearNone
	case "power":
		shear.Kind = wind.ShearPower
		if shear.Exponent == 0 {
			shear.Exponent = 1.0 / 9.0
		}
	case "logarithmic":
		shear.Kind = wind.ShearLogarithmic
		if shear.SurfaceRoughness == 0 {
			shear.SurfaceRoughness = 0.0002
		}
	default:
		return env, fmt.Errorf("config: unknown shear type %q", c.Wind.Shear)
	}

	env.Shear = shear
	return env, nil
}

// BuildSimulation assembles the complete simulation from the config.
func (c *Config) BuildSimulation() (*sim.Simulation, error) {
	model, err := c.BuildModel()
	if err != nil {
		return nil, err
	}

	w, err := c.BuildWake(model)
	if err != nil {
		return nil, err
	}

	env, err := c.BuildWind()
	if err != nil {
		return nil, err
	}

	s, err := sim.New(model, w, c.BuildSolverSettings(), env, c.Dt)
	if err != nil {
		return nil, err
	}

	if cc := c.Controller; cc.Enabled {
		s.Controller = control.NewWingAngle(
			model.NrWings(), cc.Kp, cc.Ki, cc.Kd, cc.SetPoint, cc.MinAngle, cc.MaxAngle,
		)
	}

	return s, nil
}
