package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.1
	DefaultDuration  = 60.0
	DefaultDensity   = 1.225
	DefaultSegments  = 20
	DefaultWindSpeed = 10.0
)

// Config describes a complete simulation setup: wings, wake, solver, wind
// and optional corrections and control.
type Config struct {
	Density  float64 `yaml:"density"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`

	Wings       []WingConfig      `yaml:"wings"`
	Wake        WakeConfig        `yaml:"wake"`
	Solver      SolverConfig      `yaml:"solver"`
	Wind        WindConfig        `yaml:"wind"`
	Corrections CorrectionsConfig `yaml:"corrections"`
	Controller  ControllerConfig  `yaml:"controller"`
}

// WingConfig is one straight wing discretized into equal segments.
type WingConfig struct {
	Root       [3]float64    `yaml:"root"`
	Span       [3]float64    `yaml:"span"`
	Chord      [3]float64    `yaml:"chord"`
	NrSegments int           `yaml:"nr_segments"`
	Section    SectionConfig `yaml:"section"`
}

// SectionConfig selects and parameterizes the sectional aero model.
type SectionConfig struct {
	// Type is "foil" or "cylinder".
	Type string `yaml:"type"`

	// Foil parameters; zero values fall back to the model defaults.
	ClZeroAngle     float64 `yaml:"cl_zero_angle"`
	ClInitialSlope  float64 `yaml:"cl_initial_slope"`
	ClMaxAfterStall float64 `yaml:"cl_max_after_stall"`
	StallAngle      float64 `yaml:"stall_angle"`
	StallRange      float64 `yaml:"stall_range"`
	CdZeroAngle     float64 `yaml:"cd_zero_angle"`

	// Cylinder parameters. The chord length acts as the diameter.
	RevolutionsPerSec float64 `yaml:"revolutions_per_sec"`
}

// WakeConfig selects and parameterizes the wake model.
type WakeConfig struct {
	// Type is "steady" or "dynamic".
	Type string `yaml:"type"`

	WakeLengthFactor float64 `yaml:"wake_length_factor"`
	NrPanelsPerLine  int     `yaml:"nr_panels_per_line"`

	// CoreMode is "relative", "absolute" or "none".
	CoreMode  string  `yaml:"core_mode"`
	CoreValue float64 `yaml:"core_value"`

	// Symmetry is "none", "x", "y" or "z".
	Symmetry      string  `yaml:"symmetry"`
	FarFieldRatio float64 `yaml:"far_field_ratio"`

	FirstPanelRelativeLength float64 `yaml:"first_panel_relative_length"`
	LastPanelRelativeLength  float64 `yaml:"last_panel_relative_length"`
	UseChordDirection        bool    `yaml:"use_chord_direction"`
	StrengthDampingFactor    float64 `yaml:"strength_damping_factor"`
	ShapeDampingFactor       float64 `yaml:"shape_damping_factor"`
	RatioAffectedByInduced   float64 `yaml:"ratio_affected_by_induced"`
	NeglectSelfInduced       bool    `yaml:"neglect_self_induced"`
}

// SolverConfig mirrors the circulation solver settings.
type SolverConfig struct {
	MaxIterations    int     `yaml:"max_iterations"`
	DampingFactor    float64 `yaml:"damping_factor"`
	AllowedError     float64 `yaml:"allowed_error"`
	MinimumSuccesses int     `yaml:"minimum_successes"`
}

// WindConfig mirrors the wind environment.
type WindConfig struct {
	Constant  [3]float64 `yaml:"constant"`
	Reference [3]float64 `yaml:"reference"`

	// Shear is "none", "power" or "logarithmic".
	Shear            string  `yaml:"shear"`
	ReferenceHeight  float64 `yaml:"reference_height"`
	Exponent         float64 `yaml:"exponent"`
	SurfaceRoughness float64 `yaml:"surface_roughness"`
}

// CorrectionsConfig enables circulation corrections by presence.
type CorrectionsConfig struct {
	TipLoss      *TipLossConfig    `yaml:"tip_loss"`
	Smoothing    *SmoothingConfig  `yaml:"smoothing"`
	Prescribed   *PrescribedConfig `yaml:"prescribed"`
	EllipticEnds bool              `yaml:"elliptic_ends"`
}

type TipLossConfig struct {
	InnerPower      float64 `yaml:"inner_power"`
	OuterPower      float64 `yaml:"outer_power"`
	MaxValue        float64 `yaml:"max_value"`
	MinValue        float64 `yaml:"min_value"`
	CorrectBothEnds bool    `yaml:"correct_both_ends"`
}

type SmoothingConfig struct {
	LengthFactor       float64 `yaml:"length_factor"`
	SubtractPrescribed bool    `yaml:"subtract_prescribed"`
}

type PrescribedConfig struct {
	InnerPower float64 `yaml:"inner_power"`
	OuterPower float64 `yaml:"outer_power"`
	// ZeroEnds is "both", "first" or "last".
	ZeroEnds string `yaml:"zero_ends"`
}

// ControllerConfig enables the wing-angle controller.
type ControllerConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Kp       float64 `yaml:"kp"`
	Ki       float64 `yaml:"ki"`
	Kd       float64 `yaml:"kd"`
	SetPoint float64 `yaml:"set_point"`
	MinAngle float64 `yaml:"min_angle"`
	MaxAngle float64 `yaml:"max_angle"`
}

// DefaultConfig is a single rectangular wing sail in a sheared breeze with a
// dynamic wake.
func DefaultConfig() *Config {
	return &Config{
		Density:  DefaultDensity,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Wings: []WingConfig{
			{
				Root:       [3]float64{0, 0, 0},
				Span:       [3]float64{0, 0, 30},
				Chord:      [3]float64{6, 0, 0},
				NrSegments: DefaultSegments,
				Section:    SectionConfig{Type: "foil"},
			},
		},
		Wake: WakeConfig{
			Type:                     "dynamic",
			WakeLengthFactor:         100.0,
			NrPanelsPerLine:          100,
			CoreMode:                 "relative",
			CoreValue:                0.1,
			Symmetry:                 "none",
			FarFieldRatio:            5.0,
			FirstPanelRelativeLength: 0.75,
			LastPanelRelativeLength:  25.0,
		},
		Solver: SolverConfig{
			MaxIterations:    1000,
			DampingFactor:    0.5,
			AllowedError:     1e-4,
			MinimumSuccesses: 5,
		},
		Wind: WindConfig{
			Reference:       [3]float64{DefaultWindSpeed, 0, 0},
			Shear:           "power",
			ReferenceHeight: 10.0,
			Exponent:        1.0 / 9.0,
		},
	}
}

// Load reads a config from a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// NrSteps derives the step count from the duration and time step.
func (c *Config) NrSteps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(c.Duration / c.Dt)
}

func (c *Config) validate() error {
	if len(c.Wings) == 0 {
		return fmt.Errorf("config: no wings defined")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Density <= 0 {
		return fmt.Errorf("config: density must be positive, got %g", c.Density)
	}
	return nil
}
