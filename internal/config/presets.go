package config

// Presets maps names to ready-to-run configurations. Each entry starts from
// DefaultConfig so presets stay valid when defaults change.
var Presets = map[string]func() *Config{
	"wingsail": func() *Config {
		return DefaultConfig()
	},
	"wingsail_controlled": func() *Config {
		cfg := DefaultConfig()
		cfg.Controller = ControllerConfig{
			Enabled:  true,
			Kp:       2.0,
			Ki:       0.2,
			SetPoint: 0.1,
			MinAngle: -1.5,
			MaxAngle: 1.5,
		}
		return cfg
	},
	"wingsail_steady": func() *Config {
		cfg := DefaultConfig()
		cfg.Wake = WakeConfig{
			Type:             "steady",
			WakeLengthFactor: 100.0,
			CoreMode:         "relative",
			CoreValue:        0.1,
			Symmetry:         "none",
		}
		cfg.Corrections.TipLoss = &TipLossConfig{
			InnerPower:      2.0,
			OuterPower:      0.5,
			MaxValue:        1.0,
			CorrectBothEnds: true,
		}
		return cfg
	},
	"tandem_wingsails": func() *Config {
		cfg := DefaultConfig()
		aft := cfg.Wings[0]
		aft.Root = [3]float64{40, 0, 0}
		cfg.Wings = append(cfg.Wings, aft)
		return cfg
	},
	"rotor_sail": func() *Config {
		cfg := DefaultConfig()
		cfg.Wings = []WingConfig{
			{
				Root:       [3]float64{0, 0, 0},
				Span:       [3]float64{0, 0, 30},
				Chord:      [3]float64{5, 0, 0},
				NrSegments: DefaultSegments,
				Section: SectionConfig{
					Type:              "cylinder",
					RevolutionsPerSec: 3.0,
				},
			},
		}
		cfg.Corrections.Smoothing = &SmoothingConfig{LengthFactor: 0.1}
		cfg.Corrections.EllipticEnds = true
		return cfg
	},
	"mirrored_wingsail": func() *Config {
		cfg := DefaultConfig()
		cfg.Wake.Symmetry = "z"
		return cfg
	},
}

func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
