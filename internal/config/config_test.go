package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sondreal/liftline/internal/wake"
)

func TestDefaultConfigBuilds(t *testing.T) {
	cfg := DefaultConfig()

	s, err := cfg.BuildSimulation()
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.NrSteps())
	assert.Equal(t, wake.Dynamic, s.Wake.Kind)
	assert.Equal(t, 1, s.Model.NrWings())
	assert.Nil(t, s.Controller)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	yaml := `
dt: 0.05
duration: 10
wake:
  type: steady
wings:
  - root: [0, 0, 0]
    span: [0, 0, 12]
    chord: [3, 0, 0]
    nr_segments: 8
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Dt)
	assert.Equal(t, 200, cfg.NrSteps())
	assert.Equal(t, "steady", cfg.Wake.Type)

	// The wing list is replaced, not appended to.
	require.Len(t, cfg.Wings, 1)
	assert.Equal(t, 8, cfg.Wings[0].NrSegments)

	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultDensity, cfg.Density)
	assert.Equal(t, 1000, cfg.Solver.MaxIterations)
	assert.Equal(t, "power", cfg.Wind.Shear)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	cfg := GetPreset("wingsail_controlled")
	require.NotNil(t, cfg)
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Dt, loaded.Dt)
	assert.Equal(t, cfg.Wings, loaded.Wings)
	assert.Equal(t, cfg.Controller, loaded.Controller)
}

func TestPresetsBuild(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)

	for _, name := range names {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)

		_, err := cfg.BuildSimulation()
		assert.NoError(t, err, name)
	}
}

func TestPresetShapes(t *testing.T) {
	controlled, err := GetPreset("wingsail_controlled").BuildSimulation()
	require.NoError(t, err)
	assert.NotNil(t, controlled.Controller)

	steady, err := GetPreset("wingsail_steady").BuildSimulation()
	require.NoError(t, err)
	assert.Equal(t, wake.Steady, steady.Wake.Kind)

	tandem, err := GetPreset("tandem_wingsails").BuildSimulation()
	require.NoError(t, err)
	assert.Equal(t, 2, tandem.Model.NrWings())

	rotor := GetPreset("rotor_sail")
	require.NotNil(t, rotor)
	assert.Equal(t, "cylinder", rotor.Wings[0].Section.Type)
}

func TestGetPresetUnknown(t *testing.T) {
	assert.Nil(t, GetPreset("does_not_exist"))
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no wings", func(c *Config) { c.Wings = nil }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative density", func(c *Config) { c.Density = -1 }},
		{"unknown section", func(c *Config) { c.Wings[0].Section.Type = "sail" }},
		{"unknown wake", func(c *Config) { c.Wake.Type = "vortex_particle" }},
		{"unknown core mode", func(c *Config) { c.Wake.CoreMode = "tiny" }},
		{"unknown symmetry", func(c *Config) { c.Wake.Symmetry = "w" }},
		{"unknown shear", func(c *Config) { c.Wind.Shear = "linear" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			_, err := cfg.BuildSimulation()
			assert.Error(t, err)
		})
	}
}

func TestNrSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0
	assert.Equal(t, 0, cfg.NrSteps())

	cfg.Dt = 0.5
	cfg.Duration = 10
	assert.Equal(t, 20, cfg.NrSteps())
}
