package store

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/sim"
	"github.com/sondreal/liftline/internal/solver"
)

func sampleHistory(steps int) *History {
	h := &History{}
	for i := 0; i < steps; i++ {
		h.Record(sim.StepResult{
			Step: i,
			Time: 0.1 * float64(i),
			Solver: solver.Result{
				Circulation: []float64{1, 2, 2, 1},
				Iterations:  20 - i,
				Residual:    1e-5,
				Converged:   true,
			},
			AnglesOfAttack: []float64{0.1, 0.12, 0.12, 0.1},
			TotalForce:     geo.NewVec3(100, -40, 0),
			WingAngles:     []float64{0.05},
		})
	}
	return h
}

func TestHistoryRecords(t *testing.T) {
	h := sampleHistory(3)

	if len(h.Times) != 3 || len(h.TotalForces) != 3 || len(h.Converged) != 3 {
		t.Fatalf("expected 3 recorded steps")
	}
	if h.Times[2] != 0.2 {
		t.Errorf("last time: %g", h.Times[2])
	}
	if h.Iterations[0] != 20 || h.Iterations[2] != 18 {
		t.Errorf("iterations not recorded in order: %v", h.Iterations)
	}
	// Final distributions track the last step only.
	if len(h.FinalCirculation) != 4 || len(h.FinalAngles) != 4 {
		t.Errorf("final distributions should hold one step: %d and %d values",
			len(h.FinalCirculation), len(h.FinalAngles))
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := s.Save("regression", "dynamic", 0.1, 1, sampleHistory(5))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.ID != runID || meta.Name != "regression" {
		t.Errorf("metadata identity: %q / %q", meta.ID, meta.Name)
	}
	if meta.Steps != 5 || meta.Dt != 0.1 || meta.NrWings != 1 {
		t.Errorf("metadata run shape: steps %d dt %g wings %d", meta.Steps, meta.Dt, meta.NrWings)
	}
	if meta.WakeType != "dynamic" || !meta.Converged {
		t.Errorf("metadata run state: %q converged %v", meta.WakeType, meta.Converged)
	}
	if len(meta.FinalCirculation) != 4 || meta.FinalCirculation[1] != 2 {
		t.Errorf("final circulation not persisted: %v", meta.FinalCirculation)
	}
}

func TestLoadSeries(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := s.Save("series", "steady", 0.5, 1, sampleHistory(4))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	times, forces, residuals, err := s.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	if len(times) != 4 || len(forces) != 4 || len(residuals) != 4 {
		t.Fatalf("expected 4 samples, got %d/%d/%d", len(times), len(forces), len(residuals))
	}
	if math.Abs(times[3]-0.3) > 1e-12 {
		t.Errorf("last time: %g", times[3])
	}
	if forces[0] != geo.NewVec3(100, -40, 0) {
		t.Errorf("force roundtrip: %+v", forces[0])
	}
	if residuals[2] != 1e-5 {
		t.Errorf("residual roundtrip: %g", residuals[2])
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	if runs, err := s.List(); err != nil || len(runs) != 0 {
		t.Fatalf("fresh store should list nothing: %v, %d runs", err, len(runs))
	}

	if _, err := s.Save("a", "steady", 0.1, 1, sampleHistory(1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save("b", "dynamic", 0.1, 2, sampleHistory(2)); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	names := map[string]bool{}
	for _, r := range runs {
		names[r.Name] = true
	}
	if !names["a"] || !names["b"] {
		t.Errorf("listed names: %v", names)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never_created"))

	runs, err := s.List()
	if err != nil {
		t.Fatalf("missing base dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
