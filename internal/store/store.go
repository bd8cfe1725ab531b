// Package store persists simulation runs to disk: a metadata file per run
// plus a CSV of the per-step time series.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/sim"
)

// History accumulates the per-step series of a run. Its Record method is a
// sim.Observer.
type History struct {
	Times       []float64
	TotalForces []geo.Vec3
	Residuals   []float64
	Iterations  []int
	Converged   []bool
	WingAngles  [][]float64

	// FinalCirculation and FinalAngles hold the spanwise distributions of
	// the last recorded step.
	FinalCirculation []float64
	FinalAngles      []float64
}

func (h *History) Record(r sim.StepResult) {
	h.Times = append(h.Times, r.Time)
	h.TotalForces = append(h.TotalForces, r.TotalForce)
	h.Residuals = append(h.Residuals, r.Solver.Residual)
	h.Iterations = append(h.Iterations, r.Solver.Iterations)
	h.Converged = append(h.Converged, r.Solver.Converged)

	angles := make([]float64, len(r.WingAngles))
	copy(angles, r.WingAngles)
	h.WingAngles = append(h.WingAngles, angles)

	h.FinalCirculation = append(h.FinalCirculation[:0], r.Solver.Circulation...)
	h.FinalAngles = append(h.FinalAngles[:0], r.AnglesOfAttack...)
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Dt        float64   `json:"dt"`
	Steps     int       `json:"steps"`
	NrWings   int       `json:"nr_wings"`
	WakeType  string    `json:"wake_type"`
	Converged bool      `json:"converged"`

	FinalCirculation []float64 `json:"final_circulation"`
	FinalAngles      []float64 `json:"final_angles"`
}

// Save writes a run directory with metadata.json and series.csv and returns
// the run ID.
func (s *Store) Save(name, wakeType string, dt float64, nrWings int, hist *History) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	converged := len(hist.Converged) > 0 && hist.Converged[len(hist.Converged)-1]
	meta := RunMetadata{
		ID:               runID,
		Name:             name,
		Timestamp:        time.Now(),
		Dt:               dt,
		Steps:            len(hist.Times),
		NrWings:          nrWings,
		WakeType:         wakeType,
		Converged:        converged,
		FinalCirculation: hist.FinalCirculation,
		FinalAngles:      hist.FinalAngles,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "series.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "fx", "fy", "fz", "residual", "iterations"}
	for i := 0; i < nrWings; i++ {
		header = append(header, fmt.Sprintf("wing_angle_%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range hist.Times {
		f := hist.TotalForces[i]
		row := []string{
			strconv.FormatFloat(hist.Times[i], 'g', -1, 64),
			strconv.FormatFloat(f.X, 'g', -1, 64),
			strconv.FormatFloat(f.Y, 'g', -1, 64),
			strconv.FormatFloat(f.Z, 'g', -1, 64),
			strconv.FormatFloat(hist.Residuals[i], 'g', -1, 64),
			strconv.Itoa(hist.Iterations[i]),
		}
		for _, a := range hist.WingAngles[i] {
			row = append(row, strconv.FormatFloat(a, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the per-step series back: times, total forces, residuals.
func (s *Store) LoadSeries(runID string) ([]float64, []geo.Vec3, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "series.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []geo.Vec3{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	forces := make([]geo.Vec3, 0, len(records)-1)
	residuals := make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		times = append(times, vals[0])
		forces = append(forces, geo.Vec3{X: vals[1], Y: vals[2], Z: vals[3]})
		residuals = append(residuals, vals[4])
	}

	return times, forces, residuals, nil
}
