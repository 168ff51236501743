package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/dsoppit/wavesim/internal/fdtd"
	"github.com/dsoppit/wavesim/internal/metrics"
)

// Store persists completed runs under a base directory, one subdirectory
// per run holding metadata.json, frames.csv (per-step energy and peak),
// and field.csv (the final snapshot, one CSV row per grid row).
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
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Nx         int                `json:"nx"`
	Ny         int                `json:"ny"`
	NStop      int                `json:"n_stop"`
	Dx         float64            `json:"dx"`
	Dy         float64            `json:"dy"`
	Dt         float64            `json:"dt"`
	WaveSpeed  float64            `json:"wave_speed"`
	Wavelength float64            `json:"wavelength"`
	PulseWidth float64            `json:"pulse_width"`
	T0         float64            `json:"t0"`
	SourceIX   int                `json:"source_ix"`
	SourceIY   int                `json:"source_iy"`
	Boundary   string             `json:"boundary"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Frame is one row of frames.csv.
type Frame struct {
	Step   int
	Time   float64
	Energy float64
	Peak   float64
}

// Save writes a completed run and returns its id. The frame series is
// derived from the integrator's snapshot history.
func (s *Store) Save(integ *fdtd.Integrator, runMetrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("wave_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	g := integ.Grid()
	src := integ.Source()

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Nx:         g.Nx,
		Ny:         g.Ny,
		NStop:      integ.NSteps(),
		Dx:         g.Dx,
		Dy:         g.Dy,
		Dt:         g.Dt,
		WaveSpeed:  g.C,
		Wavelength: src.Wavelength,
		PulseWidth: src.PulseWidth,
		T0:         src.T0,
		SourceIX:   src.IX,
		SourceIY:   src.IY,
		Boundary:   integ.Boundary().String(),
		Metrics:    runMetrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := s.writeFrames(filepath.Join(runDir, "frames.csv"), integ); err != nil {
		return "", err
	}
	if err := s.writeField(filepath.Join(runDir, "field.csv"), integ); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Store) writeFrames(path string, integ *fdtd.Integrator) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "energy", "peak"}); err != nil {
		return err
	}

	dt := integ.Grid().Dt
	for n := 0; n < integ.Fields().Recorded(); n++ {
		snap, err := integ.Fields().Snapshot(n)
		if err != nil {
			return err
		}
		peak := 0.0
		for _, v := range snap {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
		row := []string{
			strconv.Itoa(n),
			strconv.FormatFloat(float64(n)*dt, 'e', 9, 64),
			strconv.FormatFloat(metrics.FieldEnergy(snap), 'e', 9, 64),
			strconv.FormatFloat(peak, 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) writeField(path string, integ *fdtd.Integrator) error {
	recorded := integ.Fields().Recorded()
	if recorded == 0 {
		return nil
	}
	snap, err := integ.Fields().Snapshot(recorded - 1)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	nx, ny := integ.Grid().Nx, integ.Grid().Ny
	row := make([]string, ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			row[j] = strconv.FormatFloat(snap[i*ny+j], 'e', 9, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns metadata for all stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the per-step series of a run.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 4 {
			continue
		}
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, err
		}
		t, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, err
		}
		energy, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, err
		}
		peak, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, err
		}
		frames = append(frames, Frame{Step: step, Time: t, Energy: energy, Peak: peak})
	}
	return frames, nil
}

// LoadField reads the final snapshot of a run as a flat field plus its
// shape.
func (s *Store) LoadField(runID string) (fdtd.Field, int, int, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "field.csv"))
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, 0, 0, err
	}
	if len(records) == 0 {
		return nil, 0, 0, fmt.Errorf("run %s has no stored field", runID)
	}

	nx, ny := len(records), len(records[0])
	field := make(fdtd.Field, 0, nx*ny)
	for _, rec := range records {
		for _, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, 0, 0, err
			}
			field = append(field, v)
		}
	}
	return field, nx, ny, nil
}
