// Package storage persists runs under a data directory, one directory per
// run holding metadata.json, trajectory.csv and msd.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/brownsim/internal/msd"
	"github.com/san-kum/brownsim/internal/physics"
	"github.com/san-kum/brownsim/internal/trajectory"
)

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
	ID          string             `json:"id"`
	Regime      string             `json:"regime"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Mass        float64            `json:"mass"`
	Radius      float64            `json:"radius"`
	Temperature float64            `json:"temperature"`
	Viscosity   float64            `json:"viscosity"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run. Floats go out in shortest round-trip form so a
// reloaded trajectory is bit-identical to the saved one.
func (s *Store) Save(meta RunMetadata, tr *trajectory.Trajectory, curve msd.Curve) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Regime, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	meta.ID = runID
	meta.Timestamp = time.Now()

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if tr != nil {
		if err := writeTrajectoryCSV(filepath.Join(runDir, "trajectory.csv"), tr); err != nil {
			return "", err
		}
	}
	if curve != nil {
		if err := writeCurveCSV(filepath.Join(runDir, "msd.csv"), curve); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta RunMetadata
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("%w: %v", physics.ErrMalformedInput, err)
	}
	return &meta, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // skip foreign directories
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) LoadTrajectory(runID string) (*trajectory.Trajectory, error) {
	return trajectory.LoadFile(filepath.Join(s.baseDir, runID, "trajectory.csv"))
}

func (s *Store) LoadMSD(runID string) (msd.Curve, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "msd.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCurveCSV(f)
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

func writeTrajectoryCSV(path string, tr *trajectory.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"t", "x", "y"}
	if tr.HasVelocity() {
		header = append(header, "vx", "vy")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < tr.Len(); i++ {
		row := []string{
			formatFloat(tr.Grid.Times[i]),
			formatFloat(tr.X[i]),
			formatFloat(tr.Y[i]),
		}
		if tr.HasVelocity() {
			row = append(row, formatFloat(tr.VX[i]), formatFloat(tr.VY[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeCurveCSV(path string, curve msd.Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"lag", "msd"}); err != nil {
		return err
	}
	for _, p := range curve {
		if err := w.Write([]string{formatFloat(p.Lag), formatFloat(p.Value)}); err != nil {
			return err
		}
	}
	return w.Error()
}

func readCurveCSV(r io.Reader) (msd.Curve, error) {
	cr := csv.NewReader(r)
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", physics.ErrMalformedInput, err)
	}
	if len(recs) < 2 {
		return nil, fmt.Errorf("%w: msd file has no data rows", physics.ErrInsufficientData)
	}
	curve := make(msd.Curve, 0, len(recs)-1)
	for i, rec := range recs[1:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: msd row %d has %d fields", physics.ErrMalformedInput, i+1, len(rec))
		}
		lag, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric lag %q in row %d", physics.ErrMalformedInput, rec[0], i+1)
		}
		val, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric msd %q in row %d", physics.ErrMalformedInput, rec[1], i+1)
		}
		curve = append(curve, msd.Point{Lag: lag, Value: val})
	}
	return curve, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
