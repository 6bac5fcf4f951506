package storage

import (
	"context"
	"testing"

	"github.com/san-kum/brownsim/internal/langevin"
	"github.com/san-kum/brownsim/internal/msd"
	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/physics"
	"github.com/san-kum/brownsim/internal/trajectory"
)

func sampleRun(t *testing.T) (*trajectory.Trajectory, msd.Curve) {
	t.Helper()
	p := physics.NewParameters(1e-20, 5e-9)
	b := trajectory.NewBuilder(p, langevin.Overdamped, noise.New(7))
	tr, err := b.Run(context.Background(), 1e-9, 1e-8)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
	curve, err := msd.Direct(tr)
	if err != nil {
		t.Fatalf("msd failed: %v", err)
	}
	return tr, curve
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	tr, curve := sampleRun(t)
	meta := RunMetadata{
		Regime:      "overdamped",
		Seed:        7,
		Dt:          1e-9,
		Duration:    1e-8,
		Mass:        1e-20,
		Radius:      5e-9,
		Temperature: physics.DefaultTemperature,
		Viscosity:   physics.DefaultViscosity,
		Metrics:     map[string]float64{"slope": 1.02},
	}

	runID, err := st.Save(meta, tr, curve)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != runID || got.Seed != 7 || got.Metrics["slope"] != 1.02 {
		t.Errorf("metadata mismatch: %+v", got)
	}

	loadedTr, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("trajectory load failed: %v", err)
	}
	if loadedTr.Len() != tr.Len() {
		t.Fatalf("expected %d samples, got %d", tr.Len(), loadedTr.Len())
	}
	for i := 0; i < tr.Len(); i++ {
		if loadedTr.X[i] != tr.X[i] || loadedTr.Y[i] != tr.Y[i] {
			t.Fatalf("trajectory not bit-identical at sample %d", i)
		}
	}

	loadedCurve, err := st.LoadMSD(runID)
	if err != nil {
		t.Fatalf("msd load failed: %v", err)
	}
	if len(loadedCurve) != len(curve) {
		t.Fatalf("expected %d msd points, got %d", len(curve), len(loadedCurve))
	}
	for i := range curve {
		if loadedCurve[i] != curve[i] {
			t.Fatalf("msd curve not bit-identical at point %d", i)
		}
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	tr, curve := sampleRun(t)
	if _, err := st.Save(RunMetadata{Regime: "overdamped"}, tr, curve); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(RunMetadata{Regime: "underdamped"}, tr, curve); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("no_such_run"); err == nil {
		t.Error("expected error for missing run")
	}
}
