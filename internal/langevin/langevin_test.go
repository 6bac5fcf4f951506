package langevin

import (
	"errors"
	"testing"

	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/physics"
)

func TestParseRegime(t *testing.T) {
	tests := []struct {
		in      string
		want    Regime
		wantErr bool
	}{
		{"overdamped", Overdamped, false},
		{"underdamped", Underdamped, false},
		{"Underdamped", Underdamped, false},
		{" overdamped ", Overdamped, false},
		{"critical", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseRegime(tt.in)
		if tt.wantErr {
			if !errors.Is(err, physics.ErrInvalidParameter) {
				t.Errorf("ParseRegime(%q): expected ErrInvalidParameter, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRegime(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseRegime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOverdampedNoiseless(t *testing.T) {
	p := physics.NewParameters(1e-20, 5e-9)
	p.Temperature = 0 // D = 0, so the position increment variance vanishes

	integ, err := NewOverdamped(p, 1e-9, noise.New(1))
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	x := State{0, 0}
	for i := 0; i < 100; i++ {
		x = integ.Step(x)
	}
	if x[0] != 0 || x[1] != 0 {
		t.Errorf("noiseless overdamped walk left the origin: %v", x)
	}
}

func TestUnderdampedNoiseless(t *testing.T) {
	p := physics.NewParameters(1e-20, 5e-9)
	p.Temperature = 0

	// dt well under the stability bound 0.1·m/γ ≈ 1.06e-11 s.
	integ, err := NewUnderdamped(p, 1e-12, noise.New(1))
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	x := State{0, 0, 0, 0}
	for i := 0; i < 100; i++ {
		x = integ.Step(x)
	}
	for i, v := range x {
		if v != 0 {
			t.Errorf("noiseless underdamped state component %d nonzero: %g", i, v)
		}
	}
}

func TestUnderdampedStabilityGuard(t *testing.T) {
	p := physics.NewParameters(1e-20, 5e-9)
	tau := p.RelaxationTime()

	// Just under the bound: fine.
	if _, err := NewUnderdamped(p, StableDtFraction*tau*0.99, noise.New(1)); err != nil {
		t.Errorf("dt below stability bound rejected: %v", err)
	}

	// Above the bound: numeric instability.
	if _, err := NewUnderdamped(p, tau, noise.New(1)); !errors.Is(err, physics.ErrUnstable) {
		t.Errorf("expected ErrUnstable for dt=m/γ, got %v", err)
	}
}

func TestConstructorValidation(t *testing.T) {
	good := physics.NewParameters(1e-20, 5e-9)
	bad := physics.NewParameters(-1e-20, 5e-9)
	rng := noise.New(1)

	if _, err := NewOverdamped(bad, 1e-9, rng); !errors.Is(err, physics.ErrInvalidParameter) {
		t.Errorf("overdamped: expected ErrInvalidParameter for bad mass, got %v", err)
	}
	if _, err := NewOverdamped(good, 0, rng); !errors.Is(err, physics.ErrInvalidParameter) {
		t.Errorf("overdamped: expected ErrInvalidParameter for dt=0, got %v", err)
	}
	if _, err := NewUnderdamped(bad, 1e-12, rng); !errors.Is(err, physics.ErrInvalidParameter) {
		t.Errorf("underdamped: expected ErrInvalidParameter for bad mass, got %v", err)
	}
	if _, err := NewUnderdamped(good, -1e-9, rng); !errors.Is(err, physics.ErrInvalidParameter) {
		t.Errorf("underdamped: expected ErrInvalidParameter for dt<0, got %v", err)
	}
}

func TestNewDispatch(t *testing.T) {
	p := physics.NewParameters(1e-20, 5e-9)

	over, err := New(Overdamped, p, 1e-9, noise.New(1))
	if err != nil {
		t.Fatalf("overdamped dispatch failed: %v", err)
	}
	if over.StateDim() != 2 {
		t.Errorf("overdamped state dim: expected 2, got %d", over.StateDim())
	}

	under, err := New(Underdamped, p, 1e-12, noise.New(1))
	if err != nil {
		t.Fatalf("underdamped dispatch failed: %v", err)
	}
	if under.StateDim() != 4 {
		t.Errorf("underdamped state dim: expected 4, got %d", under.StateDim())
	}

	if _, err := New(Regime(99), p, 1e-9, noise.New(1)); !errors.Is(err, physics.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for unknown regime, got %v", err)
	}
}
