// Package langevin integrates the Langevin equation of motion for a single
// Brownian particle in two dimensions. The two damping regimes are separate
// integrator types selected once at construction; the hot loop never
// branches on the regime.
package langevin

import (
	"fmt"
	"strings"

	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/physics"
)

// State is a flat state vector: [x y] for overdamped motion,
// [x y vx vy] for underdamped motion. Axes are independent; there is no
// cross coupling.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// Integrator advances a particle state by one fixed timestep. The timestep
// is bound at construction because the noise variance depends on it.
type Integrator interface {
	Step(x State) State
	StateDim() int
}

// Regime selects the damping limit of the Langevin equation.
type Regime int

const (
	Overdamped Regime = iota
	Underdamped
)

func (r Regime) String() string {
	switch r {
	case Overdamped:
		return "overdamped"
	case Underdamped:
		return "underdamped"
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// ParseRegime maps the CLI/config spelling of a regime to its value.
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overdamped":
		return Overdamped, nil
	case "underdamped":
		return Underdamped, nil
	}
	return 0, fmt.Errorf("%w: unknown damping regime %q", physics.ErrInvalidParameter, s)
}

// New builds the integrator for the given regime.
func New(r Regime, p physics.Parameters, dt float64, rng *noise.Generator) (Integrator, error) {
	switch r {
	case Overdamped:
		return NewOverdamped(p, dt, rng)
	case Underdamped:
		return NewUnderdamped(p, dt, rng)
	}
	return nil, fmt.Errorf("%w: unknown damping regime %d", physics.ErrInvalidParameter, int(r))
}
