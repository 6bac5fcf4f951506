// Package trajectory builds and adapts particle time series. Simulated
// trajectories come from the Builder; experimental ones enter through
// FromSeries or the CSV loader. Either way the downstream estimators see
// the same representation.
package trajectory

import (
	"fmt"
	"math"

	"github.com/san-kum/brownsim/internal/physics"
)

// TimeGrid describes how a trajectory is sampled: a regular grid with a
// fixed dt, or an irregular strictly increasing experimental one. Lag
// computation downstream keys off Regular.
type TimeGrid struct {
	Times   []float64
	Regular bool
	Dt      float64 // zero unless Regular
}

func (g *TimeGrid) Len() int { return len(g.Times) }

// NewRegularGrid returns the grid 0, dt, 2dt, ..., N·dt with
// N = floor(duration/dt) steps.
func NewRegularGrid(dt, duration float64) (*TimeGrid, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: timestep must be positive, got %g", physics.ErrInvalidParameter, dt)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: duration must be positive, got %g", physics.ErrInvalidParameter, duration)
	}
	n := int(duration / dt)
	if n < 1 {
		return nil, fmt.Errorf("%w: duration %g shorter than one timestep %g", physics.ErrInvalidParameter, duration, dt)
	}
	times := make([]float64, n+1)
	for i := range times {
		times[i] = float64(i) * dt
	}
	return &TimeGrid{Times: times, Regular: true, Dt: dt}, nil
}

// NewIrregularGrid adopts an explicit sample-time sequence, which must be
// finite and strictly increasing.
func NewIrregularGrid(times []float64) (*TimeGrid, error) {
	if len(times) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 sample times, got %d", physics.ErrInsufficientData, len(times))
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: non-finite time at row %d", physics.ErrMalformedInput, i)
		}
		if i > 0 && t <= times[i-1] {
			return nil, fmt.Errorf("%w: time column not strictly increasing at row %d (%g after %g)",
				physics.ErrMalformedInput, i, t, times[i-1])
		}
	}
	c := make([]float64, len(times))
	copy(c, times)
	return &TimeGrid{Times: c}, nil
}

// Trajectory is an ordered 2-D position series, one entry per grid point,
// plus velocities when produced by the underdamped integrator. It is built
// once and never mutated afterwards.
type Trajectory struct {
	Grid *TimeGrid
	X, Y []float64
	// VX, VY are nil unless the trajectory was generated with velocity state.
	VX, VY []float64
}

func (tr *Trajectory) Len() int { return tr.Grid.Len() }

func (tr *Trajectory) HasVelocity() bool { return tr.VX != nil }

// FromSeries adapts an externally supplied (t, x, y) series. It validates
// the shape and values but performs no integration.
func FromSeries(times, x, y []float64) (*Trajectory, error) {
	if len(x) != len(times) || len(y) != len(times) {
		return nil, fmt.Errorf("%w: column lengths differ (t=%d, x=%d, y=%d)",
			physics.ErrMalformedInput, len(times), len(x), len(y))
	}
	grid, err := NewIrregularGrid(times)
	if err != nil {
		return nil, err
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("%w: non-finite position at row %d", physics.ErrMalformedInput, i)
		}
	}
	cx := make([]float64, len(x))
	cy := make([]float64, len(y))
	copy(cx, x)
	copy(cy, y)
	return &Trajectory{Grid: grid, X: cx, Y: cy}, nil
}
