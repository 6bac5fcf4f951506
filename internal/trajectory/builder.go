package trajectory

import (
	"context"

	"github.com/san-kum/brownsim/internal/langevin"
	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/physics"
)

// Builder runs a Langevin integrator over a regular grid and assembles the
// full trajectory. The initial condition is fixed at the origin with zero
// velocity, which is what makes the direct MSD estimator valid downstream.
type Builder struct {
	params physics.Parameters
	regime langevin.Regime
	rng    *noise.Generator
}

func NewBuilder(p physics.Parameters, regime langevin.Regime, rng *noise.Generator) *Builder {
	return &Builder{params: p, regime: regime, rng: rng}
}

// Run integrates N = floor(duration/dt) steps and returns the N+1 samples
// including t=0. Configuration errors surface before the first step; a
// canceled context aborts the whole run with no partial result.
func (b *Builder) Run(ctx context.Context, dt, duration float64) (*Trajectory, error) {
	grid, err := NewRegularGrid(dt, duration)
	if err != nil {
		return nil, err
	}
	integ, err := langevin.New(b.regime, b.params, dt, b.rng)
	if err != nil {
		return nil, err
	}

	n := grid.Len() - 1
	tr := &Trajectory{
		Grid: grid,
		X:    make([]float64, 0, n+1),
		Y:    make([]float64, 0, n+1),
	}
	withVelocity := integ.StateDim() == 4
	if withVelocity {
		tr.VX = make([]float64, 0, n+1)
		tr.VY = make([]float64, 0, n+1)
	}

	x := make(langevin.State, integ.StateDim())
	record := func(s langevin.State) {
		tr.X = append(tr.X, s[0])
		tr.Y = append(tr.Y, s[1])
		if withVelocity {
			tr.VX = append(tr.VX, s[2])
			tr.VY = append(tr.VY, s[3])
		}
	}
	record(x)

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		x = integ.Step(x)
		record(x)
	}

	return tr, nil
}
