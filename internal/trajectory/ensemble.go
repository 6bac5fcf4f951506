package trajectory

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/brownsim/internal/langevin"
	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/physics"
)

// Ensemble runs independent trajectories concurrently, one goroutine per
// run, each with its own generator seeded seedStart+index. Results are only
// read after every run completes, so completion order cannot affect
// aggregated statistics.
type Ensemble struct {
	params    physics.Parameters
	regime    langevin.Regime
	runs      int
	seedStart uint64
}

func NewEnsemble(p physics.Parameters, regime langevin.Regime, runs int, seedStart uint64) *Ensemble {
	return &Ensemble{params: p, regime: regime, runs: runs, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, dt, duration float64) ([]*Trajectory, error) {
	if e.runs < 1 {
		return nil, fmt.Errorf("%w: ensemble needs at least 1 run, got %d", physics.ErrInvalidParameter, e.runs)
	}

	results := make([]*Trajectory, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			b := NewBuilder(e.params, e.regime, noise.New(e.seedStart+uint64(idx)))
			results[idx], errs[idx] = b.Run(ctx, dt, duration)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
