package langevin

import (
	"fmt"

	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/physics"
)

// OverdampedIntegrator advances position only: the Euler-Maruyama
// discretization of dx = sqrt(2D) dW, so each step adds an increment of
// variance 2·D·dt per axis.
type OverdampedIntegrator struct {
	stepSigma2 float64
	rng        *noise.Generator
}

func NewOverdamped(p physics.Parameters, dt float64, rng *noise.Generator) (*OverdampedIntegrator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: timestep must be positive, got %g", physics.ErrInvalidParameter, dt)
	}
	return &OverdampedIntegrator{
		stepSigma2: 2 * p.Diffusion() * dt,
		rng:        rng,
	}, nil
}

func (o *OverdampedIntegrator) StateDim() int { return 2 }

func (o *OverdampedIntegrator) Step(x State) State {
	return State{
		x[0] + o.rng.Draw(o.stepSigma2),
		x[1] + o.rng.Draw(o.stepSigma2),
	}
}
