package langevin

import (
	"fmt"

	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/physics"
)

// StableDtFraction caps the timestep relative to the velocity relaxation
// time m/γ. Above it the explicit velocity update diverges.
const StableDtFraction = 0.1

// UnderdampedIntegrator tracks position and velocity. Per axis and step:
//
//	F = -γ·v + ξ        ξ ~ N(0, 2·γ·kB·T/dt)
//	v ← v + (F/m)·dt
//	x ← x + v·dt
//
// The position update uses the freshly updated velocity (semi-implicit
// Euler), which is stable where the naive explicit form is not. The force
// variance follows the fluctuation-dissipation theorem at this
// discretization.
type UnderdampedIntegrator struct {
	dt          float64
	mass        float64
	gamma       float64
	forceSigma2 float64
	rng         *noise.Generator
}

func NewUnderdamped(p physics.Parameters, dt float64, rng *noise.Generator) (*UnderdampedIntegrator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: timestep must be positive, got %g", physics.ErrInvalidParameter, dt)
	}
	if tau := p.RelaxationTime(); dt > StableDtFraction*tau {
		return nil, fmt.Errorf("%w: dt=%g exceeds %g of the relaxation time m/γ=%g",
			physics.ErrUnstable, dt, StableDtFraction, tau)
	}
	return &UnderdampedIntegrator{
		dt:          dt,
		mass:        p.Mass,
		gamma:       p.Gamma(),
		forceSigma2: 2 * p.Gamma() * p.ThermalEnergy() / dt,
		rng:         rng,
	}, nil
}

func (u *UnderdampedIntegrator) StateDim() int { return 4 }

func (u *UnderdampedIntegrator) Step(x State) State {
	next := make(State, 4)
	for axis := 0; axis < 2; axis++ {
		pos, vel := x[axis], x[2+axis]
		f := -u.gamma*vel + u.rng.Draw(u.forceSigma2)
		vel += f / u.mass * u.dt
		pos += vel * u.dt
		next[axis] = pos
		next[2+axis] = vel
	}
	return next
}
