package physics

import (
	"fmt"
	"math"
)

// Boltzmann constant (J/K).
const Boltzmann = 1.380649e-23

// Solvent defaults. These are ordinary parameter defaults, overridable per
// run; the numeric core only ever sees the Parameters fields.
const (
	DefaultTemperature = 298.15 // K, room temperature
	DefaultViscosity   = 1e-3   // Pa·s, water
)

// Parameters describes a spherical particle suspended in a solvent.
type Parameters struct {
	Mass        float64 // kg
	Radius      float64 // m
	Temperature float64 // K
	Viscosity   float64 // Pa·s
}

// NewParameters builds Parameters for a particle in room-temperature water.
func NewParameters(mass, radius float64) Parameters {
	return Parameters{
		Mass:        mass,
		Radius:      radius,
		Temperature: DefaultTemperature,
		Viscosity:   DefaultViscosity,
	}
}

// Validate checks every field eagerly so a bad configuration fails before
// any integration starts. Temperature zero is allowed: it turns the noise
// off, which the integrators support without special casing.
func (p Parameters) Validate() error {
	switch {
	case !(p.Mass > 0) || math.IsInf(p.Mass, 0):
		return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidParameter, p.Mass)
	case !(p.Radius > 0) || math.IsInf(p.Radius, 0):
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidParameter, p.Radius)
	case p.Temperature < 0 || math.IsNaN(p.Temperature) || math.IsInf(p.Temperature, 0):
		return fmt.Errorf("%w: temperature must be non-negative, got %g", ErrInvalidParameter, p.Temperature)
	case !(p.Viscosity > 0) || math.IsInf(p.Viscosity, 0):
		return fmt.Errorf("%w: viscosity must be positive, got %g", ErrInvalidParameter, p.Viscosity)
	}
	return nil
}

// Gamma returns the Stokes drag coefficient 6πηa (kg/s).
func (p Parameters) Gamma() float64 {
	return 6 * math.Pi * p.Viscosity * p.Radius
}

// ThermalEnergy returns kB·T (J).
func (p Parameters) ThermalEnergy() float64 {
	return Boltzmann * p.Temperature
}

// Diffusion returns the Stokes-Einstein diffusion coefficient kB·T/γ (m²/s).
func (p Parameters) Diffusion() float64 {
	return p.ThermalEnergy() / p.Gamma()
}

// RelaxationTime returns the velocity relaxation time m/γ (s), the
// timescale separating ballistic from diffusive motion.
func (p Parameters) RelaxationTime() float64 {
	return p.Mass / p.Gamma()
}
