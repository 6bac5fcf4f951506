package msd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/san-kum/brownsim/internal/physics"
)

// Options tune the quadrature of the analytic VACF integral.
type Options struct {
	// Tol is the relative change between successive grid refinements below
	// which the integral is accepted. Zero means the 1% default.
	Tol float64
	// InitialSubsteps is the starting trapezoid count per evaluation.
	InitialSubsteps int
	// MaxDoublings bounds the refinement loop.
	MaxDoublings int
}

func (o Options) withDefaults() Options {
	if o.Tol <= 0 {
		o.Tol = 0.01
	}
	if o.InitialSubsteps < 2 {
		o.InitialSubsteps = 64
	}
	if o.MaxDoublings < 1 {
		o.MaxDoublings = 16
	}
	return o
}

// AnalyticUnderdamped evaluates the model MSD of the underdamped Langevin
// equation at the requested times by numerically integrating the velocity
// autocorrelation function:
//
//	MSD(t) = 4 ∫₀ᵗ (t−τ) C_vv(τ) dτ,   C_vv(τ) = (kB·T/m)·e^(−γτ/m)
//
// (factor 4 = the textbook 2 per axis, times 2 independent axes). The
// trapezoid grid for each t is doubled until successive refinements agree
// within the tolerance. The curve approaches (2kB·T/m)·t² for t ≪ m/γ and
// 4·D·t for t ≫ m/γ.
func AnalyticUnderdamped(p physics.Parameters, times []float64, opts Options) (Curve, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: no evaluation times", physics.ErrInsufficientData)
	}
	opts = opts.withDefaults()

	kTm := p.ThermalEnergy() / p.Mass
	invTau := p.Gamma() / p.Mass

	curve := make(Curve, len(times))
	for i, t := range times {
		if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: evaluation time must be finite and non-negative, got %g",
				physics.ErrInvalidParameter, t)
		}
		if t == 0 {
			curve[i] = Point{}
			continue
		}
		v, err := vacfIntegral(t, kTm, invTau, opts)
		if err != nil {
			return nil, err
		}
		curve[i] = Point{Lag: t, Value: 4 * v}
	}
	return curve, nil
}

func vacfIntegral(t, kTm, invTau float64, opts Options) (float64, error) {
	n := opts.InitialSubsteps
	prev := trapezoid(t, kTm, invTau, n)
	for d := 0; d < opts.MaxDoublings; d++ {
		n *= 2
		cur := trapezoid(t, kTm, invTau, n)
		if math.Abs(cur-prev) <= opts.Tol*math.Abs(cur) {
			return cur, nil
		}
		prev = cur
	}
	return 0, fmt.Errorf("%w: VACF quadrature did not converge at t=%g within %d refinements",
		physics.ErrUnstable, t, opts.MaxDoublings)
}

func trapezoid(t, kTm, invTau float64, n int) float64 {
	h := t / float64(n)
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		tau := float64(i) * h
		xs[i] = tau
		ys[i] = (t - tau) * kTm * math.Exp(-invTau*tau)
	}
	return integrate.Trapezoidal(xs, ys)
}
