// Package analysis classifies the diffusive regime of an MSD curve from
// its log-log slope.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/brownsim/internal/msd"
	"github.com/san-kum/brownsim/internal/physics"
)

// Classification labels the regime implied by a log-log slope.
type Classification string

const (
	Ballistic    Classification = "ballistic"
	Diffusive    Classification = "diffusive"
	Intermediate Classification = "intermediate"
)

// classBand is the half-width of the slope interval accepted as a clean
// ballistic (≈2) or diffusive (≈1) regime.
const classBand = 0.25

// Window restricts the fit to lags in [MinLag, MaxLag]. A zero MaxLag means
// no upper bound. Lag 0 is always excluded: it has no logarithm.
type Window struct {
	MinLag float64
	MaxLag float64
}

// DefaultWindow reproduces the conventional fit range for a full curve:
// from the first positive lag up to a tenth of the longest one.
func DefaultWindow(c msd.Curve) Window {
	var w Window
	for _, p := range c {
		if p.Lag > 0 {
			if w.MinLag == 0 || p.Lag < w.MinLag {
				w.MinLag = p.Lag
			}
			if p.Lag > w.MaxLag {
				w.MaxLag = p.Lag
			}
		}
	}
	w.MaxLag /= 10
	return w
}

// Report is the result of a log-log fit over an MSD curve.
type Report struct {
	Slope     float64
	Intercept float64
	R2        float64
	Points    int
	Class     Classification
}

// FitRegime fits log10(MSD) against log10(lag) by ordinary least squares
// over the points inside the window. Points with non-positive lag or MSD
// are dropped before fitting; fewer than 2 survivors is an error.
func FitRegime(c msd.Curve, w Window) (*Report, error) {
	var logLag, logMSD []float64
	for _, p := range c {
		if p.Lag <= 0 || p.Value <= 0 {
			continue
		}
		if p.Lag < w.MinLag || (w.MaxLag > 0 && p.Lag > w.MaxLag) {
			continue
		}
		logLag = append(logLag, math.Log10(p.Lag))
		logMSD = append(logMSD, math.Log10(p.Value))
	}
	if len(logLag) < 2 {
		return nil, fmt.Errorf("%w: %d usable points in fit window, need at least 2",
			physics.ErrInsufficientData, len(logLag))
	}

	intercept, slope := stat.LinearRegression(logLag, logMSD, nil, false)
	r2 := stat.RSquared(logLag, logMSD, nil, intercept, slope)

	return &Report{
		Slope:     slope,
		Intercept: intercept,
		R2:        r2,
		Points:    len(logLag),
		Class:     classify(slope),
	}, nil
}

func classify(slope float64) Classification {
	switch {
	case math.Abs(slope-1) <= classBand:
		return Diffusive
	case math.Abs(slope-2) <= classBand:
		return Ballistic
	}
	return Intermediate
}
