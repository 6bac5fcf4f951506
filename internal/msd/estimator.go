package msd

import (
	"fmt"

	"github.com/san-kum/brownsim/internal/physics"
	"github.com/san-kum/brownsim/internal/trajectory"
)

// Direct computes the squared displacement from the first sample at every
// grid point, with the lag measured from the first sample time. For
// simulated trajectories, which start at a known fixed origin, this is the
// single-trajectory MSD with no averaging. Lag 0 is exactly 0.
func Direct(tr *trajectory.Trajectory) (Curve, error) {
	if tr == nil || tr.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples for an MSD curve", physics.ErrInsufficientData)
	}
	t0, x0, y0 := tr.Grid.Times[0], tr.X[0], tr.Y[0]
	curve := make(Curve, tr.Len())
	for i := range curve {
		dx := tr.X[i] - x0
		dy := tr.Y[i] - y0
		curve[i] = Point{Lag: tr.Grid.Times[i] - t0, Value: dx*dx + dy*dy}
	}
	return curve, nil
}

// SlidingWindow averages squared displacements over every sample pair at
// the same offset, the ensemble-style estimator for arbitrary experimental
// windows. On a regular grid the lag at offset k is exactly k·dt; on an
// irregular grid it is the mean spacing over the pairs at that offset.
func SlidingWindow(tr *trajectory.Trajectory) (Curve, error) {
	if tr == nil || tr.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples for an MSD curve", physics.ErrInsufficientData)
	}
	n := tr.Len()
	times := tr.Grid.Times
	curve := make(Curve, n)
	curve[0] = Point{Lag: 0, Value: 0}
	for k := 1; k < n; k++ {
		pairs := n - k
		var sumSq, sumLag float64
		for i := 0; i < pairs; i++ {
			dx := tr.X[i+k] - tr.X[i]
			dy := tr.Y[i+k] - tr.Y[i]
			sumSq += dx*dx + dy*dy
			sumLag += times[i+k] - times[i]
		}
		curve[k] = Point{
			Lag:   sumLag / float64(pairs),
			Value: sumSq / float64(pairs),
		}
	}
	return curve, nil
}

// Average merges curves computed on identical grids point-wise, the merge
// step for ensemble runs.
func Average(curves []Curve) (Curve, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("%w: no curves to average", physics.ErrInsufficientData)
	}
	base := curves[0]
	for i, c := range curves[1:] {
		if len(c) != len(base) {
			return nil, fmt.Errorf("%w: curve %d has %d points, expected %d",
				physics.ErrMalformedInput, i+1, len(c), len(base))
		}
		for j := range c {
			if c[j].Lag != base[j].Lag {
				return nil, fmt.Errorf("%w: curve %d lag grid differs at point %d",
					physics.ErrMalformedInput, i+1, j)
			}
		}
	}
	out := make(Curve, len(base))
	for j := range base {
		var sum float64
		for _, c := range curves {
			sum += c[j].Value
		}
		out[j] = Point{Lag: base[j].Lag, Value: sum / float64(len(curves))}
	}
	return out, nil
}
