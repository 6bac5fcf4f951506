// Package msd estimates mean squared displacement curves from a single
// trajectory, and evaluates the analytic underdamped curve for overlay.
package msd

// Point is one sample of an MSD curve: a time lag (s) and the squared
// displacement (m²) at that lag.
type Point struct {
	Lag   float64
	Value float64
}

// Curve is an MSD curve ordered by increasing lag.
type Curve []Point

// Lags returns the lag column as a plain slice, for renderers and fits.
func (c Curve) Lags() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Lag
	}
	return out
}

// Values returns the MSD column as a plain slice.
func (c Curve) Values() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Value
	}
	return out
}
