package noise

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/brownsim/internal/physics"
)

// Generator draws zero-mean Gaussian increments from an explicitly owned
// random source; nothing in the package touches a global generator. Two
// generators with the same seed produce the same stream.
type Generator struct {
	unit distuv.Normal
	seed uint64
}

// New returns a deterministic generator for the given seed.
func New(seed uint64) *Generator {
	return &Generator{
		unit: distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)},
		seed: seed,
	}
}

// NewFromEntropy seeds from the clock. Repeated runs differ, which is the
// intended default for Monte-Carlo studies; use New for reproducible runs.
func NewFromEntropy() *Generator {
	return New(uint64(time.Now().UnixNano()))
}

// Seed returns the seed this generator was constructed with.
func (g *Generator) Seed() uint64 { return g.seed }

// Draw returns one sample with variance sigma2. A zero variance yields
// exactly zero while still consuming one draw, so noiseless integration
// follows the same code path as noisy integration.
func (g *Generator) Draw(sigma2 float64) float64 {
	return math.Sqrt(sigma2) * g.unit.Rand()
}

// Sample returns n independent draws with variance sigma2.
func (g *Generator) Sample(n int, sigma2 float64) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sample count must be at least 1, got %d", physics.ErrInvalidParameter, n)
	}
	if sigma2 < 0 || math.IsNaN(sigma2) || math.IsInf(sigma2, 0) {
		return nil, fmt.Errorf("%w: variance must be finite and non-negative, got %g", physics.ErrInvalidParameter, sigma2)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = g.Draw(sigma2)
	}
	return out, nil
}
