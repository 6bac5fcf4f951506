package analysis

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/brownsim/internal/msd"
	"github.com/san-kum/brownsim/internal/physics"
)

func syntheticCurve(f func(t float64) float64, n int, dt float64) msd.Curve {
	c := make(msd.Curve, n)
	for i := range c {
		t := float64(i) * dt
		c[i] = msd.Point{Lag: t, Value: f(t)}
	}
	return c
}

func TestFitRegimeDiffusive(t *testing.T) {
	g := NewWithT(t)
	p := physics.NewParameters(1e-20, 5e-9)
	D := p.Diffusion()

	curve := syntheticCurve(func(t float64) float64 { return 4 * D * t }, 200, 1e-3)

	rep, err := FitRegime(curve, Window{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rep.Slope).To(BeNumerically("~", 1.0, 1e-6))
	g.Expect(rep.Class).To(Equal(Diffusive))
	g.Expect(rep.R2).To(BeNumerically("~", 1.0, 1e-9))
	g.Expect(rep.Points).To(Equal(199)) // lag 0 excluded
}

func TestFitRegimeBallistic(t *testing.T) {
	g := NewWithT(t)

	curve := syntheticCurve(func(t float64) float64 { return 3.7e-12 * t * t }, 200, 1e-3)

	rep, err := FitRegime(curve, Window{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rep.Slope).To(BeNumerically("~", 2.0, 1e-6))
	g.Expect(rep.Class).To(Equal(Ballistic))
}

func TestFitRegimeIntermediate(t *testing.T) {
	g := NewWithT(t)

	// Anomalous exponent 1.5 sits between the bands.
	curve := syntheticCurve(func(t float64) float64 { return 1e-12 * math.Pow(t, 1.5) }, 200, 1e-3)

	rep, err := FitRegime(curve, Window{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rep.Slope).To(BeNumerically("~", 1.5, 1e-6))
	g.Expect(rep.Class).To(Equal(Intermediate))
}

func TestFitRegimeWindow(t *testing.T) {
	g := NewWithT(t)

	// Slope 1 below lag 1, slope 2 above; the window must isolate a branch.
	curve := make(msd.Curve, 0, 200)
	for i := 1; i <= 100; i++ {
		tt := float64(i) * 0.01 // 0.01 .. 1
		curve = append(curve, msd.Point{Lag: tt, Value: tt})
	}
	for i := 1; i <= 100; i++ {
		tt := 1 + float64(i)*0.1 // 1.1 .. 11
		curve = append(curve, msd.Point{Lag: tt, Value: tt * tt})
	}

	low, err := FitRegime(curve, Window{MaxLag: 1})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(low.Slope).To(BeNumerically("~", 1.0, 1e-6))

	high, err := FitRegime(curve, Window{MinLag: 1.1})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(high.Slope).To(BeNumerically("~", 2.0, 1e-6))
}

func TestFitRegimeInsufficientData(t *testing.T) {
	tests := []struct {
		name  string
		curve msd.Curve
		w     Window
	}{
		{"empty", nil, Window{}},
		{"only lag zero", msd.Curve{{Lag: 0, Value: 0}}, Window{}},
		{"one positive point", msd.Curve{{Lag: 0, Value: 0}, {Lag: 1, Value: 1}}, Window{}},
		{"zero msd filtered", msd.Curve{{Lag: 1, Value: 0}, {Lag: 2, Value: 0}, {Lag: 3, Value: 1}}, Window{}},
		{"window excludes all", msd.Curve{{Lag: 1, Value: 1}, {Lag: 2, Value: 4}, {Lag: 3, Value: 9}}, Window{MinLag: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FitRegime(tt.curve, tt.w); !errors.Is(err, physics.ErrInsufficientData) {
				t.Errorf("expected ErrInsufficientData, got %v", err)
			}
		})
	}
}

func TestDefaultWindow(t *testing.T) {
	curve := msd.Curve{{Lag: 0, Value: 0}, {Lag: 0.1, Value: 1}, {Lag: 1, Value: 2}, {Lag: 10, Value: 3}}
	w := DefaultWindow(curve)
	if w.MinLag != 0.1 {
		t.Errorf("expected min lag 0.1, got %g", w.MinLag)
	}
	if w.MaxLag != 1 {
		t.Errorf("expected max lag 1, got %g", w.MaxLag)
	}
}
