package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/brownsim/internal/msd"
	"github.com/san-kum/brownsim/internal/physics"
)

// LogLog renders log10(MSD) against lag on an ascii graph. Points with
// non-positive lag or MSD are dropped; lag 0 in particular has no place on
// a log axis.
func LogLog(curve msd.Curve, caption string, width, height int) (string, error) {
	data := make([]float64, 0, len(curve))
	for _, p := range curve {
		if p.Lag <= 0 || p.Value <= 0 {
			continue
		}
		data = append(data, math.Log10(p.Value))
	}
	if len(data) < 2 {
		return "", fmt.Errorf("%w: %d plottable points", physics.ErrInsufficientData, len(data))
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return graph, nil
}
