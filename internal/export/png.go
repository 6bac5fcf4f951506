package export

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/brownsim/internal/analysis"
	"github.com/san-kum/brownsim/internal/msd"
	"github.com/san-kum/brownsim/internal/physics"
)

// SaveCurvePNG renders the MSD curve on log-log axes and, when a fit report
// is supplied, overlays the fitted power law as a dashed line. The output
// format follows the file extension (.png, .svg, .pdf, ...).
func SaveCurvePNG(curve msd.Curve, rep *analysis.Report, path string) error {
	pts := make(plotter.XYs, 0, len(curve))
	for _, p := range curve {
		if p.Lag <= 0 || p.Value <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: p.Lag, Y: p.Value})
	}
	if len(pts) < 2 {
		return fmt.Errorf("%w: %d plottable points", physics.ErrInsufficientData, len(pts))
	}

	pl := plot.New()
	pl.Title.Text = "mean squared displacement"
	pl.X.Label.Text = "lag (s)"
	pl.Y.Label.Text = "MSD (m²)"
	pl.X.Scale = plot.LogScale{}
	pl.Y.Scale = plot.LogScale{}
	pl.X.Tick.Marker = plot.LogTicks{Prec: -1}
	pl.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 0x00, G: 0xcc, B: 0xff, A: 0xff}
	pl.Add(line)
	pl.Legend.Add("msd", line)

	if rep != nil {
		fitPts := make(plotter.XYs, len(pts))
		for i, p := range pts {
			fitPts[i] = plotter.XY{
				X: p.X,
				Y: math.Pow(10, rep.Intercept+rep.Slope*math.Log10(p.X)),
			}
		}
		fit, err := plotter.NewLine(fitPts)
		if err != nil {
			return err
		}
		fit.Color = color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
		fit.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		pl.Add(fit)
		pl.Legend.Add(fmt.Sprintf("fit slope %.2f", rep.Slope), fit)
	}

	return pl.Save(6*vg.Inch, 4*vg.Inch, path)
}
