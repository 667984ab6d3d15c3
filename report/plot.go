package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/alexshd/xrfthick"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plot dimensions.
const (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// ErrNothingToPlot is returned for results without curves.
var ErrNothingToPlot = errors.New("nothing to plot")

// logXYs converts points to (angle, ln intensity).
func logXYs(points []xrfthick.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i].X = p.Angle
		xys[i].Y = math.Log(p.Intensity)
	}
	return xys
}

// PlotSample draws ln I against angle: one line per reference thickness, the
// fitted curve dashed, and the measurements as points. The image format
// follows the extension of path.
func PlotSample(r xrfthick.SampleResult, path string) error {
	if !r.OK() || len(r.FitCurve.Points) == 0 {
		return fmt.Errorf("sample %s: %w", r.Name, ErrNothingToPlot)
	}

	p := plot.New()
	p.Title.Text = r.Name
	p.X.Label.Text = "Incidence angle (deg)"
	p.Y.Label.Text = "ln I"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, ref := range r.References {
		l, err := plotter.NewLine(logXYs(ref.Points))
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("%.2f µm", ref.Thickness/xrfthick.Micrometre), l)
	}

	fit, err := plotter.NewLine(logXYs(r.FitCurve.Points))
	if err != nil {
		return err
	}
	fit.LineStyle.Width = vg.Points(1.5)
	fit.LineStyle.Color = color.Black
	fit.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(fit)
	um, errUm := r.Fit.Micrometres()
	p.Legend.Add(fmt.Sprintf("fit %.3f ± %.3f µm", um, errUm), fit)

	data, err := plotter.NewScatter(logXYs(r.Measurements))
	if err != nil {
		return err
	}
	data.GlyphStyle.Shape = draw.CircleGlyph{}
	data.GlyphStyle.Radius = vg.Points(3)
	data.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
	p.Add(data)
	p.Legend.Add("measured", data)

	return p.Save(PlotWidth, PlotHeight, path)
}
