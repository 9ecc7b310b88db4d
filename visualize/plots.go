// Package visualize renders the run artifacts reviewers look at: the
// scatter with fitted line, the boxplot of estimate distributions, and
// the per-trial interval plot against the true parameter.
//
// The numeric tables come from the simulate package; nothing here feeds
// back into the coverage computation.
package visualize

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/regsim/dataset"
	"github.com/YuminosukeSato/regsim/linear"
	"github.com/YuminosukeSato/regsim/pkg/errors"
	"github.com/YuminosukeSato/regsim/simulate"
)

// ScatterWithFit draws one trial's observations with the fitted
// regression line overlaid.
func ScatterWithFit(ds *dataset.Dataset, fit *linear.OLS) (*plot.Plot, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.NewValueError("ScatterWithFit", "empty dataset")
	}

	pts := make(plotter.XYs, ds.Len())
	xMin, xMax := ds.X[0], ds.X[0]
	for i := range pts {
		pts[i].X = ds.X[i]
		pts[i].Y = ds.Y[i]
		if ds.X[i] < xMin {
			xMin = ds.X[i]
		}
		if ds.X[i] > xMax {
			xMax = ds.X[i]
		}
	}

	p := plot.New()
	p.Title.Text = "Simulated data with fitted line"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "ScatterWithFit: scatter")
	}
	p.Add(scatter)

	coeffs, err := fit.Coefficients()
	if err != nil {
		return nil, err
	}
	intercept := coeffs[0].Estimate
	slope := coeffs[1].Estimate

	line, err := plotter.NewLine(plotter.XYs{
		{X: xMin, Y: intercept + slope*xMin},
		{X: xMax, Y: intercept + slope*xMax},
	})
	if err != nil {
		return nil, errors.Wrap(err, "ScatterWithFit: line")
	}
	p.Add(line)

	return p, nil
}

// EstimateBox draws a boxplot of each coefficient's point-estimate
// distribution across trials.
func EstimateBox(table *simulate.EstimateTable) (*plot.Plot, error) {
	names := table.Names()
	if len(names) == 0 {
		return nil, errors.NewValueError("EstimateBox", "empty table")
	}

	p := plot.New()
	p.Title.Text = "Estimate distributions across trials"
	p.Y.Label.Text = "estimate"

	for i, name := range names {
		recs := table.ByName(name)
		if len(recs) == 0 {
			return nil, errors.NewValueError("EstimateBox", "no records for coefficient "+name)
		}
		values := make(plotter.Values, len(recs))
		for j, rec := range recs {
			values[j] = rec.Estimate
		}

		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), values)
		if err != nil {
			return nil, errors.Wrap(err, "EstimateBox: box for "+name)
		}
		p.Add(box)
	}
	p.NominalX(names...)

	return p, nil
}

// intervalXYs adapts sorted records to the plotter interfaces: point
// estimates as Y values over a rank axis, with asymmetric error bars
// spanning each confidence interval.
type intervalXYs []simulate.Record

func (iv intervalXYs) Len() int { return len(iv) }

func (iv intervalXYs) XY(i int) (x, y float64) {
	return float64(i), iv[i].Estimate
}

func (iv intervalXYs) YError(i int) (low, high float64) {
	// Distances below and above the point, not absolute bounds.
	return iv[i].Estimate - iv[i].Low, iv[i].High - iv[i].Estimate
}

// IntervalPlot draws one coefficient's per-trial confidence intervals
// ordered by point-estimate magnitude, with a horizontal line at the
// true parameter value. The ordering comes from the table's
// presentation-only sorted view; the stored records are untouched.
func IntervalPlot(table *simulate.EstimateTable, name string, truth float64) (*plot.Plot, error) {
	sorted := table.SortedByEstimate(name)
	if len(sorted) == 0 {
		return nil, errors.NewValueError("IntervalPlot", "no records for coefficient "+name)
	}

	p := plot.New()
	p.Title.Text = "Per-trial confidence intervals: " + name
	p.X.Label.Text = "trial (ordered by estimate)"
	p.Y.Label.Text = "estimate"

	data := intervalXYs(sorted)

	scatter, err := plotter.NewScatter(data)
	if err != nil {
		return nil, errors.Wrap(err, "IntervalPlot: scatter")
	}
	p.Add(scatter)

	bars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return nil, errors.Wrap(err, "IntervalPlot: error bars")
	}
	p.Add(bars)

	truthLine, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: truth},
		{X: float64(len(sorted) - 1), Y: truth},
	})
	if err != nil {
		return nil, errors.Wrap(err, "IntervalPlot: truth line")
	}
	p.Add(truthLine)

	return p, nil
}

// Save writes a plot as a 6x4 inch image; the format follows the file
// extension.
func Save(p *plot.Plot, filename string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrap(err, "Save")
	}
	return nil
}
