package visualization

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// ProfilePNG plots values against slice position as a line chart PNG.
// label names the quantity and becomes the Y axis label and legend
// entry. Pairs with metrics.PorosityProfile and metrics.FieldProfile.
func ProfilePNG(values []float64, label, path string) error {
	if len(values) == 0 {
		return ErrEmptyProfile
	}
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	p := plot.New()
	p.X.Label.Text = "slice"
	p.Y.Label.Text = label
	if err := plotutil.AddLines(p, label, pts); err != nil {
		return fmt.Errorf("visualization: build profile: %w", err)
	}
	if err := p.Save(renderSize, renderSize, path); err != nil {
		return fmt.Errorf("visualization: save profile: %w", err)
	}
	return nil
}
