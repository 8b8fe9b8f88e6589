package visualization

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Daniel-olaO/porespy/voxel"
)

var (
	// ErrNilField indicates a nil field argument.
	ErrNilField = errors.New("visualization: field is nil")
	// ErrNilImage indicates a nil image argument.
	ErrNilImage = errors.New("visualization: image is nil")
	// ErrEmptyProfile indicates a profile with no values.
	ErrEmptyProfile = errors.New("visualization: profile has no values")
)

// heatPaletteColors is the number of bands in the heat palette.
const heatPaletteColors = 12

// renderSize is the square edge length of saved heat maps.
const renderSize = 4 * vg.Inch

// fieldGrid adapts rows[r][c] data to plotter.GridXYZ. Plot space
// grows upward, so Z flips the row order to keep row 0 on top.
type fieldGrid struct {
	rows [][]float64
}

func (g fieldGrid) Dims() (c, r int)   { return len(g.rows[0]), len(g.rows) }
func (g fieldGrid) Z(c, r int) float64 { return g.rows[len(g.rows)-1-r][c] }
func (g fieldGrid) X(c int) float64    { return float64(c) }
func (g fieldGrid) Y(r int) float64    { return float64(r) }

// HeatmapPNG renders a whole rank-2 field as a heat map PNG.
// Returns ErrNilField on nil input and voxel.ErrRankMismatch for
// rank-3 fields (use SliceHeatmapPNG instead).
func HeatmapPNG(f *voxel.Field, path string) error {
	if f == nil {
		return ErrNilField
	}
	rows, err := f.Grid()
	if err != nil {
		return fmt.Errorf("visualization: %w", err)
	}
	return saveHeatmap(rows, path)
}

// SliceHeatmapPNG renders one cross-section of a rank-3 field as a
// heat map PNG. The cut is taken at coordinate index along axis, with
// the same convention as Field.Slice.
func SliceHeatmapPNG(f *voxel.Field, axis, index int, path string) error {
	if f == nil {
		return ErrNilField
	}
	rows, err := f.Slice(axis, index)
	if err != nil {
		return fmt.Errorf("visualization: %w", err)
	}
	return saveHeatmap(rows, path)
}

func saveHeatmap(rows [][]float64, path string) error {
	hm := plotter.NewHeatMap(fieldGrid{rows: rows}, palette.Heat(heatPaletteColors, 1))
	p := plot.New()
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.Add(hm)
	if err := p.Save(renderSize, renderSize, path); err != nil {
		return fmt.Errorf("visualization: save heat map: %w", err)
	}
	return nil
}
