package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/Daniel-olaO/porespy/voxel"
)

// SlicePNG renders one cross-section of a rank-3 binary image as a
// black/white PNG, void voxels white. Rank-2 images already render
// whole through voxel.WriteFile; this mirrors that codec for single
// cuts so stacks can be inspected plane by plane.
func SlicePNG(im *voxel.Image, axis, index int, path string) error {
	if im == nil {
		return ErrNilImage
	}
	rows, err := im.Slice(axis, index)
	if err != nil {
		return fmt.Errorf("visualization: %w", err)
	}
	dst := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, void := range row {
			if void {
				dst.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("visualization: write %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		return fmt.Errorf("visualization: encode slice: %w", err)
	}
	return nil
}
