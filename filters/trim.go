package filters

import (
	"fmt"

	"github.com/Daniel-olaO/porespy/voxel"
)

// TrimNonpercolatingPaths removes all void voxels that do not lie on a
// cluster spanning from the inlet face (coordinate 0 along inletAxis)
// to the outlet face (last coordinate along outletAxis). The returned
// image is a fresh copy; the input is never mutated.
//
// Clusters are found under face connectivity, the conservative choice
// for transport: corner contact cannot carry flux between voxels.
//
// A fully percolating image comes back voxel-for-voxel equal. When no
// cluster spans both faces the result is all solid; callers decide
// whether that is an error (the simulation pipeline does).
//
// Returns ErrNilImage or voxel.ErrAxisOutOfRange on bad input.
//
// Time:   O(n*d). Memory: O(n).
func TrimNonpercolatingPaths(im *voxel.Image, inletAxis, outletAxis int) (*voxel.Image, error) {
	if im == nil {
		return nil, ErrNilImage
	}
	if err := im.CheckAxis(inletAxis); err != nil {
		return nil, fmt.Errorf("filters: inlet: %w", err)
	}
	if err := im.CheckAxis(outletAxis); err != nil {
		return nil, fmt.Errorf("filters: outlet: %w", err)
	}

	labels, n := Label(im, voxel.Faces)
	if n == 0 {
		// No void phase at all; nothing to keep.
		return voxel.New(im.Shape()...)
	}

	inSet, err := labelsOnFace(im, labels, inletAxis, voxel.Min)
	if err != nil {
		return nil, err
	}
	outSet, err := labelsOnFace(im, labels, outletAxis, voxel.Max)
	if err != nil {
		return nil, err
	}

	// Percolating clusters appear on both faces.
	keep := make(map[int32]struct{}, len(inSet))
	for l := range inSet {
		if _, ok := outSet[l]; ok {
			keep[l] = struct{}{}
		}
	}

	out, err := voxel.New(im.Shape()...)
	if err != nil {
		return nil, err
	}
	dst := out.Raw()
	for idx, l := range labels {
		if l == 0 {
			continue
		}
		if _, ok := keep[l]; ok {
			dst[idx] = true
		}
	}
	return out, nil
}

// FindDisconnectedVoxels returns the mask of void voxels whose cluster
// touches no boundary face of the image (floating pores). conn selects
// the neighbourhood used for clustering.
//
// Time: O(n*d). Memory: O(n).
func FindDisconnectedVoxels(im *voxel.Image, conn voxel.Connectivity) (*voxel.Image, error) {
	if im == nil {
		return nil, ErrNilImage
	}
	labels, _ := Label(im, conn)
	surface := boundaryLabels(im, labels)

	mask, err := voxel.New(im.Shape()...)
	if err != nil {
		return nil, err
	}
	dst := mask.Raw()
	for idx, l := range labels {
		if l == 0 {
			continue
		}
		if _, ok := surface[l]; !ok {
			dst[idx] = true
		}
	}
	return mask, nil
}

// FillBlindPores turns void clusters that touch no boundary face into
// solid. The input is never mutated.
//
// Time: O(n*d). Memory: O(n).
func FillBlindPores(im *voxel.Image) (*voxel.Image, error) {
	if im == nil {
		return nil, ErrNilImage
	}
	mask, err := FindDisconnectedVoxels(im, voxel.Faces)
	if err != nil {
		return nil, err
	}
	out := im.Clone()
	dst := out.Raw()
	for idx, blind := range mask.Raw() {
		if blind {
			dst[idx] = false
		}
	}
	return out, nil
}

// TrimFloatingSolid turns solid clusters that touch no boundary face
// into void, the dual of FillBlindPores. The input is never mutated.
//
// Time: O(n*d). Memory: O(n).
func TrimFloatingSolid(im *voxel.Image) (*voxel.Image, error) {
	if im == nil {
		return nil, ErrNilImage
	}
	inv := im.Clone()
	raw := inv.Raw()
	for i := range raw {
		raw[i] = !raw[i]
	}
	mask, err := FindDisconnectedVoxels(inv, voxel.Faces)
	if err != nil {
		return nil, err
	}
	out := im.Clone()
	dst := out.Raw()
	for idx, floating := range mask.Raw() {
		if floating {
			dst[idx] = true
		}
	}
	return out, nil
}
