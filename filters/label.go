// Package filters implements cluster labeling and percolation trimming
// over voxel images.
package filters

import (
	"errors"

	"github.com/Daniel-olaO/porespy/voxel"
)

// ErrNilImage indicates a nil image was passed to a filter.
var ErrNilImage = errors.New("filters: image is nil")

// Label assigns a 1-based cluster label to every true voxel; solid
// voxels keep label 0. Clusters are maximal sets of true voxels
// connected under conn. Labels are issued in ascending order of each
// cluster's smallest flat index, so output is deterministic.
//
// Returns the per-voxel label slice and the number of clusters.
//
// Time:   O(n*d), where d = neighbour degree (4/8 in 2D, 6/26 in 3D).
// Memory: O(n) for labels and the BFS queue.
func Label(im *voxel.Image, conn voxel.Connectivity) ([]int32, int) {
	data := im.Raw()
	labels := make([]int32, len(data))
	rank := im.NDim()
	shape := im.Shape()
	stride := im.Strides()

	// Precompute offset vectors and their flat-index deltas once.
	offs := conn.Offsets(rank)
	flat := make([]int, len(offs))
	for k, o := range offs {
		d := 0
		for ax := 0; ax < rank; ax++ {
			d += o[ax] * stride[ax]
		}
		flat[k] = d
	}

	var next int32
	queue := make([]int, 0, 256)
	c := make([]int, rank)

	for start := range data {
		if !data[start] || labels[start] != 0 {
			continue
		}
		next++
		labels[start] = next
		queue = append(queue[:0], start)

		// BFS over the cluster in flat-index space.
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			im.CoordinateInto(u, c)
			for k, o := range offs {
				inBounds := true
				for ax := 0; ax < rank; ax++ {
					n := c[ax] + o[ax]
					if n < 0 || n >= shape[ax] {
						inBounds = false
						break
					}
				}
				if !inBounds {
					continue
				}
				v := u + flat[k]
				if data[v] && labels[v] == 0 {
					labels[v] = next
					queue = append(queue, v)
				}
			}
		}
	}
	return labels, int(next)
}

// labelsOnFace collects the distinct cluster labels present among the
// true voxels of one face.
func labelsOnFace(im *voxel.Image, labels []int32, axis int, side voxel.Side) (map[int32]struct{}, error) {
	face, err := im.FaceIndices(axis, side)
	if err != nil {
		return nil, err
	}
	set := make(map[int32]struct{})
	for _, idx := range face {
		if l := labels[idx]; l != 0 {
			set[l] = struct{}{}
		}
	}
	return set, nil
}

// boundaryLabels collects the labels of clusters touching any face of
// the image.
func boundaryLabels(im *voxel.Image, labels []int32) map[int32]struct{} {
	set := make(map[int32]struct{})
	rank := im.NDim()
	shape := im.Shape()
	c := make([]int, rank)
	for idx, l := range labels {
		if l == 0 {
			continue
		}
		im.CoordinateInto(idx, c)
		for ax := 0; ax < rank; ax++ {
			if c[ax] == 0 || c[ax] == shape[ax]-1 {
				set[l] = struct{}{}
				break
			}
		}
	}
	return set
}
