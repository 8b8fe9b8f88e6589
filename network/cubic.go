package network

import (
	"fmt"

	"github.com/Daniel-olaO/porespy/voxel"
)

// FromTemplate carves a cubic network out of the void phase of im.
//
// Contract:
//   - Pores are numbered in ascending flat voxel index, so identical
//     templates always produce identical networks.
//   - Throats connect face-adjacent void voxels and are emitted once,
//     toward the +axis neighbour, axes ascending.
//   - Every throat starts with the configured uniform conductance.
//
// Returns ErrNilTemplate, ErrEmptyTemplate, or an option error.
//
// Time:   O(n*rank) over n template voxels.
// Memory: O(n) for the lookup plus O(p + t) for the network.
func FromTemplate(im *voxel.Image, opts ...Option) (*Cubic, error) {
	if im == nil {
		return nil, ErrNilTemplate
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	data := im.Raw()
	rank := im.NDim()
	shape := im.Shape()
	stride := im.Strides()

	// First pass: number the pores.
	lookup := make([]int32, len(data))
	template := make([]int, 0, im.Count())
	for idx, void := range data {
		if void {
			lookup[idx] = int32(len(template))
			template = append(template, idx)
		} else {
			lookup[idx] = -1
		}
	}
	if len(template) == 0 {
		return nil, ErrEmptyTemplate
	}

	// Pore coordinates, flattened rank ints per pore.
	coords := make([]int, len(template)*rank)
	c := make([]int, rank)
	for p, idx := range template {
		im.CoordinateInto(idx, c)
		copy(coords[p*rank:(p+1)*rank], c)
	}

	// Second pass: emit throats toward the +axis neighbour only, so
	// each adjacency is stored exactly once.
	throats := make([][2]int, 0, len(template)*rank/2)
	for p, idx := range template {
		base := coords[p*rank : (p+1)*rank]
		for ax := 0; ax < rank; ax++ {
			if base[ax]+1 >= shape[ax] {
				continue
			}
			nIdx := idx + stride[ax]
			if q := lookup[nIdx]; q >= 0 {
				throats = append(throats, [2]int{p, int(q)})
			}
		}
	}

	conductance := make([]float64, len(throats))
	for i := range conductance {
		conductance[i] = o.conductance
	}

	return &Cubic{
		shape:       shape,
		spacing:     o.spacing,
		coords:      coords,
		rank:        rank,
		template:    template,
		lookup:      lookup,
		throats:     throats,
		conductance: conductance,
	}, nil
}

// NumPores reports the pore count.
func (c *Cubic) NumPores() int { return len(c.template) }

// NumThroats reports the throat count.
func (c *Cubic) NumThroats() int { return len(c.throats) }

// Rank reports the template rank (2 or 3).
func (c *Cubic) Rank() int { return c.rank }

// Shape returns a copy of the template extents.
func (c *Cubic) Shape() []int {
	s := make([]int, len(c.shape))
	copy(s, c.shape)
	return s
}

// Spacing reports the lattice spacing.
func (c *Cubic) Spacing() float64 { return c.spacing }

// PoreCoord returns a copy of the voxel coordinate of pore p.
// Returns ErrPoreIndex when p is out of range.
func (c *Cubic) PoreCoord(p int) ([]int, error) {
	if p < 0 || p >= len(c.template) {
		return nil, fmt.Errorf("%w: %d", ErrPoreIndex, p)
	}
	out := make([]int, c.rank)
	copy(out, c.coords[p*c.rank:(p+1)*c.rank])
	return out, nil
}

// TemplateIndex returns the flat voxel index backing pore p.
// Returns ErrPoreIndex when p is out of range.
func (c *Cubic) TemplateIndex(p int) (int, error) {
	if p < 0 || p >= len(c.template) {
		return 0, fmt.Errorf("%w: %d", ErrPoreIndex, p)
	}
	return c.template[p], nil
}

// TemplateIndices exposes the flat voxel index per pore. Callers must
// not mutate the returned slice; the simulation pipeline scatters
// pore-wise solutions through it.
func (c *Cubic) TemplateIndices() []int { return c.template }

// Throat returns the endpoint pores of throat t.
// Returns ErrThroatIndex when t is out of range.
func (c *Cubic) Throat(t int) (i, j int, err error) {
	if t < 0 || t >= len(c.throats) {
		return 0, 0, fmt.Errorf("%w: %d", ErrThroatIndex, t)
	}
	return c.throats[t][0], c.throats[t][1], nil
}

// Throats exposes the endpoint list. Callers must not mutate it.
func (c *Cubic) Throats() [][2]int { return c.throats }

// Conductances exposes the per-throat diffusive conductance backing
// slice. Mutating entries is the supported way to assign a non-uniform
// conductance field before running a simulation.
func (c *Cubic) Conductances() []float64 { return c.conductance }

// PoresOnFace returns the pores whose coordinate along axis sits on
// the named face, ascending. These are the inlet/outlet sets used for
// fixed-concentration boundaries.
// Returns voxel.ErrAxisOutOfRange on a bad axis.
//
// Time: O(p).
func (c *Cubic) PoresOnFace(axis int, side voxel.Side) ([]int, error) {
	if axis < 0 || axis >= c.rank {
		return nil, fmt.Errorf("network: %w: axis %d for rank %d", voxel.ErrAxisOutOfRange, axis, c.rank)
	}
	want := 0
	if side == voxel.Max {
		want = c.shape[axis] - 1
	}
	var out []int
	for p := 0; p < len(c.template); p++ {
		if c.coords[p*c.rank+axis] == want {
			out = append(out, p)
		}
	}
	return out, nil
}
