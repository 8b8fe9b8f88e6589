// Package porespy estimates transport properties of porous materials
// from binary voxel images by direct numerical simulation.
//
// What it does:
//
//	Given a 2D/3D image whose true voxels mark the void phase, porespy
//	keeps only the void that percolates along a chosen axis, meshes it
//	into a cubic pore network, solves steady-state Fickian diffusion
//	across the network, and reduces the boundary fluxes to scalar
//	transport metrics:
//		• tortuosity        τ  = ε_eff / D_eff
//		• formation factor  F  = 1 / D_eff
//		• effective and original porosity
//		• inlet/outlet molar rates (a built-in conservation check)
//
// The work is organized as small domain packages, each usable on its
// own:
//
//	voxel/         — binary images and scalar fields, text/PNG codecs
//	filters/       — cluster labeling and percolation trimming
//	network/       — cubic pore networks from template images
//	solver/        — sparse CSR assembly, CG and dense Cholesky kernels
//	fickian/       — steady-state diffusion with Dirichlet boundaries
//	dns/           — the tortuosity pipeline tying it all together
//	metrics/       — porosity and concentration profiles, summaries
//	generators/    — synthetic blob, sphere and noise images
//	visualization/ — heat maps, slice renders and profile charts
//	cmd/porespy    — the command-line interface
//
// Quick sketch: a 2D image, '1' marking void,
//
//	11011
//	11011
//	11111
//
// percolates top-to-bottom through the left and right channels; the
// tortuosity along that axis measures how much longer the diffusion
// path is than the straight line.
//
// Minimal use:
//
//	im, _ := voxel.ReadFile("sample.txt")
//	res, err := dns.Tortuosity(im, 0)
//	if err != nil { ... }
//	fmt.Println(res.Tortuosity)
//
//	go get github.com/Daniel-olaO/porespy
package porespy
