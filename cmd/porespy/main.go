// Package main provides the entry point for the porespy CLI.
//
// porespy simulates steady-state diffusion through the void phase of
// binary porous images and reports tortuosity, formation factor and
// effective diffusivity.
//
// Usage:
//
//	porespy tort <image> --axis 1
//	porespy generate --kind blobs --shape 64x64 --porosity 0.7 -o im.txt
//	porespy history --image im.txt
//
// See --help for all available options.
package main

// main is the entry point for the porespy CLI.
func main() {
	Execute()
}
