package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Daniel-olaO/porespy/generators"
	"github.com/Daniel-olaO/porespy/visualization"
	"github.com/Daniel-olaO/porespy/voxel"
)

// Generator kinds accepted by the --kind flag.
const (
	KindBlobs   = "blobs"
	KindSpheres = "spheres"
	KindNoise   = "noise"
)

// ErrUnknownKind is returned when --kind names no generator.
var ErrUnknownKind = errors.New("unknown generator kind (expected blobs, spheres or noise)")

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic binary porous image",
		Long: `Generate produces a random binary image with a target porosity and
writes it to a voxel file. Blobs images have smooth correlated void
regions, spheres images carve overlapping spherical pores, and noise
images flip voxels independently.

The same seed always reproduces the same image.`,
		Example: `  porespy generate --shape 100x100 --porosity 0.6 -o sample.txt
  porespy generate --kind spheres --shape 50x50x50 --radius 6 -o packing.json
  porespy generate --kind blobs --blobiness 2 --seed 7 -o blobs.png --preview blobs_view.png`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().String("kind", KindBlobs, "Generator kind: blobs, spheres or noise")
	cmd.Flags().String("shape", "100x100", "Image shape as AxB or AxBxC voxels")
	cmd.Flags().Float64("porosity", 0.5, "Target void fraction in (0, 1)")
	cmd.Flags().Float64("blobiness", 1, "Blob size factor (blobs only, larger means coarser)")
	cmd.Flags().Float64("radius", 5, "Sphere radius in voxels (spheres only)")
	cmd.Flags().Int64("seed", generators.DefaultSeed, "Random seed")
	cmd.Flags().StringP("output", "o", "", "Output voxel file (.txt, .png or .json)")
	cmd.Flags().String("preview", "", "Render a PNG preview to this path")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	flags := cmd.Flags()
	kind, err := flags.GetString("kind")
	if err != nil {
		return err
	}
	shapeArg, err := flags.GetString("shape")
	if err != nil {
		return err
	}
	shape, err := parseShape(shapeArg)
	if err != nil {
		return err
	}
	porosity, err := flags.GetFloat64("porosity")
	if err != nil {
		return err
	}
	seed, err := flags.GetInt64("seed")
	if err != nil {
		return err
	}

	var im *voxel.Image
	switch kind {
	case KindBlobs:
		blobiness, err := flags.GetFloat64("blobiness")
		if err != nil {
			return err
		}
		im, err = generators.Blobs(shape, porosity, blobiness, generators.WithSeed(seed))
		if err != nil {
			return err
		}
	case KindSpheres:
		radius, err := flags.GetFloat64("radius")
		if err != nil {
			return err
		}
		im, err = generators.OverlappingSpheres(shape, radius, porosity, generators.WithSeed(seed))
		if err != nil {
			return err
		}
	case KindNoise:
		im, err = generators.Noise(shape, porosity, generators.WithSeed(seed))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	output, err := flags.GetString("output")
	if err != nil {
		return err
	}
	if err := voxel.WriteFile(output, im); err != nil {
		return err
	}
	logger.Info("image generated",
		"kind", kind,
		"shape", shapeArg,
		"porosity", im.Porosity(),
		"output", output)

	preview, err := flags.GetString("preview")
	if err != nil {
		return err
	}
	if preview == "" {
		return nil
	}
	if err := writePreview(im, preview); err != nil {
		return err
	}
	logger.Info("preview rendered", "path", preview)
	return nil
}

// parseShape converts an AxB or AxBxC dimension string to a shape
// slice. Rank and positivity checks belong to the generators.
func parseShape(s string) ([]int, error) {
	parts := strings.Split(s, "x")
	shape := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid shape %q: expected dimensions like 64x64x32", s)
		}
		shape = append(shape, n)
	}
	return shape, nil
}

// writePreview renders the image as a PNG: the middle slice along the
// first axis for rank-3 images, the image itself for rank 2.
func writePreview(im *voxel.Image, path string) error {
	if im.NDim() == 3 {
		return visualization.SlicePNG(im, 0, im.Dim(0)/2, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer f.Close()
	return voxel.EncodePNG(f, im)
}
