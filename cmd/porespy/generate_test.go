package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Daniel-olaO/porespy/voxel"
)

// TestNewGenerateCmd tests the generate command creation.
func TestNewGenerateCmd(t *testing.T) {
	t.Parallel()

	cmd := NewGenerateCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "generate" {
			t.Errorf("expected use 'generate', got %q", cmd.Use)
		}
	})

	t.Run("has descriptions", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has kind flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("kind")
		if flag == nil {
			t.Fatal("expected kind flag")
		}
		if flag.DefValue != KindBlobs {
			t.Errorf("expected default %q, got %q", KindBlobs, flag.DefValue)
		}
	})

	t.Run("has shape flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("shape")
		if flag == nil {
			t.Fatal("expected shape flag")
		}
		if flag.DefValue != "100x100" {
			t.Errorf("expected default '100x100', got %q", flag.DefValue)
		}
	})

	t.Run("has generator parameter flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"porosity", "blobiness", "radius", "seed"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has preview flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("preview") == nil {
			t.Fatal("expected preview flag")
		}
	})
}

// TestParseShape tests dimension string parsing.
func TestParseShape(t *testing.T) {
	t.Parallel()

	t.Run("parses rank 2", func(t *testing.T) {
		t.Parallel()
		shape, err := parseShape("100x50")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(shape) != 2 || shape[0] != 100 || shape[1] != 50 {
			t.Errorf("expected [100 50], got %v", shape)
		}
	})

	t.Run("parses rank 3", func(t *testing.T) {
		t.Parallel()
		shape, err := parseShape("64x64x32")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(shape) != 3 || shape[0] != 64 || shape[1] != 64 || shape[2] != 32 {
			t.Errorf("expected [64 64 32], got %v", shape)
		}
	})

	t.Run("allows spaces around dimensions", func(t *testing.T) {
		t.Parallel()
		shape, err := parseShape("10 x 20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(shape) != 2 || shape[0] != 10 || shape[1] != 20 {
			t.Errorf("expected [10 20], got %v", shape)
		}
	})

	t.Run("rejects non-numeric dimensions", func(t *testing.T) {
		t.Parallel()
		if _, err := parseShape("12xab"); err == nil {
			t.Error("expected error for non-numeric dimension")
		}
	})

	t.Run("rejects trailing separators", func(t *testing.T) {
		t.Parallel()
		if _, err := parseShape("12x"); err == nil {
			t.Error("expected error for trailing separator")
		}
	})
}

// TestRunGenerateCmd exercises the command end to end.
func TestRunGenerateCmd(t *testing.T) {
	t.Parallel()

	t.Run("generates a noise image", func(t *testing.T) {
		t.Parallel()
		output := filepath.Join(t.TempDir(), "noise.txt")

		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"generate", "--kind", "noise", "--shape", "12x10", "--porosity", "0.5", "-o", output})

		if err := root.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		im, err := voxel.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read generated image: %v", err)
		}
		shape := im.Shape()
		if len(shape) != 2 || shape[0] != 12 || shape[1] != 10 {
			t.Errorf("expected shape [12 10], got %v", shape)
		}
		if p := im.Porosity(); p <= 0 || p >= 1 {
			t.Errorf("expected porosity in (0, 1), got %v", p)
		}
	})

	t.Run("generates a blobs image with preview", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		output := filepath.Join(dir, "blobs.txt")
		preview := filepath.Join(dir, "blobs.png")

		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"generate", "--shape", "16x12x10", "--porosity", "0.6", "-o", output, "--preview", preview})

		if err := root.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		im, err := voxel.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read generated image: %v", err)
		}
		shape := im.Shape()
		if len(shape) != 3 || shape[0] != 16 || shape[1] != 12 || shape[2] != 10 {
			t.Errorf("expected shape [16 12 10], got %v", shape)
		}

		f, err := os.Open(preview)
		if err != nil {
			t.Fatalf("failed to open preview: %v", err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			t.Fatalf("expected valid PNG preview: %v", err)
		}
		// The mid slice along axis 0 keeps the trailing dimensions.
		if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 12 {
			t.Errorf("expected 10x12 preview, got %dx%d", b.Dx(), b.Dy())
		}
	})

	t.Run("writes PNG output for spheres", func(t *testing.T) {
		t.Parallel()
		output := filepath.Join(t.TempDir(), "spheres.png")

		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"generate", "--kind", "spheres", "--shape", "20x20", "--radius", "4", "--porosity", "0.5", "-o", output})

		if err := root.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		im, err := voxel.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read generated image: %v", err)
		}
		shape := im.Shape()
		if len(shape) != 2 || shape[0] != 20 || shape[1] != 20 {
			t.Errorf("expected shape [20 20], got %v", shape)
		}
	})

	t.Run("is reproducible for a seed", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		first := filepath.Join(dir, "first.txt")
		second := filepath.Join(dir, "second.txt")

		for _, output := range []string{first, second} {
			root := NewRootCmd()
			root.SetOut(new(bytes.Buffer))
			root.SetArgs([]string{"generate", "--kind", "noise", "--shape", "15x15", "--seed", "42", "-o", output})
			if err := root.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		a, err := os.ReadFile(first)
		if err != nil {
			t.Fatalf("failed to read first image: %v", err)
		}
		b, err := os.ReadFile(second)
		if err != nil {
			t.Fatalf("failed to read second image: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Error("expected identical images for the same seed")
		}
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		t.Parallel()
		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"generate", "--kind", "fractal", "-o", filepath.Join(t.TempDir(), "out.txt")})

		if err := root.Execute(); !errors.Is(err, ErrUnknownKind) {
			t.Errorf("expected ErrUnknownKind, got %v", err)
		}
	})

	t.Run("rejects a malformed shape", func(t *testing.T) {
		t.Parallel()
		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"generate", "--shape", "axb", "-o", filepath.Join(t.TempDir(), "out.txt")})

		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for malformed shape")
		}
		if !strings.Contains(err.Error(), "invalid shape") {
			t.Errorf("expected invalid shape error, got %v", err)
		}
	})

	t.Run("requires the output flag", func(t *testing.T) {
		t.Parallel()
		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"generate"})

		if err := root.Execute(); err == nil {
			t.Error("expected error for missing output flag")
		}
	})
}
