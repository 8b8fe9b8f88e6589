package filters_test

import (
	"math/rand"
	"testing"

	"github.com/Daniel-olaO/porespy/filters"
	"github.com/Daniel-olaO/porespy/voxel"
)

// randomImage builds a deterministic random binary image with the
// given porosity.
func randomImage(b *testing.B, porosity float64, shape ...int) *voxel.Image {
	b.Helper()
	im, err := voxel.New(shape...)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	rng := rand.New(rand.NewSource(42))
	raw := im.Raw()
	for i := range raw {
		raw[i] = rng.Float64() < porosity
	}
	return im
}

// BenchmarkLabel measures labeling on a 512x512 random image at 60%
// porosity under face connectivity.
func BenchmarkLabel(b *testing.B) {
	im := randomImage(b, 0.6, 512, 512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = filters.Label(im, voxel.Faces)
	}
}

// BenchmarkTrimNonpercolatingPaths measures the full trim on a 3D
// 64x64x64 random image near the percolation threshold.
func BenchmarkTrimNonpercolatingPaths(b *testing.B) {
	im := randomImage(b, 0.35, 64, 64, 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := filters.TrimNonpercolatingPaths(im, 0, 0); err != nil {
			b.Fatalf("trim failed: %v", err)
		}
	}
}
