package voxel

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// TestDecodeText_2D parses a two-row binary grid:
//
//	101
//	010
func TestDecodeText_2D(t *testing.T) {
	im, err := DecodeText(strings.NewReader("101\n010\n"))
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if im.NDim() != 2 || im.Dim(0) != 2 || im.Dim(1) != 3 {
		t.Fatalf("shape = %v; want [2 3]", im.Shape())
	}
	if !im.At(0, 0) || im.At(0, 1) || !im.At(1, 1) {
		t.Errorf("decoded values wrong: %v", im.Raw())
	}
}

// TestDecodeText_3D parses two blank-line separated slices into a
// rank-3 image.
func TestDecodeText_3D(t *testing.T) {
	in := "11\n00\n\n01\n10\n"
	im, err := DecodeText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if im.NDim() != 3 {
		t.Fatalf("rank = %d; want 3", im.NDim())
	}
	if !im.At(0, 0, 1) || !im.At(1, 1, 0) || im.At(1, 0, 0) {
		t.Errorf("decoded values wrong")
	}
}

// TestDecodeText_Errors covers foreign characters and ragged rows.
func TestDecodeText_Errors(t *testing.T) {
	if _, err := DecodeText(strings.NewReader("10\n2x\n")); !errors.Is(err, ErrNotBinary) {
		t.Errorf("got %v; want ErrNotBinary", err)
	}
	if _, err := DecodeText(strings.NewReader("10\n1\n")); !errors.Is(err, ErrRagged) {
		t.Errorf("got %v; want ErrRagged", err)
	}
	if _, err := DecodeText(strings.NewReader("")); !errors.Is(err, ErrBadShape) {
		t.Errorf("got %v; want ErrBadShape", err)
	}
}

// TestEncodeText_RoundTrip re-reads an encoded 3D image.
func TestEncodeText_RoundTrip(t *testing.T) {
	im, _ := New(2, 2, 3)
	im.Set(true, 0, 1, 2)
	im.Set(true, 1, 0, 0)

	var buf bytes.Buffer
	if err := EncodeText(&buf, im); err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	back, err := DecodeText(&buf)
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if !back.SameShape(im) {
		t.Fatalf("shape changed: %v vs %v", back.Shape(), im.Shape())
	}
	if !back.At(0, 1, 2) || !back.At(1, 0, 0) || back.At(0, 0, 0) {
		t.Errorf("values changed across round trip")
	}
}

func TestEncodeFieldText(t *testing.T) {
	f, _ := NewField(2, 2)
	f.Set(0.25, 0, 1)
	f.Set(0.5, 1, 0)
	f.Set(1, 1, 1)

	var buf bytes.Buffer
	if err := EncodeFieldText(&buf, f); err != nil {
		t.Fatalf("EncodeFieldText failed: %v", err)
	}
	if got, want := buf.String(), "0 0.25\n0.5 1\n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}

	cube, _ := NewField(2, 1, 2)
	cube.Set(0.75, 1, 0, 1)
	buf.Reset()
	if err := EncodeFieldText(&buf, cube); err != nil {
		t.Fatalf("EncodeFieldText failed: %v", err)
	}
	if got, want := buf.String(), "0 0\n\n0 0.75\n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

// TestPNG_RoundTrip encodes and decodes a small checker pattern.
func TestPNG_RoundTrip(t *testing.T) {
	im, _ := From2D([][]bool{
		{true, false},
		{false, true},
	})
	var buf bytes.Buffer
	if err := EncodePNG(&buf, im); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	back, err := DecodePNG(&buf)
	if err != nil {
		t.Fatalf("DecodePNG failed: %v", err)
	}
	if !back.SameShape(im) {
		t.Fatalf("shape changed: %v", back.Shape())
	}
	for i, v := range im.Raw() {
		if back.Raw()[i] != v {
			t.Fatalf("voxel %d changed across round trip", i)
		}
	}
}

// TestEncodePNG_Rank rejects 3D images.
func TestEncodePNG_Rank(t *testing.T) {
	im, _ := New(2, 2, 2)
	var buf bytes.Buffer
	if err := EncodePNG(&buf, im); !errors.Is(err, ErrRankMismatch) {
		t.Errorf("got %v; want ErrRankMismatch", err)
	}
}

// TestReadWriteFile_Dispatch exercises extension-based codec selection
// through temp files.
func TestReadWriteFile_Dispatch(t *testing.T) {
	dir := t.TempDir()
	im, _ := From2D([][]bool{
		{true, true, false},
		{false, true, true},
	})

	for _, name := range []string{"im.txt", "im.png"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, im); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", name, err)
		}
		back, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) failed: %v", name, err)
		}
		if back.Count() != im.Count() || !back.SameShape(im) {
			t.Errorf("%s: image changed across file round trip", name)
		}
	}
}
