package voxel

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DecodeText reads the plain-text codec: rows of contiguous 0/1 digits,
// one line per row, with a single blank line between Z slices for 3D
// images. One block decodes to rank 2, several blocks to rank 3.
// Returns ErrNotBinary on foreign characters, ErrRagged on uneven rows
// or blocks, ErrBadShape on empty input.
// Complexity: O(n).
func DecodeText(r io.Reader) (*Image, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var blocks [][][]bool
	var cur [][]bool
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		row := make([]bool, len(line))
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '0':
				row[i] = false
			case '1':
				row[i] = true
			default:
				return nil, fmt.Errorf("%w: character %q", ErrNotBinary, line[i])
			}
		}
		cur = append(cur, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("voxel: decode text: %w", err)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	switch len(blocks) {
	case 0:
		return nil, fmt.Errorf("%w: empty text input", ErrBadShape)
	case 1:
		return From2D(blocks[0])
	default:
		return From3D(blocks)
	}
}

// EncodeText writes the plain-text codec understood by DecodeText.
// Complexity: O(n).
func EncodeText(w io.Writer, im *Image) error {
	bw := bufio.NewWriter(w)
	shape := im.shape
	writeRow := func(base int) error {
		n := shape[len(shape)-1]
		for x := 0; x < n; x++ {
			ch := byte('0')
			if im.data[base+x] {
				ch = '1'
			}
			if err := bw.WriteByte(ch); err != nil {
				return err
			}
		}
		return bw.WriteByte('\n')
	}
	if len(shape) == 2 {
		for y := 0; y < shape[0]; y++ {
			if err := writeRow(y * im.stride[0]); err != nil {
				return fmt.Errorf("voxel: encode text: %w", err)
			}
		}
		return bw.Flush()
	}
	for z := 0; z < shape[0]; z++ {
		if z > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("voxel: encode text: %w", err)
			}
		}
		for y := 0; y < shape[1]; y++ {
			if err := writeRow(z*im.stride[0] + y*im.stride[1]); err != nil {
				return fmt.Errorf("voxel: encode text: %w", err)
			}
		}
	}
	return bw.Flush()
}

// DecodePNG reads a 2D binary image from PNG data. Pixels at or above
// half luminance decode to true (void), darker pixels to false.
// Complexity: O(n).
func DecodePNG(r io.Reader) (*Image, error) {
	src, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("voxel: decode png: %w", err)
	}
	b := src.Bounds()
	im, err := New(b.Dy(), b.Dx())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			im.data[y*im.stride[0]+x] = g.Y >= 128
		}
	}
	return im, nil
}

// EncodePNG writes a rank-2 image as PNG, true voxels white.
// Returns ErrRankMismatch for rank-3 images.
// Complexity: O(n).
func EncodePNG(w io.Writer, im *Image) error {
	if im.NDim() != 2 {
		return fmt.Errorf("%w: PNG encoding requires rank 2", ErrRankMismatch)
	}
	dst := image.NewGray(image.Rect(0, 0, im.shape[1], im.shape[0]))
	for y := 0; y < im.shape[0]; y++ {
		for x := 0; x < im.shape[1]; x++ {
			if im.data[y*im.stride[0]+x] {
				dst.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	if err := png.Encode(w, dst); err != nil {
		return fmt.Errorf("voxel: encode png: %w", err)
	}
	return nil
}

// EncodeFieldText writes a float64 field as plain text: one row per
// line with space-separated values, a blank line between Z slices for
// rank-3 fields. The layout mirrors EncodeText for binary images.
// Complexity: O(n).
func EncodeFieldText(w io.Writer, f *Field) error {
	bw := bufio.NewWriter(w)
	shape := f.shape
	writeRow := func(base int) error {
		n := shape[len(shape)-1]
		for x := 0; x < n; x++ {
			if x > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(f.data[base+x], 'g', -1, 64)); err != nil {
				return err
			}
		}
		return bw.WriteByte('\n')
	}
	if len(shape) == 2 {
		for y := 0; y < shape[0]; y++ {
			if err := writeRow(y * f.stride[0]); err != nil {
				return fmt.Errorf("voxel: encode field text: %w", err)
			}
		}
		return bw.Flush()
	}
	for z := 0; z < shape[0]; z++ {
		if z > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("voxel: encode field text: %w", err)
			}
		}
		for y := 0; y < shape[1]; y++ {
			if err := writeRow(z*f.stride[0] + y*f.stride[1]); err != nil {
				return fmt.Errorf("voxel: encode field text: %w", err)
			}
		}
	}
	return bw.Flush()
}

// WriteFieldFile stores a field on disk in the text layout.
func WriteFieldFile(path string, f *Field) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("voxel: write %s: %w", path, err)
	}
	defer file.Close()
	return EncodeFieldText(file, f)
}

// ReadFile loads an image from disk, selecting the codec by extension:
// ".png" uses the PNG decoder, anything else the text codec.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("voxel: read %s: %w", path, err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return DecodePNG(f)
	}
	return DecodeText(f)
}

// WriteFile stores an image on disk with the same extension dispatch
// as ReadFile.
func WriteFile(path string, im *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("voxel: write %s: %w", path, err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return EncodePNG(f, im)
	}
	return EncodeText(f, im)
}
