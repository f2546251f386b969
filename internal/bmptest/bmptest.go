// Package bmptest builds small 24-bit BMP files for tests and fixtures.
package bmptest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
)

// HeaderSize is the size of the file header plus BITMAPINFOHEADER.
const HeaderSize = 14 + bmp.InfoHeaderSize

// Build encodes rows (in on-disk order) as a 24-bit BMP. All rows must have
// the same length. Padding bytes are filled with fill so that tests can tell
// copied padding from rewritten padding.
func Build(rows [][]bmp.Pixel, fill byte) []byte {
	var width int
	if len(rows) > 0 {
		width = len(rows[0])
	}
	height := len(rows)
	pad := int(bmp.PaddingCompat(uint32(width)))
	stride := width*bmp.PixelSize + pad
	size := HeaderSize + stride*height

	b := make([]byte, size)
	b[0], b[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(b[2:], uint32(size))
	binary.LittleEndian.PutUint32(b[10:], HeaderSize)
	binary.LittleEndian.PutUint32(b[14:], bmp.InfoHeaderSize)
	binary.LittleEndian.PutUint32(b[18:], uint32(width))
	binary.LittleEndian.PutUint32(b[22:], uint32(height))
	binary.LittleEndian.PutUint16(b[26:], 1)
	binary.LittleEndian.PutUint16(b[28:], bmp.BitDepth)
	binary.LittleEndian.PutUint32(b[34:], uint32(stride*height))
	binary.LittleEndian.PutUint32(b[38:], 2835) // 72 DPI
	binary.LittleEndian.PutUint32(b[42:], 2835)

	off := HeaderSize
	for _, row := range rows {
		for _, p := range row {
			b[off], b[off+1], b[off+2] = p.B, p.G, p.R
			off += bmp.PixelSize
		}
		for i := 0; i < pad; i++ {
			b[off] = fill
			off++
		}
	}
	return b
}

// Rows decodes the pixel rows of a BMP produced by Build or by a conversion,
// in on-disk order.
func Rows(data []byte) [][]bmp.Pixel {
	offset := int(binary.LittleEndian.Uint32(data[10:]))
	width := int(binary.LittleEndian.Uint32(data[18:]))
	height := int(binary.LittleEndian.Uint32(data[22:]))
	stride := width*bmp.PixelSize + int(bmp.PaddingCompat(uint32(width)))

	rows := make([][]bmp.Pixel, height)
	for y := range rows {
		rows[y] = make([]bmp.Pixel, width)
		base := offset + y*stride
		for x := range rows[y] {
			o := base + x*bmp.PixelSize
			rows[y][x] = bmp.Pixel{B: data[o], G: data[o+1], R: data[o+2]}
		}
	}
	return rows
}

// Gradient returns w×h rows with every channel varying.
func Gradient(w, h int) [][]bmp.Pixel {
	rows := make([][]bmp.Pixel, h)
	for y := range rows {
		rows[y] = make([]bmp.Pixel, w)
		for x := range rows[y] {
			rows[y][x] = bmp.Pixel{
				B: uint8(x * 255 / max(w, 1)),
				G: uint8(y * 255 / max(h, 1)),
				R: uint8((x*7 + y*13) % 256),
			}
		}
	}
	return rows
}

// WriteFile writes Build(rows, 0) to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, rows [][]bmp.Pixel) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(rows, 0), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
