// Package preview renders validated bitmaps as PNG/JPEG thumbnails or as
// colored blocks in a terminal.
package preview

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	xbmp "golang.org/x/image/bmp"
	"golang.org/x/term"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/encoder"
)

// Load validates the bitmap at path and decodes it.
func Load(path string, pad bmp.Padding) (image.Image, *bmp.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &bmp.Error{Kind: bmp.ErrOpen, File: path, Op: bmp.OpRead, Err: err}
	}
	defer f.Close()

	src, err := bmp.NewSource(path, f, pad)
	if err != nil {
		return nil, nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("rewind %s: %w", path, err)
	}
	img, err := xbmp.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, src.Header, nil
}

// Fit scales img down to width pixels, keeping the aspect ratio. Images that
// are already narrow enough, and width <= 0, are returned unchanged.
func Fit(img image.Image, width int) image.Image {
	if width <= 0 || img.Bounds().Dx() <= width {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// WriteFile encodes img to path.
func WriteFile(path string, img image.Image, enc encoder.Encoder, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := enc.Encode(w, img, quality); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// TerminalColumns reports the width of the terminal attached to f, or ok =
// false when f is not a terminal.
func TerminalColumns(f *os.File) (cols int, ok bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80, true
	}
	return w, true
}

// RenderBlocks prints img as rows of 24-bit colored blocks, two columns per
// pixel. Use for small images only.
func RenderBlocks(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			bw.WriteString(ColoredBlock("  ", int(r>>8), int(g>>8), int(bl>>8)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ColoredBlock wraps block in an ANSI true-color background escape.
func ColoredBlock(block string, red, green, blue int) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", red, green, blue, block)
}
