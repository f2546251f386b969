package preview

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/bmptest"
	"github.com/AnyUserName/bmpfx-cli/internal/encoder"
)

func TestLoad(t *testing.T) {
	path := bmptest.WriteFile(t, t.TempDir(), "p.bmp", bmptest.Gradient(6, 4))
	img, h, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h.Width != 6 || h.Height != 4 {
		t.Errorf("header %dx%d", h.Width, h.Height)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("bounds %v", b)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bmp")
	data := bmptest.Build(bmptest.Gradient(2, 2), 0)
	data[28] = 8
	os.WriteFile(path, data, 0o644)
	if _, _, err := Load(path, nil); !errors.Is(err, bmp.ErrUnsupportedBitDepth) {
		t.Errorf("got %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestFit(t *testing.T) {
	path := bmptest.WriteFile(t, t.TempDir(), "p.bmp", bmptest.Gradient(40, 20))
	img, _, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b := Fit(img, 10).Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("fit 10: %v", b)
	}
	if Fit(img, 100) != img {
		t.Error("upscaled a narrow image")
	}
	if Fit(img, 0) != img {
		t.Error("width 0 should keep the image")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img, _, err := Load(bmptest.WriteFile(t, dir, "p.bmp", bmptest.Gradient(4, 4)), nil)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "p.png")
	if err := WriteFile(out, img, &encoder.PNGEncoder{}, 0); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, _ := os.ReadFile(out)
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("decode written png: %v", err)
	}
}

func TestRenderBlocks(t *testing.T) {
	img, _, err := Load(bmptest.WriteFile(t, t.TempDir(), "p.bmp", bmptest.Gradient(3, 2)), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := RenderBlocks(&buf, img); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if n := strings.Count(lines[0], "\033[0m"); n != 3 {
		t.Errorf("got %d blocks in first line, want 3", n)
	}
}

func TestColoredBlock(t *testing.T) {
	if got := ColoredBlock("  ", 1, 2, 3); got != "\033[48;2;1;2;3m  \033[0m" {
		t.Errorf("got %q", got)
	}
}

func TestTerminalColumns_NotTTY(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, ok := TerminalColumns(f); ok {
		t.Error("regular file reported as terminal")
	}
}
