//go:build ignore

// gen_fixtures creates small 24-bit bitmaps for the CLI smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/bmptest"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "rows"), 0o755)

	// Every padding width.
	for w := 1; w <= 4; w++ {
		name := fmt.Sprintf("rows/width-%d.bmp", w)
		write(filepath.Join(dir, name), bmptest.Build(bmptest.Gradient(w, 3), 0))
	}

	write(filepath.Join(dir, "gradient.bmp"), bmptest.Build(bmptest.Gradient(400, 225), 0))
	write(filepath.Join(dir, "sample.bmp"), bmptest.Build([][]bmp.Pixel{
		{{R: 255}, {G: 255}},
		{{B: 255}, {R: 255, G: 255, B: 255}},
	}, 0))

	// Rejected inputs.
	bad := bmptest.Build(bmptest.Gradient(2, 2), 0)
	bad[28] = 8
	write(filepath.Join(dir, "bad-8bpp.bmp"), bad)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 7 fixtures in %s\n", dir)
}

func write(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		panic(err)
	}
}
