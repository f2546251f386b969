package pipeline

import (
	"fmt"
	"os"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/hasher"
	"github.com/AnyUserName/bmpfx-cli/internal/report"
)

// processResult holds the outcome of converting a single source.
type processResult struct {
	key   string
	entry report.Entry
	err   error
}

// processFile converts one source into outPath. The source and sink are owned
// by this call and closed before it returns; a failed conversion leaves no
// output file behind.
func processFile(src Source, outPath string, cfg Config) (result processResult) {
	result.key = src.Path

	in, err := bmp.Open(src.Path, cfg.Padding)
	if err != nil {
		result.err = err
		return result
	}
	defer in.Close()

	out, err := bmp.Create(outPath)
	if err != nil {
		result.err = err
		return result
	}
	defer func() {
		if result.err != nil {
			os.Remove(outPath)
		}
	}()

	if err := bmp.Convert(in, out, cfg.Policy.New()); err != nil {
		out.Close()
		result.err = err
		return result
	}
	if err := out.Close(); err != nil {
		result.err = err
		return result
	}

	info, err := os.Stat(outPath)
	if err != nil {
		result.err = fmt.Errorf("stat %s: %w", outPath, err)
		return result
	}
	sum, err := hasher.FileHash(outPath)
	if err != nil {
		result.err = err
		return result
	}

	h := in.Header
	result.entry = report.Entry{
		Output:      outPath,
		Width:       h.Width,
		Height:      h.Height,
		Padding:     h.Padding,
		PixelOffset: h.PixelOffset,
		InputSize:   int64(h.FileSize),
		OutputSize:  info.Size(),
		Hash:        sum,
	}
	return result
}
