package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
)

// Source represents one input bitmap.
type Source struct {
	// Path is the path as given or as found while walking a directory.
	Path string
	// Size is the file size in bytes.
	Size int64
}

// ScanInputs expands paths into bitmap sources. Files are taken as given
// whatever their extension; directories are walked for *.bmp files, skipping
// hidden directories. The result is sorted and free of duplicates. A named
// path that cannot be found is reported as bmp.ErrOpen.
func ScanInputs(paths []string) ([]Source, error) {
	seen := map[string]bool{}
	var sources []Source

	add := func(path string, size int64) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		sources = append(sources, Source{Path: clean, Size: size})
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &bmp.Error{Kind: bmp.ErrOpen, File: p, Op: bmp.OpRead, Err: err}
		}
		if !info.IsDir() {
			add(p, info.Size())
			continue
		}

		err = filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				// Skip hidden directories.
				if path != p && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".bmp") {
				add(path, info.Size())
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}
