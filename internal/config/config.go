// Package config loads bmpfx defaults from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
)

// DefaultPath is read when --config is not given.
const DefaultPath = "bmpfx.yaml"

// Config holds settings that command-line flags override.
type Config struct {
	OutputDir string  `yaml:"output_dir"` // empty: next to each source
	Workers   int     `yaml:"workers"`    // 0: NumCPU
	Padding   string  `yaml:"padding"`    // compat or aligned
	Verbose   bool    `yaml:"verbose"`
	Report    string  `yaml:"report"` // report path, empty for none
	Preview   Preview `yaml:"preview"`
}

// Preview configures the preview command.
type Preview struct {
	Width   int    `yaml:"width"`
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Padding: bmp.PaddingNameCompat,
		Preview: Preview{Width: 256, Format: "png", Quality: 85},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := bmp.ParsePadding(c.Padding); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Preview.Width < 0 {
		return fmt.Errorf("preview.width must not be negative, got %d", c.Preview.Width)
	}
	switch strings.ToLower(c.Preview.Format) {
	case "png", "jpeg", "jpg":
	default:
		return fmt.Errorf("preview.format %q not supported (want png or jpeg)", c.Preview.Format)
	}
	if c.Preview.Quality < 0 || c.Preview.Quality > 100 {
		return fmt.Errorf("preview.quality must be 0-100, got %d", c.Preview.Quality)
	}
	return nil
}

// EffectiveWorkers resolves a zero worker count to the number of CPUs.
func (c Config) EffectiveWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
