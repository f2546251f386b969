package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bmpfx.yaml")
	content := `output_dir: out
workers: 2
padding: aligned
verbose: true
preview:
  width: 64
  format: jpeg
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		OutputDir: "out",
		Workers:   2,
		Padding:   "aligned",
		Verbose:   true,
		Preview:   Preview{Width: 64, Format: "jpeg", Quality: 85},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":     "colour: red\n",
		"bad padding":     "padding: standard\n",
		"negative worker": "workers: -1\n",
		"bad format":      "preview:\n  format: gif\n",
		"bad yaml":        "workers: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEffectiveWorkers(t *testing.T) {
	if got := (Config{Workers: 3}).EffectiveWorkers(); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if got := (Config{}).EffectiveWorkers(); got < 1 {
		t.Errorf("got %d, want >= 1", got)
	}
}
