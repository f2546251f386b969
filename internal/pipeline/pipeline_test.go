package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/bmptest"
	"github.com/AnyUserName/bmpfx-cli/internal/hasher"
	"github.com/AnyUserName/bmpfx-cli/internal/transform"
)

func policy(t *testing.T, name string) transform.Policy {
	t.Helper()
	p, ok := transform.Get(name)
	if !ok {
		t.Fatalf("policy %q missing", name)
	}
	return p
}

func TestRun_SingleFile(t *testing.T) {
	dir := t.TempDir()
	in := bmptest.WriteFile(t, dir, "cat.bmp", bmptest.Gradient(5, 3))

	r, err := New(Config{Inputs: []string{in}, Policy: policy(t, "invert"), Workers: 1}).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := filepath.Join(dir, "inv_cat.bmp")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	src, _ := os.ReadFile(in)
	if !bytes.Equal(data[:bmptest.HeaderSize], src[:bmptest.HeaderSize]) {
		t.Error("header changed")
	}

	e, ok := r.Files[filepath.Clean(in)]
	if !ok {
		t.Fatalf("report has no entry for %s: %v", in, r.Files)
	}
	if e.Output != out || e.Width != 5 || e.Height != 3 || e.Padding != 1 {
		t.Errorf("entry: %+v", e)
	}
	if want, _ := hasher.FileHash(out); e.Hash != want {
		t.Errorf("hash: got %s, want %s", e.Hash, want)
	}
	if r.Stats.TotalFiles != 1 || r.Stats.TotalPixels != 15 {
		t.Errorf("stats: %+v", r.Stats)
	}
}

func TestRun_DirectoryWithOutDir(t *testing.T) {
	dir := t.TempDir()
	bmptest.WriteFile(t, dir, "a.bmp", bmptest.Gradient(2, 2))
	bmptest.WriteFile(t, dir, "b.BMP", bmptest.Gradient(3, 1))
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644)
	os.Mkdir(filepath.Join(dir, ".cache"), 0o755)
	bmptest.WriteFile(t, filepath.Join(dir, ".cache"), "c.bmp", bmptest.Gradient(1, 1))

	outDir := t.TempDir()
	r, err := New(Config{Inputs: []string{dir}, OutputDir: outDir, Policy: policy(t, "hflip"), Workers: 4}).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Stats.TotalFiles != 2 {
		t.Errorf("converted %d files, want 2", r.Stats.TotalFiles)
	}
	for _, name := range []string{"hflip_a.bmp", "hflip_b.BMP"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRun_FailureRemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	good := bmptest.WriteFile(t, dir, "good.bmp", bmptest.Gradient(2, 2))
	bad := filepath.Join(dir, "bad.bmp")
	data := bmptest.Build(bmptest.Gradient(2, 2), 0)
	data[0] = 'X'
	os.WriteFile(bad, data, 0o644)

	r, err := New(Config{Inputs: []string{good, bad}, Policy: policy(t, "grayscale"), Workers: 2}).Run()
	if !errors.Is(err, bmp.ErrBadMagic) {
		t.Fatalf("got %v, want ErrBadMagic", err)
	}
	if r == nil || r.Stats.Failed != 1 || r.Stats.TotalFiles != 1 {
		t.Fatalf("report: %+v", r)
	}
	if _, err := os.Stat(filepath.Join(dir, "gray_bad.bmp")); !os.IsNotExist(err) {
		t.Errorf("output for bad input exists: %v", err)
	}
}

func TestRun_TruncatedInputLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.bmp")
	data := bmptest.Build(bmptest.Gradient(4, 4), 0)
	data[22] = 50 // height
	os.WriteFile(path, data, 0o644)

	_, err := New(Config{Inputs: []string{path}, Policy: policy(t, "invert"), Workers: 1}).Run()
	if !errors.Is(err, bmp.ErrIO) {
		t.Fatalf("got %v, want ErrIO", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "inv_short.bmp")); !os.IsNotExist(err) {
		t.Errorf("partial output left behind: %v", err)
	}
}

func TestRun_OutputCollision(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	pa := bmptest.WriteFile(t, a, "x.bmp", bmptest.Gradient(1, 1))
	pb := bmptest.WriteFile(t, b, "x.bmp", bmptest.Gradient(1, 1))

	_, err := New(Config{Inputs: []string{pa, pb}, OutputDir: t.TempDir(), Policy: policy(t, "invert")}).Run()
	if err == nil {
		t.Fatal("expected collision error")
	}
}

func TestRun_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.bmp")
	_, err := New(Config{Inputs: []string{missing}, Policy: policy(t, "invert")}).Run()
	if !errors.Is(err, bmp.ErrOpen) {
		t.Fatalf("got %v, want ErrOpen", err)
	}
	if want := "could not open " + missing + " for reading"; !strings.HasPrefix(err.Error(), want) {
		t.Errorf("message: got %q, want prefix %q", err, want)
	}
}

func TestRun_OutputWouldOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	bmptest.WriteFile(t, dir, "a.bmp", [][]bmp.Pixel{{{R: 10, G: 20, B: 30}}})
	existing := bmptest.WriteFile(t, dir, "inv_a.bmp", [][]bmp.Pixel{{{R: 200, G: 100, B: 50}}})
	before, _ := os.ReadFile(existing)

	_, err := New(Config{Inputs: []string{dir}, Policy: policy(t, "invert"), Workers: 1}).Run()
	if err == nil || !strings.Contains(err.Error(), "would overwrite input") {
		t.Fatalf("got %v, want overwrite error", err)
	}
	after, _ := os.ReadFile(existing)
	if !bytes.Equal(before, after) {
		t.Error("input inv_a.bmp was modified")
	}
	if _, err := os.Stat(filepath.Join(dir, "inv_inv_a.bmp")); !os.IsNotExist(err) {
		t.Errorf("conversion ran despite the conflict: %v", err)
	}
}

func TestRun_NoInputs(t *testing.T) {
	if _, err := New(Config{Inputs: []string{t.TempDir()}, Policy: policy(t, "invert")}).Run(); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestRun_Expr(t *testing.T) {
	dir := t.TempDir()
	in := bmptest.WriteFile(t, dir, "e.bmp", bmptest.Gradient(3, 3))
	e, err := transform.ParseExpr("255 - c")
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(Config{Inputs: []string{in}, Policy: transform.ExprPolicy(e), Expression: e.String()}).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Operation != "expr" || r.Expression != "255 - c" {
		t.Errorf("report: %q %q", r.Operation, r.Expression)
	}

	got, _ := os.ReadFile(filepath.Join(dir, "expr_e.bmp"))
	want := bmptest.Gradient(3, 3)
	for _, row := range want {
		for i := range row {
			row[i].Invert()
		}
	}
	if diff := cmp.Diff(want, bmptest.Rows(got)); diff != "" {
		t.Errorf("pixels (-want +got):\n%s", diff)
	}
}

func TestScanInputs_Dedup(t *testing.T) {
	dir := t.TempDir()
	p := bmptest.WriteFile(t, dir, "a.bmp", bmptest.Gradient(1, 1))
	got, err := ScanInputs([]string{p, dir, filepath.Join(dir, ".", "a.bmp")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d sources, want 1: %v", len(got), got)
	}
	if _, err := ScanInputs([]string{filepath.Join(dir, "missing.bmp")}); !errors.Is(err, bmp.ErrOpen) {
		t.Errorf("missing input: got %v, want ErrOpen", err)
	}
}
