// Package pipeline runs one transform policy over a set of bitmap files.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/report"
	"github.com/AnyUserName/bmpfx-cli/internal/transform"
)

// Config holds all parameters for a conversion run.
type Config struct {
	Inputs      []string // files and/or directories
	OutputDir   string   // empty: write next to each source
	Policy      transform.Policy
	Expression  string // recorded in the report for expr runs
	Padding     bmp.Padding
	PaddingName string
	Workers     int
	Verbose     bool
}

// Pipeline orchestrates conversions. Each file is converted by exactly one
// worker; workers share no state.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Padding == nil {
		cfg.Padding = bmp.PaddingCompat
	}
	if cfg.PaddingName == "" {
		cfg.PaddingName = bmp.PaddingNameCompat
	}
	return &Pipeline{cfg: cfg}
}

// Run converts every input and returns the report. The report lists the
// successful conversions even when some inputs fail; the returned error then
// joins every failure.
func (p *Pipeline) Run() (*report.Report, error) {
	// Step 1: Expand inputs.
	sources, err := ScanInputs(p.cfg.Inputs)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no bitmaps found in %v", p.cfg.Inputs)
	}

	outputs, err := p.claimOutputs(sources)
	if err != nil {
		return nil, err
	}
	p.logf("%s: %d file(s), %d worker(s)", p.cfg.Policy.Name, len(sources), p.cfg.Workers)

	// Step 2: Convert in parallel, one file per worker.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.logf("processing: %s", s.Path)
			results[idx] = processFile(s, outputs[idx], p.cfg)
			if results[idx].err == nil {
				p.logf("done: %s -> %s", s.Path, outputs[idx])
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results.
	r := report.New(p.cfg.Policy.Name, p.cfg.PaddingName)
	r.Expression = p.cfg.Expression
	r.BuildInfo = &report.BuildInfo{Workers: p.cfg.Workers}

	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		r.Files[res.key] = res.entry
	}
	r.Stats.Failed = len(errs)
	r.ComputeStats()

	if len(errs) > 0 {
		return r, errors.Join(errs...)
	}
	return r, nil
}

// claimOutputs names the output of every source. Each output must be
// distinct and must not be one of the inputs, so no file is both read and
// written during a run.
func (p *Pipeline) claimOutputs(sources []Source) ([]string, error) {
	inputs := make(map[string]string, len(sources))
	for _, s := range sources {
		abs, err := filepath.Abs(s.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", s.Path, err)
		}
		inputs[abs] = s.Path
	}

	outputs := make([]string, len(sources))
	claimed := map[string]string{}
	for i, s := range sources {
		out := p.cfg.Policy.OutputName(s.Path, p.cfg.OutputDir)
		abs, err := filepath.Abs(out)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", out, err)
		}
		if in, ok := inputs[abs]; ok {
			return nil, fmt.Errorf("output of %s would overwrite input %s", s.Path, in)
		}
		if prev, ok := claimed[abs]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, s.Path, out)
		}
		claimed[abs] = s.Path
		outputs[i] = out
	}
	return outputs, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[bmpfx] "+format+"\n", args...)
	}
}
