// Package report records the outcome of a conversion run as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty report for the named operation.
func New(operation, padding string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Operation:   operation,
		Padding:     padding,
		Files:       make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from the entries. Failed is
// left as is.
func (r *Report) ComputeStats() {
	s := Stats{Failed: r.Stats.Failed}
	s.TotalFiles = len(r.Files)
	for _, e := range r.Files {
		s.TotalPixels += int64(e.Width) * int64(e.Height)
		s.TotalInputBytes += e.InputSize
		s.TotalOutputBytes += e.OutputSize
	}
	r.Stats = s
}

// WriteJSON serializes the report to path. Map keys are written sorted.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report written by WriteJSON.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	if r.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported report version: %d", r.Version)
	}
	return &r, nil
}
