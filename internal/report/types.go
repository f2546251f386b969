package report

// Report is the JSON record of a bmpfx run.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Operation   string           `json:"operation"`            // policy name
	Expression  string           `json:"expression,omitempty"` // expr operation only
	Padding     string           `json:"padding"`              // padding policy name
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Files       map[string]Entry `json:"files"` // keyed by source path
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures run parameters for diagnostics.
type BuildInfo struct {
	Workers int `json:"workers"`
}

// Entry describes one converted file.
type Entry struct {
	Output      string `json:"output"`
	Width       uint32 `json:"width"`
	Height      uint32 `json:"height"`
	Padding     uint32 `json:"padding"`
	PixelOffset uint32 `json:"pixel_offset"`
	InputSize   int64  `json:"input_size"`
	OutputSize  int64  `json:"output_size"`
	Hash        string `json:"hash"` // xxhash64 of the output, 16 hex chars
}

// Stats aggregates run metrics.
type Stats struct {
	TotalFiles       int   `json:"total_files"`
	TotalPixels      int64 `json:"total_pixels"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
