// Package encoder writes preview images in common formats.
package encoder

import (
	"fmt"
	"image"
	"io"
	"strings"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the format name ("png" or "jpeg").
	Format() string

	// Encode writes img to w. quality (1-100) is ignored by lossless formats.
	Encode(w io.Writer, img image.Image, quality int) error

	// Extension returns the file extension without dot.
	Extension() string
}

// Get returns the encoder for format. "jpg" is accepted for "jpeg".
func Get(format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case "png":
		return &PNGEncoder{}, nil
	case "jpeg", "jpg":
		return &JPEGEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported preview format %q (want png or jpeg)", format)
	}
}
