package bmp

import (
	"fmt"
	"strings"
)

// Padding computes the number of bytes that follow each row of pixel data.
type Padding func(width uint32) uint32

// PaddingCompat is width mod 4. Files produced by earlier releases of the
// tool use this and it is the default.
func PaddingCompat(width uint32) uint32 {
	return width % 4
}

// PaddingAligned pads each row of 3-byte pixels to a multiple of 4 bytes.
// For 24-bit images it yields the same value as PaddingCompat.
func PaddingAligned(width uint32) uint32 {
	return (4 - (width*PixelSize)%4) % 4
}

// Padding policy names accepted by ParsePadding.
const (
	PaddingNameCompat  = "compat"
	PaddingNameAligned = "aligned"
)

// ParsePadding maps a policy name to its function. The empty string selects
// PaddingCompat.
func ParsePadding(name string) (Padding, error) {
	switch strings.ToLower(name) {
	case "", PaddingNameCompat:
		return PaddingCompat, nil
	case PaddingNameAligned:
		return PaddingAligned, nil
	default:
		return nil, fmt.Errorf("unknown padding policy %q (want %s or %s)",
			name, PaddingNameCompat, PaddingNameAligned)
	}
}
