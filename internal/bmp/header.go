// Package bmp validates 24-bit uncompressed BMP files and streams their
// pixel rows through a transform, one row at a time.
package bmp

import (
	"encoding/binary"
	"io"
)

// Fixed offsets of the fields read during validation.
const (
	offsetMagic       = 0
	offsetFileSize    = 2
	offsetPixelOffset = 10
	offsetDIBSize     = 14
	offsetBitDepth    = 28

	// InfoHeaderSize is the size of BITMAPINFOHEADER, the only DIB header
	// version accepted.
	InfoHeaderSize = 40
	// BitDepth is the only supported number of bits per pixel.
	BitDepth = 24
)

// Header holds the fields of a validated BMP file.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapinfoheader
type Header struct {
	FileSize    uint32 // declared file length, equal to the actual length
	PixelOffset uint32 // offset of the first pixel row
	DIBSize     uint32 // always InfoHeaderSize
	Width       uint32 // pixels per row
	Height      uint32 // number of rows
	Padding     uint32 // bytes after each row, from the Padding policy
	BitDepth    uint16 // always BitDepth
}

// RowSize is the number of pixel bytes in one row, excluding padding.
func (h *Header) RowSize() int64 {
	return int64(h.Width) * PixelSize
}

// Stride is the number of bytes one row occupies on disk.
func (h *Header) Stride() int64 {
	return h.RowSize() + int64(h.Padding)
}

// ReadHeader validates the BMP header read from r and leaves r positioned at
// the start of the pixel data. name is used in error messages. A nil pad
// selects PaddingCompat.
func ReadHeader(name string, r io.ReadSeeker, pad Padding) (*Header, error) {
	if pad == nil {
		pad = PaddingCompat
	}
	hr := headerReader{name: name, r: r}
	var h Header

	// Magic "BM".
	var magic [2]byte
	hr.readAt(offsetMagic, &magic)
	if hr.err != nil {
		return nil, hr.err
	}
	if magic != [2]byte{'B', 'M'} {
		return nil, &Error{Kind: ErrBadMagic, File: name}
	}

	// Declared length must match the stream length.
	hr.readAt(offsetFileSize, &h.FileSize)
	if hr.err != nil {
		return nil, hr.err
	}
	actual, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, ioError(name, OpRead, err)
	}
	if actual != int64(h.FileSize) {
		return nil, &Error{Kind: ErrBadLength, File: name}
	}

	hr.readAt(offsetPixelOffset, &h.PixelOffset)

	hr.readAt(offsetDIBSize, &h.DIBSize)
	if hr.err != nil {
		return nil, hr.err
	}
	if h.DIBSize != InfoHeaderSize {
		return nil, &Error{Kind: ErrUnsupportedVersion, File: name}
	}

	hr.read(&h.Width)
	hr.read(&h.Height)
	hr.readAt(offsetBitDepth, &h.BitDepth)
	if hr.err != nil {
		return nil, hr.err
	}
	if h.BitDepth != BitDepth {
		return nil, &Error{Kind: ErrUnsupportedBitDepth, File: name, Value: int(h.BitDepth)}
	}
	h.Padding = pad(h.Width)

	if _, err := r.Seek(int64(h.PixelOffset), io.SeekStart); err != nil {
		return nil, ioError(name, OpRead, err)
	}
	return &h, nil
}

// headerReader reads little-endian fields and keeps the first error.
type headerReader struct {
	name string
	r    io.ReadSeeker
	err  error
}

func (hr *headerReader) readAt(off int64, v any) {
	if hr.err != nil {
		return
	}
	if _, err := hr.r.Seek(off, io.SeekStart); err != nil {
		hr.err = ioError(hr.name, OpRead, err)
		return
	}
	hr.read(v)
}

func (hr *headerReader) read(v any) {
	if hr.err != nil {
		return
	}
	if err := binary.Read(hr.r, binary.LittleEndian, v); err != nil {
		hr.err = ioError(hr.name, OpRead, err)
	}
}
