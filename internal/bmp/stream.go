package bmp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Source is a validated BMP input. It is owned by a single conversion.
type Source struct {
	Name   string
	Header *Header

	r      io.ReadSeeker
	closer io.Closer
}

// NewSource validates the header of r. The caller keeps ownership of r.
func NewSource(name string, r io.ReadSeeker, pad Padding) (*Source, error) {
	h, err := ReadHeader(name, r, pad)
	if err != nil {
		return nil, err
	}
	return &Source{Name: name, Header: h, r: r}, nil
}

// Open opens and validates the BMP file at path.
func Open(path string, pad Padding) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ErrOpen, File: path, Op: OpRead, Err: err}
	}
	src, err := NewSource(path, f, pad)
	if err != nil {
		f.Close()
		return nil, err
	}
	src.closer = f
	return src, nil
}

// Close releases the underlying file, if Open created it.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// Sink is the destination of a conversion. Writes are buffered until Close
// or Flush.
type Sink struct {
	Name string

	w      *bufio.Writer
	closer io.Closer
}

// NewSink wraps w. The caller keeps ownership of w.
func NewSink(name string, w io.Writer) *Sink {
	return &Sink{Name: name, w: bufio.NewWriter(w)}
}

// Create creates (or truncates) the file at path.
func Create(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &Error{Kind: ErrOpen, File: path, Op: OpWrite, Err: err}
	}
	s := NewSink(path, f)
	s.closer = f
	return s, nil
}

func (s *Sink) write(p []byte) error {
	if _, err := s.w.Write(p); err != nil {
		return ioError(s.Name, OpWrite, err)
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (s *Sink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return ioError(s.Name, OpWrite, err)
	}
	return nil
}

// Close flushes buffered data and releases the underlying file, if Create
// opened it.
func (s *Sink) Close() error {
	err := s.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = ioError(s.Name, OpWrite, cerr)
		}
		s.closer = nil
	}
	return err
}

// RowTransform rewrites one row of pixels in place. Rows are passed in
// on-disk order and the slice is reused between calls.
type RowTransform interface {
	TransformRow(row []Pixel) error
}

// RowFunc adapts a function to RowTransform.
type RowFunc func(row []Pixel) error

func (f RowFunc) TransformRow(row []Pixel) error { return f(row) }

// PixelFunc applies a function to every pixel of a row independently.
type PixelFunc func(p *Pixel)

func (f PixelFunc) TransformRow(row []Pixel) error {
	for i := range row {
		f(&row[i])
	}
	return nil
}

// Convert copies the header block of src to dst unchanged, then streams every
// pixel row through t. Row padding is skipped in src and written to dst as
// zero bytes. dst is flushed on success.
func Convert(src *Source, dst *Sink, t RowTransform) error {
	h := src.Header

	// Header block, verbatim. The declared file size bounds every
	// allocation below.
	if int64(h.PixelOffset) > int64(h.FileSize) {
		return ioError(src.Name, OpRead, io.ErrUnexpectedEOF)
	}
	if _, err := src.r.Seek(0, io.SeekStart); err != nil {
		return ioError(src.Name, OpRead, err)
	}
	block := make([]byte, h.PixelOffset)
	if _, err := io.ReadFull(src.r, block); err != nil {
		return ioError(src.Name, OpRead, err)
	}
	if err := dst.write(block); err != nil {
		return err
	}

	if h.Height == 0 {
		return dst.Flush()
	}
	// A row must hold at least one pixel; an empty read is a failure.
	if h.RowSize() == 0 || h.RowSize() > int64(h.FileSize)-int64(h.PixelOffset) {
		return ioError(src.Name, OpRead, io.ErrUnexpectedEOF)
	}

	r := bufio.NewReader(src.r)
	raw := make([]byte, h.RowSize())
	row := make([]Pixel, h.Width)
	zeros := make([]byte, h.Padding)

	for y := uint32(0); y < h.Height; y++ {
		if _, err := io.ReadFull(r, raw); err != nil {
			return ioError(src.Name, OpRead, err)
		}
		decodeRow(row, raw)
		if err := t.TransformRow(row); err != nil {
			return fmt.Errorf("transform row %d of %s: %w", y, src.Name, err)
		}
		encodeRow(raw, row)
		if err := dst.write(raw); err != nil {
			return err
		}

		if h.Padding != 0 {
			// Skipping past the end of the file is not an error, matching a
			// forward seek.
			if _, err := r.Discard(int(h.Padding)); err != nil && !errors.Is(err, io.EOF) {
				return ioError(src.Name, OpRead, err)
			}
			if err := dst.write(zeros); err != nil {
				return err
			}
		}
	}
	return dst.Flush()
}
