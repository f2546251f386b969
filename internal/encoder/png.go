package encoder

import (
	"image"
	"image/png"
	"io"
)

// PNGEncoder encodes previews losslessly.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(w io.Writer, img image.Image, _ int) error {
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
