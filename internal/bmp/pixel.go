package bmp

// PixelSize is the number of bytes one 24-bit pixel occupies on disk.
const PixelSize = 3

// Pixel is a 24-bit pixel in on-disk channel order.
type Pixel struct {
	B, G, R byte
}

// Invert replaces every channel with its complement.
func (p *Pixel) Invert() {
	p.B = 255 - p.B
	p.G = 255 - p.G
	p.R = 255 - p.R
}

// Swap exchanges the values of two pixels.
func Swap(a, b *Pixel) {
	*a, *b = *b, *a
}

func decodeRow(dst []Pixel, src []byte) {
	for i := range dst {
		o := i * PixelSize
		dst[i] = Pixel{B: src[o], G: src[o+1], R: src[o+2]}
	}
}

func encodeRow(dst []byte, src []Pixel) {
	for i, p := range src {
		o := i * PixelSize
		dst[o], dst[o+1], dst[o+2] = p.B, p.G, p.R
	}
}
