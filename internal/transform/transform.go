// Package transform holds the pixel transforms applied by bmpfx and the
// registry that maps command names to them.
package transform

import (
	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/colormath"
)

// Invert negates every channel.
func Invert() bmp.RowTransform {
	return bmp.PixelFunc((*bmp.Pixel).Invert)
}

// Grayscale replaces each pixel with its BT.709 luminance, computed in
// linear light and re-encoded with the sRGB curve.
func Grayscale() bmp.RowTransform {
	return bmp.PixelFunc(func(p *bmp.Pixel) {
		y := Luma(*p)
		*p = bmp.Pixel{B: y, G: y, R: y}
	})
}

// Luma returns the sRGB-encoded luminance of p, truncated to 8 bits.
func Luma(p bmp.Pixel) uint8 {
	b := colormath.SRGBToLinear(float64(p.B) / 255.0)
	g := colormath.SRGBToLinear(float64(p.G) / 255.0)
	r := colormath.SRGBToLinear(float64(p.R) / 255.0)

	yLinear := (b * 0.0722) + (g * 0.7152) + (r * 0.2126)
	return uint8(colormath.LinearToSRGB(yLinear) * 255)
}

// HFlip mirrors each row. The middle pixel of an odd-width row stays put.
func HFlip() bmp.RowTransform {
	return bmp.RowFunc(func(row []bmp.Pixel) error {
		n := len(row)
		for j := 0; j < n/2; j++ {
			bmp.Swap(&row[j], &row[n-1-j])
		}
		return nil
	})
}
