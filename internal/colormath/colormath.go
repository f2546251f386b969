// Package colormath converts channel intensities between the sRGB transfer
// curve and linear light.
package colormath

import "math"

// SRGBToLinear decodes an sRGB-encoded channel value in [0,1] to linear light.
func SRGBToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes a linear-light value in [0,1] with the sRGB curve.
func LinearToSRGB(y float64) float64 {
	if y <= 0.0031308 {
		return y * 12.92
	}
	return math.Pow(y, 1/2.4)*1.055 - 0.055
}
