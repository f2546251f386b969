package colormath

import (
	"math"
	"testing"
)

func TestSRGBToLinear_Segments(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.04045, 0.04045 / 12.92},
		{0.5, math.Pow((0.5+0.055)/1.055, 2.4)},
		{1, 1},
	}
	for _, tt := range tests {
		got := SRGBToLinear(tt.in)
		if math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLinearToSRGB_Segments(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.0031308, 0.0031308 * 12.92},
		{0.2, 1.055*math.Pow(0.2, 1/2.4) - 0.055},
	}
	for _, tt := range tests {
		got := LinearToSRGB(tt.in)
		if math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("LinearToSRGB(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i <= 255; i++ {
		c := float64(i) / 255.0
		got := LinearToSRGB(SRGBToLinear(c))
		if math.Abs(got-c) > 1e-12 {
			t.Errorf("round trip %d: got %v, want %v", i, got, c)
		}
	}
}

func TestMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 1000; i++ {
		v := SRGBToLinear(float64(i) / 1000)
		if v < prev {
			t.Fatalf("SRGBToLinear not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}
