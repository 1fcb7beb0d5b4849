package boxblur

import (
	"math/rand/v2"
	"testing"
)

// Test helper functions shared across boxblur tests.

// uniformRaster creates a raster filled with p.
func uniformRaster(w, h int, p Pixel) *Raster {
	r, err := NewRaster(w, h)
	if err != nil {
		panic(err)
	}
	r.Fill(p)
	return r
}

// randomRaster creates a raster with pseudo-random channels from a fixed seed.
func randomRaster(w, h int, seed uint64) *Raster {
	r, err := NewRaster(w, h)
	if err != nil {
		panic(err)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range r.data {
		r.data[i] = uint8(rng.IntN(256))
	}
	return r
}

// mustBlur runs eng.Blur and fails the test on error.
func mustBlur(t *testing.T, eng *Engine, src *Raster, radius int) *Raster {
	t.Helper()
	dst, err := eng.Blur(src, radius)
	if err != nil {
		t.Fatalf("Blur(%dx%d, r=%d) error = %v", src.Width(), src.Height(), radius, err)
	}
	return dst
}

// firstDiff returns a description of the first differing pixel, or "".
func firstDiff(a, b *Raster) string {
	for y := range a.Height() {
		for x := range a.Width() {
			if pa, pb := a.GetPixel(x, y), b.GetPixel(x, y); pa != pb {
				return "(" + itoa(x) + "," + itoa(y) + ")"
			}
		}
	}
	return ""
}

// itoa formats a small non-negative integer without fmt.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}
