package filter

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/gogpu/boxblur"
)

// Test helper functions shared across filter tests.

// createTestRaster creates a raster filled with p.
func createTestRaster(t testing.TB, w, h int, p boxblur.Pixel) *boxblur.Raster {
	t.Helper()
	r, err := boxblur.NewRaster(w, h)
	if err != nil {
		t.Fatalf("NewRaster(%d, %d) error = %v", w, h, err)
	}
	r.Fill(p)
	return r
}

// noiseRaster creates a raster with pseudo-random channels from a fixed seed.
func noiseRaster(t testing.TB, w, h int, seed uint64) *boxblur.Raster {
	t.Helper()
	r := createTestRaster(t, w, h, boxblur.Pixel{})
	rng := rand.New(rand.NewPCG(seed, ^seed))
	data := r.Data()
	for i := range data {
		data[i] = uint8(rng.IntN(256))
	}
	return r
}

// channelDiff returns the largest absolute channel difference between a and b.
func channelDiff(a, b boxblur.Pixel) int {
	d := max(absInt(int(a.R)-int(b.R)), absInt(int(a.G)-int(b.G)))
	return max(d, absInt(int(a.B)-int(b.B)))
}

// absInt returns the absolute value of an int.
func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// fmtSigma formats a sigma for benchmark names.
func fmtSigma(sigma float64) string {
	return "sigma=" + strconv.FormatFloat(sigma, 'g', -1, 64)
}
