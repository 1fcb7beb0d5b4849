package parallel

import (
	"fmt"
	"runtime"
	"testing"
)

// =============================================================================
// Core Scaling Benchmarks
// =============================================================================
//
// These benchmarks measure how banded row work scales with the number of
// available cores. Each iteration sums every row of a 1920x1080 RGB buffer.
//
// Run with: go test -bench=BenchmarkScaling -benchmem ./internal/parallel/...
//
// =============================================================================

const (
	scalingWidth  = 1920
	scalingHeight = 1080
	scalingStride = scalingWidth * 3
)

// setMaxProcs sets GOMAXPROCS and returns a cleanup function to restore it.
func setMaxProcs(n int) func() {
	old := runtime.GOMAXPROCS(n)
	return func() {
		runtime.GOMAXPROCS(old)
	}
}

// sumBand writes the byte sum of every row in b to sums.
func sumBand(buf []uint8, sums []int64, b Band) {
	for y := b.Y0; y < b.Y1; y++ {
		var s int64
		for _, v := range buf[y*scalingStride : (y+1)*scalingStride] {
			s += int64(v)
		}
		sums[y] = s
	}
}

func BenchmarkScaling_RowSums(b *testing.B) {
	buf := make([]uint8, scalingStride*scalingHeight)
	for i := range buf {
		buf[i] = uint8(i * 7)
	}
	sums := make([]int64, scalingHeight)

	for _, cores := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("%dCores", cores), func(b *testing.B) {
			cleanup := setMaxProcs(cores)
			defer cleanup()

			pool := NewWorkerPool(cores)
			defer pool.Close()

			bands := SplitRows(scalingHeight, cores*2)
			work := make([]func(), len(bands))
			for i, band := range bands {
				work[i] = func() { sumBand(buf, sums, band) }
			}

			b.SetBytes(int64(len(buf)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				pool.ExecuteAll(work)
			}
		})
	}
}

// BenchmarkScaling_Sequential is the single-goroutine baseline for
// BenchmarkScaling_RowSums.
func BenchmarkScaling_Sequential(b *testing.B) {
	buf := make([]uint8, scalingStride*scalingHeight)
	sums := make([]int64, scalingHeight)
	all := Band{Y0: 0, Y1: scalingHeight}

	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sumBand(buf, sums, all)
	}
}
