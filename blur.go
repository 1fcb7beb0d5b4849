package boxblur

import (
	"fmt"

	"github.com/gogpu/boxblur/internal/parallel"
)

// bandsPerWorker oversubscribes the pool so a slow band does not leave
// other workers idle.
const bandsPerWorker = 2

// Engine blurs rasters with a fixed strategy, rounding policy and worker
// count. An Engine holds no per-call state, and Blur is safe for concurrent
// use. Engines created with more than one worker own a pool; call Close once
// no Blur call is in flight.
type Engine struct {
	opts options
	pool *parallel.WorkerPool
}

var (
	defaultEngine = NewEngine()
	naiveEngine   = NewEngine(WithStrategy(StrategyNaive))
)

// NewEngine creates an engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{opts: o}
	if o.workers > 1 {
		e.pool = parallel.NewWorkerPool(o.workers)
		Logger().Info("boxblur: worker pool started", "workers", o.workers)
	}
	return e
}

// Blur blurs src with the default engine: sliding sums, truncation, on the
// calling goroutine.
func Blur(src *Raster, radius int) (*Raster, error) {
	return defaultEngine.Blur(src, radius)
}

// BlurNaive blurs src with the per-pixel double loop. It is the reference
// every other strategy must match exactly.
func BlurNaive(src *Raster, radius int) (*Raster, error) {
	return naiveEngine.Blur(src, radius)
}

// Strategy returns the engine's window-sum strategy.
func (e *Engine) Strategy() Strategy { return e.opts.strategy }

// Rounding returns the engine's rounding policy.
func (e *Engine) Rounding() Rounding { return e.opts.rounding }

// Workers returns the number of goroutines used per call.
func (e *Engine) Workers() int { return e.opts.workers }

// Blur returns a new raster of the same size as src in which every channel
// is the mean of that channel over the in-bounds part of the
// (2*radius+1)×(2*radius+1) window centered on the pixel.
//
// It returns an error wrapping ErrInvalidArgument if src is nil or empty or
// radius is negative. A radius larger than the image is not an error.
func (e *Engine) Blur(src *Raster, radius int) (*Raster, error) {
	if src == nil {
		return nil, fmt.Errorf("boxblur: nil raster: %w", ErrInvalidArgument)
	}
	if err := checkDimensions(src.width, src.height); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("boxblur: negative radius %d: %w", radius, ErrInvalidArgument)
	}

	w, h := src.width, src.height
	// Beyond max(w, h) every window already covers the whole image.
	r := min(radius, max(w, h))

	dst := &Raster{width: w, height: h, data: make([]uint8, len(src.data))}
	bands := e.bands(h)

	Logger().Debug("boxblur: blur",
		"width", w, "height", h, "radius", radius,
		"strategy", e.opts.strategy, "rounding", e.opts.rounding, "bands", len(bands))

	switch e.opts.strategy {
	case StrategyNaive:
		e.run(bands, func(b parallel.Band) {
			blurNaiveRows(dst, src, r, e.opts.rounding, b)
		})
	default:
		rowSums := make([]int32, len(src.data))
		e.run(bands, func(b parallel.Band) {
			horizontalSums(rowSums, src, r, b)
		})
		counts := windowCounts(w, r)
		e.run(bands, func(b parallel.Band) {
			verticalMeans(dst, rowSums, counts, r, e.opts.rounding, b)
		})
	}

	return dst, nil
}

// Close releases the engine's worker pool, if any. Close must not overlap a
// Blur call on the same engine. Blur calls made after Close returns keep
// working but run on the calling goroutine.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

func (e *Engine) bands(height int) []parallel.Band {
	if e.pool == nil || !e.pool.IsRunning() {
		return parallel.SplitRows(height, 1)
	}
	return parallel.SplitRows(height, e.pool.Workers()*bandsPerWorker)
}

// run calls fn for every band and returns once all of them are done.
func (e *Engine) run(bands []parallel.Band, fn func(parallel.Band)) {
	if e.pool == nil || len(bands) == 1 {
		for _, b := range bands {
			fn(b)
		}
		return
	}

	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	e.pool.ExecuteAll(work)
}

// windowCounts returns, for each coordinate in [0, n), how many positions of
// the clipped 1D window of the given radius fall inside [0, n).
func windowCounts(n, radius int) []int64 {
	counts := make([]int64, n)
	for i := range counts {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		counts[i] = int64(hi - lo + 1)
	}
	return counts
}

// blurNaiveRows computes output rows b.Y0..b.Y1-1 by summing every in-bounds
// neighbor. Offsets outside the image contribute neither to the sum nor to
// the count, so the loops simply start and stop at the clipped window.
func blurNaiveRows(dst, src *Raster, radius int, rounding Rounding, b parallel.Band) {
	w, h := src.width, src.height

	for y := b.Y0; y < b.Y1; y++ {
		y0, y1 := max(y-radius, 0), min(y+radius, h-1)
		out := dst.Row(y)

		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)

			var sum [Channels]int64
			var count int64
			for ny := y0; ny <= y1; ny++ {
				row := src.Row(ny)
				for nx := x0; nx <= x1; nx++ {
					i := nx * Channels
					sum[0] += int64(row[i])
					sum[1] += int64(row[i+1])
					sum[2] += int64(row[i+2])
					count++
				}
			}

			o := x * Channels
			out[o] = rounding.mean(sum[0], count)
			out[o+1] = rounding.mean(sum[1], count)
			out[o+2] = rounding.mean(sum[2], count)
		}
	}
}

// horizontalSums stores, for every pixel of rows b.Y0..b.Y1-1, the channel
// sums over the clipped horizontal window. Each row is turned into a prefix
// sum first, so every window sum is a single subtraction.
func horizontalSums(rowSums []int32, src *Raster, radius int, b parallel.Band) {
	w := src.width
	stride := src.Stride()
	prefix := make([]int32, (w+1)*Channels)

	for y := b.Y0; y < b.Y1; y++ {
		row := src.Row(y)
		for i, v := range row {
			prefix[i+Channels] = prefix[i] + int32(v)
		}

		sums := rowSums[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			lo := max(x-radius, 0) * Channels
			hi := (min(x+radius, w-1) + 1) * Channels
			o := x * Channels
			sums[o] = prefix[hi] - prefix[lo]
			sums[o+1] = prefix[hi+1] - prefix[lo+1]
			sums[o+2] = prefix[hi+2] - prefix[lo+2]
		}
	}
}

// verticalMeans slides a running column sum of rowSums down rows
// b.Y0..b.Y1-1 and writes the window means to dst. rowSums must be complete
// for every row the band's windows reach, not only the band's own rows.
func verticalMeans(dst *Raster, rowSums []int32, countsX []int64, radius int, rounding Rounding, b parallel.Band) {
	w, h := dst.width, dst.height
	stride := dst.Stride()
	col := make([]int64, stride)

	for y := max(b.Y0-radius, 0); y <= min(b.Y0+radius, h-1); y++ {
		addRow(col, rowSums[y*stride:(y+1)*stride])
	}

	for y := b.Y0; y < b.Y1; y++ {
		countY := int64(min(y+radius, h-1) - max(y-radius, 0) + 1)
		out := dst.Row(y)
		for x := 0; x < w; x++ {
			count := countsX[x] * countY
			o := x * Channels
			out[o] = rounding.mean(col[o], count)
			out[o+1] = rounding.mean(col[o+1], count)
			out[o+2] = rounding.mean(col[o+2], count)
		}

		if in := y + radius + 1; in < h {
			addRow(col, rowSums[in*stride:(in+1)*stride])
		}
		if outY := y - radius; outY >= 0 {
			subRow(col, rowSums[outY*stride:(outY+1)*stride])
		}
	}
}

func addRow(col []int64, sums []int32) {
	for i, v := range sums {
		col[i] += int64(v)
	}
}

func subRow(col []int64, sums []int32) {
	for i, v := range sums {
		col[i] -= int64(v)
	}
}
