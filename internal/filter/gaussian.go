package filter

import (
	"math"
	"sync"

	"github.com/gogpu/boxblur"
)

// GaussianFilter applies a separable Gaussian blur with border replication.
// The horizontal and vertical passes run independently, giving
// O(w*h*k) cost for a kernel of size k.
type GaussianFilter struct {
	// Sigma is the standard deviation in pixels. Sigma <= 0 copies the input.
	// The kernel half-size ceil(3*Sigma) must not exceed the longer side of
	// the image.
	Sigma float64
}

// Name implements Filter.
func (f *GaussianFilter) Name() string { return MethodGaussian }

// Apply implements Filter. It uses two passes:
//  1. Horizontal pass: convolve each row into a float32 temp buffer
//  2. Vertical pass: convolve each temp column into the output
func (f *GaussianFilter) Apply(src *boxblur.Raster) (*boxblur.Raster, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if f.Sigma <= 0 {
		return src.Clone(), nil
	}
	if err := checkKernelHalf(src, math.Ceil(3*f.Sigma)); err != nil {
		return nil, err
	}

	width, height := src.Width(), src.Height()
	dst, err := boxblur.NewRaster(width, height)
	if err != nil {
		return nil, err
	}

	kernel := CachedGaussianKernel(f.Sigma)
	boxblur.Logger().Debug("filter: gaussian",
		"width", width, "height", height, "sigma", f.Sigma, "kernel", len(kernel))

	temp := getTempBuffer(width * height * boxblur.Channels)
	defer putTempBuffer(temp)

	blurHorizontal(src, temp, kernel)
	blurVertical(temp, dst, kernel)
	return dst, nil
}

// blurHorizontal convolves every row of src with kernel into temp.
func blurHorizontal(src *boxblur.Raster, temp []float32, kernel []float32) {
	const ch = boxblur.Channels
	width := src.Width()
	half := len(kernel) / 2

	for y := range src.Height() {
		row := src.Row(y)
		out := temp[y*width*ch : (y+1)*width*ch]

		for x := range width {
			var r, g, b float32
			for k, weight := range kernel {
				i := clampIndex(x+k-half, width) * ch
				r += float32(row[i]) * weight
				g += float32(row[i+1]) * weight
				b += float32(row[i+2]) * weight
			}
			o := x * ch
			out[o] = r
			out[o+1] = g
			out[o+2] = b
		}
	}
}

// blurVertical convolves every column of temp with kernel into dst.
func blurVertical(temp []float32, dst *boxblur.Raster, kernel []float32) {
	const ch = boxblur.Channels
	width, height := dst.Width(), dst.Height()
	stride := width * ch
	half := len(kernel) / 2

	for y := range height {
		out := dst.Row(y)
		for x := range width {
			var r, g, b float32
			for k, weight := range kernel {
				i := clampIndex(y+k-half, height)*stride + x*ch
				r += temp[i] * weight
				g += temp[i+1] * weight
				b += temp[i+2] * weight
			}
			o := x * ch
			out[o] = clampUint8(r)
			out[o+1] = clampUint8(g)
			out[o+2] = clampUint8(b)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// tempBufferPool holds float32 scratch buffers for the horizontal pass.
var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 1024*1024*boxblur.Channels)}
	},
}

// getTempBuffer returns a buffer of exactly size elements. Every element is
// overwritten by the horizontal pass, so the buffer is not cleared.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a buffer to the pool. Very large buffers are dropped.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
