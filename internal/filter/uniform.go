package filter

import "github.com/gogpu/boxblur"

// UniformFilter convolves the raster with a (2*Radius+1)² kernel whose
// weights are all 1/(2*Radius+1)². Border pixels are replicated, so every
// window always holds the full (2*Radius+1)² samples. Radius must not exceed
// the longer side of the image.
//
// The convolution is a general 2D one, not separated into passes, so its
// cost is O(w*h*r²) like the naive box blur it is compared against.
type UniformFilter struct {
	Radius int
}

// Name implements Filter.
func (f *UniformFilter) Name() string { return MethodUniform }

// Apply implements Filter.
func (f *UniformFilter) Apply(src *boxblur.Raster) (*boxblur.Raster, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if f.Radius <= 0 {
		return src.Clone(), nil
	}
	if err := checkKernelHalf(src, float64(f.Radius)); err != nil {
		return nil, err
	}

	width, height := src.Width(), src.Height()
	dst, err := boxblur.NewRaster(width, height)
	if err != nil {
		return nil, err
	}

	kernel := UniformKernel2D(f.Radius)
	boxblur.Logger().Debug("filter: uniform",
		"width", width, "height", height, "radius", f.Radius, "kernel", len(kernel))

	convolve2D(dst, src, kernel, f.Radius)
	return dst, nil
}

// convolve2D applies a square row-major kernel of side 2*half+1 to src,
// replicating border pixels, and writes rounded results to dst.
func convolve2D(dst, src *boxblur.Raster, kernel []float32, half int) {
	const ch = boxblur.Channels
	width, height := src.Width(), src.Height()
	side := 2*half + 1

	for y := range height {
		out := dst.Row(y)
		for x := range width {
			var r, g, b float64
			for ky := range side {
				row := src.Row(clampIndex(y+ky-half, height))
				weights := kernel[ky*side : (ky+1)*side]
				for kx, weight := range weights {
					i := clampIndex(x+kx-half, width) * ch
					w := float64(weight)
					r += float64(row[i]) * w
					g += float64(row[i+1]) * w
					b += float64(row[i+2]) * w
				}
			}
			o := x * ch
			out[o] = clampUint8(r)
			out[o+1] = clampUint8(g)
			out[o+2] = clampUint8(b)
		}
	}
}
