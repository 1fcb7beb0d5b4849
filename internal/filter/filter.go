package filter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/boxblur"
)

// ErrUnknownMethod is returned by New for an unrecognized method name.
var ErrUnknownMethod = errors.New("filter: unknown method")

// Filter produces a new raster from src. Implementations never modify src.
type Filter interface {
	// Name returns the method name accepted by New.
	Name() string

	// Apply returns the filtered copy of src.
	Apply(src *boxblur.Raster) (*boxblur.Raster, error)
}

// Method names accepted by New.
const (
	MethodBox      = "box"
	MethodUniform  = "uniform"
	MethodGaussian = "gaussian"
)

// Methods returns the method names accepted by New.
func Methods() []string {
	return []string{MethodBox, MethodUniform, MethodGaussian}
}

// New returns the filter for method with the given radius.
//
// For MethodGaussian, sigma is radius/3, so the kernel covers about the
// same 2*radius+1 pixels as the box window. eng is used by MethodBox only; nil
// selects the default engine.
func New(method string, radius int, eng *boxblur.Engine) (Filter, error) {
	if radius < 0 {
		return nil, fmt.Errorf("filter: negative radius %d: %w", radius, boxblur.ErrInvalidArgument)
	}

	switch strings.ToLower(strings.TrimSpace(method)) {
	case MethodBox, "clipped":
		return &BoxFilter{Radius: radius, Engine: eng}, nil
	case MethodUniform, "kernel", "opencv":
		return &UniformFilter{Radius: radius}, nil
	case MethodGaussian:
		return &GaussianFilter{Sigma: float64(radius) / 3}, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownMethod, method, strings.Join(Methods(), ", "))
	}
}

// BoxFilter exposes the clipped boxblur engine as a Filter.
type BoxFilter struct {
	Radius int

	// Engine runs the blur. Nil uses boxblur.Blur.
	Engine *boxblur.Engine
}

// Name implements Filter.
func (f *BoxFilter) Name() string { return MethodBox }

// Apply implements Filter.
func (f *BoxFilter) Apply(src *boxblur.Raster) (*boxblur.Raster, error) {
	if f.Engine == nil {
		return boxblur.Blur(src, f.Radius)
	}
	return f.Engine.Blur(src, f.Radius)
}

// checkSource validates the raster every filter reads.
func checkSource(src *boxblur.Raster) error {
	if src == nil || src.Width() <= 0 || src.Height() <= 0 {
		return fmt.Errorf("filter: empty source raster: %w", boxblur.ErrInvalidArgument)
	}
	return nil
}

// checkKernelHalf rejects a kernel half-size larger than the longer side of
// src.
func checkKernelHalf(src *boxblur.Raster, half float64) error {
	limit := max(src.Width(), src.Height())
	if math.IsNaN(half) || half > float64(limit) {
		return fmt.Errorf("filter: kernel half-size %g exceeds image size %d: %w", half, limit, boxblur.ErrInvalidArgument)
	}
	return nil
}

// clampIndex replicates the border: indices outside [0, n) map to the
// nearest edge.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// clampUint8 clamps v to [0, 255] and rounds to nearest.
func clampUint8[F float32 | float64](v F) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
