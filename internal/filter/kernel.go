package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for sigma.
//
// The kernel size is 2*ceil(3*sigma)+1, which covers 99.7% of the
// distribution. For sigma <= 0 it returns the identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1.0}
	}

	size := OptimalKernelSize(sigma)
	halfSize := size / 2
	kernel := make([]float32, size)

	// exp(-x²/(2σ²)); the constant factor cancels out in the normalization.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := range kernel {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	invSum := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= invSum
	}
	return kernel
}

// UniformKernel2D generates a row-major (2*radius+1)² kernel with all
// values 1/(2*radius+1)².
func UniformKernel2D(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	size := radius*2 + 1
	kernel := make([]float32, size*size)
	val := float32(1.0 / float64(size*size))
	for i := range kernel {
		kernel[i] = val
	}
	return kernel
}

// OptimalKernelSize returns the Gaussian kernel size for sigma:
// 2*ceil(3*sigma)+1, or 1 for sigma <= 0.
func OptimalKernelSize(sigma float64) int {
	if sigma <= 0 {
		return 1
	}
	return int(math.Ceil(sigma*3))*2 + 1
}

// kernelCache caches Gaussian kernels keyed by sigma quantized to 0.01.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int][]float32),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
func (c *kernelCache) get(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))

	c.mu.RLock()
	kernel, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return kernel
	}

	kernel = GaussianKernel(float64(key) / 100)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Map iteration order is random, so this drops an arbitrary half.
		dropped := 0
		for k := range c.cache {
			delete(c.cache, k)
			dropped++
			if dropped >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// len returns the number of cached kernels.
func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// CachedGaussianKernel returns a shared Gaussian kernel for sigma.
// Callers must not modify the returned slice.
func CachedGaussianKernel(sigma float64) []float32 {
	return defaultKernelCache.get(sigma)
}
