// Package filter provides the reference blur filters the clipped box blur is
// compared against.
//
// Unlike boxblur, every convolution here replicates border pixels: a window
// that extends past the image reads the nearest edge pixel instead of
// shrinking. Outputs therefore match the box blur only on interior pixels.
//
//   - UniformFilter: (2k+1)×(2k+1) kernel, weight 1/(2k+1)², general 2D convolution
//   - GaussianFilter: separable Gaussian, kernel half-size ceil(3σ)
//   - BoxFilter: the clipped boxblur engine behind the same interface
package filter
