// Package boxblur provides a clipped-window box blur for RGB rasters.
//
// # Overview
//
// Every output pixel is the unweighted mean of the square neighborhood of
// side 2*radius+1 centered on it. Neighbors that fall outside the image are
// left out of both the sum and the count, so windows shrink near edges and
// corners instead of being padded, mirrored or wrapped.
//
// # Quick Start
//
//	import "github.com/gogpu/boxblur"
//
//	src, _ := boxblur.NewRaster(640, 480)
//	// ... fill src ...
//	dst, err := boxblur.Blur(src, 9)
//
// # Strategies
//
// Two strategies produce pixel-identical output:
//   - StrategyNaive: per-pixel double loop, O(w*h*r²). The correctness baseline.
//   - StrategySlidingSum: row prefix sums then a running column sum, O(w*h).
//
// # Rounding
//
// The mean is truncated toward zero by default (integer division of the
// window sum by the window count). RoundHalfUp rounds halves up instead.
// The selected policy is applied uniformly by every strategy.
//
// # Concurrency
//
// Blur is a pure function of its inputs. An Engine created with WithWorkers
// splits the rows into bands processed by a worker pool; bands write disjoint
// output rows and share the input read-only.
package boxblur

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
