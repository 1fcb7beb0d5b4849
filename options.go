package boxblur

import "runtime"

// Option configures an Engine during creation.
//
// Example:
//
//	// Sequential sliding-sum engine (the default)
//	eng := boxblur.NewEngine()
//
//	// Naive reference engine rounding to nearest on all CPUs
//	eng := boxblur.NewEngine(
//	    boxblur.WithStrategy(boxblur.StrategyNaive),
//	    boxblur.WithRounding(boxblur.RoundHalfUp),
//	    boxblur.WithWorkers(0),
//	)
//	defer eng.Close()
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	strategy Strategy
	rounding Rounding
	workers  int
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		strategy: StrategySlidingSum,
		rounding: RoundTruncate,
		workers:  1,
	}
}

// WithStrategy sets how window sums are computed.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithRounding sets the rounding policy applied to every window mean.
func WithRounding(r Rounding) Option {
	return func(o *options) {
		o.rounding = r
	}
}

// WithWorkers sets the number of goroutines used per Blur call.
// 1 runs on the calling goroutine. n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}
