package boxblur

import (
	"fmt"
	"strings"
)

// Strategy selects how window sums are computed. Every strategy produces
// identical output for the same rounding policy.
type Strategy uint8

const (
	// StrategySlidingSum computes row prefix sums, then slides a running
	// column sum over them. Cost is O(w*h) regardless of radius.
	StrategySlidingSum Strategy = iota

	// StrategyNaive sums every in-bounds neighbor of every pixel.
	// Cost is O(w*h*r²). Used as the correctness baseline.
	StrategyNaive
)

// String returns the strategy name as accepted by ParseStrategy.
func (s Strategy) String() string {
	switch s {
	case StrategySlidingSum:
		return "sliding"
	case StrategyNaive:
		return "naive"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy parses "sliding" or "naive" (case-insensitive).
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sliding", "sliding-sum", "fast":
		return StrategySlidingSum, nil
	case "naive", "basic":
		return StrategyNaive, nil
	default:
		return 0, fmt.Errorf("boxblur: unknown strategy %q: %w", s, ErrInvalidArgument)
	}
}

// Rounding selects how the window sum is divided by the window count.
type Rounding uint8

const (
	// RoundTruncate divides with integer division, dropping the fraction.
	RoundTruncate Rounding = iota

	// RoundHalfUp rounds to the nearest integer, halves rounding up.
	RoundHalfUp
)

// String returns the rounding name as accepted by ParseRounding.
func (r Rounding) String() string {
	switch r {
	case RoundTruncate:
		return "truncate"
	case RoundHalfUp:
		return "half-up"
	default:
		return fmt.Sprintf("Rounding(%d)", uint8(r))
	}
}

// ParseRounding parses "truncate" or "half-up" (case-insensitive).
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "truncate", "trunc", "floor":
		return RoundTruncate, nil
	case "half-up", "halfup", "nearest", "round":
		return RoundHalfUp, nil
	default:
		return 0, fmt.Errorf("boxblur: unknown rounding %q: %w", s, ErrInvalidArgument)
	}
}

// mean divides a non-negative channel sum by a positive count.
func (r Rounding) mean(sum, count int64) uint8 {
	if r == RoundHalfUp {
		sum += count / 2
	}
	return uint8(sum / count)
}
