package fibonacci

import "math"

// ─────────────────────────────────────────────────────────────────────────────
// Growth Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// Log10Phi is log10 of the golden ratio. F(n) has about n*Log10Phi
	// decimal digits.
	Log10Phi = 0.20898764024997873

	// Log10Sqrt5 is log10(sqrt(5)), the offset in Binet's formula.
	Log10Sqrt5 = 0.3494850021680094
)

// EstimateDigits returns the number of decimal digits of F(n), from Binet's
// formula: floor(n*log10(phi) - log10(sqrt(5))) + 1 for n >= 2.
// The formula is exact well beyond any index this module computes.
func EstimateDigits(n uint64) int {
	if n < 2 {
		return 1
	}
	return int(math.Floor(float64(n)*Log10Phi-Log10Sqrt5)) + 1
}

// MaxIndexForCapacity returns the largest n whose term F(n) fits in a
// decimal of the given capacity. For the default capacity of 100 this is 480.
func MaxIndexForCapacity(capacity int) uint64 {
	if capacity < 1 {
		return 0
	}
	// Start from the inverse of the growth rate and walk to the boundary.
	n := uint64(math.Max(1, (float64(capacity)-1+Log10Sqrt5)/Log10Phi))
	for EstimateDigits(n+1) <= capacity {
		n++
	}
	for n > 1 && EstimateDigits(n) > capacity {
		n--
	}
	return n
}
