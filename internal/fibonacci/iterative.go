package fibonacci

import (
	"github.com/agbru/fibdrv/internal/bignum"
	apperrors "github.com/agbru/fibdrv/internal/errors"
)

// IterativeCalculator computes F(n) keeping only the two most recent terms.
// Working memory is three decimals regardless of n.
type IterativeCalculator struct {
	capacity int
}

// NewIterativeCalculator returns an IterativeCalculator whose terms have the
// given digit capacity.
func NewIterativeCalculator(capacity int) *IterativeCalculator {
	return &IterativeCalculator{capacity: capacity}
}

// Name returns "iterative".
func (c *IterativeCalculator) Name() string { return "iterative" }

// Compute returns F(n).
func (c *IterativeCalculator) Compute(n uint64) (*bignum.Decimal, error) {
	if n == 0 {
		return bignum.NewZero(c.capacity), nil
	}

	prev := bignum.NewZero(c.capacity)
	curr := bignum.NewOne(c.capacity)
	spare := bignum.NewZero(c.capacity)
	for i := uint64(2); i <= n; i++ {
		if bignum.AddInto(spare, curr, prev) {
			return nil, apperrors.CalculationError{Index: i, Cause: bignum.ErrOverflow}
		}
		prev, curr, spare = curr, spare, prev
	}
	return curr, nil
}
