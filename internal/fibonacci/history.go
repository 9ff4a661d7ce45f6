package fibonacci

import (
	"github.com/agbru/fibdrv/internal/bignum"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci/memory"
)

// HistoryCalculator computes F(n) retaining every term F(0)..F(n) in an
// arena owned by the call. The result is copied out of the arena, so the
// caller's value does not pin the history.
type HistoryCalculator struct {
	capacity int
}

// NewHistoryCalculator returns a HistoryCalculator whose terms have the given
// digit capacity.
func NewHistoryCalculator(capacity int) *HistoryCalculator {
	return &HistoryCalculator{capacity: capacity}
}

// Name returns "history".
func (c *HistoryCalculator) Name() string { return "history" }

// Compute returns F(n).
func (c *HistoryCalculator) Compute(n uint64) (*bignum.Decimal, error) {
	arena := memory.NewDecimalArena(n+1, c.capacity)
	if err := c.fill(arena, n); err != nil {
		return nil, err
	}
	return arena.At(int(n)).Copy(), nil
}

// fill appends F(0)..F(n) to arena, stopping at the first term that does
// not fit.
func (c *HistoryCalculator) fill(arena *memory.DecimalArena, n uint64) error {
	arena.Alloc()
	if n == 0 {
		return nil
	}
	bignum.AddInto(arena.Alloc(), arena.At(0), bignum.NewOne(c.capacity))

	for i := 2; uint64(i) <= n; i++ {
		if bignum.AddInto(arena.Alloc(), arena.At(i-1), arena.At(i-2)) {
			return apperrors.CalculationError{Index: uint64(i), Cause: bignum.ErrOverflow}
		}
	}
	return nil
}
