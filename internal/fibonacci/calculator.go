//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

// Package fibonacci generates terms of the Fibonacci sequence on top of the
// fixed-capacity decimals of package bignum.
//
// Terms are produced by the plain recurrence F(n) = F(n-1) + F(n-2) seeded
// with F(0) = 0 and F(1) = 1. Two implementations are provided: one keeps a
// rolling pair of terms, the other keeps the whole history in an arena.
package fibonacci

import "github.com/agbru/fibdrv/internal/bignum"

// Calculator computes single terms of the Fibonacci sequence.
//
// Compute is synchronous and runs in O(n) additions. Range checking of n is
// the caller's job: an n whose term does not fit the configured capacity
// yields an apperrors.CalculationError wrapping bignum.ErrOverflow.
type Calculator interface {
	// Compute returns F(n) as a newly allocated value owned by the caller.
	Compute(n uint64) (*bignum.Decimal, error)

	// Name returns the identifier the calculator is registered under.
	Name() string
}
