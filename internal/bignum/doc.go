// Package bignum implements the fixed-capacity decimal integer used by the
// Fibonacci engine.
//
// A Decimal stores a non-negative integer as right-aligned decimal digits in a
// buffer whose capacity is fixed at construction. The only arithmetic is
// addition: the sequence engine needs nothing else.
package bignum
