// Package memory provides the arena that backs the history calculator.
package memory

import "github.com/agbru/fibdrv/internal/bignum"

// MaxArenaBytes caps the contiguous block a DecimalArena pre-allocates.
// Requests beyond it fall back to one heap allocation per term.
const MaxArenaBytes = 64 << 20

// DecimalArena pre-allocates one contiguous block of digit cells for a run of
// decimals of equal capacity, indexed in allocation order. Terms F(0)..F(n)
// of one calculation share the block, which is released in one piece when the
// arena is dropped or reused after Reset.
//
// The arena uses a bump-pointer allocation strategy: each Alloc call advances
// the offset by one decimal width. When the block is exhausted, it falls back
// to standard heap allocation.
type DecimalArena struct {
	block  []byte
	width  int
	offset int
	terms  []*bignum.Decimal
}

// NewDecimalArena creates an arena with room for slots decimals of the given
// digit capacity.
func NewDecimalArena(slots uint64, width int) *DecimalArena {
	a := &DecimalArena{width: width}
	if width < 1 || slots == 0 {
		return a
	}
	if slots > uint64(MaxArenaBytes/width) {
		return a
	}
	a.block = make([]byte, int(slots)*width)
	a.terms = make([]*bignum.Decimal, 0, slots)
	return a
}

// Alloc appends a zero-valued decimal to the arena and returns it. Its index
// is Len()-1 after the call.
func (a *DecimalArena) Alloc() *bignum.Decimal {
	var d *bignum.Decimal
	if a.block == nil || a.offset+a.width > len(a.block) {
		d = bignum.NewZero(a.width)
	} else {
		cells := a.block[a.offset : a.offset+a.width : a.offset+a.width]
		a.offset += a.width
		d = bignum.NewWithBuffer(cells)
	}
	a.terms = append(a.terms, d)
	return d
}

// At returns the decimal allocated i-th. It panics if i is out of range.
func (a *DecimalArena) At(i int) *bignum.Decimal {
	return a.terms[i]
}

// Len returns the number of decimals allocated since creation or the last
// Reset.
func (a *DecimalArena) Len() int {
	return len(a.terms)
}

// Reset makes the arena reusable without freeing the block.
// All previously allocated decimals become invalid after Reset.
func (a *DecimalArena) Reset() {
	clear(a.terms)
	a.terms = a.terms[:0]
	a.offset = 0
}

// UsedBytes returns the number of block cells handed out.
func (a *DecimalArena) UsedBytes() int {
	return a.offset
}

// CapacityBytes returns the size of the pre-allocated block.
func (a *DecimalArena) CapacityBytes() int {
	return len(a.block)
}
