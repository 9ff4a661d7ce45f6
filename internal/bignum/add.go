package bignum

// Add returns x + y in a newly allocated Decimal. Neither operand is
// modified. The result has the larger of the two capacities.
//
// When the sum needs one digit more than the result capacity, the final
// carry is dropped: the result is (x + y) mod 10^capacity, with leading zeros
// removed. Use AddChecked to get an error instead.
func Add(x, y *Decimal) *Decimal {
	z := NewZero(max(x.Capacity(), y.Capacity()))
	AddInto(z, x, y)
	return z
}

// AddChecked is like Add but returns ErrOverflow instead of a truncated sum.
func AddChecked(x, y *Decimal) (*Decimal, error) {
	z := NewZero(max(x.Capacity(), y.Capacity()))
	if AddInto(z, x, y) {
		return nil, ErrOverflow
	}
	return z, nil
}

// AddInto sets z to x + y and reports whether a carry was dropped because z
// ran out of capacity. z may alias x or y. Digits of x or y that lie beyond
// the capacity of z are ignored, as is any carry out of position 0.
//
// Parameters:
//   - z: The destination; its previous value is overwritten.
//   - x, y: The operands, read only.
//
// Returns:
//   - bool: true if the sum was truncated.
func AddInto(z, x, y *Decimal) (truncated bool) {
	width := max(x.count, y.count)
	c := len(z.buf)
	if width > c {
		width = c
		truncated = true
	}

	var carry byte
	for i := 0; i < width; i++ {
		total := x.digit(i) + y.digit(i) + carry
		if total >= 10 {
			total -= 10
			carry = 1
		} else {
			carry = 0
		}
		z.buf[c-1-i] = total
	}
	if carry == 1 {
		if width < c {
			z.buf[c-1-width] = 1
			width++
		} else {
			truncated = true
		}
	}

	clear(z.buf[:c-width])
	z.count = width
	z.normalize()
	return truncated
}
