package bignum

import "errors"

// DefaultCapacity is the number of digit cells in a Decimal built by Zero and
// One. F(478) is the first term that no longer fits.
const DefaultCapacity = 100

var (
	// ErrOverflow is returned when a value needs more digits than the
	// capacity of its buffer.
	ErrOverflow = errors.New("bignum: capacity exceeded")

	// ErrSyntax is returned by Parse for input that is not a decimal string.
	ErrSyntax = errors.New("bignum: invalid decimal syntax")
)

// Decimal is a non-negative integer held as decimal digits.
//
// The digits are right-aligned in buf: the least significant digit lives at
// position Capacity()-1 and the count most significant positions to its left
// hold the rest of the number. Cells left of buf[len(buf)-count] are unused
// and read as zero. count is at least 1; zero is the single digit 0.
type Decimal struct {
	buf   []byte
	count int
}

// NewZero returns zero in a buffer of the given capacity.
// It panics if capacity is less than 1.
func NewZero(capacity int) *Decimal {
	if capacity < 1 {
		panic("bignum: capacity must be at least 1")
	}
	return NewWithBuffer(make([]byte, capacity))
}

// NewOne returns one in a buffer of the given capacity.
// It panics if capacity is less than 1.
func NewOne(capacity int) *Decimal {
	d := NewZero(capacity)
	d.buf[capacity-1] = 1
	return d
}

// Zero returns zero with DefaultCapacity.
func Zero() *Decimal { return NewZero(DefaultCapacity) }

// One returns one with DefaultCapacity.
func One() *Decimal { return NewOne(DefaultCapacity) }

// NewWithBuffer returns a Decimal that uses buf as its digit storage and sets
// it to zero. The capacity is len(buf). The caller must not touch buf while
// the Decimal is in use.
// It panics if buf is empty.
func NewWithBuffer(buf []byte) *Decimal {
	if len(buf) == 0 {
		panic("bignum: capacity must be at least 1")
	}
	clear(buf)
	return &Decimal{buf: buf, count: 1}
}

// Copy returns an independent deep copy of d.
func (d *Decimal) Copy() *Decimal {
	buf := make([]byte, len(d.buf))
	copy(buf, d.buf)
	return &Decimal{buf: buf, count: d.count}
}

// Capacity returns the number of digit cells of d.
func (d *Decimal) Capacity() int { return len(d.buf) }

// Len returns the number of significant digits of d. Zero has length 1.
func (d *Decimal) Len() int { return d.count }

// IsZero reports whether d is zero.
func (d *Decimal) IsZero() bool { return d.count == 1 && d.buf[len(d.buf)-1] == 0 }

// DigitAt returns the digit at buffer position pos, where position
// Capacity()-1 holds the least significant digit. Unused cells and positions
// outside [0, Capacity()) read as 0.
func (d *Decimal) DigitAt(pos int) byte {
	if pos < len(d.buf)-d.count || pos >= len(d.buf) {
		return 0
	}
	return d.buf[pos]
}

// digit returns the i-th digit counting from the least significant one.
func (d *Decimal) digit(i int) byte {
	if i >= d.count {
		return 0
	}
	return d.buf[len(d.buf)-1-i]
}

// normalize drops leading zero digits, keeping at least one.
func (d *Decimal) normalize() {
	for d.count > 1 && d.buf[len(d.buf)-d.count] == 0 {
		d.count--
	}
}

// Parse returns the value of the decimal string s in a buffer of the given
// capacity. Leading zeros are accepted and stripped.
//
// Parameters:
//   - s: A non-empty string of ASCII digits.
//   - capacity: The digit capacity of the result.
//
// Returns:
//   - *Decimal: The parsed value.
//   - error: ErrSyntax for malformed input, ErrOverflow if the significant
//     digits do not fit in capacity.
func Parse(s string, capacity int) (*Decimal, error) {
	if s == "" {
		return nil, ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, ErrSyntax
		}
	}
	start := 0
	for start < len(s)-1 && s[start] == '0' {
		start++
	}
	s = s[start:]
	if len(s) > capacity {
		return nil, ErrOverflow
	}

	d := NewZero(capacity)
	offset := capacity - len(s)
	for i := 0; i < len(s); i++ {
		d.buf[offset+i] = s[i] - '0'
	}
	d.count = len(s)
	return d, nil
}
