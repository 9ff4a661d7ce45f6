package bignum

// Render returns the ASCII digits of d from the most significant digit to the
// least significant one. The result is never empty: zero renders as "0".
func Render(d *Decimal) []byte {
	return d.AppendDigits(make([]byte, 0, d.count))
}

// Bytes is shorthand for Render(d).
func (d *Decimal) Bytes() []byte { return Render(d) }

// AppendDigits appends the rendering of d to dst and returns the extended
// slice.
func (d *Decimal) AppendDigits(dst []byte) []byte {
	for _, v := range d.buf[len(d.buf)-d.count:] {
		dst = append(dst, '0'+v)
	}
	return dst
}

// String implements fmt.Stringer.
func (d *Decimal) String() string { return string(Render(d)) }
