package device

import (
	"errors"
	"io"
	"math"
)

// Session is the exclusive handle returned by Device.Open. It implements
// io.Reader, io.ReaderAt, io.Writer, io.Seeker and io.Closer.
//
// A Session is owned by the caller that opened it and is not safe for
// concurrent use.
type Session struct {
	dev    *Device
	offset int64
	closed bool
}

// Offset returns the current, already clamped, offset.
func (s *Session) Offset() int64 { return s.offset }

// Term returns the digits of F(index) with index clamped into [0, MaxN].
func (s *Session) Term(index int64) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return s.dev.term(s.dev.clamp(index))
}

// Read copies the digits of the term at the current offset into p and
// returns the number of bytes copied.
//
// Read does not advance the offset: repeated reads return the same term
// until the next Seek, and there is no end of file. If p cannot hold every
// digit, the leading digits that fit are copied and io.ErrShortBuffer is
// returned.
func (s *Session) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	digits, err := s.dev.term(s.offset)
	if err != nil {
		return 0, err
	}
	n := copy(p, digits)
	if n < len(digits) {
		return n, io.ErrShortBuffer
	}
	return n, nil
}

// ReadAt copies the digits of the term at the clamped offset off into p. It
// does not use or change the session offset. As required by io.ReaderAt,
// io.EOF is returned when the term is shorter than p.
func (s *Session) ReadAt(p []byte, off int64) (int, error) {
	digits, err := s.Term(off)
	if err != nil {
		return 0, err
	}
	n := copy(p, digits)
	switch {
	case n < len(digits):
		return n, io.ErrShortBuffer
	case n < len(p):
		return n, io.EOF
	}
	return n, nil
}

// Write accepts p without looking at it. It exists so that tools which
// exercise both directions of a file have something to write to.
func (s *Session) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return len(p), nil
}

// Seek sets the offset for the next Read and returns it.
//
//   - io.SeekStart: the new offset is offset.
//   - io.SeekCurrent: the new offset is the current offset plus offset.
//   - io.SeekEnd: the new offset is MaxN minus offset, so Seek(0, io.SeekEnd)
//     addresses F(MaxN) itself.
//
// In every mode the result is clamped into [0, MaxN]. An unknown whence
// returns ErrInvalidWhence and leaves the offset unchanged.
func (s *Session) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = addSat(s.offset, offset)
	case io.SeekEnd:
		pos = subSat(s.dev.maxN, offset)
	default:
		return s.offset, ErrInvalidWhence
	}
	s.offset = s.dev.clamp(pos)
	return s.offset, nil
}

// Close ends the session and releases the device. Closing twice returns
// ErrClosed.
func (s *Session) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.dev.release()
	return nil
}

// addSat returns a+b saturated to the int64 range.
func addSat(a, b int64) int64 {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return math.MaxInt64
	case b < 0 && sum > a:
		return math.MinInt64
	}
	return sum
}

// subSat returns a-b saturated to the int64 range.
func subSat(a, b int64) int64 {
	if b == math.MinInt64 {
		if a >= 0 {
			return math.MaxInt64
		}
		return a - b
	}
	return addSat(a, -b)
}

// ReadTerm reads one whole term from r, starting with a buffer of sizeHint
// bytes and doubling it while r reports io.ErrShortBuffer.
func ReadTerm(r io.Reader, sizeHint int) ([]byte, error) {
	if sizeHint < 1 {
		sizeHint = 1
	}
	buf := make([]byte, sizeHint)
	for {
		n, err := r.Read(buf)
		if errors.Is(err, io.ErrShortBuffer) {
			buf = make([]byte, 2*len(buf))
			continue
		}
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}
}
