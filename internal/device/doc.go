// Package device exposes Fibonacci terms through a seekable, file-like
// interface modelled on a character device.
//
// A Device admits one Session at a time. The session offset selects a
// sequence index; reading returns the decimal digits of that term. Offsets
// are clamped into [0, MaxN], so out-of-range positions are never an error.
//
//	sess, err := dev.Open()
//	if errors.Is(err, device.ErrBusy) {
//		// someone else holds the device; retry later
//	}
//	defer sess.Close()
//	sess.Seek(10, io.SeekStart)
//	n, _ := sess.Read(buf) // buf[:n] == "55"
package device
