package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibdrv/internal/ui"
)

// FormatWrite returns the line printed after one write to the device.
func FormatWrite(devicePath string, n int) string {
	return fmt.Sprintf("Writing to %s, returned the sequence %d", devicePath, n)
}

// FormatRead returns the line printed after one read at offset.
func FormatRead(devicePath string, offset int64, digits []byte) string {
	return fmt.Sprintf("Reading from %s at offset %d, returned the sequence %s.", devicePath, offset, digits)
}

// DisplayWrite prints the result of one write.
func DisplayWrite(out io.Writer, devicePath string, n int) {
	s := ui.Styles()
	fmt.Fprintf(out, "Writing to %s, returned the sequence %s\n",
		s.Primary.Render(devicePath), s.Secondary.Render(fmt.Sprint(n)))
}

// DisplayRead prints the result of one read. In quiet mode only the digits
// are printed.
func DisplayRead(out io.Writer, devicePath string, offset int64, digits []byte, quiet bool) {
	if quiet {
		fmt.Fprintf(out, "%s\n", digits)
		return
	}
	s := ui.Styles()
	fmt.Fprintf(out, "Reading from %s at offset %s, returned the sequence %s.\n",
		s.Primary.Render(devicePath), s.Secondary.Render(fmt.Sprint(offset)), s.Success.Render(string(digits)))
}

// ContentionReport summarizes a run of concurrent open attempts against a
// device whose session was already held.
type ContentionReport struct {
	// Attempts is the number of concurrent openers.
	Attempts int
	// Opened is the number of openers that obtained a session.
	Opened int
	// Busy is the number of openers rejected with ErrBusy.
	Busy int
	// Elapsed is the wall time of the probe.
	Elapsed time.Duration
}

// Exclusive reports whether the probe saw the device honor single-session
// exclusivity: one holder and every contender turned away.
func (r ContentionReport) Exclusive() bool {
	return r.Opened == 1 && r.Busy == r.Attempts
}

// FormatContention returns the one-line summary of a contention probe.
func FormatContention(devicePath string, r ContentionReport) string {
	return fmt.Sprintf("Contention on %s: %d openers, %d busy, %d sessions in %s",
		devicePath, r.Attempts, r.Busy, r.Opened, FormatExecutionDuration(r.Elapsed))
}

// DisplayContention prints the contention summary followed by a verdict.
func DisplayContention(out io.Writer, devicePath string, r ContentionReport) {
	s := ui.Styles()
	fmt.Fprintln(out, FormatContention(devicePath, r))
	if r.Exclusive() {
		fmt.Fprintln(out, s.Success.Render("exclusive access held"))
		return
	}
	fmt.Fprintln(out, s.Error.Render("exclusive access violated"))
}

// DisplayError prints err on out in the error color.
func DisplayError(out io.Writer, err error) {
	fmt.Fprintln(out, ui.Styles().Error.Render("Error: "+err.Error()))
}

// FormatExecutionDuration formats a time.Duration for display. It shows
// microseconds below a millisecond, milliseconds below a second and the
// default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
