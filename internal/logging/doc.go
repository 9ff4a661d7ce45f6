// Package logging provides the logging interface shared by the device, the
// HTTP gateway and the exerciser. It hides the backend behind Logger so that
// components log the same way whether they run under zerolog or the standard
// library logger.
package logging
