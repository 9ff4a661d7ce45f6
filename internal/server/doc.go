// Package server exposes a device over HTTP.
//
// Every request to /fib/{offset} opens its own session, seeks, reads a single
// term and closes the session again, so concurrent requests contend for the
// device exactly like concurrent openers of the character device. A request
// that finds the device busy receives 503 Service Unavailable with a
// Retry-After header.
//
// The router is built on chi and carries request IDs, panic recovery,
// security headers, Prometheus request metrics and an OpenTelemetry span per
// term read.
package server
