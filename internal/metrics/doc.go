// Package metrics defines the Prometheus collectors that instrument the
// Fibonacci device: session lifecycle, busy rejections and the latency of
// term computations.
package metrics
