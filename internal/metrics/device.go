package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name exported by this module.
const Namespace = "fibdrv"

// DeviceMetrics holds the collectors updated by a device. A nil
// *DeviceMetrics is valid and records nothing.
type DeviceMetrics struct {
	sessionsOpened  prometheus.Counter
	sessionsBusy    prometheus.Counter
	sessionsActive  prometheus.Gauge
	reads           prometheus.Counter
	computeErrors   prometheus.Counter
	computeDuration prometheus.Histogram
	termDigits      prometheus.Histogram
}

// NewDeviceMetrics creates the device collectors and registers them with reg.
// Registering twice with the same registry panics, as with promauto.
func NewDeviceMetrics(reg prometheus.Registerer) *DeviceMetrics {
	factory := promauto.With(reg)
	return &DeviceMetrics{
		sessionsOpened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sessions_opened_total",
			Help:      "Sessions successfully opened on the device.",
		}),
		sessionsBusy: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sessions_busy_total",
			Help:      "Open attempts rejected because a session was already active.",
		}),
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sessions_active",
			Help:      "1 while a session holds the device, 0 otherwise.",
		}),
		reads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "reads_total",
			Help:      "Terms served to session holders.",
		}),
		computeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "compute_errors_total",
			Help:      "Term computations that failed.",
		}),
		computeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "compute_duration_seconds",
			Help:      "Time spent computing a single term.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		termDigits: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "term_digits",
			Help:      "Decimal digits of the terms served.",
			Buckets:   prometheus.LinearBuckets(1, 10, 10),
		}),
	}
}

// SessionOpened records a successful open.
func (m *DeviceMetrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsOpened.Inc()
	m.sessionsActive.Set(1)
}

// SessionClosed records the release of the device.
func (m *DeviceMetrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessionsActive.Set(0)
}

// SessionBusy records an open attempt rejected with a busy signal.
func (m *DeviceMetrics) SessionBusy() {
	if m == nil {
		return
	}
	m.sessionsBusy.Inc()
}

// ObserveCompute records one term computation.
func (m *DeviceMetrics) ObserveCompute(elapsed time.Duration, digits int, err error) {
	if m == nil {
		return
	}
	m.computeDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.computeErrors.Inc()
		return
	}
	m.reads.Inc()
	m.termDigits.Observe(float64(digits))
}
