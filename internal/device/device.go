package device

import (
	"errors"
	"sync"
	"time"

	"github.com/agbru/fibdrv/internal/bignum"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/logging"
	"github.com/agbru/fibdrv/internal/metrics"
)

// DefaultMaxN is the highest addressable index unless WithMaxN is given.
const DefaultMaxN = 100

// Name is the name the device reports in logs.
const Name = "fibonacci"

var (
	// ErrBusy is returned by Open while another session is active.
	ErrBusy = errors.New("device: in use")

	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("device: session closed")

	// ErrInvalidWhence is returned by Seek for an unknown whence value.
	ErrInvalidWhence = errors.New("device: invalid whence")
)

// Device serves terms of the Fibonacci sequence to one session at a time.
// Devices are independent: each one owns its exclusivity lock.
type Device struct {
	calc    fibonacci.Calculator
	maxN    int64
	logger  logging.Logger
	metrics *metrics.DeviceMetrics

	// session is held from Open until Close. It is only ever acquired
	// with TryLock so that Open never blocks.
	session sync.Mutex
}

// Option configures a Device during construction.
type Option func(*Device)

// WithMaxN sets the highest addressable index. Negative values are treated
// as 0.
func WithMaxN(n int64) Option {
	return func(d *Device) { d.maxN = max(n, 0) }
}

// WithLogger sets the logger used for busy rejections and computed terms.
func WithLogger(l logging.Logger) Option {
	return func(d *Device) { d.logger = l }
}

// WithMetrics sets the collectors updated by the device.
func WithMetrics(m *metrics.DeviceMetrics) Option {
	return func(d *Device) { d.metrics = m }
}

// New returns a device that computes terms with calc.
func New(calc fibonacci.Calculator, opts ...Option) *Device {
	d := &Device{calc: calc, maxN: DefaultMaxN}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logging.NewNopLogger()
	}
	return d
}

// MaxN returns the highest addressable index.
func (d *Device) MaxN() int64 { return d.maxN }

// Open starts a session. It never blocks: if a session is already active it
// returns ErrBusy immediately and the caller decides whether to retry.
func (d *Device) Open() (*Session, error) {
	if !d.session.TryLock() {
		d.logger.Error("device is in use", ErrBusy, logging.String("device", Name))
		d.metrics.SessionBusy()
		return nil, ErrBusy
	}
	d.metrics.SessionOpened()
	d.logger.Debug("session opened", logging.String("device", Name))
	return &Session{dev: d}, nil
}

func (d *Device) release() {
	d.metrics.SessionClosed()
	d.session.Unlock()
	d.logger.Debug("session closed", logging.String("device", Name))
}

// clamp maps any offset into [0, maxN].
func (d *Device) clamp(offset int64) int64 {
	if offset < 0 {
		return 0
	}
	if offset > d.maxN {
		return d.maxN
	}
	return offset
}

// term renders F(index) for an index already clamped into [0, maxN].
func (d *Device) term(index int64) ([]byte, error) {
	start := time.Now()
	value, err := d.calc.Compute(uint64(index))
	if err != nil {
		d.metrics.ObserveCompute(time.Since(start), 0, err)
		d.logger.Error("term computation failed", err, logging.Int64("index", index))
		return nil, apperrors.WrapError(err, "device %s: read at %d", Name, index)
	}
	digits := bignum.Render(value)
	d.metrics.ObserveCompute(time.Since(start), len(digits), nil)
	d.logger.Debug("term computed",
		logging.Int64("index", index),
		logging.Int("digits", len(digits)),
		logging.String("value", string(digits)))
	return digits, nil
}
