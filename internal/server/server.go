package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fibdrv/internal/device"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/logging"
)

const tracerName = "github.com/agbru/fibdrv/internal/server"

// Server timeouts.
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// initialReadSize is the first buffer size tried for a term. It covers the
// default capacity; larger capacities grow the buffer on io.ErrShortBuffer.
const initialReadSize = 128

// Config holds the listen address and policies of a Server.
type Config struct {
	Addr            string
	Security        SecurityConfig
	ShutdownTimeout time.Duration
}

// Server serves the terms of a device over HTTP.
type Server struct {
	dev      *device.Device
	config   Config
	metrics  *Metrics
	logger   logging.Logger
	tracer   trace.Tracer
	router   chi.Router
	listener net.Listener
}

// New builds a Server for dev. A nil metrics gets a private registry; a nil
// logger discards everything.
func New(dev *device.Device, config Config, m *Metrics, logger logging.Logger) *Server {
	if m == nil {
		m = NewMetrics()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}
	s := &Server{
		dev:     dev,
		config:  config,
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return SecurityMiddleware(s.config.Security, s.metricsMiddleware(h))
	}
	r.Get("/fib/{offset}", wrap(s.handleFib))
	r.Options("/fib/{offset}", wrap(s.handleFib))
	r.Get("/healthz", wrap(s.handleHealth))
	r.HandleFunc("/metrics", s.handleMetrics)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the bound listen address once ListenAndServe has started, or
// the configured address before that.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// Listen binds the configured address. It is split from Serve so callers can
// learn the bound port (for ":0") before serving.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return apperrors.WrapError(err, "listening on %s", s.config.Addr)
	}
	s.listener = ln
	return nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully,
// waiting up to the configured shutdown timeout for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http gateway listening", logging.String("addr", s.Addr()))
		errCh <- srv.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http gateway")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "shutting down http gateway")
	}
	return nil
}

// handleFib serves GET /fib/{offset}?whence=start|current|end.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	offset, err := strconv.ParseInt(chi.URLParam(r, "offset"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.ValidationError{
			Field:   "offset",
			Message: "must be a base-10 integer",
		})
		return
	}
	whence, err := parseWhence(r.URL.Query().Get("whence"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	_, span := s.tracer.Start(r.Context(), "fib.read", trace.WithAttributes(
		attribute.Int64("fib.requested_offset", offset),
		attribute.Int("fib.whence", whence),
	))
	defer span.End()

	digits, pos, err := s.readTerm(offset, whence)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, device.ErrBusy) {
			w.Header().Set("Retry-After", "1")
			s.writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		s.logger.Error("reading term failed", err, logging.Int64("offset", pos))
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	span.SetAttributes(attribute.Int64("fib.offset", pos), attribute.Int("fib.digits", len(digits)))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Fib-Offset", strconv.FormatInt(pos, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(digits); err != nil {
		s.logger.Error("writing response failed", err)
	}
}

// readTerm runs one open/seek/read/close cycle on the device.
func (s *Server) readTerm(offset int64, whence int) ([]byte, int64, error) {
	sess, err := s.dev.Open()
	if err != nil {
		return nil, 0, err
	}
	defer sess.Close()

	pos, err := sess.Seek(offset, whence)
	if err != nil {
		return nil, pos, err
	}
	digits, err := device.ReadTerm(sess, initialReadSize)
	return digits, pos, err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("OK")); err != nil {
		s.logger.Error("writing health response failed", err)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	http.Error(w, err.Error(), code)
}

// parseWhence maps the whence query parameter onto io.Seek* constants. An
// empty value means "start".
func parseWhence(v string) (int, error) {
	switch v {
	case "", "start":
		return io.SeekStart, nil
	case "current":
		return io.SeekCurrent, nil
	case "end":
		return io.SeekEnd, nil
	}
	return 0, apperrors.ValidationError{
		Field:   "whence",
		Message: fmt.Sprintf("unknown value %q (want start, current or end)", v),
	}
}

// routePattern returns the matched chi route pattern, falling back to the raw
// path outside a chi router.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
