// Package app wires configuration, the sequence engine, the device and the
// presentation layers into the fibdrv command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/fibdrv/internal/cli"
	"github.com/agbru/fibdrv/internal/config"
	"github.com/agbru/fibdrv/internal/device"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/logging"
	"github.com/agbru/fibdrv/internal/metrics"
	"github.com/agbru/fibdrv/internal/orchestration"
	"github.com/agbru/fibdrv/internal/ui"
)

// Application represents the fibdrv application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application. Without
// it, a default factory bound to the configured capacity is used.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the console logger writing to ErrWriter.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	var availableAlgos []string
	if app.Factory != nil {
		availableAlgos = app.Factory.List()
	} else {
		availableAlgos = fibonacci.GlobalFactory().List()
	}
	availableAlgos = append(availableAlgos, orchestration.AllAlgorithms)

	programName := "fibdrv"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}
	if cfg.Algo == orchestration.AllAlgorithms && (cfg.Serve || cfg.Contend > 0) {
		err := apperrors.NewConfigError("-algo %s compares engines and cannot be combined with -serve or -contend", orchestration.AllAlgorithms)
		fmt.Fprintln(errWriter, "Configuration error:", err)
		return nil, err
	}
	app.Config = cfg

	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory(cfg.Capacity)
	}
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "fibdrv")
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level, err := zerolog.ParseLevel(strings.ToLower(a.Config.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.Algo == orchestration.AllAlgorithms:
		return a.runCompare(ctx, out)
	case a.Config.Serve:
		return a.runServe(ctx)
	case a.Config.Contend > 0:
		return a.runContend(ctx, out)
	}
	return a.runExercise(ctx, out)
}

// newDevice builds the device described by the configuration.
func (a *Application) newDevice(m *metrics.DeviceMetrics) (*device.Device, error) {
	calc, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	return device.New(calc,
		device.WithMaxN(a.Config.MaxN),
		device.WithLogger(a.Logger),
		device.WithMetrics(m),
	), nil
}

// exitCode maps an error onto the process exit status and reports it.
func (a *Application) exitCode(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	cli.DisplayError(a.ErrWriter, err)

	var cfgErr apperrors.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return apperrors.ExitErrorConfig
	case errors.Is(err, device.ErrBusy):
		return apperrors.ExitErrorBusy
	case apperrors.IsContextError(err):
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitErrorGeneric
}

// IsHelpError checks if the error is a help flag error (-h or -help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForParseError returns the exit status for an error returned by New.
func ExitCodeForParseError(err error) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	return apperrors.ExitErrorConfig
}

// describe returns a short label for log entries.
func (a *Application) describe() string {
	return fmt.Sprintf("%s (algo=%s, max-n=%d)", a.Config.DevicePath, a.Config.Algo, a.Config.MaxN)
}
