// Package config handles parsing and validation of the fibdrv command-line
// configuration.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/fibdrv/internal/bignum"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "FIBDRV_"

// Defaults mirror the original driver: indices 0..100 over 100-digit buffers.
const (
	DefaultMaxN       = 100
	DefaultCapacity   = bignum.DefaultCapacity
	DefaultAlgo       = "iterative"
	DefaultOffset     = 100
	DefaultDevicePath = "/dev/fibonacci"
	DefaultAddr       = ":8080"
	DefaultLogLevel   = "info"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// MaxN is the highest index the device addresses.
	MaxN int64
	// Capacity is the digit capacity of every decimal.
	Capacity int
	// Algo names the calculator ("iterative" or "history").
	Algo string
	// Offset is the last index visited by the exerciser sweep.
	Offset int64
	// DevicePath is the name shown in exerciser output.
	DevicePath string
	// Serve runs the HTTP gateway instead of the exerciser.
	Serve bool
	// Addr is the listen address of the HTTP gateway.
	Addr string
	// Contend runs the contention probe with this many concurrent openers.
	Contend int
	// Quiet prints only the digits of each read.
	Quiet bool
	// NoColor disables terminal styling.
	NoColor bool
	// LogLevel is the minimum zerolog level.
	LogLevel string
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// ParseConfig parses the command-line arguments, applies FIBDRV_ environment
// overrides for flags left unset, and validates the result.
//
// Parameters:
//   - programName: The name used in usage messages.
//   - args: The arguments without the program name.
//   - errorOutput: The writer for usage and parse errors.
//   - availableAlgos: The calculator names accepted by -algo.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, a parse error, or an apperrors.ConfigError.
func ParseConfig(programName string, args []string, errorOutput io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	cfg := AppConfig{}
	fs.Int64Var(&cfg.MaxN, "max-n", DefaultMaxN, "Highest addressable sequence index.")
	fs.IntVar(&cfg.Capacity, "capacity", DefaultCapacity, "Digit capacity of each decimal.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Calculator to use (%s).", strings.Join(availableAlgos, ", ")))
	fs.Int64Var(&cfg.Offset, "offset", DefaultOffset, "Last index visited by the read sweep.")
	fs.StringVar(&cfg.DevicePath, "device", DefaultDevicePath, "Device name shown in exerciser output.")
	fs.BoolVar(&cfg.Serve, "serve", false, "Serve terms over HTTP instead of running the exerciser.")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "Listen address for -serve.")
	fs.IntVar(&cfg.Contend, "contend", 0, "Probe exclusivity with this many concurrent openers.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the digits of each read.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version information and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorOutput, "Configuration error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: An apperrors.ConfigError describing the first problem found.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Capacity < 1 {
		return apperrors.NewConfigError("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.MaxN < 0 {
		return apperrors.NewConfigError("max-n must not be negative, got %d", c.MaxN)
	}
	if limit := fibonacci.MaxIndexForCapacity(c.Capacity); uint64(c.MaxN) > limit {
		return apperrors.NewConfigError(
			"max-n %d needs %d digits but capacity is %d (largest index that fits: %d)",
			c.MaxN, fibonacci.EstimateDigits(uint64(c.MaxN)), c.Capacity, limit)
	}
	if c.Offset < 0 {
		return apperrors.NewConfigError("offset must not be negative, got %d", c.Offset)
	}
	if c.Contend < 0 {
		return apperrors.NewConfigError("contend must not be negative, got %d", c.Contend)
	}
	if c.Serve && c.Contend > 0 {
		return apperrors.NewConfigError("-serve and -contend are mutually exclusive")
	}
	if len(availableAlgos) > 0 && !contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
