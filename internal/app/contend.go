package app

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibdrv/internal/cli"
	"github.com/agbru/fibdrv/internal/device"
	"github.com/agbru/fibdrv/internal/logging"
)

// ErrNotExclusive is returned when a contention probe sees a second session.
var ErrNotExclusive = errors.New("device granted concurrent sessions")

// runContend holds a session while Contend goroutines try to open the same
// device, then reports how many of them were turned away.
func (a *Application) runContend(ctx context.Context, out io.Writer) int {
	dev, err := a.newDevice(nil)
	if err != nil {
		return a.exitCode(err)
	}
	report, err := contend(ctx, dev, a.Config.Contend)
	if err != nil {
		return a.exitCode(err)
	}
	a.Logger.Info("contention probe finished",
		logging.Int("attempts", report.Attempts),
		logging.Int("busy", report.Busy))
	cli.DisplayContention(out, a.Config.DevicePath, report)
	if !report.Exclusive() {
		return a.exitCode(ErrNotExclusive)
	}
	return a.exitCode(nil)
}

// contend runs the probe against dev with k concurrent openers.
func contend(ctx context.Context, dev *device.Device, k int) (cli.ContentionReport, error) {
	start := time.Now()
	holder, err := dev.Open()
	if err != nil {
		return cli.ContentionReport{}, err
	}
	defer holder.Close()

	var opened, busy atomic.Int64
	opened.Add(1)

	g, gctx := errgroup.WithContext(ctx)
	for range k {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sess, err := dev.Open()
			switch {
			case errors.Is(err, device.ErrBusy):
				busy.Add(1)
				return nil
			case err != nil:
				return err
			}
			opened.Add(1)
			return sess.Close()
		})
	}
	if err := g.Wait(); err != nil {
		return cli.ContentionReport{}, err
	}

	return cli.ContentionReport{
		Attempts: k,
		Opened:   int(opened.Load()),
		Busy:     int(busy.Load()),
		Elapsed:  time.Since(start),
	}, nil
}
