package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibdrv/internal/metrics"
	"github.com/agbru/fibdrv/internal/server"
)

// runServe exposes the device over HTTP until ctx is cancelled.
func (a *Application) runServe(ctx context.Context) int {
	m := server.NewMetrics()
	dev, err := a.newDevice(metrics.NewDeviceMetrics(m.Registry()))
	if err != nil {
		return a.exitCode(err)
	}

	srv := server.New(dev, server.Config{
		Addr:     a.Config.Addr,
		Security: server.DefaultSecurityConfig(),
	}, m, a.Logger)
	if err := srv.Listen(); err != nil {
		return a.exitCode(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(gctx) })
	return a.exitCode(g.Wait())
}
