package app

import (
	"context"
	"io"

	"github.com/agbru/fibdrv/internal/cli"
	"github.com/agbru/fibdrv/internal/device"
	"github.com/agbru/fibdrv/internal/logging"
)

// writePayload is the buffer written to the device on every write.
var writePayload = []byte("testing writing")

// runExercise mirrors the C client: open the device, write offset+1 times,
// read every index from 0 to offset and back down again, then close.
func (a *Application) runExercise(ctx context.Context, out io.Writer) int {
	dev, err := a.newDevice(nil)
	if err != nil {
		return a.exitCode(err)
	}
	a.Logger.Debug("exercising device", logging.String("device", a.describe()))
	return a.exitCode(a.exercise(ctx, dev, out))
}

func (a *Application) exercise(ctx context.Context, dev *device.Device, out io.Writer) error {
	sess, err := dev.Open()
	if err != nil {
		return err
	}
	defer sess.Close()

	offset := a.Config.Offset
	quiet := a.Config.Quiet
	path := a.Config.DevicePath

	for i := int64(0); i <= offset; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := sess.Write(writePayload)
		if err != nil {
			return err
		}
		if !quiet {
			cli.DisplayWrite(out, path, n)
		}
	}

	readAt := func(i int64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := sess.Seek(i, io.SeekStart); err != nil {
			return err
		}
		digits, err := device.ReadTerm(sess, a.Config.Capacity)
		if err != nil {
			return err
		}
		cli.DisplayRead(out, path, i, digits, quiet)
		return nil
	}

	for i := int64(0); i <= offset; i++ {
		if err := readAt(i); err != nil {
			return err
		}
	}
	for i := offset; i >= 0; i-- {
		if err := readAt(i); err != nil {
			return err
		}
	}
	return nil
}
