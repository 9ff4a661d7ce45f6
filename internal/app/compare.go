package app

import (
	"context"
	"io"

	"github.com/agbru/fibdrv/internal/cli"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/logging"
	"github.com/agbru/fibdrv/internal/orchestration"
)

// runCompare sweeps every registered engine over F(0)..F(MaxN) and checks
// that they agree term by term.
func (a *Application) runCompare(ctx context.Context, out io.Writer) int {
	calcs := orchestration.GetCalculatorsToRun(orchestration.AllAlgorithms, a.Factory)
	if len(calcs) == 0 {
		return a.exitCode(apperrors.NewConfigError("no engines registered"))
	}
	a.Logger.Debug("comparing engines", logging.Int("engines", len(calcs)), logging.Int64("max_n", a.Config.MaxN))

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := a.ErrWriter
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}
	results := orchestration.ExecuteCalculations(ctx, calcs, uint64(a.Config.MaxN), reporter, progressOut)
	if err := ctx.Err(); err != nil {
		return a.exitCode(err)
	}
	return orchestration.AnalyzeComparisonResults(results, cli.CLIResultPresenter{}, out)
}
