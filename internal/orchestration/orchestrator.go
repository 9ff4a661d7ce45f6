package orchestration

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibdrv/internal/bignum"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
)

// ProgressBufferMultiplier sizes the progress channel per calculator so that
// a slow reporter rarely causes dropped updates.
const ProgressBufferMultiplier = 5

// ExecuteCalculations sweeps every calculator over F(0) through F(maxN)
// concurrently, one goroutine per calculator, and collects the rendered
// terms. A failing calculator does not stop the others; its error is
// recorded in its result. Cancelling ctx stops every sweep between terms.
//
// Progress is sent to reporter, which runs until every sweep has returned.
// Updates are dropped rather than stalling a sweep when the reporter lags.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, maxN uint64, reporter ProgressReporter, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		g.Go(func() error {
			start := time.Now()
			terms, err := sweep(ctx, calc, maxN, func(done uint64) {
				select {
				case progressChan <- ProgressUpdate{CalculatorIndex: i, Value: float64(done) / float64(maxN+1)}:
				default:
				}
			})
			results[i] = CalculationResult{
				Name: calc.Name(), Terms: terms, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}
	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()
	return results
}

func sweep(ctx context.Context, calc fibonacci.Calculator, maxN uint64, progress func(done uint64)) ([][]byte, error) {
	terms := make([][]byte, 0, maxN+1)
	for n := uint64(0); n <= maxN; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := calc.Compute(n)
		if err != nil {
			return nil, err
		}
		terms = append(terms, bignum.Render(v))
		progress(n + 1)
	}
	return terms, nil
}

// AnalyzeComparisonResults sorts the results (successes first, fastest
// first), presents them and checks that every successful sweep produced the
// same terms.
//
// Returns:
//   - int: ExitSuccess when the successful sweeps agree, ExitErrorMismatch on
//     the first disagreement, or ExitErrorGeneric when every sweep failed.
func AnalyzeComparisonResults(results []CalculationResult, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	presenter.PresentComparisonTable(results, out)

	var reference *CalculationResult
	for i := range results {
		if results[i].Err == nil {
			reference = &results[i]
			break
		}
	}
	if reference == nil {
		return apperrors.ExitErrorGeneric
	}

	for i := range results {
		if results[i].Err != nil || &results[i] == reference {
			continue
		}
		if m, ok := firstMismatch(*reference, results[i]); ok {
			presenter.PresentMismatch(m, out)
			return apperrors.ExitErrorMismatch
		}
	}
	presenter.PresentSuccess(len(reference.Terms), out)
	return apperrors.ExitSuccess
}

// firstMismatch compares two sweeps term by term. Sweeps of different
// length mismatch at the first missing index.
func firstMismatch(a, b CalculationResult) (Mismatch, bool) {
	n := max(len(a.Terms), len(b.Terms))
	for i := range n {
		var va, vb []byte
		if i < len(a.Terms) {
			va = a.Terms[i]
		}
		if i < len(b.Terms) {
			vb = b.Terms[i]
		}
		if i >= len(a.Terms) || i >= len(b.Terms) || !bytes.Equal(va, vb) {
			return Mismatch{
				Index:  uint64(i),
				Names:  [2]string{a.Name, b.Name},
				Values: [2][]byte{va, vb},
			}, true
		}
	}
	return Mismatch{}, false
}
