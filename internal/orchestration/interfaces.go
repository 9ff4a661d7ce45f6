package orchestration

import (
	"io"
	"sync"
	"time"
)

// CalculationResult encapsulates the outcome of one engine's sweep over
// F(0) through F(MaxN).
type CalculationResult struct {
	// Name is the identifier of the engine (e.g., "iterative").
	Name string
	// Terms holds the rendered digits of F(i) at index i. It is nil if an
	// error occurred.
	Terms [][]byte
	// Duration is the time taken to complete the sweep.
	Duration time.Duration
	// Err contains any error that occurred during the sweep.
	Err error
}

// Mismatch identifies the first index at which two engines disagree.
type Mismatch struct {
	Index  uint64
	Names  [2]string
	Values [2][]byte
}

// ResultPresenter defines the interface for presenting comparison results.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per engine.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentMismatch reports a disagreement between two engines.
	PresentMismatch(m Mismatch, out io.Writer)
	// PresentSuccess reports that every successful engine agreed over
	// terms indices.
	PresentSuccess(terms int, out io.Writer)
}

// ProgressUpdate reports the fraction of its sweep a calculator has done.
type ProgressUpdate struct {
	// CalculatorIndex is the position of the calculator in the slice passed
	// to ExecuteCalculations.
	CalculatorIndex int
	// Value is the completed fraction, 0.0 to 1.0.
	Value float64
}

// ProgressReporter displays sweep progress. DisplayProgress runs in its own
// goroutine until progressChan is closed, then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numCalculators int, out io.Writer)
}

// NullProgressReporter drains the progress channel without displaying
// anything. It is used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}
