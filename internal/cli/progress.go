package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibdrv/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner used by DisplayProgress so tests
// can substitute a fake.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState aggregates the progress of concurrent sweeps.
type ProgressState struct {
	progresses []float64
}

// NewProgressState tracks numCalculators sweeps, all starting at zero.
func NewProgressState(numCalculators int) *ProgressState {
	return &ProgressState{progresses: make([]float64, numCalculators)}
}

// Update records value for the sweep at index. Out-of-range indices are
// ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress, 0.0 to 1.0.
func (ps *ProgressState) CalculateAverage() float64 {
	if len(ps.progresses) == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(len(ps.progresses))
}

// progressBar renders progress as a bar of length cells.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgress returns the spinner suffix for an average progress value.
func FormatProgress(progress float64) string {
	return fmt.Sprintf(" Sweeping engines %s %5.1f%%", progressBar(progress, ProgressBarWidth), progress*100)
}

// DisplayProgress shows a spinner with the average progress of every sweep
// until progressChan is closed. The spinner only animates on a terminal.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	if numCalculators <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressState(numCalculators)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(FormatProgress(0))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case u, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(FormatProgress(1))
				return
			}
			state.Update(u.CalculatorIndex, u.Value)
		case <-ticker.C:
			s.UpdateSuffix(FormatProgress(state.CalculateAverage()))
		}
	}
}

// CLIProgressReporter implements orchestration.ProgressReporter with
// DisplayProgress.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}
