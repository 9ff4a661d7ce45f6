package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibdrv/internal/orchestration"
)

// MockSpinner records the calls made by DisplayProgress.
type MockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() { m.mu.Lock(); m.started = true; m.mu.Unlock() }
func (m *MockSpinner) Stop()  { m.mu.Lock(); m.stopped = true; m.mu.Unlock() }
func (m *MockSpinner) UpdateSuffix(s string) {
	m.mu.Lock()
	m.suffixes = append(m.suffixes, s)
	m.mu.Unlock()
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	ps.Update(0, 1.0)
	ps.Update(1, 0.5)
	ps.Update(5, 0.9)
	if got := ps.CalculateAverage(); got != 0.75 {
		t.Errorf("average = %v, want 0.75", got)
	}
	if got := NewProgressState(0).CalculateAverage(); got != 0 {
		t.Errorf("empty average = %v, want 0", got)
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{1.7, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, 4); got != tt.want {
			t.Errorf("progressBar(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	t.Parallel()
	got := FormatProgress(1)
	if !strings.Contains(got, strings.Repeat("█", ProgressBarWidth)) || !strings.HasSuffix(got, "100.0%") {
		t.Errorf("FormatProgress(1) = %q", got)
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner { return mockS }

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	go func() {
		progressChan <- orchestration.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if last := mockS.suffixes[len(mockS.suffixes)-1]; last != FormatProgress(1) {
		t.Errorf("final suffix = %q, want completed bar", last)
	}
}

func TestDisplayProgress_ZeroCalculators(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}
