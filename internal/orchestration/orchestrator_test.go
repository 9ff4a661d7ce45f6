package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/fibdrv/internal/bignum"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/fibonacci/mocks"
)

// recordingPresenter captures what AnalyzeComparisonResults presents.
type recordingPresenter struct {
	table    []CalculationResult
	mismatch *Mismatch
	success  int
}

func (p *recordingPresenter) PresentComparisonTable(results []CalculationResult, _ io.Writer) {
	p.table = results
}
func (p *recordingPresenter) PresentMismatch(m Mismatch, _ io.Writer) { p.mismatch = &m }
func (p *recordingPresenter) PresentSuccess(terms int, _ io.Writer)   { p.success = terms }

// stubCalculator returns the value produced by ComputeFunc.
type stubCalculator struct {
	name        string
	ComputeFunc func(n uint64) (*bignum.Decimal, error)
}

func (s *stubCalculator) Name() string { return s.name }
func (s *stubCalculator) Compute(n uint64) (*bignum.Decimal, error) {
	return s.ComputeFunc(n)
}

func terms(values ...string) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out
}

func TestExecuteCalculations(t *testing.T) {
	t.Parallel()
	f := fibonacci.NewDefaultFactory(bignum.DefaultCapacity)
	calcs := GetCalculatorsToRun(AllAlgorithms, f)

	results := ExecuteCalculations(context.Background(), calcs, 100, NullProgressReporter{}, io.Discard)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Name, r.Err)
		}
		if len(r.Terms) != 101 {
			t.Errorf("%s: %d terms, want 101", r.Name, len(r.Terms))
		}
		if got := string(r.Terms[100]); got != "354224848179261915075" {
			t.Errorf("%s: F(100) = %s", r.Name, got)
		}
	}
}

func TestExecuteCalculations_FailureIsolated(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	failing := &stubCalculator{name: "failing", ComputeFunc: func(n uint64) (*bignum.Decimal, error) {
		if n == 3 {
			return nil, boom
		}
		return bignum.Zero(), nil
	}}
	good := fibonacci.NewIterativeCalculator(bignum.DefaultCapacity)

	results := ExecuteCalculations(context.Background(), []fibonacci.Calculator{failing, good}, 10, NullProgressReporter{}, io.Discard)
	if !errors.Is(results[0].Err, boom) || results[0].Terms != nil {
		t.Errorf("failing result = %+v, want boom and no terms", results[0])
	}
	if results[1].Err != nil || len(results[1].Terms) != 11 {
		t.Errorf("good result = %v / %d terms", results[1].Err, len(results[1].Terms))
	}
}

func TestExecuteCalculations_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ExecuteCalculations(ctx, []fibonacci.Calculator{fibonacci.NewIterativeCalculator(10)}, 40, NullProgressReporter{}, io.Discard)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", results[0].Err)
	}
}

func TestExecuteCalculations_Mock(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	calc := mocks.NewMockCalculator(ctrl)

	one := bignum.One()
	gomock.InOrder(
		calc.EXPECT().Compute(uint64(0)).Return(bignum.Zero(), nil),
		calc.EXPECT().Compute(uint64(1)).Return(one, nil),
		calc.EXPECT().Compute(uint64(2)).Return(one, nil),
	)
	calc.EXPECT().Name().Return("mock")

	results := ExecuteCalculations(context.Background(), []fibonacci.Calculator{calc}, 2, NullProgressReporter{}, io.Discard)
	if results[0].Name != "mock" || len(results[0].Terms) != 3 {
		t.Errorf("unexpected result %+v", results[0])
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []CalculationResult
		expectedStatus int
		wantMismatch   *Mismatch
	}{
		{
			name: "All success",
			results: []CalculationResult{
				{Name: "A", Terms: terms("0", "1", "1"), Duration: time.Millisecond},
				{Name: "B", Terms: terms("0", "1", "1"), Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch",
			results: []CalculationResult{
				{Name: "A", Terms: terms("0", "1", "1"), Duration: time.Millisecond},
				{Name: "B", Terms: terms("0", "1", "2"), Duration: 2 * time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
			wantMismatch:   &Mismatch{Index: 2, Names: [2]string{"A", "B"}},
		},
		{
			name: "Short sweep",
			results: []CalculationResult{
				{Name: "A", Terms: terms("0", "1"), Duration: time.Millisecond},
				{Name: "B", Terms: terms("0"), Duration: 2 * time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
			wantMismatch:   &Mismatch{Index: 1, Names: [2]string{"A", "B"}},
		},
		{
			name: "All failure",
			results: []CalculationResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Mixed success/failure",
			results: []CalculationResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Terms: terms("0", "1"), Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &recordingPresenter{}
			status := AnalyzeComparisonResults(tt.results, p, io.Discard)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if len(p.table) != len(tt.results) {
				t.Errorf("table has %d rows, want %d", len(p.table), len(tt.results))
			}
			if tt.wantMismatch != nil {
				if p.mismatch == nil {
					t.Fatal("mismatch not presented")
				}
				if p.mismatch.Index != tt.wantMismatch.Index || p.mismatch.Names != tt.wantMismatch.Names {
					t.Errorf("mismatch = %+v, want index %d names %v", *p.mismatch, tt.wantMismatch.Index, tt.wantMismatch.Names)
				}
			}
		})
	}
}

func TestAnalyzeComparisonResults_SortsSuccessFirst(t *testing.T) {
	t.Parallel()
	results := []CalculationResult{
		{Name: "failed", Err: errors.New("fail")},
		{Name: "slow", Terms: terms("0"), Duration: time.Second},
		{Name: "fast", Terms: terms("0"), Duration: time.Millisecond},
	}
	p := &recordingPresenter{}
	AnalyzeComparisonResults(results, p, io.Discard)

	want := []string{"fast", "slow", "failed"}
	for i, r := range p.table {
		if r.Name != want[i] {
			t.Errorf("row %d = %s, want %s", i, r.Name, want[i])
		}
	}
	if p.success != 1 {
		t.Errorf("success terms = %d, want 1", p.success)
	}
}

// countingReporter records the last progress value seen per calculator.
type countingReporter struct {
	last []float64
}

func (r *countingReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, _ io.Writer) {
	defer wg.Done()
	r.last = make([]float64, n)
	for u := range ch {
		r.last[u.CalculatorIndex] = u.Value
	}
}

func TestExecuteCalculations_ReportsProgress(t *testing.T) {
	t.Parallel()
	// Four updates fit in the channel buffer, so none is dropped.
	calc := &stubCalculator{name: "zeros", ComputeFunc: func(uint64) (*bignum.Decimal, error) {
		return bignum.Zero(), nil
	}}
	r := &countingReporter{}
	ExecuteCalculations(context.Background(), []fibonacci.Calculator{calc}, 3, r, io.Discard)

	if len(r.last) != 1 {
		t.Fatalf("reporter saw %d calculators, want 1", len(r.last))
	}
	if r.last[0] != 1.0 {
		t.Errorf("final progress = %v, want 1.0", r.last[0])
	}
}

func TestNullProgressReporter(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	ch := make(chan ProgressUpdate, 2)
	ch <- ProgressUpdate{Value: 0.5}
	close(ch)
	NullProgressReporter{}.DisplayProgress(&wg, ch, 1, io.Discard)
	wg.Wait()
}
