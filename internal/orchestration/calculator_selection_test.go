package orchestration

import (
	"testing"

	"github.com/agbru/fibdrv/internal/fibonacci"
)

// TestGetCalculatorsToRun tests the GetCalculatorsToRun function.
func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := fibonacci.GlobalFactory()

	tests := []struct {
		algo      string
		wantNames []string
	}{
		{"iterative", []string{"iterative"}},
		{"history", []string{"history"}},
		{AllAlgorithms, []string{"history", "iterative"}},
		{"matrix", nil},
	}
	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			t.Parallel()
			calcs := GetCalculatorsToRun(tt.algo, factory)
			if len(calcs) != len(tt.wantNames) {
				t.Fatalf("got %d calculators, want %d", len(calcs), len(tt.wantNames))
			}
			for i, c := range calcs {
				if c.Name() != tt.wantNames[i] {
					t.Errorf("calculator %d = %s, want %s", i, c.Name(), tt.wantNames[i])
				}
			}
		})
	}
}
