package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/fibdrv into a temporary directory. go test runs
// with the package directory as CWD, so the build runs from the module root.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e build in -short mode")
	}
	binName := "fibdrv"
	if runtime.GOOS == "windows" {
		binName = "fibdrv.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/fibdrv")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build fibdrv: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)

	tests := []struct {
		name     string
		args     []string
		env      []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Default Sweep",
			args:     nil,
			wantOut:  "Reading from /dev/fibonacci at offset 100, returned the sequence 354224848179261915075.",
			wantCode: 0,
		},
		{
			name:     "Write Lines",
			args:     []string{"-offset", "0"},
			wantOut:  "Writing to /dev/fibonacci, returned the sequence 15",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     []string{"-offset", "10", "-q"},
			wantOut:  "34\n55\n55\n34",
			wantCode: 0,
		},
		{
			name:     "History Engine",
			args:     []string{"-algo", "history", "-offset", "93", "-q"},
			wantOut:  "12200160415121876738",
			wantCode: 0,
		},
		{
			name:     "Offset Beyond MaxN Clamps",
			args:     []string{"-max-n", "10", "-offset", "12"},
			wantOut:  "at offset 12, returned the sequence 55.",
			wantCode: 0,
		},
		{
			name:     "Env Override",
			args:     []string{"-q"},
			env:      []string{"FIBDRV_OFFSET=2"},
			wantOut:  "0\n1\n1\n1\n1\n0",
			wantCode: 0,
		},
		{
			name:     "Contention Probe",
			args:     []string{"-contend", "16"},
			wantOut:  "exclusive access held",
			wantCode: 0,
		},
		{
			name:     "Engine Comparison",
			args:     []string{"-algo", "all", "-max-n", "480"},
			wantOut:  "All engines agree on 481 terms.",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"-help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "fibdrv",
			wantCode: 0,
		},
		{
			name:     "MaxN Beyond Capacity",
			args:     []string{"-max-n", "1000"},
			wantOut:  "largest index that fits: 480",
			wantCode: 4,
		},
		{
			name:     "Unknown Algorithm",
			args:     []string{"-algo", "fft"},
			wantOut:  "unknown algorithm",
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running fibdrv: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
