package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibdrv/internal/orchestration"
	"github.com/agbru/fibdrv/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays engine names, sweep durations and status
// in aligned columns. Padding is computed on the unstyled text so that
// escape sequences do not skew the layout.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	s := ui.Styles()
	fmt.Fprintf(out, "--- Engine Comparison ---\n")

	nameWidth, durWidth := len("Engine"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, lipgloss.Width(res.Name))
		durWidth = max(durWidth, lipgloss.Width(FormatExecutionDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%s%s   %s%s   %s\n",
		s.Primary.Render("Engine"), pad(nameWidth-len("Engine")),
		s.Primary.Render("Duration"), pad(durWidth-len("Duration")),
		s.Primary.Render("Status"))

	for _, res := range results {
		dur := FormatExecutionDuration(res.Duration)
		status := s.Success.Render(fmt.Sprintf("OK (%d terms)", len(res.Terms)))
		if res.Err != nil {
			status = s.Error.Render(fmt.Sprintf("Failure (%v)", res.Err))
		}
		fmt.Fprintf(out, "%s%s   %s%s   %s\n",
			res.Name, pad(nameWidth-lipgloss.Width(res.Name)),
			s.Secondary.Render(dur), pad(durWidth-lipgloss.Width(dur)),
			status)
	}
}

// PresentMismatch reports the first index where two engines disagree.
func (CLIResultPresenter) PresentMismatch(m orchestration.Mismatch, out io.Writer) {
	s := ui.Styles()
	fmt.Fprintln(out, s.Error.Render(fmt.Sprintf("Mismatch at F(%d):", m.Index)))
	for i := range m.Names {
		fmt.Fprintf(out, "  %s = %s\n", m.Names[i], valueOrMissing(m.Values[i]))
	}
}

// PresentSuccess reports that every successful engine agreed.
func (CLIResultPresenter) PresentSuccess(terms int, out io.Writer) {
	fmt.Fprintln(out, ui.Styles().Success.Render(fmt.Sprintf("All engines agree on %d terms.", terms)))
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func valueOrMissing(v []byte) string {
	if v == nil {
		return "<missing>"
	}
	return string(v)
}
