package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for exerciser output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary colors device names and headings.
	Primary lipgloss.TerminalColor
	// Secondary colors offsets and other less prominent values.
	Secondary lipgloss.TerminalColor
	// Success colors returned terms.
	Success lipgloss.TerminalColor
	// Warning colors busy reports.
	Warning lipgloss.TerminalColor
	// Error colors failures.
	Error lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("39"),
		Secondary: lipgloss.Color("245"),
		Success:   lipgloss.Color("82"),
		Warning:   lipgloss.Color("220"),
		Error:     lipgloss.Color("196"),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("27"),
		Secondary: lipgloss.Color("240"),
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("130"),
		Error:     lipgloss.Color("124"),
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{
		Name:      "none",
		Primary:   lipgloss.NoColor{},
		Secondary: lipgloss.NoColor{},
		Success:   lipgloss.NoColor{},
		Warning:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name ("dark", "light" or "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	switch name {
	case "light":
		SetCurrentTheme(LightTheme)
	case "none":
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme selects the theme from the -no-color flag and the NO_COLOR
// environment variable (https://no-color.org/). Either one disables colors.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}

// Styles returns the lipgloss styles derived from the active theme.
func Styles() StyleSet {
	t := GetCurrentTheme()
	return StyleSet{
		Primary:   lipgloss.NewStyle().Foreground(t.Primary).Bold(t.Name != NoColorTheme.Name),
		Secondary: lipgloss.NewStyle().Foreground(t.Secondary),
		Success:   lipgloss.NewStyle().Foreground(t.Success),
		Warning:   lipgloss.NewStyle().Foreground(t.Warning),
		Error:     lipgloss.NewStyle().Foreground(t.Error).Bold(t.Name != NoColorTheme.Name),
	}
}

// StyleSet bundles one lipgloss style per theme role.
type StyleSet struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}
