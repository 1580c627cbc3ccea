// Package term provides color state and terminal detection.
//
// Styles are package-level variables because multiple packages (logging,
// display) need them for output formatting. [Configure] sets them once
// during startup; when colors are disabled every style renders its input
// unchanged.
package term

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/backmassage/mediastandard/internal/config"
)

// Output styles. Plain until Configure enables colors.
var (
	Default   lipgloss.Style // File names and decoded values.
	Comment   lipgloss.Style
	Fail      lipgloss.Style
	Success   lipgloss.Style
	Warn      lipgloss.Style
	Highlight lipgloss.Style // Batch headers.
)

var (
	renderer = lipgloss.NewRenderer(io.Discard)
	enabled  bool
)

func init() { Configure(config.ColorNever) }

// Configure resolves the color mode and rebuilds the styles. Call once
// during startup, before any goroutine renders output.
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
	if enabled {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	Default = renderer.NewStyle().Foreground(lipgloss.Color("12"))
	Comment = renderer.NewStyle().Foreground(lipgloss.Color("15"))
	Fail = renderer.NewStyle().Foreground(lipgloss.Color("9"))
	Success = renderer.NewStyle().Foreground(lipgloss.Color("10"))
	Warn = renderer.NewStyle().Foreground(lipgloss.Color("11"))
	Highlight = renderer.NewStyle().Foreground(lipgloss.Color("5"))
}

// Enabled reports whether colors are currently active.
func Enabled() bool { return enabled }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
