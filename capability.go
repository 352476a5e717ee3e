package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ProbeCapability reports whether the chosen backend can present frames here.
func ProbeCapability(backend string, stdout *os.File) error {
	switch backend {
	case BackendTerm:
		return probeTerminal(stdout.Fd(), lipgloss.ColorProfile())
	case BackendWindow:
		if !windowSupported {
			return fmt.Errorf("%w: window backend needs a build with -tags ebiten", ErrCapabilityUnavailable)
		}
		return nil
	}
	return &ConfigError{Field: "display.backend", Value: backend, Reason: "must be term or window"}
}

func probeTerminal(fd uintptr, profile termenv.Profile) error {
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return fmt.Errorf("%w: stdout is not a terminal", ErrCapabilityUnavailable)
	}
	if profile == termenv.Ascii {
		return fmt.Errorf("%w: terminal reports no color support", ErrCapabilityUnavailable)
	}
	return nil
}

var noticeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFD400")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#888888")).
	Padding(0, 1)

// WriteFallbackNotice prints the one-time notice shown instead of the animation.
func WriteFallbackNotice(w io.Writer, cause error) {
	fmt.Fprintln(w, noticeStyle.Render(fmt.Sprintf(
		"pointwave cannot render here.\n%v\n\nTry a color terminal, or build with -tags ebiten and run with -backend window.",
		cause,
	)))
}
