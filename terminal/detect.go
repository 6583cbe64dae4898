package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	// 1. COLORTERM (highest priority, set by modern terminals)
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	// 2. Terminal-specific env vars
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("ALACRITTY_LOG") != "" ||
		os.Getenv("WEZTERM_PANE") != "" ||
		os.Getenv("WT_SESSION") != "" {
		return ColorModeTrueColor
	}

	// 3. TERM for known true color terminals
	termLower := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(termLower, "truecolor") ||
		strings.Contains(termLower, "24bit") ||
		strings.Contains(termLower, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// ParseColorMode resolves a flag value; anything unrecognized falls back to detection
func ParseColorMode(s string) ColorMode {
	switch s {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the dimensions of the terminal attached to f
func Size(f *os.File) (width, height int, err error) {
	return term.GetSize(int(f.Fd()))
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery when normal cleanup cannot run
func EmergencyReset(w io.Writer) {
	io.WriteString(w, ShowCursor)
	io.WriteString(w, Reset)
	io.WriteString(w, AutoWrapOn)
	io.WriteString(w, csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
