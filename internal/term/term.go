// Package term probes terminal color capability.
package term

import (
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

// ForceColorEnv is the environment variable that forces color output
// regardless of terminal detection, useful for CI and log-capture
// pipelines.
const ForceColorEnv = "LOGZERO_FORCE_COLOR"

// SupportsColor reports whether the given file is attached to a terminal
// that can render ANSI colors.
func SupportsColor(f *os.File) bool {
	if os.Getenv(ForceColorEnv) == "1" {
		return true
	}
	if f == nil {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	if runtime.GOOS == "windows" {
		// Modern Windows consoles handle ANSI sequences.
		return true
	}
	return os.Getenv("TERM") != "dumb"
}
