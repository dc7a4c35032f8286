// Package logging builds the zerolog logger used for diagnostics.
// Diagnostics always go to stderr so stdout stays a clean record stream.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// EnvLogLevel overrides the configured level when set to a known level name.
const EnvLogLevel = "VCARD_LOG_LEVEL"

// New returns a console logger writing to w at the given level.
// Colour is used only when w is a terminal.
func New(w io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	lvl, _ := ParseLevel(level)
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// Resolve picks the effective level: flag, then $VCARD_LOG_LEVEL, then config.
// Unknown values are ignored at each step; the final fallback is "info".
func Resolve(flag, config string) string {
	for _, raw := range []string{flag, os.Getenv(EnvLogLevel), config} {
		if _, ok := ParseLevel(raw); ok {
			return strings.ToLower(strings.TrimSpace(raw))
		}
	}
	return "info"
}

// ParseLevel maps a level name to a zerolog level.
// The bool is false for empty or unknown names, in which case InfoLevel is returned.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
