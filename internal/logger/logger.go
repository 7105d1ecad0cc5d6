// Package logger provides a configured zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger tagged with the component name. Verbosity is
// controlled once per process via SetLevel.
func New(component string) zerolog.Logger {
	return zerolog.New(os.Stderr).With().
		Str("component", component).
		Timestamp().
		Logger()
}

// SetLevel sets the global log level from a string ("debug", "info",
// "warn", "error"). Unknown values fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
