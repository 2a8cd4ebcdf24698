// Package logging configures the global zerolog logger for diagnostics.
//
// Normal command output (profile listings, confirmations, hints) goes to
// stdout as plain text; the structured log is purely for debugging and is
// silenced below warn level by default.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs a console writer on stderr at the given level.
// Unknown level strings fall back to warn.
func Setup(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
