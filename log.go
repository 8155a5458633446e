package typedenv

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLogger returns the logger an Env uses unless one is set: human
// readable output on stderr at info level.
func DefaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("component", "typedenv").
		Logger()
}
