// Package log configures the zerolog logger shared by the loader and the
// driven CLI. It exists so every package logs through one
// consistently-configured sink rather than each importing zerolog and
// setting up its own console writer.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Logger is the process-wide structured logger, writing human-readable
// console output. Packages should call log.Logger.Info()/.Debug()/etc.
// directly rather than holding their own copy.
var Logger zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	zlog.Logger = Logger
}

// SetLevel adjusts the minimum severity the logger emits. The driven CLI
// calls this from its --verbose flag.
func SetLevel(level zerolog.Level) {
	Logger = Logger.Level(level)
	zlog.Logger = Logger
}
