/*package logging holds fofcat's structured logger. Everything logs through
L(), which is a zerolog logger writing to stderr.*/
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger *zerolog.Logger

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger = &l
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Init configures the global logger. debug lowers the level to Debug, which
// prints one line per segment file, and human switches from JSON lines to
// zerolog's console writer.
func Init(debug, human bool) {
	level := zerolog.InfoLevel
	if debug { level = zerolog.DebugLevel }
	zerolog.SetGlobalLevel(level)

	var l zerolog.Logger
	if human {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out: os.Stderr, TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	logger = &l
}

// L returns the global logger.
func L() *zerolog.Logger { return logger }

// SetLogger replaces the global logger. Tests use this to capture output.
func SetLogger(l zerolog.Logger) { logger = &l }
