package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. Debug builds get a human readable console writer.
func Setup(debug bool) {
	setup(os.Stdout, debug)
}

func setup(out io.Writer, debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	if debug {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
