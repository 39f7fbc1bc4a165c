package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var global zerolog.Logger

// Init configures the global logger. Release mode emits JSON, anything
// else a console writer at debug level.
func Init(ginMode string) {
	if ginMode == "release" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		global = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.TimeFormat = time.DateTime
	consoleWriter.Out = os.Stdout
	global = zerolog.New(consoleWriter).With().Timestamp().Logger()
}

// Get returns the global logger.
func Get() *zerolog.Logger {
	return &global
}
