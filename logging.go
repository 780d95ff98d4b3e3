package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Global debug flag
var debugMode bool

// logger writes human-readable log lines to stderr.
var logger = newLogger(os.Stderr, false)

func newLogger(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// setupLogging switches the global logger to debug level when requested.
func setupLogging(debug bool) {
	debugMode = debug
	logger = newLogger(os.Stderr, debug)
}

// debugPrint prints debug messages when debug mode is enabled
func debugPrint(format string, args ...interface{}) {
	if debugMode {
		logger.Debug().Msgf(format, args...)
	}
}
