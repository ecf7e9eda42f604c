// Package revlog provides a configurable logger shared across the module's
// components. The root logger defaults to github.com/rs/zerolog with a
// console writer, grounded on Consensys-gnark/logger/logger.go.
package revlog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set overrides the global logger, e.g. with a component sublogger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable silences logging entirely.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the current global logger.
func Logger() zerolog.Logger {
	return logger
}

// Component returns a sublogger tagged with a "component" field, the unit
// every package in this module logs through (e.g. revlog.Component("synth")).
func Component(name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
