// Package logging provides structured logging utilities using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLogLevel is consulted when no explicit level is given.
const EnvLogLevel = "VARSUB_LOG_LEVEL"

// ParseLevel maps a varsub log level name to a zerolog level. "none" disables output.
func ParseLevel(name string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return zerolog.Disabled, true
	case "error":
		return zerolog.ErrorLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "trace":
		return zerolog.TraceLevel, true
	}
	return zerolog.NoLevel, false
}

// InitLogger initializes and configures a zerolog Logger writing to stderr.
// It reads the log level from the levelOverride parameter or VARSUB_LOG_LEVEL environment variable.
// If neither is set, it defaults to INFO level.
func InitLogger(levelOverride string) zerolog.Logger {
	return NewLogger(os.Stderr, levelOverride)
}

// NewLogger is InitLogger with an explicit destination.
func NewLogger(out io.Writer, levelOverride string) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: out}
	logger := zerolog.New(output).With().Timestamp().Logger()
	loglevelString := levelOverride
	if loglevelString == "" {
		loglevelString = os.Getenv(EnvLogLevel)
	}
	if loglevelString == "" {
		loglevelString = "info"
	}
	level, ok := ParseLevel(loglevelString)
	if !ok {
		logger.Info().Msg("Invalid log level, defaulting to INFO")
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)
	logger.Debug().Msg("Logger initialized to " + strings.ToUpper(level.String()))
	return logger
}
