package log

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/regsim/pkg/errors"
)

// SetupWarnLogger routes pkg/errors warnings through a zerolog console
// logger. Error types implementing zerolog.LogObjectMarshaler (all of the
// module's structured errors) are emitted as structured events; anything
// else falls back to the plain error string.
func SetupWarnLogger(loglevel string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(toZerologLevel(loglevel)).
		With().
		Timestamp().
		Logger()

	errors.SetZerologWarnFunc(func(warning error) {
		var marshaler zerolog.LogObjectMarshaler
		if errors.As(warning, &marshaler) {
			logger.Warn().Object("warning", marshaler).Msg(warning.Error())
			return
		}
		logger.Warn().Err(warning).Msg("simulation warning")
	})

	return logger
}

func toZerologLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
