package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var base zerolog.Logger

func init() {
	Configure(os.Getenv("ENVIRONMENT"), os.Stdout)
}

// Configure swaps the output sink. Development gets a console writer and debug level,
// everything else structured JSON at info level.
func Configure(environment string, w io.Writer) {
	level := zerolog.InfoLevel
	if environment == "development" {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).Level(level).With().Timestamp().CallerWithSkipFrameCount(3).Logger()
}

func Info(format string, v ...interface{}) {
	base.Info().Msgf(format, v...)
}

func Error(format string, v ...interface{}) {
	base.Error().Msgf(format, v...)
}

func Debug(format string, v ...interface{}) {
	base.Debug().Msgf(format, v...)
}

func Warn(format string, v ...interface{}) {
	base.Warn().Msgf(format, v...)
}

// WithFields returns a child logger carrying the given key/value context.
func WithFields(fields map[string]interface{}) zerolog.Logger {
	return base.With().Fields(fields).Logger()
}

// LogSideEffectError records a failed secondary action that must not fail the caller.
func LogSideEffectError(action, entityID string, err error) {
	base.Warn().Err(err).Str("action", action).Str("entity_id", entityID).
		Msg(fmt.Sprintf("side effect %s failed", action))
}
