package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger for development and JSON output elsewhere.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(env, "production") {
		return zerolog.New(os.Stdout).
			Level(zerolog.InfoLevel).
			With().Timestamp().Str("service", "manager-api").Logger()
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	return zerolog.New(writer).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}
