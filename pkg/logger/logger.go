// Package logger configures the process-wide zerolog logger.
//
// Call Init once at startup with the configured level and environment, then
// pass the returned logger down or derive component loggers with With.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "interview-api"

var (
	instance zerolog.Logger
	once     sync.Once
)

// Init builds the singleton logger. In development the output is a coloured
// console writer; everywhere else it is JSON on stdout. Repeated calls return
// the logger from the first call.
func Init(level, env string) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		lvl := parseLevel(level)
		zerolog.SetGlobalLevel(lvl)

		logger := zerolog.New(os.Stdout)
		if env == "development" {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		}

		instance = logger.
			Level(lvl).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	})
	return instance
}

// With returns a child logger tagged with the given component name.
func With(component string) zerolog.Logger {
	return instance.With().Str("component", component).Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
