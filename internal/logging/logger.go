package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"crm/internal/config"
)

// NewLogger creates a structured zerolog.Logger writing JSON to stdout.
func NewLogger(cfg config.Config) zerolog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg config.Config) zerolog.Logger {
	logger := zerolog.New(w).With().
		Timestamp().
		Str("service", "crm-api").
		Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}

// GormLevel maps the service log level onto GORM's SQL logger levels.
// SQL statements are only logged at debug level.
func GormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug", "trace":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error", "fatal", "panic":
		return gormlogger.Error
	case "disabled":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}
