// Package logging provides the process-wide structured logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // console or json
}

var log = zap.NewNop()

// Init builds the global logger. Call once at startup, before any logging.
func Init(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format != "json" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	log = logger
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }

// Info logs at info level.
func Info(msg string, fields ...zap.Field) { log.Info(msg, fields...) }

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) { log.Warn(msg, fields...) }

// Error logs at error level.
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Fatal logs at fatal level and exits with status 1.
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }
