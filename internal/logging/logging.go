// Package logging provides the engine-wide structured logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = newLogger()

func newLogger() *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if lvl, err := zapcore.ParseLevel(os.Getenv("FORGE_LOG_LEVEL")); err == nil {
		level = lvl
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core).Sugar()
}

// Get returns the package-level logger. The engine never logs on the search
// hot path; only state transitions and error conditions use this.
func Get() *zap.SugaredLogger {
	return log
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = log.Sync()
}
