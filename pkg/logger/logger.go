package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openshelf/bookstore-api/pkg/global"
)

var (
	log   *zap.Logger
	audit *zap.Logger
)

// Init builds the process-wide loggers. Call once from main before anything
// that logs.
func Init() error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	if global.GetEnvOrDefault("ENV", "development") != "production" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	log = l
	audit = l.Named("audit")
	return nil
}

// L returns the process logger. Falls back to a no-op logger so tests can use
// packages that log without calling Init.
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Audit records a security-relevant event (logins, registrations, token
// rotations) on the dedicated audit logger.
func Audit(action, actor, outcome, details string) {
	a := audit
	if a == nil {
		a = zap.NewNop()
	}
	a.Info("audit",
		zap.String("action", action),
		zap.String("actor", actor),
		zap.String("outcome", outcome),
		zap.String("details", details),
	)
}

// Sync flushes buffered log entries. Intended for deferred use in main.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
