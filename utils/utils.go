package utils

import (
	"runtime/debug"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// Version is the library version, injected during build by ldflags.
var Version = "0-dev"

// LogError logs an error with the given message and fields. err may be
// nil for conditions that carry no underlying error value.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if logger == nil {
		panic("logger is not set")
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.Error(msg, fields...)
}

// Recover keeps a goroutine panic from killing the process. Use with
// defer at goroutine entry.
func Recover(logger *zap.Logger) {
	if logger == nil {
		panic("logger is not set")
	}
	if r := recover(); r != nil {
		sentry.CurrentHub().Recover(r)
		sentry.Flush(2 * time.Second)
		logger.Error("recovered from panic", zap.Any("panic", r))
		debug.PrintStack()
	}
}
