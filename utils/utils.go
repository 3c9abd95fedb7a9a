package utils

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// Version is the build version, injected by ldflags.
var Version string

// LogError logs the error with the given message and fields, guarding
// against a nil logger during early startup.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if logger == nil {
		fmt.Println("logger not initialized:", msg, err)
		return
	}
	fields = append(fields, zap.Error(err))
	logger.Error(msg, fields...)
}

func HandlePanic(logger *zap.Logger) {
	if r := recover(); r != nil {
		sentry.CaptureException(errors.New(fmt.Sprint(r)))
		stackTrace := debug.Stack()
		LogError(logger, nil, fmt.Sprintf("recovered from: %v\nstack trace:\n%s", r, stackTrace))
		sentry.Flush(2 * time.Second)
	}
}
