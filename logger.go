package llvm

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/go-llvm/handle"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package logger.
// This must be called before any other operation.
func SetLogger(l *zap.Logger) {
	logger = l
}

func debugHandle(msg, op string, p any) {
	if ce := Logger().Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(
			zap.String("op", op),
			zap.String("handle", fmt.Sprintf("%T(%p)", p, p)),
		)
	}
}

// disposer wraps a foreign release function with debug logging.
func disposer[P comparable](op string, fn func(P)) handle.Disposer[P] {
	return handle.DisposeFunc[P](func(p P) {
		debugHandle("handle released", op, p)
		fn(p)
	})
}
