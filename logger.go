package quantities

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with quantities-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// This is the default.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithQuantity adds a quantity field to the logger.
func (l *Logger) WithQuantity(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("quantity", name),
	}
}

// LogCopyOnWrite logs the deep copy taken before the first write to shared
// storage.
func (l *Logger) LogCopyOnWrite(length int, storage StorageType) {
	l.Debug("copy-on-write duplication",
		"length", length,
		"storage", storage.String(),
	)
}

// LogConversion logs a change of storage representation.
func (l *Logger) LogConversion(from, to StorageType, length int) {
	l.Debug("storage converted",
		"from", from.String(),
		"to", to.String(),
		"length", length,
	)
}

// LogOperation logs an arithmetic operation.
func (l *Logger) LogOperation(op string, length int, err error) {
	if err != nil {
		l.Error("operation failed",
			"op", op,
			"length", length,
			"error", err,
		)
	} else {
		l.Debug("operation completed",
			"op", op,
			"length", length,
		)
	}
}
