package logging

import "log/slog"

// Nil-tolerant wrappers: components treat their logger as optional and call
// these instead of guarding every call site.

// Info logs at info level when a logger is configured.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, args...)
}

// Warn logs at warn level when a logger is configured.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, args...)
}

// Error logs at error level when a logger is configured, attaching err when
// it is non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	logger.Error(msg, args...)
}
