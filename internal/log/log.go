// Package log is a small key-value logging facade for the whole tool.
// All output goes to stderr so rendered tasks on stdout stay clean.
package log

import (
	"log/slog"
	"os"
	"sync"
)

var (
	logger   *slog.Logger
	level    = new(slog.LevelVar)
	initOnce sync.Once
)

func get() *slog.Logger {
	initOnce.Do(func() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	})
	return logger
}

// SetDebug lowers the minimum level to debug. Default is info.
func SetDebug() {
	level.Set(slog.LevelDebug)
}

func Debug(msg string, kv ...any) {
	get().Debug(msg, kv...)
}

func Info(msg string, kv ...any) {
	get().Info(msg, kv...)
}

// Error logs msg at error level with err prepended to the key-value pairs.
func Error(msg string, err error, kv ...any) {
	get().Error(msg, append([]any{"err", err}, kv...)...)
}
