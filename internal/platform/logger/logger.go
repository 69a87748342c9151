package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Text to stdout; swap the
// handler here if log shipping ever needs JSON.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
