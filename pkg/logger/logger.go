package logger

import (
	"io"
	"log/slog"
	"os"
)

func InitLogger() {
	slog.SetDefault(New(os.Stdout, slog.LevelInfo))
}

// New returns a JSON logger that tags every record with the request id found in its context.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(&RequestIDHandler{Handler: handler})
}
