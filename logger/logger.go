package logger

import (
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

func init() {
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func SetLogger(l *slog.Logger) {
	log = l
}

// New returns a text logger on stderr at the given level
func New(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// LevelFromCode maps the aligner's --log-level codes onto slog levels:
// 1 debug, 2 info, 3 warn, 4 error, 5 fatal (logged as error plus 4).
func LevelFromCode(code int) slog.Level {
	switch {
	case code <= 1:
		return slog.LevelDebug
	case code == 2:
		return slog.LevelInfo
	case code == 3:
		return slog.LevelWarn
	case code == 4:
		return slog.LevelError
	}
	return slog.LevelError + 4
}

func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	log.Error(msg, args...)
}
