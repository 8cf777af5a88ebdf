package logger

import (
	"log/slog"
	"testing"
)

func TestLevelFromCode(t *testing.T) {
	tests := []struct {
		code int
		want slog.Level
	}{
		{0, slog.LevelDebug},
		{1, slog.LevelDebug},
		{2, slog.LevelInfo},
		{3, slog.LevelWarn},
		{4, slog.LevelError},
		{5, slog.LevelError + 4},
	}
	for _, tt := range tests {
		if got := LevelFromCode(tt.code); got != tt.want {
			t.Errorf("LevelFromCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
