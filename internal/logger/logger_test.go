package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"opportunity-report-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelFromString(tt.input), tt.input)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	l := New(config.LogConfig{Level: "warn"})
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewWritesToFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "reports.log")
	l := New(config.LogConfig{Level: "info", ToFile: true, Filename: filename, MaxSize: 1})

	l.Info("Reporte creado", slog.String("reportId", "r1"))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reportId":"r1"`)
}
