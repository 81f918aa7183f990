package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseLevel(tc.in); got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cubecam.log")

	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	log := New("info", cfg, false)

	log.Debug("hidden message")
	log.Info("frame rendered", zap.Int("faces", 12))
	_ = log.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "frame rendered") {
		t.Errorf("log file missing info entry: %q", content)
	}
	if !strings.Contains(content, "faces") {
		t.Errorf("log file missing field: %q", content)
	}
	if strings.Contains(content, "hidden message") {
		t.Error("debug entry written at info level")
	}
}

func TestNoOutputs(t *testing.T) {
	log := New("debug", FileConfig{}, false)
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger with no outputs should be a no-op")
	}
	if Nop().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Nop logger should be disabled")
	}
}
