package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestUninitializedLoggerIsSafe(t *testing.T) {
	// Before Init the globals are no-op loggers, not nil: library callers
	// may log without bootstrapping.
	if Log == nil || Sugar == nil {
		t.Fatal("Log/Sugar must be usable before Init")
	}
	Log.Debug("no-op")
	Info("no-op")
	Warn("no-op")
	Error("no-op")
	Sync()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init("debug", path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("file sink check", zap.String("key", "value"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "file sink check") {
		t.Errorf("log file missing entry, got %q", string(data))
	}
}
