package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewConsoleJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Console: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug("hidden")
	log.Info("tapped", zap.Int("index", 3))
	_ = log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not a single JSON entry: %q", buf.String())
	}
	if entry["msg"] != "tapped" {
		t.Errorf("msg = %v, want %q", entry["msg"], "tapped")
	}
	if entry["index"] != float64(3) {
		t.Errorf("index = %v, want 3", entry["index"])
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pianopad.log")
	log, err := New(Config{Level: "debug", File: path, MaxSize: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug("preload started")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !bytes.Contains(data, []byte("preload started")) {
		t.Errorf("log file = %q, want it to contain the message", data)
	}
}

func TestNewWithoutOutputs(t *testing.T) {
	log, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without outputs should be a no-op")
	}
}
