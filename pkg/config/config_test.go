package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PIANOPAD_BACKEND", "PIANOPAD_ASSETS_DIR", "PIANOPAD_SAMPLE_RATE",
		"PIANOPAD_MAX_STREAMS", "PIANOPAD_PORT", "PIANOPAD_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := FromEnv()

	if cfg.Backend != BackendEbiten {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendEbiten)
	}
	if cfg.AssetsDir != "" {
		t.Errorf("AssetsDir = %q, want empty", cfg.AssetsDir)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", cfg.SampleRate)
	}
	if cfg.MaxStreams != 1 {
		t.Errorf("MaxStreams = %d, want 1", cfg.MaxStreams)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PIANOPAD_BACKEND", "null")
	t.Setenv("PIANOPAD_PORT", "9090")
	t.Setenv("PIANOPAD_MAX_STREAMS", "not-a-number")

	cfg := FromEnv()

	if cfg.Backend != BackendNull {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendNull)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.MaxStreams != 1 {
		t.Errorf("MaxStreams = %d, want fallback 1", cfg.MaxStreams)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PIANOPAD_MIDI_IN=keystation\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PIANOPAD_MIDI_IN", "")
	os.Unsetenv("PIANOPAD_MIDI_IN")

	cfg := Load(path)

	if cfg.MIDIIn != "keystation" {
		t.Errorf("MIDIIn = %q, want %q", cfg.MIDIIn, "keystation")
	}
}

func TestLoadEnvWinsOverDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PIANOPAD_BACKEND=midi\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PIANOPAD_BACKEND", "null")

	if cfg := Load(path); cfg.Backend != BackendNull {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendNull)
	}
}
