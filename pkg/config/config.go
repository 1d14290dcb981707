// Package config loads pianopad settings from the environment
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names
const (
	BackendEbiten = "ebiten"
	BackendMIDI   = "midi"
	BackendNull   = "null"
)

// Config stores the application configuration
type Config struct {
	Backend    string // ebiten, midi or null
	AssetsDir  string // Empty uses the embedded samples
	SampleRate int
	MaxStreams int
	MIDIOut    string // Output port name (substring match) for the midi backend
	MIDIIn     string // Input port name; empty disables MIDI input
	LogFile    string
	LogLevel   string
	Port       int
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load reads a .env file if present, then the environment, falling back to defaults.
// Variables already set in the environment win over the .env file.
func Load(files ...string) *Config {
	_ = godotenv.Load(files...)
	return FromEnv()
}

// FromEnv builds the config from the current environment only
func FromEnv() *Config {
	return &Config{
		Backend:    getEnv("PIANOPAD_BACKEND", BackendEbiten),
		AssetsDir:  getEnv("PIANOPAD_ASSETS_DIR", ""),
		SampleRate: getEnvInt("PIANOPAD_SAMPLE_RATE", 44100),
		MaxStreams: getEnvInt("PIANOPAD_MAX_STREAMS", 1),
		MIDIOut:    getEnv("PIANOPAD_MIDI_OUT", ""),
		MIDIIn:     getEnv("PIANOPAD_MIDI_IN", ""),
		LogFile:    getEnv("PIANOPAD_LOG_FILE", "pianopad.log"),
		LogLevel:   getEnv("PIANOPAD_LOG_LEVEL", "info"),
		Port:       getEnvInt("PIANOPAD_PORT", 8080),
	}
}
