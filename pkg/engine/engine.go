// Package engine builds the playback pool selected by the configuration
package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/james-see/pianopad/assets"
	"github.com/james-see/pianopad/pkg/audio"
	"github.com/james-see/pianopad/pkg/audio/backends"
	"github.com/james-see/pianopad/pkg/config"
	"github.com/james-see/pianopad/pkg/midi"
)

// Backends lists the accepted backend names
func Backends() []string {
	return []string{config.BackendEbiten, config.BackendMIDI, config.BackendNull}
}

// NewBackend creates the output named by cfg.Backend
func NewBackend(cfg *config.Config, log *zap.Logger) (audio.Backend, error) {
	fsys := assets.Open(cfg.AssetsDir)

	switch strings.ToLower(cfg.Backend) {
	case config.BackendEbiten, "":
		return backends.NewEbiten(fsys, cfg.SampleRate, log), nil
	case config.BackendMIDI:
		out, err := midi.OpenOutput(cfg.MIDIOut, 0)
		if err != nil {
			return nil, err
		}
		return out, nil
	case config.BackendNull:
		return backends.NewNull(fsys), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want one of %s)", cfg.Backend, strings.Join(Backends(), ", "))
	}
}

// NewPool creates the sound pool for one screen
func NewPool(cfg *config.Config, log *zap.Logger) (*audio.Pool, error) {
	backend, err := NewBackend(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s backend: %w", cfg.Backend, err)
	}
	log.Info("playback backend ready",
		zap.String("backend", backend.Name()),
		zap.Int("max_streams", cfg.MaxStreams))
	return audio.NewPool(backend,
		audio.WithMaxStreams(cfg.MaxStreams),
		audio.WithLogger(log.Named("pool")),
	), nil
}
