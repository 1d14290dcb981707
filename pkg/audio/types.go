// Package audio provides a sound pool: samples are loaded once and played back on a
// capped number of concurrent streams
package audio

import (
	"context"
	"errors"
)

// SoundID identifies a loaded sample. The zero value means "not loaded".
type SoundID int32

// StreamID identifies a playing stream. Zero is returned when nothing was started.
type StreamID int32

// ErrReleased is returned by operations on a released pool
var ErrReleased = errors.New("sound pool released")

// Asset is a reference to a sample the backend knows how to load
type Asset struct {
	Name string // File name inside the asset FS
	Key  uint8  // MIDI key, for backends that play notes instead of samples
}

// PlayParams control a single playback
type PlayParams struct {
	LeftVolume  float64 // 0.0 - 1.0
	RightVolume float64 // 0.0 - 1.0
	Priority    int     // Higher survives eviction
	Loop        int     // 0 plays once, -1 loops forever, n repeats n extra times
	Rate        float64 // Playback rate, 1.0 is normal pitch
}

// DefaultParams plays once at full volume and normal pitch
var DefaultParams = PlayParams{
	LeftVolume:  1,
	RightVolume: 1,
	Priority:    0,
	Loop:        0,
	Rate:        1,
}

// Volume returns the louder of both channels, clamped to 0-1
func (p PlayParams) Volume() float64 {
	return clamp(max(p.LeftVolume, p.RightVolume), 0, 1)
}

// Backend loads samples for a particular output (speakers, MIDI port, ...)
type Backend interface {
	Name() string
	Load(ctx context.Context, asset Asset) (Sample, error)
	Close() error
}

// Sample is a decoded asset that can spawn voices
type Sample interface {
	NewVoice(params PlayParams) (Voice, error)
}

// Voice is one playback of a sample
type Voice interface {
	Play()
	Pause()
	Resume()
	Stop()
	IsPlaying() bool
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
