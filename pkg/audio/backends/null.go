// Package backends implements audio.Backend outputs
package backends

import (
	"context"
	"fmt"
	"io/fs"
	"sync/atomic"

	"github.com/james-see/pianopad/pkg/audio"
)

// Null plays nothing. When given an FS it still checks that assets exist, so
// headless runs surface missing files the same way a real backend would.
type Null struct {
	fsys fs.FS
}

// NewNull creates a silent backend. fsys may be nil.
func NewNull(fsys fs.FS) *Null {
	return &Null{fsys: fsys}
}

// Name returns the backend name
func (n *Null) Name() string { return "null" }

// Load validates the asset and returns a silent sample
func (n *Null) Load(ctx context.Context, asset audio.Asset) (audio.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n.fsys != nil {
		if _, err := fs.Stat(n.fsys, asset.Name); err != nil {
			return nil, fmt.Errorf("stat asset: %w", err)
		}
	}
	return nullSample{}, nil
}

// Close is a no-op
func (n *Null) Close() error { return nil }

type nullSample struct{}

func (nullSample) NewVoice(audio.PlayParams) (audio.Voice, error) {
	return &nullVoice{}, nil
}

// nullVoice reports playing until paused or stopped; it never finishes on its own
type nullVoice struct {
	playing atomic.Bool
}

func (v *nullVoice) Play()           { v.playing.Store(true) }
func (v *nullVoice) Pause()          { v.playing.Store(false) }
func (v *nullVoice) Resume()         { v.playing.Store(true) }
func (v *nullVoice) Stop()           { v.playing.Store(false) }
func (v *nullVoice) IsPlaying() bool { return v.playing.Load() }
