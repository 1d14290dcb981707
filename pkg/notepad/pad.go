// Package notepad wires the note catalog to single-voice playback
package notepad

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/james-see/pianopad/pkg/audio"
	"github.com/james-see/pianopad/pkg/notes"
)

// ErrNoSuchNote is returned when tapping an index outside the catalog
var ErrNoSuchNote = errors.New("no such note")

// TapParams are used for every tap: full volume, normal pitch, no loop
var TapParams = audio.DefaultParams

// Engine is the playback side the pad needs. *audio.Pool implements it.
type Engine interface {
	Load(ctx context.Context, asset audio.Asset) (audio.SoundID, error)
	Play(id audio.SoundID, params audio.PlayParams) audio.StreamID
	AutoPause()
	Release() error
}

// LoadFunc is called once per catalog entry when its registration finishes
type LoadFunc func(index int, err error)

// Pad owns the handle table and the playback channel for one screen
type Pad struct {
	catalog  notes.Catalog
	engine   Engine
	log      *zap.Logger
	onLoaded LoadFunc

	handles [notes.Size]atomic.Int32 // slot i belongs to catalog[i]; 0 = not ready

	preload   sync.Once
	done      chan struct{}
	tapMu     sync.Mutex
	closeOnce sync.Once
	closed    atomic.Bool
}

// Option configures a Pad
type Option func(*Pad)

// WithCatalog replaces the default solfège catalog
func WithCatalog(c notes.Catalog) Option {
	return func(p *Pad) { p.catalog = c }
}

// WithLogger sets the pad logger
func WithLogger(log *zap.Logger) Option {
	return func(p *Pad) {
		if log != nil {
			p.log = log
		}
	}
}

// WithLoadCallback registers fn to be told when each note becomes ready (or fails)
func WithLoadCallback(fn LoadFunc) Option {
	return func(p *Pad) { p.onLoaded = fn }
}

// New creates a pad playing through engine
func New(engine Engine, opts ...Option) *Pad {
	p := &Pad{
		catalog: notes.Default(),
		engine:  engine,
		log:     zap.NewNop(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Notes returns the catalog in display order
func (p *Pad) Notes() notes.Catalog {
	return p.catalog
}

// Preload registers every note with the engine in the background. Only the first
// call does anything; it never blocks.
func (p *Pad) Preload(ctx context.Context) {
	p.preload.Do(func() {
		go p.load(ctx)
	})
}

func (p *Pad) load(ctx context.Context) {
	defer close(p.done)

	for i, n := range p.catalog {
		id, err := p.engine.Load(ctx, audio.Asset{Name: n.Asset, Key: n.Key})
		if err != nil {
			p.log.Warn("note registration failed",
				zap.String("note", n.Label),
				zap.String("asset", n.Asset),
				zap.Error(err))
		} else {
			p.handles[i].Store(int32(id))
			p.log.Debug("note ready", zap.String("note", n.Label), zap.Int("index", i))
		}
		if p.onLoaded != nil {
			p.onLoaded(i, err)
		}
	}
}

// Wait blocks until preload finished or ctx is done
func (p *Pad) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready reports whether note i can be played
func (p *Pad) Ready(i int) bool {
	if i < 0 || i >= len(p.handles) {
		return false
	}
	return p.handles[i].Load() != 0
}

// ReadyCount returns how many notes finished registering
func (p *Pad) ReadyCount() int {
	n := 0
	for i := range p.handles {
		if p.handles[i].Load() != 0 {
			n++
		}
	}
	return n
}

// Handles returns a snapshot of the handle table
func (p *Pad) Handles() [notes.Size]audio.SoundID {
	var out [notes.Size]audio.SoundID
	for i := range p.handles {
		out[i] = audio.SoundID(p.handles[i].Load())
	}
	return out
}

// Tap silences whatever is playing and starts note i from the beginning.
// Taps on notes that are not registered yet, or after Close, do nothing.
func (p *Pad) Tap(i int) error {
	if i < 0 || i >= len(p.handles) {
		return fmt.Errorf("%w: index %d", ErrNoSuchNote, i)
	}
	if p.closed.Load() {
		return nil
	}

	id := audio.SoundID(p.handles[i].Load())
	if id == 0 {
		p.log.Debug("tap ignored, note not ready", zap.String("note", p.catalog[i].Label))
		return nil
	}

	p.tapMu.Lock()
	defer p.tapMu.Unlock()
	p.engine.AutoPause()
	stream := p.engine.Play(id, TapParams)
	p.log.Debug("note played",
		zap.String("note", p.catalog[i].Label),
		zap.Int32("stream", int32(stream)))
	return nil
}

// Close releases the playback channel
func (p *Pad) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.tapMu.Lock()
		defer p.tapMu.Unlock()
		err = p.engine.Release()
	})
	return err
}
