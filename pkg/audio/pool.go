package audio

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type stream struct {
	id       StreamID
	sound    SoundID
	priority int
	voice    Voice
	paused   bool // paused by AutoPause
}

// Pool keeps loaded samples and the streams currently using the output
type Pool struct {
	mu         sync.Mutex
	backend    Backend
	maxStreams int
	log        *zap.Logger

	samples    map[SoundID]Sample
	nextSound  SoundID
	streams    []*stream // oldest first
	nextStream StreamID
	released   bool
}

// Option configures a Pool
type Option func(*Pool)

// WithMaxStreams caps concurrent streams (default 1)
func WithMaxStreams(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.maxStreams = n
		}
	}
}

// WithLogger sets the logger used for playback diagnostics
func WithLogger(log *zap.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPool creates a pool on top of backend
func NewPool(backend Backend, opts ...Option) *Pool {
	p := &Pool{
		backend:    backend,
		maxStreams: 1,
		log:        zap.NewNop(),
		samples:    make(map[SoundID]Sample),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Backend returns the output the pool plays through
func (p *Pool) Backend() Backend {
	return p.backend
}

// MaxStreams returns the stream cap
func (p *Pool) MaxStreams() int {
	return p.maxStreams
}

// Load decodes asset and returns its id. Decoding happens outside the lock so
// playback of already loaded samples is not blocked.
func (p *Pool) Load(ctx context.Context, asset Asset) (SoundID, error) {
	p.mu.Lock()
	released := p.released
	p.mu.Unlock()
	if released {
		return 0, ErrReleased
	}

	sample, err := p.backend.Load(ctx, asset)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", asset.Name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return 0, ErrReleased
	}
	p.nextSound++
	id := p.nextSound
	p.samples[id] = sample
	p.log.Debug("sample loaded",
		zap.String("asset", asset.Name),
		zap.Int32("sound_id", int32(id)))
	return id, nil
}

// Unload forgets a sample. Streams already playing it keep going.
func (p *Pool) Unload(id SoundID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.samples[id]; !ok {
		return false
	}
	delete(p.samples, id)
	return true
}

// Play starts sound id and returns the new stream, or 0 when the id is unknown,
// the pool is released, or every active stream outranks the request.
func (p *Pool) Play(id SoundID, params PlayParams) StreamID {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return 0
	}
	sample, ok := p.samples[id]
	if !ok {
		p.log.Debug("play ignored, sound not loaded", zap.Int32("sound_id", int32(id)))
		return 0
	}

	p.reap()
	for len(p.streams) >= p.maxStreams {
		victim := p.lowestPriority()
		if p.streams[victim].priority > params.Priority {
			p.log.Debug("play dropped, streams outrank request",
				zap.Int32("sound_id", int32(id)),
				zap.Int("priority", params.Priority))
			return 0
		}
		p.streams[victim].voice.Stop()
		p.streams = append(p.streams[:victim], p.streams[victim+1:]...)
	}

	voice, err := sample.NewVoice(params)
	if err != nil {
		p.log.Warn("voice creation failed",
			zap.Int32("sound_id", int32(id)),
			zap.Error(err))
		return 0
	}
	voice.Play()

	p.nextStream++
	s := &stream{id: p.nextStream, sound: id, priority: params.Priority, voice: voice}
	p.streams = append(p.streams, s)
	return s.id
}

// AutoPause pauses every playing stream
func (p *Pool) AutoPause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.streams {
		if s.voice.IsPlaying() {
			s.voice.Pause()
			s.paused = true
		}
	}
}

// AutoResume resumes the streams paused by AutoPause
func (p *Pool) AutoResume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.streams {
		if s.paused {
			s.voice.Resume()
			s.paused = false
		}
	}
}

// Stop ends a single stream
func (p *Pool) Stop(id StreamID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.streams {
		if s.id == id {
			s.voice.Stop()
			p.streams = append(p.streams[:i], p.streams[i+1:]...)
			return true
		}
	}
	return false
}

// ActiveStreams returns the number of streams currently audible
func (p *Pool) ActiveStreams() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.streams {
		if s.voice.IsPlaying() {
			n++
		}
	}
	return n
}

// Release stops everything and closes the backend. The pool is unusable afterwards.
func (p *Pool) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return nil
	}
	p.released = true
	for _, s := range p.streams {
		s.voice.Stop()
	}
	p.streams = nil
	p.samples = make(map[SoundID]Sample)
	if err := p.backend.Close(); err != nil {
		return fmt.Errorf("close %s backend: %w", p.backend.Name(), err)
	}
	return nil
}

// reap drops streams that finished on their own. Paused streams stay.
func (p *Pool) reap() {
	live := p.streams[:0]
	for _, s := range p.streams {
		if s.paused || s.voice.IsPlaying() {
			live = append(live, s)
		}
	}
	for i := len(live); i < len(p.streams); i++ {
		p.streams[i] = nil
	}
	p.streams = live
}

// lowestPriority returns the index of the weakest stream, oldest on ties
func (p *Pool) lowestPriority() int {
	idx := 0
	for i, s := range p.streams {
		if s.priority < p.streams[idx].priority {
			idx = i
		}
	}
	return idx
}
