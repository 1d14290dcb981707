package backends

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"go.uber.org/zap"

	pool "github.com/james-see/pianopad/pkg/audio"
)

// DefaultSampleRate is used when no audio context exists yet
const DefaultSampleRate = 44100

// Ebiten plays WAV samples through the ebiten audio context
type Ebiten struct {
	ctx  *audio.Context
	fsys fs.FS
	log  *zap.Logger
}

// NewEbiten creates a backend reading WAV files from fsys. The process-wide audio
// context is reused if one already exists, otherwise it is created at sampleRate.
func NewEbiten(fsys fs.FS, sampleRate int, log *zap.Logger) *Ebiten {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		log.Warn("reusing audio context with a different sample rate",
			zap.Int("requested", sampleRate),
			zap.Int("actual", ctx.SampleRate()))
	}
	return &Ebiten{ctx: ctx, fsys: fsys, log: log}
}

// Name returns the backend name
func (e *Ebiten) Name() string { return "ebiten" }

// Load decodes a WAV asset into PCM at the context sample rate
func (e *Ebiten) Load(ctx context.Context, asset pool.Asset) (pool.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := e.fsys.Open(asset.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample: %w", err)
	}
	defer f.Close()

	stream, err := wav.DecodeWithSampleRate(e.ctx.SampleRate(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM: %w", err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("sample %s is empty", asset.Name)
	}

	return &ebitenSample{backend: e, pcm: pcm}, nil
}

// Close is a no-op: the audio context lives for the whole process
func (e *Ebiten) Close() error { return nil }

type ebitenSample struct {
	backend *Ebiten
	pcm     []byte
}

func (s *ebitenSample) NewVoice(params pool.PlayParams) (pool.Voice, error) {
	if params.Rate != 0 && params.Rate != 1 {
		s.backend.log.Debug("playback rate not supported, playing at 1.0", zap.Float64("rate", params.Rate))
	}

	var player *audio.Player
	switch {
	case params.Loop < 0:
		loop := audio.NewInfiniteLoop(bytes.NewReader(s.pcm), int64(len(s.pcm)))
		p, err := s.backend.ctx.NewPlayer(loop)
		if err != nil {
			return nil, fmt.Errorf("failed to create looping player: %w", err)
		}
		player = p
	case params.Loop > 0:
		player = s.backend.ctx.NewPlayerFromBytes(bytes.Repeat(s.pcm, params.Loop+1))
	default:
		player = s.backend.ctx.NewPlayerFromBytes(s.pcm)
	}
	player.SetVolume(params.Volume())

	return &ebitenVoice{player: player}, nil
}

type ebitenVoice struct {
	player *audio.Player
}

func (v *ebitenVoice) Play()           { v.player.Play() }
func (v *ebitenVoice) Pause()          { v.player.Pause() }
func (v *ebitenVoice) Resume()         { v.player.Play() }
func (v *ebitenVoice) IsPlaying() bool { return v.player.IsPlaying() }

func (v *ebitenVoice) Stop() {
	v.player.Pause()
	_ = v.player.Close()
}
