package backends

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/james-see/pianopad/pkg/audio"
)

func TestNullName(t *testing.T) {
	if NewNull(nil).Name() != "null" {
		t.Errorf("Name() = %q, want %q", NewNull(nil).Name(), "null")
	}
}

func TestNullLoadChecksAssets(t *testing.T) {
	fsys := fstest.MapFS{"doo.wav": &fstest.MapFile{Data: []byte("RIFF")}}
	n := NewNull(fsys)

	if _, err := n.Load(context.Background(), audio.Asset{Name: "doo.wav"}); err != nil {
		t.Errorf("Load(doo.wav) error = %v", err)
	}
	if _, err := n.Load(context.Background(), audio.Asset{Name: "re.wav"}); err == nil {
		t.Error("Load(re.wav) should fail when the asset is missing")
	}
}

func TestNullLoadHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewNull(nil).Load(ctx, audio.Asset{Name: "doo.wav"}); err == nil {
		t.Error("Load() with cancelled context should fail")
	}
}

func TestNullVoiceState(t *testing.T) {
	sample, err := NewNull(nil).Load(context.Background(), audio.Asset{Name: "x"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	v, err := sample.NewVoice(audio.DefaultParams)
	if err != nil {
		t.Fatalf("NewVoice() error = %v", err)
	}

	if v.IsPlaying() {
		t.Error("new voice should not be playing")
	}
	v.Play()
	if !v.IsPlaying() {
		t.Error("voice should be playing after Play")
	}
	v.Pause()
	if v.IsPlaying() {
		t.Error("voice should not be playing after Pause")
	}
	v.Resume()
	v.Stop()
	if v.IsPlaying() {
		t.Error("voice should not be playing after Stop")
	}
}

func TestNullWithPool(t *testing.T) {
	p := audio.NewPool(NewNull(nil))
	id, err := p.Load(context.Background(), audio.Asset{Name: "doo.wav"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Play(id, audio.DefaultParams) == 0 {
		t.Fatal("Play() returned no stream")
	}
	if p.ActiveStreams() != 1 {
		t.Errorf("ActiveStreams() = %d, want 1", p.ActiveStreams())
	}
}
