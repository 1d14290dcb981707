// Package midi plays the note pad on MIDI gear and reads taps from MIDI keyboards
package midi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/james-see/pianopad/pkg/audio"
)

// SendFunc writes one message to an output port
type SendFunc func(msg gomidi.Message) error

// Output is an audio.Backend that plays each sample as a note on a MIDI port.
// The asset key is the note; the file itself is never read.
type Output struct {
	send    SendFunc
	channel uint8
	port    drivers.Out

	mu sync.Mutex
}

// OpenOutput opens the first output port whose name contains portName
// (the first port at all when portName is empty)
func OpenOutput(portName string, channel uint8) (*Output, error) {
	port, err := findOut(portName)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", port.String(), err)
	}
	o := NewOutput(send, channel)
	o.port = port
	return o, nil
}

func findOut(name string) (drivers.Out, error) {
	if name != "" {
		port, err := gomidi.FindOutPort(name)
		if err != nil {
			return nil, fmt.Errorf("find output port %q: %w", name, err)
		}
		return port, nil
	}
	ports := gomidi.GetOutPorts()
	if len(ports) == 0 {
		return nil, errors.New("no MIDI output ports available")
	}
	return ports[0], nil
}

// NewOutput creates a backend writing through send
func NewOutput(send SendFunc, channel uint8) *Output {
	return &Output{send: send, channel: channel & 0x0F}
}

// Name returns the backend name
func (o *Output) Name() string { return "midi" }

// Load turns the asset into a playable key
func (o *Output) Load(ctx context.Context, asset audio.Asset) (audio.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if asset.Key > 127 {
		return nil, fmt.Errorf("key %d out of MIDI range", asset.Key)
	}
	return &keySample{out: o, key: asset.Key}, nil
}

// Close silences the channel and closes the port
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	// CC 123: all notes off
	err := o.send(gomidi.ControlChange(o.channel, 123, 0))
	if o.port != nil {
		if cerr := o.port.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (o *Output) write(msg gomidi.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	// Errors are dropped: a failing port simply stays silent
	_ = o.send(msg)
}

type keySample struct {
	out *Output
	key uint8
}

func (s *keySample) NewVoice(params audio.PlayParams) (audio.Voice, error) {
	velocity := uint8(params.Volume() * 127)
	if velocity == 0 {
		velocity = 1
	}
	return &keyVoice{out: s.out, key: s.key, velocity: velocity}, nil
}

// keyVoice sounds until released; MIDI gives no end-of-note signal
type keyVoice struct {
	out      *Output
	key      uint8
	velocity uint8

	mu       sync.Mutex
	sounding bool
}

func (v *keyVoice) on() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sounding {
		return
	}
	v.out.write(gomidi.NoteOn(v.out.channel, v.key, v.velocity))
	v.sounding = true
}

func (v *keyVoice) off() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.sounding {
		return
	}
	v.out.write(gomidi.NoteOff(v.out.channel, v.key))
	v.sounding = false
}

func (v *keyVoice) Play()   { v.on() }
func (v *keyVoice) Pause()  { v.off() }
func (v *keyVoice) Resume() { v.on() }
func (v *keyVoice) Stop()   { v.off() }

func (v *keyVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sounding
}
