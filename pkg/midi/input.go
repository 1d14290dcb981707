package midi

import (
	"errors"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"go.uber.org/zap"

	"github.com/james-see/pianopad/pkg/notes"
)

// TapFunc taps a catalog index
type TapFunc func(index int) error

// Input forwards key presses from a MIDI keyboard to the pad
type Input struct {
	name string
	stop func()
}

// Listen opens the input port whose name contains portName and taps the note
// matching each key's pitch class
func Listen(portName string, tap TapFunc, log *zap.Logger) (*Input, error) {
	if portName == "" {
		return nil, errors.New("no MIDI input port given")
	}
	if log == nil {
		log = zap.NewNop()
	}
	port, err := gomidi.FindInPort(portName)
	if err != nil {
		return nil, fmt.Errorf("find input port %q: %w", portName, err)
	}
	stop, err := gomidi.ListenTo(port, Handler(tap, log))
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	log.Info("listening for MIDI taps", zap.String("port", port.String()))
	return &Input{name: port.String(), stop: stop}, nil
}

// Name returns the port being read
func (in *Input) Name() string {
	return in.name
}

// Close stops listening
func (in *Input) Close() {
	if in.stop != nil {
		in.stop()
		in.stop = nil
	}
}

// Handler converts NoteOn messages into taps. Note-offs, velocity-zero note-ons,
// accidentals and everything else are ignored.
func Handler(tap TapFunc, log *zap.Logger) func(msg gomidi.Message, timestampms int32) {
	return func(msg gomidi.Message, timestampms int32) {
		var channel, key, velocity uint8
		if !msg.GetNoteOn(&channel, &key, &velocity) || velocity == 0 {
			return
		}
		index := notes.IndexForKey(key)
		if index < 0 {
			return
		}
		if err := tap(index); err != nil {
			log.Warn("MIDI tap failed", zap.Uint8("key", key), zap.Error(err))
		}
	}
}
