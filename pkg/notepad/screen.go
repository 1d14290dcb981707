package notepad

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/james-see/pianopad/pkg/notes"
)

// Screen composes the octave selector above the pad. It lives from Open to Close.
type Screen struct {
	id uuid.UUID

	mu     sync.RWMutex
	octave *notes.OctaveSelector

	Pad *Pad
}

// NewScreen creates a screen around pad
func NewScreen(pad *Pad) *Screen {
	return &Screen{
		id:     uuid.New(),
		octave: notes.NewOctaveSelector(),
		Pad:    pad,
	}
}

// ID identifies this screen instance in logs and the API
func (s *Screen) ID() string {
	return s.id.String()
}

// Open starts the one-time sample registration
func (s *Screen) Open(ctx context.Context) {
	s.Pad.Preload(ctx)
}

// Close releases the pad's playback channel
func (s *Screen) Close() error {
	return s.Pad.Close()
}

// Octave returns the highlighted octave
func (s *Screen) Octave() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.octave.Active()
}

// Octaves returns the selector buttons
func (s *Screen) Octaves() []notes.Octave {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.octave.Options()
}

// SelectOctave highlights octave
func (s *Screen) SelectOctave(octave int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.octave.Select(octave)
}

// ShiftOctave moves the highlight left or right
func (s *Screen) ShiftOctave(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.octave.Shift(delta)
}
