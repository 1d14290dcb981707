package notes

import "fmt"

// Octave range shown by the selector
const (
	MinOctave     = 3
	MaxOctave     = 5
	DefaultOctave = 4
)

// Octave is one selectable button of the selector
type Octave struct {
	Value  int
	Label  string
	Active bool
}

// OctaveSelector tracks which octave label is highlighted. The value is cosmetic
// and never consulted by playback.
type OctaveSelector struct {
	active int
}

// NewOctaveSelector creates a selector with the middle octave active
func NewOctaveSelector() *OctaveSelector {
	return &OctaveSelector{active: DefaultOctave}
}

// Active returns the highlighted octave
func (s *OctaveSelector) Active() int {
	return s.active
}

// Select highlights octave. Values outside the range leave the selection unchanged.
func (s *OctaveSelector) Select(octave int) error {
	if octave < MinOctave || octave > MaxOctave {
		return fmt.Errorf("%w: got %d", ErrInvalidOctave, octave)
	}
	s.active = octave
	return nil
}

// Shift moves the selection by delta, clamped to the range
func (s *OctaveSelector) Shift(delta int) {
	s.active = min(max(s.active+delta, MinOctave), MaxOctave)
}

// Options returns the three buttons left to right; exactly one is active
func (s *OctaveSelector) Options() []Octave {
	opts := make([]Octave, 0, MaxOctave-MinOctave+1)
	for o := MinOctave; o <= MaxOctave; o++ {
		opts = append(opts, Octave{
			Value:  o,
			Label:  OctaveLabel(o),
			Active: o == s.active,
		})
	}
	return opts
}

// OctaveLabel is the button text for an octave
func OctaveLabel(octave int) string {
	return fmt.Sprintf("Octava %d", octave)
}
