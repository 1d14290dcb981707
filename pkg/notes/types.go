// Package notes holds the fixed note catalog and the octave selector
package notes

import (
	"errors"
	"strings"
)

// Size is the number of notes on the pad
const Size = 7

// ErrInvalidOctave is returned when selecting an octave outside the selector range
var ErrInvalidOctave = errors.New("octave must be 3, 4 or 5")

// Note represents a single tappable note
type Note struct {
	Label string // Displayed solfège name
	Asset string // Sample file name inside the assets FS
	Key   uint8  // MIDI key in octave 4 (used by the MIDI backend and input)
}

// Catalog is the ordered, immutable list of notes
type Catalog [Size]Note

var catalog = Catalog{
	{Label: "Do", Asset: "doo.wav", Key: 60},
	{Label: "Re", Asset: "re.wav", Key: 62},
	{Label: "Mi", Asset: "mi.wav", Key: 64},
	{Label: "Fa", Asset: "fa.wav", Key: 65},
	{Label: "Sol", Asset: "sol.wav", Key: 67},
	{Label: "La", Asset: "la.wav", Key: 69},
	{Label: "Si", Asset: "si.wav", Key: 71},
}

// Default returns the solfège catalog. Catalog is an array so callers get a copy.
func Default() Catalog {
	return catalog
}

// Labels returns the note labels in catalog order
func (c Catalog) Labels() []string {
	labels := make([]string, len(c))
	for i, n := range c {
		labels[i] = n.Label
	}
	return labels
}

// Index finds a note by label (case-insensitive), returning -1 when absent
func (c Catalog) Index(label string) int {
	for i, n := range c {
		if strings.EqualFold(n.Label, label) {
			return i
		}
	}
	return -1
}

// pitchClasses maps a pitch class (0 = C) to a catalog index, -1 for accidentals
var pitchClasses = [12]int{0, -1, 1, -1, 2, 3, -1, 4, -1, 5, -1, 6}

// IndexForKey maps any MIDI key to the catalog index of its natural pitch class.
// Sharps and flats return -1.
func IndexForKey(key uint8) int {
	return pitchClasses[key%12]
}
