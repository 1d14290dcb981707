package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Notes       key.Binding
	OctaveLeft  key.Binding
	OctaveRight key.Binding
	Octave      key.Binding
	Quit        key.Binding
}

// noteKeys maps a key to a catalog index
var noteKeys = map[string]int{
	"1": 0, "2": 1, "3": 2, "4": 3, "5": 4, "6": 5, "7": 6,
}

// octaveKeys maps a key to an octave
var octaveKeys = map[string]int{
	"f3": 3, "f4": 4, "f5": 5,
}

func defaultKeyMap() keyMap {
	return keyMap{
		Notes: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "play note"),
		),
		OctaveLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "octave down"),
		),
		OctaveRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "octave up"),
		),
		Octave: key.NewBinding(
			key.WithKeys("f3", "f4", "f5"),
			key.WithHelp("f3-f5", "pick octave"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Notes, k.OctaveLeft, k.OctaveRight, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Notes},
		{k.OctaveLeft, k.OctaveRight, k.Octave},
		{k.Quit},
	}
}
