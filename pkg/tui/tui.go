// Package tui provides the terminal note pad
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/james-see/pianopad/pkg/notepad"
	"github.com/james-see/pianopad/pkg/notes"
)

var (
	black     = lipgloss.Color("#000000")
	white     = lipgloss.Color("#FFFFFF")
	gray      = lipgloss.Color("#808080")
	lightGray = lipgloss.Color("#D3D3D3")
	darkGray  = lipgloss.Color("#333333")
	accent    = lipgloss.Color("#39FF14")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Background(darkGray)

	statusStyle = lipgloss.NewStyle().
			Foreground(lightGray)

	octaveStyle = lipgloss.NewStyle().
			Width(buttonWidth - 2).
			Align(lipgloss.Center).
			Foreground(black).
			Background(lightGray).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lightGray)

	activeOctaveStyle = octaveStyle.
				Background(gray).
				BorderForeground(gray)

	noteStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(white).
			Background(gray).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gray)

	pressedNoteStyle = noteStyle.
				BorderForeground(accent)

	pendingNoteStyle = noteStyle.
				Foreground(lightGray).
				Faint(true)
)

// Layout, in terminal cells
const (
	titleHeight     = 1
	octaveHeight    = 3
	helpHeight      = 1
	buttonWidth     = 14
	buttonGap       = 2
	minRegionHeight = 3
	defaultWidth    = 40
	defaultHeight   = titleHeight + octaveHeight + notes.Size*minRegionHeight + helpHeight
)

// Loads carries registration results from the pad to the UI
type Loads chan noteLoadedMsg

// NewLoads creates a channel large enough that the pad never blocks on it
func NewLoads() Loads {
	return make(Loads, notes.Size)
}

// Callback returns the pad load callback feeding this channel
func (l Loads) Callback() notepad.LoadFunc {
	return func(index int, err error) {
		l <- noteLoadedMsg{index: index, err: err}
	}
}

type noteLoadedMsg struct {
	index int
	err   error
}

// Model is the root view: octave selector above the note pad
type Model struct {
	screen  *notepad.Screen
	loads   Loads
	log     *zap.Logger
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	loaded  int
	failed  int
	pressed int
	width   int
	height  int
}

// New creates the root model for screen. loads may be nil when the caller does
// not report registration progress.
func New(screen *notepad.Screen, loads Loads, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	return Model{
		screen:  screen,
		loads:   loads,
		log:     log,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
		pressed: -1,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Init starts the one-time sample registration
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.open(), m.waitForLoad())
}

func (m Model) open() tea.Cmd {
	return func() tea.Msg {
		m.screen.Open(context.Background())
		return nil
	}
}

func (m Model) waitForLoad() tea.Cmd {
	if m.loads == nil {
		return nil
	}
	return func() tea.Msg {
		return <-m.loads
	}
}

func (m Model) loading() bool {
	return m.loads != nil && m.loaded+m.failed < notes.Size
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noteLoadedMsg:
		if msg.err != nil {
			m.failed++
		} else {
			m.loaded++
		}
		if m.loading() {
			return m, m.waitForLoad()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Notes):
		m.tap(noteKeys[msg.String()])
	case key.Matches(msg, m.keys.OctaveLeft):
		m.screen.ShiftOctave(-1)
	case key.Matches(msg, m.keys.OctaveRight):
		m.screen.ShiftOctave(1)
	case key.Matches(msg, m.keys.Octave):
		_ = m.screen.SelectOctave(octaveKeys[msg.String()])
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if octave := m.octaveAt(msg.X, msg.Y); octave != 0 {
		_ = m.screen.SelectOctave(octave)
		return m, nil
	}
	if i := m.regionAt(msg.Y); i >= 0 {
		m.tap(i)
	}
	return m, nil
}

func (m *Model) tap(i int) {
	m.pressed = i
	if err := m.screen.Pad.Tap(i); err != nil {
		m.log.Warn("tap failed", zap.Int("index", i), zap.Error(err))
	}
}

func (m Model) regionHeight() int {
	avail := m.height - titleHeight - octaveHeight - helpHeight
	return max(minRegionHeight, avail/notes.Size)
}

// regionAt returns the note region under row y, or -1
func (m Model) regionAt(y int) int {
	top := titleHeight + octaveHeight
	if y < top {
		return -1
	}
	i := (y - top) / m.regionHeight()
	if i >= notes.Size {
		return -1
	}
	return i
}

// octaveAt returns the octave button under x, y, or 0
func (m Model) octaveAt(x, y int) int {
	if y < titleHeight || y >= titleHeight+octaveHeight || x < 0 {
		return 0
	}
	k := x / (buttonWidth + buttonGap)
	if k > notes.MaxOctave-notes.MinOctave || x%(buttonWidth+buttonGap) >= buttonWidth {
		return 0
	}
	return notes.MinOctave + k
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.viewTitle())
	s.WriteString("\n")
	s.WriteString(m.viewOctaves())
	s.WriteString("\n")
	s.WriteString(m.viewNotes())
	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))

	return s.String()
}

func (m Model) viewTitle() string {
	status := "ready"
	switch {
	case m.loading():
		status = fmt.Sprintf("%s loading samples %d/%d", m.spinner.View(), m.loaded+m.failed, notes.Size)
	case m.failed > 0:
		status = fmt.Sprintf("%d/%d notes ready", m.loaded, notes.Size)
	}
	return titleStyle.Render(" PIANOPAD ") + " " + statusStyle.Render(status)
}

func (m Model) viewOctaves() string {
	gap := strings.Repeat(" ", buttonGap)
	var buttons []string
	for i, o := range m.screen.Octaves() {
		if i > 0 {
			buttons = append(buttons, gap)
		}
		style := octaveStyle
		if o.Active {
			style = activeOctaveStyle
		}
		buttons = append(buttons, style.Render(o.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m Model) viewNotes() string {
	width := max(m.width, buttonWidth) - 2
	height := m.regionHeight() - 2

	regions := make([]string, 0, notes.Size)
	for i, n := range m.screen.Pad.Notes() {
		style := noteStyle
		switch {
		case !m.screen.Pad.Ready(i):
			style = pendingNoteStyle
		case i == m.pressed:
			style = pressedNoteStyle
		}
		regions = append(regions, style.Width(width).Height(height).Render(n.Label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, regions...)
}

// Run shows screen until the user quits, then releases it
func Run(screen *notepad.Screen, loads Loads, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	defer func() {
		if err := screen.Close(); err != nil {
			log.Warn("failed to release screen", zap.Error(err))
		}
	}()

	log.Info("screen opened", zap.String("screen", screen.ID()))
	p := tea.NewProgram(New(screen, loads, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
