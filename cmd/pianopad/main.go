// Package main is the entry point for the pianopad CLI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
	"go.uber.org/zap"

	"github.com/james-see/pianopad/pkg/api"
	"github.com/james-see/pianopad/pkg/config"
	"github.com/james-see/pianopad/pkg/engine"
	"github.com/james-see/pianopad/pkg/logger"
	"github.com/james-see/pianopad/pkg/midi"
	"github.com/james-see/pianopad/pkg/notepad"
	"github.com/james-see/pianopad/pkg/notes"
	"github.com/james-see/pianopad/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	backendName string
	assetsDir   string
	midiOut     string
	midiIn      string
	logFile     string
	logLevel    string
	serverPort  int
	holdFor     time.Duration
)

func main() {
	defer gomidi.CloseDriver()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pianopad",
	Short: "Seven-note solfège pad for the terminal",
	Long: `pianopad shows seven pads (Do Re Mi Fa Sol La Si) and plays a sample when one is
tapped. Only the last tapped note sounds. The octave buttons are labels only.

Examples:
  pianopad
  pianopad --backend midi --midi-out "FluidSynth"
  pianopad --midi-in "Keystation"
  pianopad play sol
  pianopad serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE:    runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive note pad",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List the notes on the pad",
	RunE:  runNotes,
}

var playCmd = &cobra.Command{
	Use:   "play <note|index>",
	Short: "Play a single note and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "", "Playback backend (ebiten, midi, null)")
	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets", "", "Directory with doo.wav ... si.wav (default: embedded)")
	rootCmd.PersistentFlags().StringVar(&midiOut, "midi-out", "", "MIDI output port for the midi backend")
	rootCmd.PersistentFlags().StringVar(&midiIn, "midi-in", "", "MIDI input port to tap notes from")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Server port")

	// play command
	playCmd.Flags().DurationVar(&holdFor, "hold", time.Second, "How long to let the note ring")

	// Add commands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(playCmd)
}

// loadConfig reads the environment and applies any flags that were set
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if flags.Changed("assets") {
		cfg.AssetsDir = assetsDir
	}
	if flags.Changed("midi-out") {
		cfg.MIDIOut = midiOut
	}
	if flags.Changed("midi-in") {
		cfg.MIDIIn = midiIn
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("port") {
		cfg.Port = serverPort
	}
	return cfg
}

func newLogger(cfg *config.Config, console bool) (*zap.Logger, error) {
	lc := logger.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
	if console {
		lc.Console = os.Stderr
	}
	return logger.New(lc)
}

func newScreen(cfg *config.Config, log *zap.Logger, opts ...notepad.Option) (*notepad.Screen, error) {
	pool, err := engine.NewPool(cfg, log)
	if err != nil {
		return nil, err
	}
	opts = append([]notepad.Option{notepad.WithLogger(log.Named("pad"))}, opts...)
	return notepad.NewScreen(notepad.New(pool, opts...)), nil
}

// startMIDIInput listens on the configured input port, if any. A missing port is
// logged rather than fatal so the pad stays usable.
func startMIDIInput(cfg *config.Config, screen *notepad.Screen, log *zap.Logger) *midi.Input {
	if cfg.MIDIIn == "" {
		return nil
	}
	in, err := midi.Listen(cfg.MIDIIn, screen.Pad.Tap, log.Named("midi"))
	if err != nil {
		log.Warn("MIDI input unavailable", zap.String("port", cfg.MIDIIn), zap.Error(err))
		return nil
	}
	return in
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	loads := tui.NewLoads()
	screen, err := newScreen(cfg, log, notepad.WithLoadCallback(loads.Callback()))
	if err != nil {
		return err
	}
	if in := startMIDIInput(cfg, screen, log); in != nil {
		defer in.Close()
	}

	return tui.Run(screen, loads, log)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	screen, err := newScreen(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = screen.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen.Open(ctx)
	if in := startMIDIInput(cfg, screen, log); in != nil {
		defer in.Close()
	}

	fmt.Printf("Starting API server on port %d...\n", cfg.Port)
	return api.NewServer(screen, log.Named("api")).ListenAndServe(ctx, cfg.Port)
}

func runNotes(cmd *cobra.Command, args []string) error {
	for i, n := range notes.Default() {
		fmt.Printf("%d  %-4s %s\n", i, n.Label, n.Asset)
	}
	return nil
}

// parseNote accepts a label (case-insensitive) or a catalog index
func parseNote(arg string) (int, error) {
	catalog := notes.Default()
	if i := catalog.Index(arg); i >= 0 {
		return i, nil
	}
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= notes.Size {
		return 0, fmt.Errorf("unknown note %q (want one of %v or 0-%d)", arg, catalog.Labels(), notes.Size-1)
	}
	return i, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	index, err := parseNote(args[0])
	if err != nil {
		return err
	}

	cfg := loadConfig(cmd)
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	screen, err := newScreen(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = screen.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	screen.Open(ctx)
	if err := screen.Pad.Wait(ctx); err != nil {
		return fmt.Errorf("samples did not load: %w", err)
	}
	if !screen.Pad.Ready(index) {
		return fmt.Errorf("note %s failed to load", notes.Default()[index].Label)
	}

	if err := screen.Pad.Tap(index); err != nil {
		return err
	}
	fmt.Printf("Playing %s\n", notes.Default()[index].Label)
	time.Sleep(holdFor)
	return nil
}
