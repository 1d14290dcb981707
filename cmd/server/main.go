// Package main is the entry point for the headless pianopad API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/james-see/pianopad/pkg/api"
	"github.com/james-see/pianopad/pkg/config"
	"github.com/james-see/pianopad/pkg/engine"
	"github.com/james-see/pianopad/pkg/logger"
	"github.com/james-see/pianopad/pkg/notepad"
)

func main() {
	cfg := config.Load()
	port := flag.Int("port", cfg.Port, "Server port")
	backend := flag.String("backend", cfg.Backend, "Playback backend (ebiten, midi, null)")
	flag.Parse()
	cfg.Port = *port
	cfg.Backend = *backend

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, Console: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	pool, err := engine.NewPool(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Playback error: %v\n", err)
		os.Exit(1)
	}
	screen := notepad.NewScreen(notepad.New(pool, notepad.WithLogger(log.Named("pad"))))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	screen.Open(ctx)

	fmt.Printf("Starting pianopad API server on port %d...\n", cfg.Port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", cfg.Port)

	err = api.NewServer(screen, log.Named("api")).ListenAndServe(ctx, cfg.Port)
	stop()
	_ = screen.Close()
	gomidi.CloseDriver()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
