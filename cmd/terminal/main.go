package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Sky-Strike/internal/audio"
	"github.com/Garsondee/Sky-Strike/internal/config"
	"github.com/Garsondee/Sky-Strike/internal/sim"
	"github.com/Garsondee/Sky-Strike/internal/store"
	"github.com/Garsondee/Sky-Strike/internal/term"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to the YAML config file")
	seed := flag.Int64("seed", 0, "RNG seed (0 uses the config value or the clock)")
	mute := flag.Bool("mute", false, "disable sound effects")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *mute {
		cfg.Audio.Enabled = false
	}

	var st sim.Store
	fs, err := store.OpenFileStore(cfg.Store.Path)
	if err != nil {
		log.Printf("high scores will not be saved: %v", err)
		st = store.NewMemStore()
	} else {
		st = fs
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	sfx := audio.NewSoundManager(audio.Settings{
		Enabled:      cfg.Audio.Enabled,
		MasterVolume: cfg.Audio.MasterVolume,
		SampleRate:   cfg.Audio.SampleRate,
	})
	audioErr := sfx.Initialize()

	ctrl := sim.NewController(st, sim.Options{Seed: cfg.Seed})
	ctrl.Subscribe(sfx.Observe)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := term.New(screen, ctrl, cfg.Terminal).Run(ctx)
	stop()

	screen.Fini()
	sfx.Cleanup()

	// Logged after Fini so the messages are not drawn over.
	if audioErr != nil {
		log.Printf("audio disabled: %v", audioErr)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatal(runErr)
	}
}
