package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Sky-Strike/internal/audio"
	"github.com/Garsondee/Sky-Strike/internal/config"
	"github.com/Garsondee/Sky-Strike/internal/game"
	"github.com/Garsondee/Sky-Strike/internal/sim"
	"github.com/Garsondee/Sky-Strike/internal/store"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to the YAML config file")
	seed := flag.Int64("seed", 0, "RNG seed (0 uses the config value or the clock)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var st sim.Store
	fs, err := store.OpenFileStore(cfg.Store.Path)
	if err != nil {
		log.Printf("high scores will not be saved: %v", err)
		st = store.NewMemStore()
	} else {
		st = fs
	}

	sfx := audio.NewSoundManager(audio.Settings{
		Enabled:      cfg.Audio.Enabled,
		MasterVolume: cfg.Audio.MasterVolume,
		SampleRate:   cfg.Audio.SampleRate,
	})
	if err := sfx.Initialize(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer sfx.Cleanup()

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(game.New(cfg, st, sfx)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
