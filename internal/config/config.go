// Package config loads host settings for the game front-ends.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file.
const (
	EnvAudioEnabled = "SKY_STRIKE_AUDIO_ENABLED"
	EnvMasterVolume = "SKY_STRIKE_MASTER_VOLUME" // 0-100
	EnvStorePath    = "SKY_STRIKE_STORE"
)

// Window configures the Ebiten window.
type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// Audio configures sound effects.
type Audio struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	SampleRate   int     `yaml:"sample_rate"`
}

// Store configures high-score persistence.
type Store struct {
	Path string `yaml:"path"`
}

// Terminal configures the terminal front-end.
type Terminal struct {
	FPS        int     `yaml:"fps"`
	HoldTicks  int     `yaml:"hold_ticks"`  // ticks a key stays held after its last repeat
	CellWidth  float64 `yaml:"cell_width"`  // playfield units per column
	CellHeight float64 `yaml:"cell_height"` // playfield units per row
}

// Config is the full host configuration.
type Config struct {
	Window   Window   `yaml:"window"`
	Audio    Audio    `yaml:"audio"`
	Store    Store    `yaml:"store"`
	Terminal Terminal `yaml:"terminal"`
	Seed     int64    `yaml:"seed"` // 0 picks a time-based seed
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Width:     960,
			Height:    720,
			Title:     "Sky Strike",
			Resizable: true,
		},
		Audio: Audio{
			Enabled:      true,
			MasterVolume: 0.5,
			SampleRate:   44100,
		},
		Store: Store{Path: defaultStorePath()},
		Terminal: Terminal{
			FPS:        60,
			HoldTicks:  12,
			CellWidth:  8,
			CellHeight: 16,
		},
	}
}

// DefaultPath is where the config file is looked for when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sky-strike.yaml"
	}
	return filepath.Join(dir, "sky-strike", "config.yaml")
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sky-strike-scores.yaml"
	}
	return filepath.Join(dir, "sky-strike", "scores.yaml")
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	if v := os.Getenv(EnvMasterVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.MasterVolume = float64(n) / 100.0
		}
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
}

// Validate rejects unusable sizes and clamps the volume into [0,1].
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Terminal.FPS <= 0 {
		return fmt.Errorf("terminal fps must be positive, got %d", c.Terminal.FPS)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size must be positive, got %gx%g", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	if c.Terminal.HoldTicks < 1 {
		c.Terminal.HoldTicks = 1
	}
	if c.Audio.MasterVolume < 0 {
		c.Audio.MasterVolume = 0
	}
	if c.Audio.MasterVolume > 1 {
		c.Audio.MasterVolume = 1
	}
	if c.Store.Path == "" {
		c.Store.Path = defaultStorePath()
	}
	return nil
}
