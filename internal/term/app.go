// Package term runs a session in a terminal using tcell.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Sky-Strike/internal/config"
	"github.com/Garsondee/Sky-Strike/internal/sim"
)

// statusRows is the number of rows reserved below the playfield.
const statusRows = 1

// App draws a controller on a tcell screen. Each playfield cell covers
// CellWidth x CellHeight simulation units.
type App struct {
	screen tcell.Screen
	ctrl   *sim.Controller
	cfg    config.Terminal
	keys   *HoldKeys

	cols int
	rows int
	last string // most recent notable event, shown on the status line
}

// New creates an App. The screen must already be initialised.
func New(screen tcell.Screen, ctrl *sim.Controller, cfg config.Terminal) *App {
	a := &App{
		screen: screen,
		ctrl:   ctrl,
		cfg:    cfg,
		keys:   NewHoldKeys(cfg.HoldTicks),
	}
	ctrl.Subscribe(a.onEvent)
	a.resize()
	return a
}

// Run polls input and renders frames until ctx is done or the player quits.
func (a *App) Run(ctx context.Context) error {
	fps := a.cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			a.ctrl.Close()
			return ctx.Err()
		case ev := <-events:
			if !a.handleEvent(ev) {
				a.ctrl.Close()
				return nil
			}
		case <-ticker.C:
			a.frame()
		}
	}
}

// frame releases expired keys, lets the driver run a tick and redraws.
func (a *App) frame() {
	for _, k := range a.keys.Advance() {
		a.ctrl.KeyUp(k)
	}
	a.ctrl.Frame()
	a.draw()
}

// handleEvent returns false when the session should end.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
		a.draw()
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if isLaunch(ev) && a.ctrl.Phase() != sim.PhaseRunning {
			a.keys.Reset()
			a.ctrl.Input().Clear()
			a.ctrl.Launch()
			return true
		}
		if tok, ok := keyToken(ev); ok && a.keys.Press(tok) {
			a.ctrl.KeyDown(tok)
		}
	}
	return true
}

// resize maps the terminal size onto playfield units.
func (a *App) resize() {
	a.cols, a.rows = a.screen.Size()
	w, h := playfieldSize(a.cols, a.rows, a.cfg)
	a.ctrl.Resize(w, h)
}

func (a *App) onEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventLaunch:
		a.last = ""
	case sim.EventKill:
		a.last = fmt.Sprintf("%s down +%d", e.Enemy, e.Value)
	case sim.EventEscape:
		a.last = fmt.Sprintf("%s slipped past", e.Enemy)
	case sim.EventHighScore:
		a.last = fmt.Sprintf("new best %d", e.Value)
	}
}

// playfieldSize is the simulation size for a terminal of cols x rows.
func playfieldSize(cols, rows int, cfg config.Terminal) (float64, float64) {
	rows -= statusRows
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return float64(cols) * cfg.CellWidth, float64(rows) * cfg.CellHeight
}

// toCell converts a playfield position to a screen cell.
func toCell(p sim.Vector2, cfg config.Terminal) (int, int) {
	return int(math.Floor(p.X / cfg.CellWidth)), int(math.Floor(p.Y / cfg.CellHeight))
}
