package game

import (
	"fmt"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Sky-Strike/internal/audio"
	"github.com/Garsondee/Sky-Strike/internal/config"
	"github.com/Garsondee/Sky-Strike/internal/sim"
)

// reportEvery is how often (in ticks) the reporter snapshots the session.
const reportEvery = 60

// Game adapts a sim.Controller to Ebiten. Ebiten's Update is the display
// refresh callback; it forwards key edges and then lets the controller's
// driver decide whether a tick runs.
type Game struct {
	ctrl     *sim.Controller
	reporter *sim.SimReporter
	feed     *EventFeed
	sfx      *audio.SoundManager

	width  int
	height int

	showFeed bool
	notice   string // transient line on the game-over screen
}

// New creates a paused session sized to the configured window. sfx may be nil.
func New(cfg config.Config, st sim.Store, sfx *audio.SoundManager) *Game {
	g := &Game{
		ctrl: sim.NewController(st, sim.Options{
			Seed:   cfg.Seed,
			Width:  float64(cfg.Window.Width),
			Height: float64(cfg.Window.Height),
		}),
		reporter: sim.NewSimReporter(0),
		feed:     NewEventFeed(),
		sfx:      sfx,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		showFeed: true,
	}
	g.reporter.SetSeed(g.ctrl.Seed())
	g.ctrl.Subscribe(g.reporter.Observe)
	g.ctrl.Subscribe(g.feed.Observe)
	g.ctrl.Subscribe(g.onEvent)
	if sfx != nil {
		g.ctrl.Subscribe(sfx.Observe)
	}
	return g
}

// Controller exposes the session, mainly for tests and shutdown.
func (g *Game) Controller() *sim.Controller {
	return g.ctrl
}

func (g *Game) onEvent(e sim.Event) {
	if e.Kind == sim.EventLaunch {
		g.notice = ""
	}
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	if g.ctrl.Frame() && g.ctrl.TickCount()%reportEvery == 0 {
		g.reporter.Collect(g.ctrl)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWorld(screen)
	g.drawHUD(screen)
	if g.showFeed {
		g.feed.Draw(screen, g.width, g.height)
	}
	switch g.ctrl.Phase() {
	case sim.PhasePaused:
		g.drawTitle(screen)
	case sim.PhaseGameOver:
		g.drawGameOver(screen)
	}
}

// Layout tracks the window size; the playfield always fills the window and
// the controller picks up new bounds on its next tick.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.width, g.height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width = outsideWidth
		g.height = outsideHeight
		g.ctrl.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.width, g.height
}

// copyReport puts the last run's report on the system clipboard.
func (g *Game) copyReport() {
	if err := clipboard.WriteAll(reportText(g.reporter.Run())); err != nil {
		log.Printf("game: copy report: %v", err)
		g.notice = "clipboard unavailable"
		return
	}
	g.notice = "report copied"
}

func reportText(run sim.RunReport) string {
	return fmt.Sprintf("Sky Strike run (seed %d)\n%s", run.Seed, run.Format())
}
