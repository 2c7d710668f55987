package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

// binding maps a physical key to the token the controller understands.
type binding struct {
	key   ebiten.Key
	token sim.Key
}

var movementBindings = []binding{
	{ebiten.KeyArrowUp, sim.KeyArrowUp},
	{ebiten.KeyArrowDown, sim.KeyArrowDown},
	{ebiten.KeyArrowLeft, sim.KeyArrowLeft},
	{ebiten.KeyArrowRight, sim.KeyArrowRight},
	{ebiten.KeyW, sim.KeyW},
	{ebiten.KeyS, sim.KeyS},
	{ebiten.KeyA, sim.KeyA},
	{ebiten.KeyD, sim.KeyD},
}

// handleInput forwards key edges to the controller and handles the menu
// commands. It returns ebiten.Termination when the player quits.
func (g *Game) handleInput() error {
	for _, b := range movementBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.ctrl.KeyDown(b.token)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			g.ctrl.KeyUp(b.token)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.ctrl.Close()
		return ebiten.Termination
	}

	// H: toggle the flight log.
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showFeed = !g.showFeed
	}

	phase := g.ctrl.Phase()
	if phase == sim.PhaseRunning {
		return nil
	}
	if phase == sim.PhaseGameOver && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}

	launch := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if image.Pt(x, y).In(launchButton(g.width, g.height)) {
			launch = true
		}
	}
	if launch {
		g.ctrl.Launch()
	}
	return nil
}
