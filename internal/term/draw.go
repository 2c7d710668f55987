package term

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

var (
	styleStar   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x47, 0x55, 0x69))
	stylePlayer = tcell.StyleDefault.Foreground(rgb(sim.BulletColor)).Bold(true)
	styleBullet = tcell.StyleDefault.Foreground(rgb(sim.BulletColor))
	styleStatus = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x94, 0xa3, 0xb8))
	styleTitle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x0e, 0xa5, 0xe9)).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xcb, 0xd5, 0xe1))
	styleAlert  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xef, 0x44, 0x44)).Bold(true)
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// enemyGlyph is the rune drawn for an enemy. Heavies show their remaining
// health once damaged.
func enemyGlyph(e *sim.Enemy) rune {
	switch e.Type {
	case sim.EnemyFast:
		return 'v'
	case sim.EnemyHeavy:
		if e.Health < e.MaxHealth && e.Health > 0 && e.Health < 10 {
			return rune('0' + e.Health)
		}
		return 'W'
	default:
		return 'V'
	}
}

func (a *App) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= a.cols || y >= a.rows-statusRows {
		return
	}
	a.screen.SetContent(x, y, r, nil, style)
}

func (a *App) putString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if x+i < 0 || x+i >= a.cols || y < 0 || y >= a.rows {
			continue
		}
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (a *App) putCentered(y int, s string, style tcell.Style) {
	a.putString((a.cols-len([]rune(s)))/2, y, s, style)
}

func (a *App) draw() {
	a.screen.Clear()

	tick := a.ctrl.TickCount()
	fieldRows := a.rows - statusRows
	if a.cols > 0 && fieldRows > 0 {
		for i := 0; i < a.cols*fieldRows/40; i++ {
			a.put((i*137)%a.cols, (i*223+tick/8)%fieldRows, '.', styleStar)
		}
	}

	w := a.ctrl.World()
	for _, b := range w.Bullets {
		x, y := toCell(b.Pos, a.cfg)
		a.put(x, y, '|', styleBullet)
	}
	for _, e := range w.Enemies {
		x, y := toCell(e.Pos, a.cfg)
		a.put(x, y, enemyGlyph(e), tcell.StyleDefault.Foreground(rgb(e.Color)).Bold(true))
	}
	px, py := toCell(w.Player, a.cfg)
	a.put(px-1, py, '/', stylePlayer)
	a.put(px, py, '^', stylePlayer)
	a.put(px+1, py, '\\', stylePlayer)

	a.drawStatus()
	switch a.ctrl.Phase() {
	case sim.PhasePaused:
		a.drawMenu()
	case sim.PhaseGameOver:
		a.drawGameOver()
	}
	a.screen.Show()
}

func (a *App) drawStatus() {
	st := a.ctrl.State()
	line := fmt.Sprintf(" SCORE %d  BEST %d", st.Score, st.HighScore)
	if a.last != "" {
		line += "  | " + a.last
	}
	a.putString(0, a.rows-1, line, styleStatus)
	hint := "wasd/arrows move  q quit "
	a.putString(a.cols-len(hint), a.rows-1, hint, styleStatus)
}

func (a *App) drawMenu() {
	mid := (a.rows - statusRows) / 2
	a.putCentered(mid-3, "S K Y   S T R I K E", styleTitle)
	a.putCentered(mid-1, "Use WASD or Arrows to move.", styleText)
	a.putCentered(mid, "Combat systems are automated. Good luck, pilot.", styleText)
	a.putCentered(mid+2, "[ ENTER ]  LAUNCH MISSION", styleTitle)
}

func (a *App) drawGameOver() {
	mid := (a.rows - statusRows) / 2
	st := a.ctrl.State()
	a.putCentered(mid-3, "SIGNAL LOST", styleAlert)
	a.putCentered(mid-2, "G A M E   O V E R", styleText.Bold(true))
	a.putCentered(mid, fmt.Sprintf("Final Score: %d", st.Score), styleText)
	a.putCentered(mid+2, "[ ENTER ]  REDEPLOY", styleTitle)
}
