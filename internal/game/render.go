package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

const starCount = 50

var (
	backgroundColor = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	starColor       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x22}
	playerColor     = color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}
	healthBackColor = color.RGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	healthFillColor = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
)

// starField returns the star positions for a tick. Stars drift down one
// pixel per tick and wrap at the bottom edge.
func starField(width, height, tick int) []image.Point {
	if width <= 0 || height <= 0 {
		return nil
	}
	stars := make([]image.Point, starCount)
	for i := range stars {
		stars[i] = image.Pt((i*137)%width, (i*223+tick)%height)
	}
	return stars
}

// jetOutline is the player silhouette around p, nose first.
func jetOutline(p sim.Vector2) []sim.Vector2 {
	local := [...]sim.Vector2{
		{X: 0, Y: -20},
		{X: 15, Y: 10},
		{X: 5, Y: 5},
		{X: 0, Y: 15},
		{X: -5, Y: 5},
		{X: -15, Y: 10},
	}
	out := make([]sim.Vector2, len(local))
	for i, v := range local {
		out[i] = p.Add(v)
	}
	return out
}

// diamond is an enemy's outline: the four points at its radius.
func diamond(pos sim.Vector2, r float64) []sim.Vector2 {
	return []sim.Vector2{
		{X: pos.X, Y: pos.Y - r},
		{X: pos.X + r, Y: pos.Y},
		{X: pos.X, Y: pos.Y + r},
		{X: pos.X - r, Y: pos.Y},
	}
}

// engineGlow pulses between 5 and 15.
func engineGlow(tick int) float64 {
	return math.Sin(float64(tick)*0.5)*5 + 10
}

func fillPolygon(dst *ebiten.Image, pts []sim.Vector2, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	tick := g.ctrl.TickCount()
	for _, s := range starField(g.width, g.height, tick) {
		vector.FillRect(screen, float32(s.X), float32(s.Y), 2, 2, starColor, false)
	}

	w := g.ctrl.World()
	g.drawPlayer(screen, w.Player, tick)

	for _, b := range w.Bullets {
		vector.FillCircle(screen, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), sim.BulletColor, true)
	}

	for _, e := range w.Enemies {
		fillPolygon(screen, diamond(e.Pos, e.Radius), e.Color)
		if e.MaxHealth > 1 {
			x := float32(e.Pos.X - e.Radius)
			y := float32(e.Pos.Y - e.Radius - 10)
			bw := float32(e.Radius * 2)
			vector.FillRect(screen, x, y, bw, 4, healthBackColor, false)
			vector.FillRect(screen, x, y, bw*float32(e.HealthFraction()), 4, healthFillColor, false)
		}
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, p sim.Vector2, tick int) {
	glow := float32(engineGlow(tick))
	px, py := float32(p.X), float32(p.Y)
	vector.FillCircle(screen, px, py, sim.PlayerRadius+glow, color.NRGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0x18}, true)
	vector.FillCircle(screen, px, py+15, glow*0.5, color.NRGBA{R: 0x7d, G: 0xd3, B: 0xfc, A: 0x90}, true)
	fillPolygon(screen, jetOutline(p), playerColor)
}
