package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// uiFace is the bitmap face for all overlay text; larger text is scaled up.
var uiFace = text.NewGoXFace(basicfont.Face7x13)

const (
	buttonWidth  = 280
	buttonHeight = 52
)

var (
	slate300 = color.RGBA{R: 0xcb, G: 0xd5, B: 0xe1, A: 0xff}
	slate400 = color.RGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	slate500 = color.RGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff}
	slate700 = color.RGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	slate900 = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	sky400   = color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}
	sky500   = color.RGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff}
	red500   = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
)

// launchButton is the clickable LAUNCH MISSION / REDEPLOY area.
func launchButton(width, height int) image.Rectangle {
	x := width/2 - buttonWidth/2
	y := height/2 + 60
	return image.Rect(x, y, x+buttonWidth, y+buttonHeight)
}

// drawText draws s with its top edge at y. align positions x at the start,
// centre or end of the line.
func drawText(dst *ebiten.Image, s string, x, y, scale float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(dst, s, uiFace, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.ctrl.State()
	drawText(screen, "SCORE", 16, 16, 1, text.AlignStart, slate400)
	drawText(screen, fmt.Sprintf("%d", st.Score), 16, 32, 3, text.AlignStart, sky400)
	drawText(screen, fmt.Sprintf("BEST: %d", st.HighScore), 16, 76, 1, text.AlignStart, slate500)

	if !st.IsPaused && !st.IsGameOver {
		drawText(screen, "AUTO-FIRING SEQUENCE ACTIVE - INFINITE AMMUNITION",
			float64(g.width)/2, float64(g.height)-28, 1, text.AlignCenter, color.NRGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0x80})
	}
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	w, h := float32(g.width), float32(g.height)
	cx := float64(g.width) / 2
	vector.FillRect(screen, 0, 0, w, h, color.NRGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xb3}, false)

	drawText(screen, "SKY STRIKE", cx, float64(g.height)/2-170, 6, text.AlignCenter, sky500)

	card := image.Rect(g.width/2-200, g.height/2-70, g.width/2+200, g.height/2+130)
	vector.FillRect(screen, float32(card.Min.X), float32(card.Min.Y), float32(card.Dx()), float32(card.Dy()), slate900, false)
	vector.StrokeRect(screen, float32(card.Min.X), float32(card.Min.Y), float32(card.Dx()), float32(card.Dy()), 1, slate700, false)

	ty := float64(card.Min.Y) + 24
	drawText(screen, "Use WASD or Arrows to move.", cx, ty, 1.5, text.AlignCenter, slate300)
	drawText(screen, "Combat systems are automated.", cx, ty+26, 1.5, text.AlignCenter, slate300)
	drawText(screen, "Good luck, pilot.", cx, ty+52, 1.5, text.AlignCenter, slate300)

	btn := launchButton(g.width, g.height)
	vector.FillRect(screen, float32(btn.Min.X), float32(btn.Min.Y), buttonWidth, buttonHeight, sky500, false)
	drawText(screen, "LAUNCH MISSION", cx, float64(btn.Min.Y)+13, 2, text.AlignCenter, color.White)
	drawText(screen, "ENTER / SPACE / CLICK", cx, float64(card.Max.Y)+16, 1, text.AlignCenter, slate500)
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	w, h := float32(g.width), float32(g.height)
	cx := float64(g.width) / 2
	cy := float64(g.height) / 2
	vector.FillRect(screen, 0, 0, w, h, color.NRGBA{R: 0x45, G: 0x0a, B: 0x0a, A: 0xcc}, false)

	st := g.ctrl.State()
	drawText(screen, "S I G N A L   L O S T", cx, cy-170, 1.5, text.AlignCenter, red500)
	drawText(screen, "GAME OVER", cx, cy-140, 7, text.AlignCenter, color.White)
	drawText(screen, fmt.Sprintf("Final Score: %d", st.Score), cx, cy-30, 2.5, text.AlignCenter, slate300)
	if st.Score > 0 && st.Score == st.HighScore {
		drawText(screen, "NEW BEST", cx, cy+10, 1.5, text.AlignCenter, sky400)
	}

	btn := launchButton(g.width, g.height)
	vector.FillRect(screen, float32(btn.Min.X), float32(btn.Min.Y), buttonWidth, buttonHeight, color.White, false)
	vector.StrokeRect(screen, float32(btn.Min.X)-4, float32(btn.Min.Y)-4, buttonWidth+8, buttonHeight+8, 2,
		color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}, false)
	drawText(screen, "REDEPLOY", cx, float64(btn.Min.Y)+13, 2, text.AlignCenter, color.Black)

	hint := "C: copy run report"
	if g.notice != "" {
		hint = g.notice
	}
	drawText(screen, hint, cx, float64(btn.Max.Y)+20, 1, text.AlignCenter, slate400)
}
