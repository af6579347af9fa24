package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/apa-radio/touchradio/radioshim"
)

const titleBarHeight = 40

func (u *UI) drawTitleBar(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, radioshim.FaceWidth, titleBarHeight, colornames.Black, false)
	drawText(screen, "Internet Radio", "Go-Bold-16", 6, 11, colornames.White)
	drawText(screen, u.face.clock, "Go-Mono-16", 262, 11, colornames.Lightskyblue)
	u.drawButton(screen, radioshim.Settings, u.face.settings)
}
