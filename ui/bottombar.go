package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/apa-radio/touchradio/radioshim"
)

var mainRow = []radioshim.ButtonID{
	radioshim.ChannelDown, radioshim.ChannelUp, radioshim.Mute, radioshim.VolumeDown, radioshim.VolumeUp,
}

var brightnessRow = []radioshim.ButtonID{radioshim.BrightnessDown, radioshim.BrightnessUp}

func (u *UI) drawButtons(screen *ebiten.Image) {
	for _, id := range mainRow {
		u.drawButton(screen, id, id == radioshim.Mute && u.face.muted)
	}
	if !u.face.settings {
		return
	}
	drawText(screen, fmt.Sprintf("Brightness %d", u.face.brightness), "Go-14", 96, 152, colornames.White)
	for _, id := range brightnessRow {
		u.drawButton(screen, id, false)
	}
}

// drawButton draws id in its pressed, active or resting state.
func (u *UI) drawButton(screen *ebiten.Image, id radioshim.ButtonID, active bool) {
	r := u.layout[id]
	img := u.buttons.idle
	switch {
	case u.face.pressed[id]:
		img = u.buttons.pressed
	case active:
		img = u.buttons.active
	}
	drawNineSlice(screen, img, r)
	drawTextCentered(screen, id.Label(), "Go-Bold-20", r, colornames.White)
}
