package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/apa-radio/touchradio/radioshim"
)

type touchPoint struct {
	x, y int
	ok   bool
}

// sampleTouch records the first active touch, or the left mouse button
// when no touch is down. It runs on the game loop.
func (u *UI) sampleTouch() {
	var p touchPoint
	u.touchIDs = ebiten.AppendTouchIDs(u.touchIDs[:0])
	if len(u.touchIDs) > 0 {
		p.x, p.y = ebiten.TouchPosition(u.touchIDs[0])
		p.ok = true
	} else if !u.cfg.Touch && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		p.x, p.y = ebiten.CursorPosition()
		p.ok = true
	}
	u.setTouch(p)
}

func (u *UI) setTouch(p touchPoint) {
	u.touchMu.Lock()
	defer u.touchMu.Unlock()
	u.touch = p
}

// PollTouch reports the point held down as of the last frame, in face
// coordinates. Points off the face read as no touch.
func (u *UI) PollTouch() (int, int, bool) {
	u.touchMu.Lock()
	p := u.touch
	u.touchMu.Unlock()
	if !p.ok {
		return 0, 0, false
	}
	if p.x < 0 || p.y < 0 || p.x >= radioshim.FaceWidth || p.y >= radioshim.FaceHeight {
		return 0, 0, false
	}
	return p.x, p.y, true
}
