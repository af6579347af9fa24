package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/apa-radio/touchradio/radioshim"
)

// faceState is what the face currently shows. It is only touched from the
// game loop.
type faceState struct {
	station    string
	track      string
	bitrate    string
	status     string
	clock      string
	level      radioshim.BufferLevel
	percent    int
	pressed    [radioshim.NumButtons]bool
	muted      bool
	settings   bool
	brightness int
}

func newFaceState() faceState {
	return faceState{
		status:     "Starting",
		clock:      "--:--",
		brightness: MaxBrightness,
	}
}

// MaxBrightness is the brightness at which no dimming is applied.
const MaxBrightness = 255

var (
	_ radioshim.Display     = (*UI)(nil)
	_ radioshim.TouchSource = (*UI)(nil)
)

func (u *UI) ShowStationName(name string) {
	u.Defer(func() { u.face.station = name })
}

func (u *UI) ShowTrackInfo(info string) {
	u.Defer(func() { u.face.track = info })
}

func (u *UI) ShowBitrate(bitrate string) {
	u.Defer(func() { u.face.bitrate = bitrate })
}

func (u *UI) ShowStatus(status string) {
	u.Defer(func() { u.face.status = status })
}

func (u *UI) ShowBuffer(level radioshim.BufferLevel, percent int) {
	u.Defer(func() {
		u.face.level = level
		u.face.percent = percent
	})
}

func (u *UI) ShowClock(hhmm string) {
	u.Defer(func() { u.face.clock = hhmm })
}

func (u *UI) SetButtonPressed(id radioshim.ButtonID, pressed bool) {
	if id < 0 || int(id) >= radioshim.NumButtons {
		return
	}
	u.Defer(func() { u.face.pressed[id] = pressed })
}

func (u *UI) SetMuted(muted bool) {
	u.Defer(func() { u.face.muted = muted })
}

func (u *UI) SetSettingsMode(on bool) {
	u.Defer(func() { u.face.settings = on })
}

// SetBrightness drives the hardware backlight when one is configured and
// otherwise dims the face itself.
func (u *UI) SetBrightness(level int) {
	level = max(0, min(level, MaxBrightness))
	u.backlight.Set(level)
	u.Defer(func() { u.face.brightness = level })
}

const (
	textLeft   = 8
	textWidth  = radioshim.FaceWidth - 2*textLeft
	barLeft    = 64
	barTop     = 124
	barWidth   = 100
	barHeight  = 10
	statusTop  = 180
	trackLines = 2
)

func (u *UI) drawFace(screen *ebiten.Image) {
	if u.buttons.idle == nil {
		u.buttons = newButtonImages()
	}
	f := &u.face

	u.drawTitleBar(screen)

	stationFace := Font("Go-Bold-18")
	drawText(screen, ellipsize(f.station, stationFace, textWidth), "Go-Bold-18", textLeft, 48, colornames.White)

	trackFace := Font("Go-14")
	for i, line := range wrapText(f.track, trackFace, textWidth, trackLines) {
		drawText(screen, line, "Go-14", textLeft, 76+float64(i)*18, colornames.Lightgray)
	}

	u.drawBuffer(screen)
	if f.bitrate != "" {
		drawText(screen, f.bitrate, "Go-12", 236, barTop-3, colornames.Lightgray)
	}

	statusFace := Font("Go-12")
	drawText(screen, ellipsize(f.status, statusFace, textWidth), "Go-12", textLeft, statusTop, colornames.Lightskyblue)

	u.drawButtons(screen)

	if f.brightness < MaxBrightness && !u.backlight.Enabled() {
		vector.DrawFilledRect(screen, 0, 0, radioshim.FaceWidth, radioshim.FaceHeight, dimColor(f.brightness), false)
	}
}

func (u *UI) drawBuffer(screen *ebiten.Image) {
	f := &u.face
	drawText(screen, "Buffer", "Go-12", textLeft, barTop-3, colornames.Lightgray)
	vector.StrokeRect(screen, barLeft-1, barTop-1, barWidth+2, barHeight+2, 1, colornames.Gray, false)
	if f.level == radioshim.BufferUnknown {
		drawText(screen, "--", "Go-12", barLeft+barWidth+8, barTop-3, levelColor(f.level))
		return
	}
	fill := float32(max(0, min(f.percent, 100))) * barWidth / 100
	vector.DrawFilledRect(screen, barLeft, barTop, fill, barHeight, bufferColor(f.percent), false)
	drawText(screen, fmt.Sprintf("%d%%", f.percent), "Go-12", barLeft+barWidth+8, barTop-3, levelColor(f.level))
}

// dimColor is the black overlay for a software-dimmed face. It never
// fully blacks out the screen.
func dimColor(brightness int) color.RGBA {
	brightness = max(0, min(brightness, MaxBrightness))
	return color.RGBA{A: uint8((MaxBrightness - brightness) * 7 / 8)}
}
