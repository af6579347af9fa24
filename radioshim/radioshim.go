// Package radioshim holds the vocabulary shared between the radio core and the
// touchscreen face, so that neither has to import the other.
package radioshim

import "fmt"

// FaceWidth and FaceHeight are the logical size of the radio face. Touch
// coordinates and button regions are expressed in this space.
const (
	FaceWidth  = 320
	FaceHeight = 240
)

// ButtonID identifies a logical on-screen button.
type ButtonID int

const (
	Mute ButtonID = iota
	VolumeDown
	VolumeUp
	ChannelDown
	ChannelUp
	BrightnessDown
	BrightnessUp
	Settings

	NumButtons = int(Settings) + 1
)

var buttonNames = [NumButtons]string{
	"Mute", "VolumeDown", "VolumeUp", "ChannelDown", "ChannelUp",
	"BrightnessDown", "BrightnessUp", "Settings",
}

func (b ButtonID) String() string {
	if b < 0 || int(b) >= NumButtons {
		return fmt.Sprintf("ButtonID(%d)", int(b))
	}
	return buttonNames[b]
}

// Label is the glyph drawn on the button at rest.
func (b ButtonID) Label() string {
	switch b {
	case Mute:
		return "M"
	case VolumeDown:
		return "-"
	case VolumeUp:
		return "+"
	case ChannelDown:
		return "<"
	case ChannelUp:
		return ">"
	case BrightnessDown:
		return "v"
	case BrightnessUp:
		return "^"
	case Settings:
		return "*"
	}
	return "?"
}

// Rect is an axis-aligned region on the face, upper-left anchored.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout maps every button to its touch region.
type Layout [NumButtons]Rect

// DefaultLayout is the 320x240 landscape arrangement: channel and volume
// buttons along the bottom row, brightness above the volume pair, settings
// in the title bar.
func DefaultLayout() Layout {
	var l Layout
	l[ChannelDown] = Rect{X: 0, Y: 200, W: 50, H: 40}
	l[ChannelUp] = Rect{X: 60, Y: 200, W: 50, H: 40}
	l[Mute] = Rect{X: 135, Y: 200, W: 50, H: 40}
	l[VolumeDown] = Rect{X: 210, Y: 200, W: 50, H: 40}
	l[VolumeUp] = Rect{X: 270, Y: 200, W: 50, H: 40}
	l[BrightnessDown] = Rect{X: 210, Y: 140, W: 50, H: 40}
	l[BrightnessUp] = Rect{X: 270, Y: 140, W: 50, H: 40}
	l[Settings] = Rect{X: 200, Y: 2, W: 40, H: 36}
	return l
}

// BufferLevel is the smoothed three-level buffer indicator.
type BufferLevel int

const (
	BufferUnknown BufferLevel = iota
	BufferLow
	BufferMedium
	BufferHigh
)

func (l BufferLevel) String() string {
	switch l {
	case BufferLow:
		return "low"
	case BufferMedium:
		return "medium"
	case BufferHigh:
		return "high"
	}
	return "unknown"
}

// Display is the one-way rendering surface driven by the radio core. All
// methods must be fast and must not block the caller.
type Display interface {
	ShowStationName(name string)
	ShowTrackInfo(info string)
	ShowBitrate(bitrate string)
	ShowStatus(status string)
	ShowBuffer(level BufferLevel, percent int)
	ShowClock(hhmm string)
	SetButtonPressed(id ButtonID, pressed bool)
	SetMuted(muted bool)
	SetSettingsMode(on bool)
	SetBrightness(level int)
}

// TouchSource is polled for the current touch point. A read failure is
// reported as no touch.
type TouchSource interface {
	PollTouch() (x, y int, ok bool)
}
