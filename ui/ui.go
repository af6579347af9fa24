package ui

import (
	"image/color"
	"sync"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/radioshim"
)

type widgets struct {
	Root *widget.Container
	Face *HookContainer
}

// UI is the radio face. It implements radioshim.Display and
// radioshim.TouchSource; display calls from other goroutines are deferred
// onto the game loop.
type UI struct {
	mu       sync.Mutex
	cfg      *Config
	update   bool
	exit     bool
	Width    int
	Height   int
	eui      *ebitenui.UI
	Widgets  widgets
	deferred []func()

	face      faceState
	layout    radioshim.Layout
	buttons   buttonImages
	backlight *Backlight

	touchMu  sync.Mutex
	touch    touchPoint
	touchIDs []ebiten.TouchID
}

type Config struct {
	Touch        bool   `dialsdesc:"Touchscreen mode" dialsflag:"touch"`
	FPS          int    `dialsdesc:"Framerate" dialsflag:"fps"`
	Fullscreen   bool   `dialsdesc:"Start in fullscreen"`
	Backlight    string `dialsdesc:"sysfs backlight brightness file" dialsflag:"backlight"`
	MaxBacklight int    `dialsdesc:"Raw backlight value for full brightness" dialsflag:"max-backlight"`
}

func DefaultConfig() *Config {
	return &Config{
		Touch:        false,
		FPS:          30,
		Fullscreen:   false,
		MaxBacklight: 255,
	}
}

func NewUI(cfg *Config) *UI {
	u := newUI(cfg)

	ebiten.SetTPS(cfg.FPS)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(2*radioshim.FaceWidth, 2*radioshim.FaceHeight)
	ebiten.SetWindowSizeLimits(radioshim.FaceWidth, radioshim.FaceHeight, -1, -1)
	ebiten.SetWindowTitle("Touchradio")
	if cfg.Touch {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return u
}

// newUI builds the UI without touching the window.
func newUI(cfg *Config) *UI {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.NRGBA{0x12, 0x23, 0x34, 0xff})),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{true}),
		)),
	)

	u := &UI{
		cfg: cfg,
		eui: &ebitenui.UI{
			Container: rootContainer,
		},
		Widgets: widgets{
			Root: rootContainer,
		},
		layout:    radioshim.DefaultLayout(),
		face:      newFaceState(),
		backlight: NewBacklight(cfg.Backlight, cfg.MaxBacklight),
	}
	u.MakeLayout()
	return u
}

func (u *UI) MakeLayout() {
	u.Widgets.Face = NewHookContainer(
		HookContainerOpts.Child(widget.NewContainer()),
		HookContainerOpts.RenderHook(func(c *HookContainer, screen *ebiten.Image) {
			c.RenderChild(screen)
			u.drawFace(screen)
		}),
	)
	u.Widgets.Root.AddChild(u.Widgets.Face)
}

func (u *UI) Update() error {
	if u.exit || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	u.sampleTouch()
	u.runDeferred()
	u.eui.Update()
	u.update = true
	return nil
}

func (u *UI) runDeferred() {
	u.mu.Lock()
	deferred := u.deferred
	u.deferred = nil
	u.mu.Unlock()
	for _, cb := range deferred {
		cb()
	}
}

func (u *UI) Draw(screen *ebiten.Image) {
	if !u.update {
		return
	}
	u.update = false
	screen.Clear()

	u.eui.Draw(screen)
}

// Layout fixes the logical screen at the face size; ebiten scales it to
// the window, and touch coordinates come back in face space.
func (u *UI) Layout(width, height int) (int, int) {
	if u.Width != width || u.Height != height {
		u.Width = width
		u.Height = height
		log.Debug().Int("width", width).Int("height", height).Msg("layout")
	}
	return radioshim.FaceWidth, radioshim.FaceHeight
}

func (u *UI) Defer(cb func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deferred = append(u.deferred, cb)
}

// Exit makes the game loop return on its next update.
func (u *UI) Exit() {
	u.Defer(func() { u.exit = true })
}
