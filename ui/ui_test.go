package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apa-radio/touchradio/radioshim"
)

func bareUI() *UI {
	return &UI{
		cfg:       DefaultConfig(),
		layout:    radioshim.DefaultLayout(),
		face:      newFaceState(),
		backlight: NewBacklight("", 0),
	}
}

func TestDisplayCallsApplyOnUpdate(t *testing.T) {
	u := bareUI()
	u.ShowStationName("Jazz FM")
	u.ShowTrackInfo("Miles Davis - So What")
	u.ShowBitrate("128 kbps")
	u.ShowStatus("Playing")
	u.ShowBuffer(radioshim.BufferHigh, 87)
	u.ShowClock("09:05")
	u.SetButtonPressed(radioshim.VolumeUp, true)
	u.SetMuted(true)
	u.SetSettingsMode(true)
	u.SetBrightness(120)

	assert.Equal(t, "", u.face.station, "nothing applies before the game loop runs")

	u.runDeferred()
	f := u.face
	assert.Equal(t, "Jazz FM", f.station)
	assert.Equal(t, "Miles Davis - So What", f.track)
	assert.Equal(t, "128 kbps", f.bitrate)
	assert.Equal(t, "Playing", f.status)
	assert.Equal(t, radioshim.BufferHigh, f.level)
	assert.Equal(t, 87, f.percent)
	assert.Equal(t, "09:05", f.clock)
	assert.True(t, f.pressed[radioshim.VolumeUp])
	assert.False(t, f.pressed[radioshim.VolumeDown])
	assert.True(t, f.muted)
	assert.True(t, f.settings)
	assert.Equal(t, 120, f.brightness)
	assert.Empty(t, u.deferred)
}

func TestDisplayCallsApplyInOrder(t *testing.T) {
	u := bareUI()
	u.ShowStatus("Connecting to A")
	u.ShowStatus("Buffering")
	u.SetButtonPressed(radioshim.Mute, true)
	u.SetButtonPressed(radioshim.Mute, false)
	u.runDeferred()
	assert.Equal(t, "Buffering", u.face.status)
	assert.False(t, u.face.pressed[radioshim.Mute])
}

func TestSetButtonPressedIgnoresUnknownButton(t *testing.T) {
	u := bareUI()
	u.SetButtonPressed(radioshim.ButtonID(99), true)
	u.SetButtonPressed(radioshim.ButtonID(-1), true)
	assert.Empty(t, u.deferred)
}

func TestSetBrightnessClamps(t *testing.T) {
	u := bareUI()
	u.SetBrightness(400)
	u.runDeferred()
	assert.Equal(t, MaxBrightness, u.face.brightness)
	u.SetBrightness(-3)
	u.runDeferred()
	assert.Equal(t, 0, u.face.brightness)
}

func TestPollTouch(t *testing.T) {
	u := bareUI()
	_, _, ok := u.PollTouch()
	assert.False(t, ok)

	u.setTouch(touchPoint{x: 30, y: 210, ok: true})
	x, y, ok := u.PollTouch()
	require.True(t, ok)
	assert.Equal(t, 30, x)
	assert.Equal(t, 210, y)

	u.setTouch(touchPoint{x: 330, y: 10, ok: true})
	_, _, ok = u.PollTouch()
	assert.False(t, ok, "off-face point reads as no touch")

	u.setTouch(touchPoint{x: -1, y: 10, ok: true})
	_, _, ok = u.PollTouch()
	assert.False(t, ok)
}

func TestBacklightWritesScaledLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brightness")
	b := NewBacklight(path, 100)
	require.True(t, b.Enabled())

	b.Set(255)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "100\n", string(data))

	b.Set(128)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "50\n", string(data))

	b.Set(1000)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "100\n", string(data))
}

func TestBacklightDisabled(t *testing.T) {
	b := NewBacklight("", 0)
	assert.False(t, b.Enabled())
	assert.Equal(t, 20, b.Raw(20))
	b.Set(20)
}

func TestBacklightMissingDevice(t *testing.T) {
	b := NewBacklight(filepath.Join(t.TempDir(), "missing", "brightness"), 255)
	b.Set(20)
	b.Set(40)
	assert.True(t, b.warned)
	assert.Equal(t, -1, b.last)
}

func TestBufferColor(t *testing.T) {
	empty := bufferColor(0)
	full := bufferColor(100)
	assert.Greater(t, empty.R, empty.G, "empty buffer is red")
	assert.Greater(t, full.G, full.R, "full buffer is green")
	assert.Equal(t, full, bufferColor(250))
	assert.Equal(t, empty, bufferColor(-4))
	assert.Equal(t, uint8(0xff), bufferColor(50).A)
}

func TestLevelColorDistinct(t *testing.T) {
	seen := map[any]radioshim.BufferLevel{}
	for _, l := range []radioshim.BufferLevel{
		radioshim.BufferUnknown, radioshim.BufferLow, radioshim.BufferMedium, radioshim.BufferHigh,
	} {
		c := levelColor(l)
		_, dup := seen[c]
		assert.False(t, dup, "level %s", l)
		seen[c] = l
	}
}

func TestDimColor(t *testing.T) {
	assert.Equal(t, uint8(0), dimColor(MaxBrightness).A)
	assert.Less(t, dimColor(0).A, uint8(255))
	assert.Greater(t, dimColor(20).A, dimColor(200).A)
}

func TestWrapText(t *testing.T) {
	face := Font("Go-14")
	assert.Equal(t, []string{"Short"}, wrapText("Short", face, 300, 2))
	assert.Empty(t, wrapText("   ", face, 300, 2))

	long := strings.Repeat("word ", 80)
	lines := wrapText(long, face, 200, 2)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], "..."))
}

func TestEllipsize(t *testing.T) {
	face := Font("Go-12")
	assert.Equal(t, "fits", ellipsize("fits", face, 200))
	s := ellipsize(strings.Repeat("x", 200), face, 60)
	assert.True(t, strings.HasSuffix(s, "..."))
	assert.Less(t, len(s), 200)
}

func TestFontCached(t *testing.T) {
	assert.Same(t, Font("Go-Bold-18"), Font("Go-Bold-18"))
}

func TestExitEndsGameLoop(t *testing.T) {
	u := bareUI()
	u.Exit()
	assert.False(t, u.exit, "exit applies on the game loop")
	u.runDeferred()
	assert.True(t, u.exit)
	assert.ErrorIs(t, u.Update(), ebiten.Termination)
}
