package radio

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/audioshim"
	"github.com/apa-radio/touchradio/radioshim"
)

const MaxBrightness = 255

// InputTask polls the touch surface, turns touches into button actions and
// keeps the buffer indicator current. It owns the controls half of State.
type InputTask struct {
	cfg      *Config
	state    *State
	controls ControlsWriter
	coord    *Coordinator
	lock     *AudioLock
	store    SettingsStore
	display  radioshim.Display
	touch    radioshim.TouchSource
	layout   radioshim.Layout
	meter    *BufferMeter

	pressed   PressedSet
	lastPress time.Time
	lastTouch time.Time
	cycles    uint64
}

func NewInputTask(cfg *Config, state *State, coord *Coordinator, lock *AudioLock, store SettingsStore,
	display radioshim.Display, touch radioshim.TouchSource, layout radioshim.Layout) *InputTask {
	return &InputTask{
		cfg:      cfg,
		state:    state,
		controls: state.ClaimControls(),
		coord:    coord,
		lock:     lock,
		store:    store,
		display:  display,
		touch:    touch,
		layout:   layout,
		meter:    NewBufferMeter(cfg.MeterWindow, meterScale(cfg, lock)),
	}
}

// meterScale is the per-sample byte count that reads as 100%.
func meterScale(cfg *Config, lock *AudioLock) int {
	if cfg.MeterFullScale > 0 {
		return cfg.MeterFullScale
	}
	return lock.BufferSize()
}

// Run cycles every PollPeriod until ctx is cancelled.
func (t *InputTask) Run(ctx context.Context) {
	ticker := time.NewTicker(t.cfg.PollPeriod)
	defer ticker.Stop()
	lastDiag := t.state.Now()
	var lastCycles uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := t.state.Now()
			t.Cycle(now)
			if since := now.Sub(lastDiag); since >= diagnosticEvery {
				log.Debug().Uint64("cycles", t.cycles-lastCycles).Dur("period", since).Msg("input task")
				lastDiag, lastCycles = now, t.cycles
			}
		}
	}
}

// Cycle runs one polling pass.
func (t *InputTask) Cycle(now time.Time) {
	t.cycles++

	if level, percent, ok := t.meter.Sample(t.lock.BufferFilled()); ok {
		t.display.ShowBuffer(level, percent)
	}

	if !t.pressed.Empty() && now.Sub(t.lastPress) >= t.cfg.HoldTimeout {
		t.releaseAll()
	}

	if !t.lastTouch.IsZero() && now.Sub(t.lastTouch) < t.cfg.TouchHoldoff {
		return
	}
	x, y, ok := t.touch.PollTouch()
	if !ok {
		return
	}

	id, hit := t.hitTest(x, y)
	if !hit {
		t.releaseAll()
		return
	}
	if t.pressed.Has(id) {
		return
	}
	if !t.dispatch(id, now) {
		return
	}
	t.pressed.Add(id)
	t.display.SetButtonPressed(id, true)
	t.lastPress = now
	t.lastTouch = now
	t.controls.MarkButtonActivity(now)
}

// Pressed reports whether id is currently drawn pressed.
func (t *InputTask) Pressed(id radioshim.ButtonID) bool {
	return t.pressed.Has(id)
}

var hitOrder = []radioshim.ButtonID{
	radioshim.Mute,
	radioshim.VolumeDown,
	radioshim.VolumeUp,
	radioshim.ChannelDown,
	radioshim.ChannelUp,
	radioshim.BrightnessDown,
	radioshim.BrightnessUp,
	radioshim.Settings,
}

func (t *InputTask) hitTest(x, y int) (radioshim.ButtonID, bool) {
	settings := t.state.SettingsMode()
	for _, id := range hitOrder {
		if !settings && (id == radioshim.BrightnessDown || id == radioshim.BrightnessUp) {
			continue
		}
		if t.layout[id].Contains(x, y) {
			return id, true
		}
	}
	return 0, false
}

func (t *InputTask) releaseAll() {
	t.pressed.Drain(func(id radioshim.ButtonID) {
		t.display.SetButtonPressed(id, false)
	})
}

// dispatch performs the action for id and reports whether it fired.
func (t *InputTask) dispatch(id radioshim.ButtonID, now time.Time) bool {
	log.Debug().Stringer("button", id).Msg("press")
	switch id {
	case radioshim.Mute:
		muted := !t.state.Muted()
		t.controls.SetMuted(muted)
		t.lock.SetVolume(t.state.EffectiveVolume())
		t.display.SetMuted(muted)
	case radioshim.VolumeDown:
		t.changeVolume(t.state.Volume()-1, now)
	case radioshim.VolumeUp:
		t.changeVolume(t.state.Volume()+1, now)
	case radioshim.ChannelDown:
		return t.changeStation(-1, now)
	case radioshim.ChannelUp:
		return t.changeStation(1, now)
	case radioshim.BrightnessDown:
		t.changeBrightness(-t.cfg.BrightnessStep)
	case radioshim.BrightnessUp:
		t.changeBrightness(t.cfg.BrightnessStep)
	case radioshim.Settings:
		on := !t.state.SettingsMode()
		t.controls.SetSettingsMode(on)
		t.display.SetSettingsMode(on)
	}
	return true
}

// changeVolume clamps to [0, MaxVolume]; a press at either end still
// pushes the level and clears mute.
func (t *InputTask) changeVolume(level int, now time.Time) {
	level = max(0, min(level, audioshim.MaxVolume))
	t.controls.SetVolume(level, now)
	t.controls.SetMuted(false)
	t.lock.SetVolume(t.state.EffectiveVolume())
	t.display.SetMuted(false)
}

func (t *InputTask) changeStation(delta int, now time.Time) bool {
	if last, ok := t.state.LastStationChange(); ok && now.Sub(last) < t.cfg.ChannelDebounce {
		return false
	}
	t.coord.Step(delta)
	t.meter.Reset()
	t.display.ShowBuffer(radioshim.BufferUnknown, 0)
	t.display.ShowBitrate("")
	t.display.ShowTrackInfo("")
	return true
}

func (t *InputTask) changeBrightness(delta int) {
	level := max(t.cfg.MinBrightness, min(t.state.Brightness()+delta, MaxBrightness))
	t.controls.SetBrightness(level)
	t.display.SetBrightness(level)
	t.store.SaveBrightness(level)
}
