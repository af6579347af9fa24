package radio

import (
	"sync/atomic"
	"time"

	"github.com/apa-radio/touchradio/audioshim"
)

// State is the shared radio record. Every field has exactly one writer:
// the station index belongs to the Coordinator, everything else to the
// input task. Writers get their handle from ClaimStation or ClaimControls;
// readers use the accessors from any goroutine.
type State struct {
	now   func() time.Time
	epoch time.Time

	station      atomic.Int32
	volume       atomic.Int32
	muted        atomic.Bool
	brightness   atomic.Int32
	settingsMode atomic.Bool

	// nanoseconds since epoch plus one; zero means never
	lastStationChange  atomic.Int64
	lastVolumeChange   atomic.Int64
	lastButtonActivity atomic.Int64

	stationClaimed  atomic.Bool
	controlsClaimed atomic.Bool
}

// NewState creates the radio state with the given starting volume and
// brightness. now defaults to time.Now.
func NewState(volume, brightness int, now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	s := &State{now: now, epoch: now()}
	s.volume.Store(int32(clampVolume(volume)))
	s.brightness.Store(int32(brightness))
	return s
}

// Now reads the state's clock.
func (s *State) Now() time.Time {
	return s.now()
}

func (s *State) Station() int {
	return int(s.station.Load())
}

func (s *State) Volume() int {
	return int(s.volume.Load())
}

func (s *State) Muted() bool {
	return s.muted.Load()
}

// EffectiveVolume is the level actually sent to the sink.
func (s *State) EffectiveVolume() int {
	if s.Muted() {
		return 0
	}
	return s.Volume()
}

func (s *State) Brightness() int {
	return int(s.brightness.Load())
}

func (s *State) SettingsMode() bool {
	return s.settingsMode.Load()
}

func (s *State) LastStationChange() (time.Time, bool) {
	return s.loadTime(&s.lastStationChange)
}

func (s *State) LastVolumeChange() (time.Time, bool) {
	return s.loadTime(&s.lastVolumeChange)
}

func (s *State) LastButtonActivity() (time.Time, bool) {
	return s.loadTime(&s.lastButtonActivity)
}

func (s *State) loadTime(v *atomic.Int64) (time.Time, bool) {
	n := v.Load()
	if n == 0 {
		return time.Time{}, false
	}
	return s.epoch.Add(time.Duration(n - 1)), true
}

func (s *State) storeTime(v *atomic.Int64, t time.Time) {
	v.Store(int64(t.Sub(s.epoch)) + 1)
}

// ClaimStation hands out the only writer for the station index.
func (s *State) ClaimStation() StationWriter {
	if !s.stationClaimed.CompareAndSwap(false, true) {
		panic("radio: station writer already claimed")
	}
	return StationWriter{s: s}
}

// ClaimControls hands out the only writer for volume, mute, brightness and
// the settings flag.
func (s *State) ClaimControls() ControlsWriter {
	if !s.controlsClaimed.CompareAndSwap(false, true) {
		panic("radio: controls writer already claimed")
	}
	return ControlsWriter{s: s}
}

type StationWriter struct {
	s *State
}

// SetStation records a station change at the current time.
func (w StationWriter) SetStation(index int) {
	w.s.station.Store(int32(index))
	w.s.storeTime(&w.s.lastStationChange, w.s.now())
}

type ControlsWriter struct {
	s *State
}

func (w ControlsWriter) SetVolume(level int, at time.Time) {
	w.s.volume.Store(int32(clampVolume(level)))
	w.s.storeTime(&w.s.lastVolumeChange, at)
}

func (w ControlsWriter) SetMuted(muted bool) {
	w.s.muted.Store(muted)
}

func (w ControlsWriter) SetBrightness(level int) {
	w.s.brightness.Store(int32(level))
}

func (w ControlsWriter) SetSettingsMode(on bool) {
	w.s.settingsMode.Store(on)
}

func (w ControlsWriter) MarkButtonActivity(at time.Time) {
	w.s.storeTime(&w.s.lastButtonActivity, at)
}

func clampVolume(v int) int {
	return max(0, min(v, audioshim.MaxVolume))
}
