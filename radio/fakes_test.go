package radio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apa-radio/touchradio/radioshim"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
	return c.t
}

type fakeSink struct {
	mu       sync.Mutex
	connects []string
	volumes  []int
	pumps    atomic.Int64
	filled   atomic.Int64
	size     int

	// hold makes Connect and Pump linger so overlaps are observable
	hold    time.Duration
	active  atomic.Int32
	overlap atomic.Bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{size: 8000}
}

func (s *fakeSink) enter() {
	if s.active.Add(1) > 1 {
		s.overlap.Store(true)
	}
	if s.hold > 0 {
		time.Sleep(s.hold)
	}
}

func (s *fakeSink) exit() {
	s.active.Add(-1)
}

func (s *fakeSink) Connect(url string) {
	s.enter()
	defer s.exit()
	s.mu.Lock()
	s.connects = append(s.connects, url)
	s.mu.Unlock()
}

func (s *fakeSink) Pump() {
	s.enter()
	defer s.exit()
	s.pumps.Add(1)
}

func (s *fakeSink) SetVolume(level int) {
	s.mu.Lock()
	s.volumes = append(s.volumes, level)
	s.mu.Unlock()
}

func (s *fakeSink) BufferFilled() int {
	return int(s.filled.Load())
}

func (s *fakeSink) BufferSize() int {
	return s.size
}

func (s *fakeSink) Connects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.connects...)
}

func (s *fakeSink) LastVolume() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.volumes) == 0 {
		return 0, false
	}
	return s.volumes[len(s.volumes)-1], true
}

func (s *fakeSink) VolumeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.volumes)
}

type fakeDisplay struct {
	mu         sync.Mutex
	station    string
	track      string
	bitrate    string
	status     string
	level      radioshim.BufferLevel
	percent    int
	buffers    int
	clock      string
	pressed    [radioshim.NumButtons]bool
	muted      bool
	mutedCalls int
	settings   bool
	brightness int
}

func (d *fakeDisplay) ShowStationName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.station = name
}

func (d *fakeDisplay) ShowTrackInfo(info string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.track = info
}

func (d *fakeDisplay) ShowBitrate(bitrate string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bitrate = bitrate
}

func (d *fakeDisplay) ShowStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = status
}

func (d *fakeDisplay) ShowBuffer(level radioshim.BufferLevel, percent int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.level, d.percent = level, percent
	d.buffers++
}

func (d *fakeDisplay) ShowClock(hhmm string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clock = hhmm
}

func (d *fakeDisplay) SetButtonPressed(id radioshim.ButtonID, pressed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pressed[id] = pressed
}

func (d *fakeDisplay) SetMuted(muted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.muted = muted
	d.mutedCalls++
}

func (d *fakeDisplay) SetSettingsMode(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settings = on
}

func (d *fakeDisplay) SetBrightness(level int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brightness = level
}

func (d *fakeDisplay) snapshot() fakeDisplay {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fakeDisplay{
		station: d.station, track: d.track, bitrate: d.bitrate, status: d.status,
		level: d.level, percent: d.percent, buffers: d.buffers, clock: d.clock,
		pressed: d.pressed, muted: d.muted, mutedCalls: d.mutedCalls,
		settings: d.settings, brightness: d.brightness,
	}
}

type fakeTouch struct {
	mu   sync.Mutex
	x, y int
	down bool
}

func (f *fakeTouch) PollTouch() (int, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.x, f.y, f.down
}

func (f *fakeTouch) Press(x, y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.x, f.y, f.down = x, y, true
}

func (f *fakeTouch) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = false
}

type fakeStore struct {
	mu         sync.Mutex
	station    int
	hasStation bool
	brightness int
	hasBright  bool
	saves      int
}

func (s *fakeStore) LoadStation() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.station, s.hasStation
}

func (s *fakeStore) LoadBrightness() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brightness, s.hasBright
}

func (s *fakeStore) SaveStation(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.station, s.hasStation = index, true
	s.saves++
}

func (s *fakeStore) SaveBrightness(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brightness, s.hasBright = level, true
	s.saves++
}

func testStations(t *testing.T, n int) *Table {
	t.Helper()
	var stations []Station
	for i := 0; i < n; i++ {
		name := string(rune('A' + i))
		stations = append(stations, Station{Name: name, URL: "url" + name})
	}
	table, err := NewTable(stations)
	require.NoError(t, err)
	return table
}

// center returns a point inside id's region of the default layout.
func center(id radioshim.ButtonID) (int, int) {
	r := radioshim.DefaultLayout()[id]
	return r.X + r.W/2, r.Y + r.H/2
}

type rig struct {
	cfg   *Config
	clock *fakeClock
	sink  *fakeSink
	disp  *fakeDisplay
	touch *fakeTouch
	store *fakeStore
	table *Table
	state *State
	lock  *AudioLock
	coord *Coordinator
	input *InputTask
}

func newRig(t *testing.T, stations int, tweak func(*Config)) *rig {
	t.Helper()
	cfg := DefaultConfig()
	if tweak != nil {
		tweak(cfg)
	}
	r := &rig{
		cfg:   cfg,
		clock: newFakeClock(),
		sink:  newFakeSink(),
		disp:  &fakeDisplay{},
		touch: &fakeTouch{},
		store: &fakeStore{},
		table: testStations(t, stations),
	}
	r.state = NewState(cfg.DefaultVolume, 100, r.clock.Now)
	r.lock = NewAudioLock(r.sink, cfg.LockWarnAfter)
	r.coord = NewCoordinator(r.table, r.state, r.lock, r.store, r.disp)
	r.input = NewInputTask(cfg, r.state, r.coord, r.lock, r.store, r.disp, r.touch, radioshim.DefaultLayout())
	return r
}

// tap presses id, runs one cycle at the current time, then lifts the
// finger and moves the clock past every hold-off.
func (r *rig) tap(id radioshim.ButtonID) {
	r.touch.Press(center(id))
	r.input.Cycle(r.clock.Now())
	r.touch.Release()
	r.clock.Advance(r.cfg.ChannelDebounce + r.cfg.HoldTimeout + r.cfg.TouchHoldoff)
	r.input.Cycle(r.clock.Now())
}

func (r *rig) String() string {
	return fmt.Sprintf("station=%d volume=%d muted=%v", r.state.Station(), r.state.Volume(), r.state.Muted())
}
