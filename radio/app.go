package radio

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/audioshim"
	"github.com/apa-radio/touchradio/events"
	"github.com/apa-radio/touchradio/radioshim"
)

// Store is the persisted settings store as seen by the radio.
type Store interface {
	SettingsStore
	LoadStation() (int, bool)
	LoadBrightness() (int, bool)
}

// Deps are the collaborators an App is built from.
type Deps struct {
	Sink    audioshim.Sink
	Store   Store
	Display radioshim.Display
	Touch   radioshim.TouchSource
	Layout  radioshim.Layout
	// Info carries sink information to the display; may be nil.
	Info <-chan events.Event
	// Now is the monotonic clock used for debouncing; nil means time.Now.
	Now func() time.Time
}

// App owns everything the two tasks share. It is created once by main and
// handed the collaborators explicitly.
type App struct {
	cfg     *Config
	deps    Deps
	State   *State
	Table   *Table
	Lock    *AudioLock
	Coord   *Coordinator
	Play    *Playback
	Input   *InputTask
	Clock   *ClockTask
	started bool
	cancel  context.CancelFunc
	tasks   sync.WaitGroup
}

func NewApp(cfg *Config, table *Table, deps Deps) *App {
	brightness := MaxBrightness
	if b, ok := deps.Store.LoadBrightness(); ok {
		brightness = b
	}
	brightness = max(cfg.MinBrightness, min(brightness, MaxBrightness))

	state := NewState(cfg.DefaultVolume, brightness, deps.Now)
	lock := NewAudioLock(deps.Sink, cfg.LockWarnAfter)
	coord := NewCoordinator(table, state, lock, deps.Store, deps.Display)

	return &App{
		cfg:   cfg,
		deps:  deps,
		State: state,
		Table: table,
		Lock:  lock,
		Coord: coord,
		Play:  NewPlayback(lock),
		Input: NewInputTask(cfg, state, coord, lock, deps.Store, deps.Display, deps.Touch, deps.Layout),
		Clock: NewClockTask(cfg.ClockPeriod, deps.Display, nil),
	}
}

// Start brings the radio up: playback idles, the persisted station is
// connected, then the playback gate opens and the input and clock tasks
// begin. All goroutines stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a.started {
		panic("radio: app started twice")
	}
	a.started = true
	ctx, a.cancel = context.WithCancel(ctx)

	a.Play.Start(ctx)

	d := a.deps.Display
	d.SetBrightness(a.State.Brightness())
	d.SetMuted(false)
	d.SetSettingsMode(false)
	d.ShowBuffer(radioshim.BufferUnknown, 0)
	a.Lock.SetVolume(a.State.EffectiveVolume())

	if a.deps.Info != nil {
		a.goTask(func() { ForwardInfo(ctx, a.deps.Info, d, a.Coord.Current) })
	}

	index, ok := a.deps.Store.LoadStation()
	if !ok {
		index = 0
	} else if !a.Table.Valid(index) {
		log.Warn().Int("index", index).Int("stations", a.Table.Len()).Msg("saved station out of range, using first")
		index = 0
	}
	a.Coord.Select(index)
	a.Play.Allow()

	a.goTask(func() { a.Input.Run(ctx) })
	a.goTask(func() { a.Clock.Run(ctx) })
	log.Info().Int("stations", a.Table.Len()).Int("volume", a.State.Volume()).Msg("radio started")
}

func (a *App) goTask(fn func()) {
	a.tasks.Add(1)
	go func() {
		defer a.tasks.Done()
		fn()
	}()
}

// Stop cancels every task and waits for them to return. After Stop the
// sink is idle and can be closed.
func (a *App) Stop() {
	if !a.started {
		return
	}
	a.cancel()
	a.tasks.Wait()
	a.Play.Wait()
	log.Info().Msg("radio stopped")
}
