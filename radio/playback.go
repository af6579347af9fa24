package radio

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/audioshim"
)

type PlaybackState int32

const (
	PlaybackNotStarted PlaybackState = iota
	PlaybackIdle
	PlaybackRunning
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackNotStarted:
		return "not started"
	case PlaybackIdle:
		return "idle"
	case PlaybackRunning:
		return "running"
	}
	return "unknown"
}

const (
	pumpYield       = time.Millisecond
	gatedSleep      = 10 * time.Millisecond
	diagnosticEvery = 15 * time.Second
)

// Playback drives the sink's Pump as fast as the lock allows. It sits idle
// until Allow is called, which startup does once the first Connect has
// been issued.
type Playback struct {
	lock    *AudioLock
	allowed atomic.Bool
	state   atomic.Int32
	pumps   atomic.Uint64
	done    chan struct{}
}

func NewPlayback(lock *AudioLock) *Playback {
	return &Playback{lock: lock, done: make(chan struct{})}
}

// Start launches the playback goroutine in the idle state. It runs until
// ctx is cancelled.
func (p *Playback) Start(ctx context.Context) {
	if !p.state.CompareAndSwap(int32(PlaybackNotStarted), int32(PlaybackIdle)) {
		panic("radio: playback started twice")
	}
	go p.run(ctx)
}

// Allow raises the startup gate.
func (p *Playback) Allow() {
	p.allowed.Store(true)
}

func (p *Playback) State() PlaybackState {
	return PlaybackState(p.state.Load())
}

// Wait blocks until the playback goroutine has returned. Once it does, the
// sink is no longer pumped and may be closed.
func (p *Playback) Wait() {
	if p.State() == PlaybackNotStarted {
		return
	}
	<-p.done
}

// Pumps counts completed Pump calls.
func (p *Playback) Pumps() uint64 {
	return p.pumps.Load()
}

func (p *Playback) run(ctx context.Context) {
	defer close(p.done)
	log.Debug().Msg("playback task started")
	lastDiag := time.Now()
	var lastPumps uint64
	for {
		if !p.allowed.Load() {
			if !sleepCtx(ctx, gatedSleep) {
				return
			}
			continue
		}
		p.state.Store(int32(PlaybackRunning))

		p.lock.With("playback", func(s audioshim.Sink) {
			s.Pump()
		})
		p.pumps.Add(1)

		if since := time.Since(lastDiag); since >= diagnosticEvery {
			n := p.pumps.Load()
			log.Debug().Uint64("pumps", n-lastPumps).Dur("period", since).Msg("playback task")
			lastDiag, lastPumps = time.Now(), n
		}

		if !sleepCtx(ctx, pumpYield) {
			return
		}
	}
}

// sleepCtx sleeps for d and reports whether ctx is still live.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
