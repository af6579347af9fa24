package radio

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/audioshim"
)

// AudioLock owns the sink and serialises everything that touches its
// stream: Connect from the Coordinator and Pump from the playback task.
// The sink is only reachable inside With, so a caller cannot forget to
// release it.
type AudioLock struct {
	sink      audioshim.Sink
	sem       chan struct{}
	warnAfter time.Duration

	mu     sync.Mutex
	holder string
	since  time.Time
}

func NewAudioLock(sink audioshim.Sink, warnAfter time.Duration) *AudioLock {
	return &AudioLock{
		sink:      sink,
		sem:       make(chan struct{}, 1),
		warnAfter: warnAfter,
	}
}

// With runs fn with exclusive use of the sink. There is no timeout: a
// waiter that has been blocked longer than warnAfter logs a warning naming
// the current holder and keeps waiting.
func (l *AudioLock) With(holder string, fn func(audioshim.Sink)) {
	l.acquire(holder)
	defer l.release()
	fn(l.sink)
}

// Holder names the current lock holder, or "" when free.
func (l *AudioLock) Holder() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holder
}

// SetVolume, BufferFilled and BufferSize bypass the lock. The sink
// contract makes them safe to call while Pump runs.
func (l *AudioLock) SetVolume(level int) {
	l.sink.SetVolume(level)
}

func (l *AudioLock) BufferFilled() int {
	return l.sink.BufferFilled()
}

func (l *AudioLock) BufferSize() int {
	return l.sink.BufferSize()
}

func (l *AudioLock) acquire(holder string) {
	select {
	case l.sem <- struct{}{}:
		l.setHolder(holder)
		return
	default:
	}

	start := time.Now()
	if l.warnAfter <= 0 {
		l.sem <- struct{}{}
		l.setHolder(holder)
		return
	}
	timer := time.NewTimer(l.warnAfter)
	defer timer.Stop()
	for {
		select {
		case l.sem <- struct{}{}:
			if waited := time.Since(start); waited >= l.warnAfter {
				log.Info().Str("waiter", holder).Dur("waited", waited).Msg("audio lock acquired after stall")
			}
			l.setHolder(holder)
			return
		case <-timer.C:
			l.mu.Lock()
			current, held := l.holder, time.Since(l.since)
			l.mu.Unlock()
			log.Warn().
				Str("waiter", holder).
				Str("holder", current).
				Dur("waited", time.Since(start)).
				Dur("held", held).
				Msg("still waiting for audio lock")
			timer.Reset(l.warnAfter)
		}
	}
}

func (l *AudioLock) setHolder(holder string) {
	l.mu.Lock()
	l.holder = holder
	l.since = time.Now()
	l.mu.Unlock()
}

func (l *AudioLock) release() {
	l.mu.Lock()
	l.holder = ""
	l.mu.Unlock()
	<-l.sem
}
