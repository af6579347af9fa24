package events

import (
	"sync"

	"github.com/apa-radio/touchradio/audioshim"
)

// Event is a marker interface for all radio events
type Event interface {
	isEvent()
}

// Base implementation for all events
type baseEvent struct{}

func (baseEvent) isEvent() {}

// StationNameReceived is fired when the stream announces its name
type StationNameReceived struct {
	baseEvent
	Name string
}

// StreamTitleReceived is fired when ICY metadata carries a new title
type StreamTitleReceived struct {
	baseEvent
	Title string
}

// BitrateReceived is fired when the stream reports its bitrate
type BitrateReceived struct {
	baseEvent
	Bitrate string
}

// StreamStatus carries free-form status or error text from the sink
type StreamStatus struct {
	baseEvent
	Text  string
	Error bool
}

// FromInfo converts a sink info callback into an event.
func FromInfo(kind audioshim.InfoKind, text string) Event {
	switch kind {
	case audioshim.InfoStationName:
		return StationNameReceived{Name: text}
	case audioshim.InfoStreamTitle:
		return StreamTitleReceived{Title: text}
	case audioshim.InfoBitrate:
		return BitrateReceived{Bitrate: text}
	case audioshim.InfoError:
		return StreamStatus{Text: text, Error: true}
	default:
		return StreamStatus{Text: text}
	}
}

// Bus provides simple event publish/subscribe
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe creates a new event channel for receiving events
func (b *Bus) Subscribe(bufferSize int) chan Event {
	ch := make(chan Event, bufferSize)
	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()
	return ch
}

// Publish sends an event to all subscribers (non-blocking)
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Skip slow subscribers - the sink must never block on the display
		}
	}
}

// InfoFunc returns a sink callback that publishes onto the bus.
func (b *Bus) InfoFunc() audioshim.InfoFunc {
	return func(kind audioshim.InfoKind, text string) {
		b.Publish(FromInfo(kind, text))
	}
}
