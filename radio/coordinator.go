package radio

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/audioshim"
	"github.com/apa-radio/touchradio/radioshim"
)

// SettingsStore persists settings without blocking the caller.
type SettingsStore interface {
	SaveStation(index int)
	SaveBrightness(level int)
}

// Coordinator is the only writer of the current station. It is called from
// the input task and from startup, never from playback.
type Coordinator struct {
	table   *Table
	state   *State
	writer  StationWriter
	lock    *AudioLock
	store   SettingsStore
	display radioshim.Display
}

func NewCoordinator(table *Table, state *State, lock *AudioLock, store SettingsStore, display radioshim.Display) *Coordinator {
	return &Coordinator{
		table:   table,
		state:   state,
		writer:  state.ClaimStation(),
		lock:    lock,
		store:   store,
		display: display,
	}
}

// Step moves delta stations from the current one, wrapping at both ends,
// and returns the new index.
func (c *Coordinator) Step(delta int) int {
	next := c.table.Wrap(c.state.Station() + delta)
	c.Select(next)
	return next
}

// Select tunes to station index. The sink's Connect runs with the audio
// lock held; a failure to connect shows up later through the sink's info
// callbacks.
func (c *Coordinator) Select(index int) {
	if !c.table.Valid(index) {
		panic(fmt.Sprintf("radio: select station %d of %d", index, c.table.Len()))
	}
	st := c.table.At(index)
	c.writer.SetStation(index)
	c.display.ShowStationName(st.Name)
	c.display.ShowStatus("Connecting to " + st.Name)
	log.Info().Int("index", index).Str("name", st.Name).Str("url", st.URL).Msg("changing station")

	c.lock.With("coordinator", func(s audioshim.Sink) {
		s.Connect(st.URL)
	})

	c.store.SaveStation(index)
}

// Current returns the station being played.
func (c *Coordinator) Current() Station {
	return c.table.At(c.state.Station())
}
