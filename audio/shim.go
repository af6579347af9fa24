package audio

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/audioshim"
)

// Sinks returns the available audio output devices
func (a *Audio) Sinks() ([]audioshim.AudioDevice, error) {
	sinks, err := a.Context.ListSinks()
	if err != nil {
		return nil, fmt.Errorf("listing audio sinks: %w", err)
	}
	devices := make([]audioshim.AudioDevice, 0, len(sinks))
	for _, sink := range sinks {
		devices = append(devices, audioshim.AudioDevice{
			ID:   sink.ID(),
			Name: sink.Name(),
		})
	}
	return devices, nil
}

// DefaultSink returns the ID of the default audio output device
func (a *Audio) DefaultSink() string {
	sink, err := a.Context.DefaultSink()
	if err != nil {
		log.Warn().Err(err).Msg("failed to get default sink")
		return ""
	}
	return sink.ID()
}

// LogSinks writes the output devices to the log, marking the one in use.
func (a *Audio) LogSinks() {
	devices, err := a.Sinks()
	if err != nil {
		log.Warn().Err(err).Msg("could not list audio sinks")
		return
	}
	current := a.cfg.Sink
	if current == "" {
		current = a.DefaultSink()
	}
	for _, d := range devices {
		log.Info().Str("id", d.ID).Str("name", d.Name).Bool("selected", d.ID == current).Msg("audio sink")
	}
}
