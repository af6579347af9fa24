package radio

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/events"
	"github.com/apa-radio/touchradio/pkg/format"
	"github.com/apa-radio/touchradio/radioshim"
)

// ForwardInfo renders sink information on the display until ctx is
// cancelled or ch is closed. An empty station name from the stream falls
// back to the configured name of the current station.
func ForwardInfo(ctx context.Context, ch <-chan events.Event, display radioshim.Display, current func() Station) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			switch e := event.(type) {
			case events.StationNameReceived:
				name := e.Name
				if name == "" {
					name = current().Name
				}
				display.ShowStationName(name)
			case events.StreamTitleReceived:
				display.ShowTrackInfo(e.Title)
			case events.BitrateReceived:
				display.ShowBitrate(format.Bitrate(e.Bitrate))
			case events.StreamStatus:
				if e.Error {
					log.Warn().Str("status", e.Text).Msg("stream error")
				} else {
					log.Debug().Str("status", e.Text).Msg("stream status")
				}
				display.ShowStatus(e.Text)
			}
		}
	}
}
