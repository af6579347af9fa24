package radio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/apa-radio/touchradio/audioshim"
	"github.com/apa-radio/touchradio/events"
)

func TestForwardInfo(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(10)
	disp := &fakeDisplay{}
	current := func() Station { return Station{Name: "Friendly"} }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ForwardInfo(ctx, ch, disp, current)
		close(done)
	}()

	info := bus.InfoFunc()
	info(audioshim.InfoStreamTitle, "Artist - Song")
	info(audioshim.InfoBitrate, "128000")
	info(audioshim.InfoError, "connection refused")
	info(audioshim.InfoStationName, "")

	assert.Eventually(t, func() bool {
		d := disp.snapshot()
		return d.track == "Artist - Song" &&
			d.bitrate == "128 kbps" &&
			d.status == "connection refused" &&
			d.station == "Friendly"
	}, time.Second, time.Millisecond)

	info(audioshim.InfoStationName, "Stream Name")
	assert.Eventually(t, func() bool { return disp.snapshot().station == "Stream Name" }, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestForwardInfo_ClosedChannel(t *testing.T) {
	ch := make(chan events.Event)
	close(ch)
	ForwardInfo(context.Background(), ch, &fakeDisplay{}, nil)
}
