package radio

import (
	"context"
	"time"

	"github.com/apa-radio/touchradio/radioshim"
)

const clockFormat = "15:04"

// ClockTask keeps the wall clock on the display current.
type ClockTask struct {
	period  time.Duration
	display radioshim.Display
	now     func() time.Time
}

func NewClockTask(period time.Duration, display radioshim.Display, now func() time.Time) *ClockTask {
	if now == nil {
		now = time.Now
	}
	return &ClockTask{period: period, display: display, now: now}
}

// Run draws the time immediately and then every period.
func (c *ClockTask) Run(ctx context.Context) {
	c.Draw()
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Draw()
		}
	}
}

func (c *ClockTask) Draw() {
	c.display.ShowClock(c.now().Format(clockFormat))
}
