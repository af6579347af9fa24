package radio

import "time"

type Config struct {
	PollPeriod      time.Duration `dialsdesc:"Input/display polling period" dialsflag:"poll-period"`
	HoldTimeout     time.Duration `dialsdesc:"How long a pressed button stays pressed" dialsflag:"hold-timeout"`
	TouchHoldoff    time.Duration `dialsdesc:"Minimum gap between touch polls after a press" dialsflag:"touch-holdoff"`
	ChannelDebounce time.Duration `dialsdesc:"Minimum gap between station changes" dialsflag:"channel-debounce"`
	MeterWindow     int           `dialsdesc:"Buffer meter samples per reading" dialsflag:"meter-window"`
	MeterFullScale  int           `dialsdesc:"Buffered bytes read as a full meter (0 uses the sink's buffer size)" dialsflag:"meter-full-scale"`
	MinBrightness   int           `dialsdesc:"Lowest screen brightness" dialsflag:"min-brightness"`
	BrightnessStep  int           `dialsdesc:"Brightness change per press" dialsflag:"brightness-step"`
	DefaultVolume   int           `dialsdesc:"Volume at startup (0-21)" dialsflag:"volume"`
	LockWarnAfter   time.Duration `dialsdesc:"Warn when waiting this long for the audio lock" dialsflag:"lock-warn"`
	ClockPeriod     time.Duration `dialsdesc:"Clock redraw period" dialsflag:"clock-period"`
}

func DefaultConfig() *Config {
	return &Config{
		PollPeriod:      50 * time.Millisecond,
		HoldTimeout:     200 * time.Millisecond,
		TouchHoldoff:    200 * time.Millisecond,
		ChannelDebounce: 500 * time.Millisecond,
		MeterWindow:     10,
		MeterFullScale:  8000,
		MinBrightness:   20,
		BrightnessStep:  20,
		DefaultVolume:   15,
		LockWarnAfter:   2 * time.Second,
		ClockPeriod:     15 * time.Second,
	}
}
