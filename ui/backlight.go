package ui

import (
	"os"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
)

// Backlight writes brightness levels to a sysfs backlight file such as
// /sys/class/backlight/rpi_backlight/brightness. With no path it does
// nothing and the face dims itself instead.
type Backlight struct {
	path string
	max  int

	mu     sync.Mutex
	last   int
	warned bool
}

func NewBacklight(path string, max int) *Backlight {
	if max <= 0 {
		max = MaxBrightness
	}
	return &Backlight{path: path, max: max, last: -1}
}

func (b *Backlight) Enabled() bool {
	return b.path != ""
}

// Raw scales a 0..255 level to the device range.
func (b *Backlight) Raw(level int) int {
	level = max(0, min(level, MaxBrightness))
	return level * b.max / MaxBrightness
}

func (b *Backlight) Set(level int) {
	if !b.Enabled() {
		return
	}
	raw := b.Raw(level)

	b.mu.Lock()
	defer b.mu.Unlock()
	if raw == b.last {
		return
	}
	err := os.WriteFile(b.path, []byte(strconv.Itoa(raw)+"\n"), 0o644)
	if err != nil {
		if !b.warned {
			log.Warn().Err(err).Str("path", b.path).Msg("can't set backlight")
			b.warned = true
		}
		return
	}
	b.last = raw
}
