package radio

import "github.com/apa-radio/touchradio/radioshim"

const (
	highWater   = 70
	mediumWater = 50
)

// BufferMeter smooths the sink's buffer fill over a window of samples so
// the indicator doesn't flicker with every network burst.
type BufferMeter struct {
	window    int
	fullScale int
	sum       int
	n         int
}

// NewBufferMeter averages window samples against a buffer of fullScale
// bytes.
func NewBufferMeter(window, fullScale int) *BufferMeter {
	return &BufferMeter{
		window:    max(window, 1),
		fullScale: max(fullScale, 1),
	}
}

// Sample adds one reading. When the window completes it returns the
// classified average and starts a new window.
func (m *BufferMeter) Sample(filled int) (level radioshim.BufferLevel, percent int, ready bool) {
	m.sum += max(filled, 0)
	m.n++
	if m.n < m.window {
		return radioshim.BufferUnknown, 0, false
	}
	percent = min(m.sum*100/(m.window*m.fullScale), 100)
	m.Reset()
	return Classify(percent), percent, true
}

// Reset discards the partial window.
func (m *BufferMeter) Reset() {
	m.sum = 0
	m.n = 0
}

func Classify(percent int) radioshim.BufferLevel {
	switch {
	case percent >= highWater:
		return radioshim.BufferHigh
	case percent >= mediumWater:
		return radioshim.BufferMedium
	default:
		return radioshim.BufferLow
	}
}
