package radio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apa-radio/touchradio/radioshim"
)

func TestBufferMeter_Classification(t *testing.T) {
	tests := []struct {
		name    string
		sample  int
		percent int
		level   radioshim.BufferLevel
	}{
		{"high", 7000, 87, radioshim.BufferHigh},
		{"high edge", 5600, 70, radioshim.BufferHigh},
		{"medium", 5000, 62, radioshim.BufferMedium},
		{"medium edge", 4000, 50, radioshim.BufferMedium},
		{"low", 3999, 49, radioshim.BufferLow},
		{"empty", 0, 0, radioshim.BufferLow},
		{"overfull", 9000, 100, radioshim.BufferHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewBufferMeter(10, 8000)
			for i := 0; i < 9; i++ {
				_, _, ready := m.Sample(tt.sample)
				assert.False(t, ready)
			}
			level, percent, ready := m.Sample(tt.sample)
			assert.True(t, ready)
			assert.Equal(t, tt.percent, percent)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestBufferMeter_Reset(t *testing.T) {
	m := NewBufferMeter(10, 8000)
	for i := 0; i < 5; i++ {
		m.Sample(8000)
	}
	m.Reset()
	for i := 0; i < 9; i++ {
		_, _, ready := m.Sample(0)
		assert.False(t, ready, "partial window must be discarded")
	}
	level, percent, ready := m.Sample(0)
	assert.True(t, ready)
	assert.Equal(t, 0, percent)
	assert.Equal(t, radioshim.BufferLow, level)
}

func TestBufferMeter_WindowRestarts(t *testing.T) {
	m := NewBufferMeter(2, 100)
	m.Sample(100)
	_, percent, ready := m.Sample(100)
	assert.True(t, ready)
	assert.Equal(t, 100, percent)

	_, _, ready = m.Sample(0)
	assert.False(t, ready)
	_, percent, _ = m.Sample(0)
	assert.Equal(t, 0, percent)
}
