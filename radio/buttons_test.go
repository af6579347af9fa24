package radio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apa-radio/touchradio/radioshim"
)

func TestPressedSet(t *testing.T) {
	var p PressedSet
	assert.True(t, p.Empty())

	assert.True(t, p.Add(radioshim.VolumeUp))
	assert.False(t, p.Add(radioshim.VolumeUp))
	assert.True(t, p.Add(radioshim.Settings))
	assert.True(t, p.Add(radioshim.Mute))
	assert.Equal(t, 3, p.Len())
	assert.True(t, p.Has(radioshim.VolumeUp))
	assert.False(t, p.Has(radioshim.ChannelUp))

	var drained []radioshim.ButtonID
	p.Drain(func(id radioshim.ButtonID) { drained = append(drained, id) })
	assert.Equal(t, []radioshim.ButtonID{radioshim.Mute, radioshim.VolumeUp, radioshim.Settings}, drained)
	assert.True(t, p.Empty())
	assert.False(t, p.Has(radioshim.VolumeUp))

	p.Drain(func(radioshim.ButtonID) { t.Fatal("drain of empty set called fn") })
}
