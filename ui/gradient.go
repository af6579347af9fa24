package ui

import (
	"image/color"
	"math"

	"github.com/tinne26/badcolor"
	"golang.org/x/image/colornames"

	"github.com/apa-radio/touchradio/radioshim"
)

func gradientGet(stops []badcolor.Oklab, i byte) color.Color {
	pos := float64(i) * float64(len(stops)-1) / 255
	floor := math.Floor(pos)
	if floor == pos {
		return stops[int(pos)].RGBA8()
	} else {
		prev := stops[int(floor)]
		next := stops[int(floor)+1]
		lerp := pos - floor
		blended := prev.Interpolate(next, lerp)
		return blended.RGBA8()
	}
}

var bufferGradient [256]color.RGBA

func init() {
	stops := []color.Color{
		colornames.Red, colornames.Orange, colornames.Gold, colornames.Limegreen,
	}
	labStops := make([]badcolor.Oklab, len(stops))
	for i := range stops {
		labStops[i] = badcolor.ToOklab(stops[i])
	}

	for i := 0; i < 256; i++ {
		r, g, b, _ := gradientGet(labStops, byte(i)).RGBA()
		bufferGradient[i] = color.RGBA{byte(r >> 8), byte(g >> 8), byte(b >> 8), 0xff}
	}
}

// bufferColor shades the buffer bar from red when empty to green when full.
func bufferColor(percent int) color.RGBA {
	percent = max(0, min(percent, 100))
	return bufferGradient[percent*255/100]
}

func levelColor(level radioshim.BufferLevel) color.Color {
	switch level {
	case radioshim.BufferHigh:
		return colornames.Limegreen
	case radioshim.BufferMedium:
		return colornames.Gold
	case radioshim.BufferLow:
		return colornames.Orangered
	}
	return colornames.Gray
}
