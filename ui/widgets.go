package ui

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	ebimage "github.com/ebitenui/ebitenui/image"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/apa-radio/touchradio/radioshim"
)

const buttonRadius = 6

type buttonImages struct {
	idle    *ebimage.NineSlice
	pressed *ebimage.NineSlice
	active  *ebimage.NineSlice
}

func newButtonImages() buttonImages {
	bg := color.Transparent
	return buttonImages{
		idle:    MakeRoundedRect(colornames.Dimgray, bg, buttonRadius),
		pressed: MakeRoundedRect(colornames.Steelblue, bg, buttonRadius),
		active:  MakeRoundedRect(colornames.Firebrick, bg, buttonRadius),
	}
}

// MakeRoundedRect builds a nine-slice of a rounded rectangle in fg on bg.
func MakeRoundedRect(fg color.Color, bg color.Color, radius int) *ebimage.NineSlice {
	img := ebiten.NewImage(2*radius+1, 2*radius+1)
	r := float32(radius)
	img.Fill(bg)
	vector.DrawFilledCircle(img, r, r, r, fg, true)
	return ebimage.NewNineSliceSimple(img, radius, 1)
}

func drawNineSlice(dst *ebiten.Image, img *ebimage.NineSlice, r radioshim.Rect) {
	img.Draw(dst, r.W, r.H, func(opts *ebiten.DrawImageOptions) {
		opts.GeoM.Translate(float64(r.X), float64(r.Y))
	})
}

func drawText(dst *ebiten.Image, s string, fontName string, x, y float64, clr color.Color) {
	if s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, Font(fontName), op)
}

func drawTextCentered(dst *ebiten.Image, s string, fontName string, r radioshim.Rect, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.X)+float64(r.W)/2, float64(r.Y)+float64(r.H)/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, Font(fontName), op)
}

// ellipsize shortens s with "..." until it fits in width.
func ellipsize(s string, face text.Face, width float64) string {
	if text.Advance(s, face) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		cand := strings.TrimRight(string(r), " ") + "..."
		if text.Advance(cand, face) <= width {
			return cand
		}
	}
	return ""
}

// wrapText breaks s on spaces into at most maxLines lines of width; the
// last line is ellipsized if text remains.
func wrapText(s string, face text.Face, width float64, maxLines int) []string {
	words := strings.Fields(s)
	var lines []string
	line := ""
	for i, w := range words {
		cand := w
		if line != "" {
			cand = line + " " + w
		}
		if text.Advance(cand, face) <= width || line == "" {
			line = cand
			continue
		}
		if len(lines) == maxLines-1 {
			rest := strings.Join(append([]string{line}, words[i:]...), " ")
			return append(lines, ellipsize(rest, face, width))
		}
		lines = append(lines, line)
		line = w
	}
	if line != "" {
		lines = append(lines, ellipsize(line, face, width))
	}
	return lines
}
