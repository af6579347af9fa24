package ui

import (
	"bytes"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/apa-radio/touchradio/errutil"
)

var fontFiles = map[string][]byte{
	"Go":      goregular.TTF,
	"Go-Bold": gobold.TTF,
	"Go-Mono": gomono.TTF,
}

var sources sync.Map // map[string]*text.GoTextFaceSource

func loadFontSource(name string) *text.GoTextFaceSource {
	if cached, ok := sources.Load(name); ok {
		return cached.(*text.GoTextFaceSource)
	}
	ttf, ok := fontFiles[name]
	if !ok {
		log.Fatal().Str("font", name).Msg("font not found")
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		log.Fatal().Err(err).Str("font", name).Msg("loading font")
	}
	sources.Store(name, source)
	return source
}

var fontCache sync.Map // map[string]text.Face

// Font returns a face for a "Name-Size" spec such as "Go-Bold-18".
func Font(name string) text.Face {
	if cached, ok := fontCache.Load(name); ok {
		return cached.(text.Face)
	}

	idx := strings.LastIndex(name, "-")
	if idx == -1 {
		log.Fatal().Str("spec", name).Msg("invalid font spec: no size")
	}
	fontName := name[:idx]
	size := errutil.MustParseFloat(name[idx+1:], "font spec "+name)
	if size == 0 {
		log.Fatal().Str("spec", name).Msg("invalid font spec: size must be non-zero")
	}

	var face text.Face = &text.GoTextFace{Source: loadFontSource(fontName), Size: size}
	fontCache.Store(name, face)
	return face
}
