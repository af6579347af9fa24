package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vimeo/dials"
	"github.com/vimeo/dials/sources/env"
	"github.com/vimeo/dials/sources/flag"

	"github.com/apa-radio/touchradio/audio"
	"github.com/apa-radio/touchradio/errutil"
	"github.com/apa-radio/touchradio/events"
	"github.com/apa-radio/touchradio/persistence"
	"github.com/apa-radio/touchradio/radio"
	"github.com/apa-radio/touchradio/radioshim"
	"github.com/apa-radio/touchradio/ui"
)

const appName = "touchradio"

type Config struct {
	StationsFile string `dialsdesc:"Station list (JSON)" dialsflag:"stations"`
	LogLevel     string `dialsdesc:"Log level (debug, info, warn, error)" dialsflag:"log-level"`
	UI           *ui.Config
	Audio        *audio.Config
	Radio        *radio.Config
}

var config *Config

func defaultConfig() *Config {
	return &Config{
		StationsFile: filepath.Join(xdg.ConfigHome, appName, "stations.json"),
		LogLevel:     "info",
		UI:           ui.DefaultConfig(),
		Audio:        audio.DefaultConfig(),
		Radio:        radio.DefaultConfig(),
	}
}

func setupLogging(level string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	config = defaultConfig()
	flagSrc, err := flag.NewCmdLineSet(flag.DefaultFlagNameConfig(), config)
	if err != nil {
		panic(err)
	}
	d, err := dials.Config(mainCtx, config, &env.Source{}, flagSrc)
	if err != nil {
		panic(err)
	}
	config = d.View()
	setupLogging(config.LogLevel)

	table, err := radio.LoadStations(config.StationsFile)
	if err != nil {
		errutil.FatalError("loading stations from "+config.StationsFile, err)
	}
	log.Info().Int("stations", table.Len()).Msg("station list loaded")

	store, err := persistence.NewStore(appName)
	if err != nil {
		errutil.FatalError("opening settings store", err)
	}
	go store.Run(mainCtx)

	// Sink information reaches the display through the bus.
	eventBus := events.NewBus()
	info := eventBus.Subscribe(100)

	sink, err := audio.NewAudio(config.Audio, eventBus.InfoFunc())
	if err != nil {
		errutil.FatalError("opening audio output", err)
	}
	sink.LogSinks()

	u := ui.NewUI(config.UI)

	app := radio.NewApp(config.Radio, table, radio.Deps{
		Sink:    sink,
		Store:   store,
		Display: u,
		Touch:   u,
		Layout:  radioshim.DefaultLayout(),
		Info:    info,
	})
	app.Start(mainCtx)

	sigCtx, stopSignals := signal.NotifyContext(mainCtx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	go func() {
		<-sigCtx.Done()
		u.Exit()
	}()

	errutil.LogError("ui", ebiten.RunGame(u))

	app.Stop()
	mainCancel()
	store.Flush()
	sink.Close()
}
