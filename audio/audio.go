package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
	"github.com/rs/zerolog/log"

	"github.com/apa-radio/touchradio/audioshim"
)

type Config struct {
	Sink        string        `dialsdesc:"PulseAudio sink (empty for default)" dialsflag:"audio-sink"`
	Latency     time.Duration `dialsdesc:"Playback latency" dialsflag:"audio-latency"`
	InputBuffer int           `dialsdesc:"Compressed stream buffer size in bytes" dialsflag:"input-buffer"`
	UserAgent   string        `dialsdesc:"HTTP user agent for stream requests" dialsflag:"user-agent"`
}

func DefaultConfig() *Config {
	return &Config{
		Latency:     50 * time.Millisecond,
		InputBuffer: 64 * 1024,
		UserAgent:   "touchradio/1",
	}
}

const (
	outputRate     = beep.SampleRate(44100)
	frameBytes     = 8 // stereo float32
	pcmFrames      = int(outputRate) / 2
	connectTimeout = 10 * time.Second
)

// Audio is the streaming sink: an HTTP stream feeds a ring buffer, Pump
// decodes from it into a PCM queue and PulseAudio drains the queue through
// Read.
type Audio struct {
	cfg    *Config
	info   audioshim.InfoFunc
	client *http.Client
	ctx    context.Context
	cancel context.CancelFunc

	Context *pulse.Client
	Player  *pulse.PlaybackStream

	pcm    *CircularBuf[[2]float32]
	volume atomic.Int32
	input  atomic.Pointer[stream]

	// owned by Connect and Pump, which are never called concurrently
	cur    *stream
	dec    *decoder
	frames [][2]float64
}

var _ audioshim.Sink = (*Audio)(nil)

// NewAudio connects to PulseAudio and starts a stereo playback stream.
func NewAudio(cfg *Config, info audioshim.InfoFunc) (*Audio, error) {
	a := newSink(cfg, info)

	pc, err := pulse.NewClient(
		pulse.ClientApplicationName("Touchradio"),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to pulseaudio: %w", err)
	}
	a.Context = pc

	opts := []pulse.PlaybackOption{
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(int(outputRate)),
		pulse.PlaybackLatency(cfg.Latency.Seconds()),
	}
	if cfg.Sink != "" {
		sink, err := pc.SinkByID(cfg.Sink)
		if err != nil {
			log.Warn().Err(err).Str("sink", cfg.Sink).Msg("unknown audio sink, using default")
		} else {
			opts = append(opts, pulse.PlaybackSink(sink))
		}
	}
	a.Player, err = pc.NewPlayback(pulse.NewReader(a, proto.FormatFloat32LE), opts...)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("creating playback stream: %w", err)
	}
	a.Player.Start()
	return a, nil
}

func newSink(cfg *Config, info audioshim.InfoFunc) *Audio {
	if info == nil {
		info = func(audioshim.InfoKind, string) {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Audio{
		cfg:  cfg,
		info: info,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
				ResponseHeaderTimeout: connectTimeout,
			},
		},
		ctx:    ctx,
		cancel: cancel,
		pcm:    NewCircularBuf[[2]float32](pcmFrames),
		frames: make([][2]float64, decodeFrames),
	}
}

// SetVolume takes effect on the next buffer handed to PulseAudio.
func (a *Audio) SetVolume(level int) {
	a.volume.Store(int32(max(0, min(level, audioshim.MaxVolume))))
}

// BufferFilled is the number of compressed bytes waiting to be decoded.
func (a *Audio) BufferFilled() int {
	if st := a.input.Load(); st != nil {
		return st.ring.Length()
	}
	return 0
}

func (a *Audio) BufferSize() int {
	return a.cfg.InputBuffer
}

// Gain maps a 0..MaxVolume level onto an amplitude factor, 2 dB per step
// with 0 fully silent.
func Gain(level int) float64 {
	if level <= 0 {
		return 0
	}
	level = min(level, audioshim.MaxVolume)
	return math.Pow(10, float64(level-audioshim.MaxVolume)*2/20)
}

// Read implements io.Reader for pulse. It never blocks: an empty queue is
// played as silence.
func (a *Audio) Read(dest []byte) (n int, err error) {
	gain := float32(Gain(int(a.volume.Load())))
	for n+frameBytes <= len(dest) {
		frame, _ := a.pcm.PopFront()
		binary.LittleEndian.PutUint32(dest[n:], math.Float32bits(frame[0]*gain))
		binary.LittleEndian.PutUint32(dest[n+4:], math.Float32bits(frame[1]*gain))
		n += frameBytes
	}
	if n == 0 {
		clear(dest)
		n = len(dest)
	}
	return
}

// Close abandons the stream and releases PulseAudio. Like Connect it must
// not run while Pump does.
func (a *Audio) Close() {
	a.stop()
	a.cancel()
	if a.Player != nil {
		a.Player.Stop()
		a.Player.Close()
	}
	if a.Context != nil {
		a.Context.Close()
	}
}
