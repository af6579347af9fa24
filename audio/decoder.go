package audio

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/rs/zerolog/log"
	"gopkg.in/hraban/opus.v2"

	"github.com/apa-radio/touchradio/audioshim"
)

// Compressed bytes wanted before the decoder is opened, and before each
// decode chunk, unless the stream has already ended.
const (
	openThreshold  = 8 * 1024
	chunkThreshold = 2 * 1024
)

const (
	decodeFrames    = 1024
	resampleQuality = 4
	opusRate        = beep.SampleRate(48000)
	opusBufferLen   = 5760 * 2 // 120 ms of stereo at 48 kHz, the largest opus frame
)

var ErrUnsupportedCodec = errors.New("unsupported stream format")

type codec int

const (
	codecMP3 codec = iota
	codecOpus
)

func codecFor(contentType string) (codec, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch mt {
	case "", "audio/mpeg", "audio/mp3", "audio/mpeg3", "audio/x-mpeg":
		return codecMP3, nil
	case "audio/ogg", "application/ogg", "audio/opus":
		return codecOpus, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedCodec, mt)
}

// decoder turns the compressed ring into stereo frames at outputRate.
type decoder struct {
	src    beep.Streamer
	err    func() error
	format beep.Format
}

func openDecoder(contentType string, r io.Reader) (*decoder, error) {
	c, err := codecFor(contentType)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.Streamer
		errFn    func() error
		format   beep.Format
	)
	switch c {
	case codecOpus:
		s, err := opus.NewStream(r)
		if err != nil {
			return nil, fmt.Errorf("opening opus stream: %w", err)
		}
		ops := &opusStreamer{s: s, buf: make([]float32, opusBufferLen)}
		streamer, errFn = ops, ops.Err
		format = beep.Format{SampleRate: opusRate, NumChannels: 2, Precision: 4}
	default:
		s, f, err := mp3.Decode(io.NopCloser(r))
		if err != nil {
			return nil, fmt.Errorf("opening mp3 stream: %w", err)
		}
		streamer, errFn, format = s, s.Err, f
	}

	d := &decoder{src: streamer, err: errFn, format: format}
	if format.SampleRate != outputRate {
		d.src = beep.Resample(resampleQuality, format.SampleRate, outputRate, streamer)
	}
	return d, nil
}

// Pump decodes one chunk into the PCM queue. It returns straight away when
// there is nothing to do: no stream, a full queue or too little input.
func (a *Audio) Pump() {
	st := a.cur
	if st == nil {
		return
	}
	if a.pcm.Size() > a.pcm.Cap()-decodeFrames {
		return
	}

	if a.dec == nil {
		if st.ring.Length() < openThreshold && !st.finished() {
			return
		}
		dec, err := openDecoder(st.contentType, st.ring)
		if err != nil {
			log.Warn().Err(err).Str("url", st.url).Msg("decoder open failed")
			if errors.Is(err, ErrUnsupportedCodec) {
				a.info(audioshim.InfoError, "Unsupported format")
				a.cur = nil
			} else {
				a.info(audioshim.InfoError, "Decode error")
				a.dropDecoder(st)
			}
			return
		}
		log.Debug().Int("rate", int(dec.format.SampleRate)).Int("channels", dec.format.NumChannels).Msg("decoder opened")
		a.dec = dec
		a.info(audioshim.InfoStatus, "Playing")
	}

	if st.ring.Length() < chunkThreshold && !st.finished() {
		return
	}
	n, ok := a.dec.src.Stream(a.frames)
	for _, f := range a.frames[:n] {
		a.pcm.Insert([2]float32{float32(f[0]), float32(f[1])})
	}
	if ok {
		return
	}

	err := a.dec.err()
	a.dec = nil
	if st.finished() && st.ring.IsEmpty() {
		a.cur = nil
		return
	}
	if err != nil {
		log.Debug().Err(err).Msg("decode error, resyncing")
	}
}

// dropDecoder gives up on the current decoder. If the stream has ended
// nothing more will arrive, so the stream is dropped too.
func (a *Audio) dropDecoder(st *stream) {
	a.dec = nil
	if st.finished() {
		a.cur = nil
	}
}

// opusStreamer adapts an Ogg/Opus stream to beep. Streams are decoded as
// interleaved stereo.
type opusStreamer struct {
	s       *opus.Stream
	buf     []float32
	pending []float32
	err     error
}

func (o *opusStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if len(o.pending) < 2 {
			got, err := o.s.ReadFloat32(o.buf)
			if err != nil {
				if err != io.EOF {
					o.err = err
				}
				return n, n > 0
			}
			if got == 0 {
				return n, n > 0
			}
			o.pending = o.buf[:got*2]
		}
		samples[n][0] = float64(o.pending[0])
		samples[n][1] = float64(o.pending[1])
		o.pending = o.pending[2:]
		n++
	}
	return n, true
}

func (o *opusStreamer) Err() error {
	return o.err
}
