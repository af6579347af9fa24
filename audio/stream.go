package audio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smallnest/ringbuffer"

	"github.com/apa-radio/touchradio/audioshim"
	"github.com/apa-radio/touchradio/errutil"
)

const (
	readTimeout = 250 * time.Millisecond
	stopTimeout = time.Second
)

var errAbandoned = errors.New("stream abandoned")

// stream is one HTTP connection and the ring buffer it fills.
type stream struct {
	url         string
	contentType string
	ring        *ringbuffer.RingBuffer
	cancel      context.CancelFunc
	done        chan struct{}
}

func (st *stream) finished() bool {
	select {
	case <-st.done:
		return true
	default:
		return false
	}
}

// Connect drops the current stream and starts fetching url. It returns once
// the response headers have arrived; every failure goes to the info
// callback.
func (a *Audio) Connect(url string) {
	a.stop()
	a.pcm.Clear()

	ctx, cancel := context.WithCancel(a.ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		a.info(audioshim.InfoError, fmt.Sprintf("Bad URL: %v", err))
		return
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)
	req.Header.Set("Icy-MetaData", "1")

	resp, err := a.client.Do(req)
	if err != nil {
		cancel()
		log.Warn().Err(err).Str("url", url).Msg("stream connect failed")
		a.info(audioshim.InfoError, "Connection failed")
		return
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("stream refused")
		a.info(audioshim.InfoError, "HTTP "+resp.Status)
		return
	}

	a.info(audioshim.InfoStationName, strings.TrimSpace(resp.Header.Get("icy-name")))
	if br := resp.Header.Get("icy-br"); br != "" {
		a.info(audioshim.InfoBitrate, br)
	}
	metaint, err := parseMetaint(resp.Header.Get("icy-metaint"))
	if err != nil {
		resp.Body.Close()
		cancel()
		errutil.LogError("icy-metaint from "+url, err)
		a.info(audioshim.InfoError, "Bad stream metadata")
		return
	}

	st := &stream{
		url:         url,
		contentType: resp.Header.Get("Content-Type"),
		ring:        ringbuffer.New(a.cfg.InputBuffer).SetBlocking(true).WithReadTimeout(readTimeout),
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	a.cur = st
	a.input.Store(st)
	log.Debug().Str("url", url).Str("type", st.contentType).Int("metaint", metaint).Msg("stream connected")

	go a.readStream(ctx, st, resp.Body, metaint)
	a.info(audioshim.InfoStatus, "Buffering")
}

// parseMetaint reads the icy-metaint header. An absent header means the
// stream carries no metadata.
func parseMetaint(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing icy-metaint %q: %w", v, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative icy-metaint %d", n)
	}
	return n, nil
}

// stop abandons the current stream and waits briefly for its reader so no
// stale info arrives after the switch.
func (a *Audio) stop() {
	st := a.cur
	a.cur = nil
	a.dec = nil
	a.input.Store(nil)
	if st == nil {
		return
	}
	st.cancel()
	st.ring.CloseWithError(errAbandoned)
	select {
	case <-st.done:
	case <-time.After(stopTimeout):
		log.Warn().Str("url", st.url).Msg("stream reader did not stop")
	}
}

func (a *Audio) readStream(ctx context.Context, st *stream, body io.ReadCloser, metaint int) {
	defer close(st.done)
	defer body.Close()

	r := &icyReader{
		r:         bufio.NewReader(body),
		metaint:   metaint,
		remaining: metaint,
		onTitle: func(title string) {
			if ctx.Err() == nil {
				a.info(audioshim.InfoStreamTitle, title)
			}
		},
	}
	_, err := io.Copy(st.ring, r)
	if ctx.Err() != nil {
		return
	}
	if err == nil {
		st.ring.CloseWriter()
		a.info(audioshim.InfoStatus, "Stream ended")
		return
	}
	log.Warn().Err(err).Str("url", st.url).Msg("stream read failed")
	st.ring.CloseWithError(err)
	a.info(audioshim.InfoError, "Stream interrupted")
}

// icyReader strips shoutcast metadata blocks, which follow every metaint
// bytes of audio.
type icyReader struct {
	r         *bufio.Reader
	metaint   int
	remaining int
	onTitle   func(string)
}

func (ir *icyReader) Read(p []byte) (int, error) {
	if ir.metaint <= 0 {
		return ir.r.Read(p)
	}
	if ir.remaining == 0 {
		if err := ir.readMeta(); err != nil {
			return 0, err
		}
		ir.remaining = ir.metaint
	}
	if len(p) > ir.remaining {
		p = p[:ir.remaining]
	}
	n, err := ir.r.Read(p)
	ir.remaining -= n
	return n, err
}

func (ir *icyReader) readMeta() error {
	lenByte, err := ir.r.ReadByte()
	if err != nil {
		return err
	}
	metaLen := int(lenByte) * 16
	if metaLen == 0 {
		return nil
	}
	meta := make([]byte, metaLen)
	if _, err := io.ReadFull(ir.r, meta); err != nil {
		return err
	}
	if title, ok := ParseStreamTitle(string(meta)); ok && ir.onTitle != nil {
		ir.onTitle(title)
	}
	return nil
}

// ParseStreamTitle extracts StreamTitle from an ICY metadata block such as
// "StreamTitle='Artist - Song';StreamUrl='http://x';".
func ParseStreamTitle(meta string) (string, bool) {
	meta = strings.TrimRight(meta, "\x00")
	const key = "StreamTitle='"
	start := strings.Index(meta, key)
	if start < 0 {
		return "", false
	}
	rest := meta[start+len(key):]
	end := strings.Index(rest, "';")
	if end < 0 {
		end = strings.LastIndex(rest, "'")
	}
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
