package audioshim

// Sink abstracts the streaming decoder/player for the radio core.
//
// Connect and Pump must never run at the same time; callers serialise them
// with a single lock. SetVolume, BufferFilled and BufferSize are safe to call
// from any goroutine, including while Pump is running.
type Sink interface {
	// Connect abandons the current stream and starts fetching url. Failures
	// are reported through the sink's InfoFunc, not returned.
	Connect(url string)
	// Pump performs one quantum of decode/output work.
	Pump()
	// SetVolume sets the output level, 0..MaxVolume.
	SetVolume(level int)
	// BufferFilled returns the number of compressed bytes waiting to be decoded.
	BufferFilled() int
	// BufferSize returns the capacity of the compressed input buffer.
	BufferSize() int
}

// MaxVolume is the highest level accepted by SetVolume.
const MaxVolume = 21

// InfoKind classifies a sink info callback.
type InfoKind int

const (
	InfoStatus InfoKind = iota
	InfoError
	InfoStationName
	InfoStreamTitle
	InfoBitrate
)

func (k InfoKind) String() string {
	switch k {
	case InfoStatus:
		return "status"
	case InfoError:
		return "error"
	case InfoStationName:
		return "station"
	case InfoStreamTitle:
		return "streamtitle"
	case InfoBitrate:
		return "bitrate"
	}
	return "unknown"
}

// InfoFunc receives human-readable information from the sink. It may be
// called from any goroutine and must not block.
type InfoFunc func(kind InfoKind, text string)

// AudioDevice represents an audio output device
type AudioDevice struct {
	ID   string
	Name string
}
