package audio

import (
	"time"

	"github.com/mrsingh-rishi/voice-companion/queue"
)

const (
	SampleRate   = 16000
	Channels     = 1
	FrameSamples = 160 // 10ms at 16kHz
)

// EndpointParams tunes utterance segmentation. Durations are converted to
// frame counts using FrameDuration.
type EndpointParams struct {
	// EnergyThreshold is the mean amplitude above which a frame counts as speech.
	EnergyThreshold int64
	// FrameDuration is the length of one pushed frame.
	FrameDuration time.Duration
	// Silence ends an utterance once speech has been heard.
	Silence time.Duration
	// MinSpeech discards shorter bursts (clicks, taps) as noise.
	MinSpeech time.Duration
	// MaxUtterance caps one utterance, counted from the first kept pre-roll frame.
	MaxUtterance time.Duration
	// ListenTimeout gives up when no speech starts in time.
	ListenTimeout time.Duration
	// Preroll keeps audio from just before speech onset.
	Preroll time.Duration
}

// DefaultEndpointParams suits a quiet room and a close microphone.
func DefaultEndpointParams() EndpointParams {
	return EndpointParams{
		EnergyThreshold: 500,
		FrameDuration:   10 * time.Millisecond,
		Silence:         800 * time.Millisecond,
		MinSpeech:       100 * time.Millisecond,
		MaxUtterance:    15 * time.Second,
		ListenTimeout:   10 * time.Second,
		Preroll:         300 * time.Millisecond,
	}
}

func (p EndpointParams) frames(d time.Duration) int {
	if p.FrameDuration <= 0 {
		return 0
	}
	n := int(d / p.FrameDuration)
	if n < 1 {
		n = 1
	}
	return n
}

// Endpointer segments a stream of frames into a single utterance.
type Endpointer struct {
	params EndpointParams

	preroll *queue.Queue[[]byte]
	buffer  []byte

	silenceLimit  int
	minSpeech     int
	maxFrames     int
	timeoutFrames int

	frames          int
	utteranceFrames int
	speechFrames    int
	silenceFrames   int
	started         bool
	done            bool
}

// NewEndpointer creates an endpointer ready for the first frame.
func NewEndpointer(params EndpointParams) *Endpointer {
	return &Endpointer{
		params:        params,
		preroll:       queue.NewBounded[[]byte](params.frames(params.Preroll)),
		silenceLimit:  params.frames(params.Silence),
		minSpeech:     params.frames(params.MinSpeech),
		maxFrames:     params.frames(params.MaxUtterance),
		timeoutFrames: params.frames(params.ListenTimeout),
	}
}

// Push feeds one frame and reports whether the utterance is complete.
// Frames pushed after completion are ignored.
func (e *Endpointer) Push(frame []int16) bool {
	if e.done {
		return true
	}
	e.frames++
	loud := MeanAmplitude(frame) > e.params.EnergyThreshold
	data := Int16ToBytes(frame)

	if !e.started {
		if loud {
			e.speechFrames++
			e.preroll.Enqueue(data)
			if e.speechFrames >= e.minSpeech {
				e.started = true
				for _, f := range e.preroll.Drain() {
					e.buffer = append(e.buffer, f...)
					e.utteranceFrames++
				}
			}
		} else {
			e.speechFrames = 0
			e.preroll.Enqueue(data)
		}
		if !e.started && e.frames >= e.timeoutFrames {
			e.done = true
		}
		return e.done
	}

	e.buffer = append(e.buffer, data...)
	e.utteranceFrames++
	if loud {
		e.speechFrames++
		e.silenceFrames = 0
	} else {
		e.silenceFrames++
	}

	if e.silenceFrames >= e.silenceLimit || e.utteranceFrames >= e.maxFrames {
		e.done = true
	}
	return e.done
}

// Started reports whether speech onset has been detected.
func (e *Endpointer) Started() bool {
	return e.started
}

// Utterance returns the captured PCM16 audio. It is empty when no speech
// started before the listen timeout.
func (e *Endpointer) Utterance() []byte {
	if !e.started {
		return nil
	}
	return e.buffer
}

// Reset prepares the endpointer for another utterance.
func (e *Endpointer) Reset() {
	e.preroll.Reset()
	e.buffer = nil
	e.frames = 0
	e.utteranceFrames = 0
	e.speechFrames = 0
	e.silenceFrames = 0
	e.started = false
	e.done = false
}
